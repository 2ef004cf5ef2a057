package clipboard

import (
	"context"

	atotto "github.com/atotto/clipboard"
)

// SystemBackend uses the platform clipboard utilities (pbcopy, xclip,
// xsel, wl-clipboard, the Windows API). It is the generic fallback when no
// desktop host is running.
type SystemBackend struct{}

func NewSystemBackend() *SystemBackend {
	return &SystemBackend{}
}

func (b *SystemBackend) Name() string {
	return "system"
}

// Available reports whether a clipboard utility was found.
func (b *SystemBackend) Available() bool {
	return !atotto.Unsupported
}

func (b *SystemBackend) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return atotto.ReadAll()
}

func (b *SystemBackend) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return atotto.WriteAll(text)
}
