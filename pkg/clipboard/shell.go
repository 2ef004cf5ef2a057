package clipboard

import (
	"context"
	"errors"

	"cliptrack/pkg/host"
)

// ErrNoNotifier is returned when a shell backend has nobody to announce its
// writes to.
var ErrNoNotifier = errors.New("shell backend has no host notifier")

// NativeBackend reads and writes the native OS clipboard without telling
// anyone. The host uses it to observe the clipboard.
type NativeBackend struct{}

// NewNativeBackend returns the native clipboard backend.
func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

func (b *NativeBackend) Name() string {
	return "native"
}

// Available reports whether the native clipboard initialised.
func (b *NativeBackend) Available() bool {
	return nativeInit() == nil
}

func (b *NativeBackend) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return nativeRead()
}

func (b *NativeBackend) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nativeWrite(text)
}

// ShellBackend talks to the native OS clipboard on behalf of an app running
// under the desktop host, and tells the host about the app's own writes.
type ShellBackend struct {
	NativeBackend
	notifier host.Notifier
}

// NewShellBackend returns a native backend that announces writes to notifier.
func NewShellBackend(notifier host.Notifier) *ShellBackend {
	return &ShellBackend{notifier: notifier}
}

func (b *ShellBackend) Name() string {
	return "shell"
}

// SuppressNextCapture asks the host to ignore the capture caused by
// writing text.
func (b *ShellBackend) SuppressNextCapture(ctx context.Context, text string) error {
	if b.notifier == nil {
		return ErrNoNotifier
	}
	return b.notifier.IgnoreNextCapture(ctx, host.TextRequest(text))
}
