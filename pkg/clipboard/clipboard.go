// Package clipboard provides text clipboard backends and the strategy that
// picks one at call time.
//
// Inside the desktop shell runtime (a cliptrack host is registered) the
// native OS clipboard is used and writes are announced to the host first.
// Elsewhere the system clipboard utilities are used directly.
package clipboard

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedPlatform is returned by the native backend on platforms
	// where it is not compiled in.
	ErrUnsupportedPlatform = errors.New("native clipboard is not supported on this platform")
	// ErrUnavailable means the backend exists but cannot be used right now.
	ErrUnavailable = errors.New("clipboard is unavailable")
)

// Backend reads and writes clipboard text.
type Backend interface {
	Name() string
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}

// Suppressor is implemented by backends whose writes would otherwise be
// re-captured by the host as external clipboard changes.
type Suppressor interface {
	SuppressNextCapture(ctx context.Context, text string) error
}

// Availability is implemented by backends that can report up front whether
// they are usable.
type Availability interface {
	Available() bool
}

func available(b Backend) bool {
	if b == nil {
		return false
	}
	if a, ok := b.(Availability); ok {
		return a.Available()
	}
	return true
}
