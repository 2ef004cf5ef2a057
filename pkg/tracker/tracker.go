// Package tracker mirrors the clipboard text into owned state and derives a
// preview and statistics from it.
package tracker

import (
	"context"
	"sync"

	"cliptrack/pkg/clipboard"
	"cliptrack/pkg/errors"
	"cliptrack/pkg/logger"
	"cliptrack/pkg/textstats"
)

// WriteMode controls what Update does with a failed clipboard write.
type WriteMode int

const (
	// WriteBestEffort logs failures as warnings and swallows them.
	WriteBestEffort WriteMode = iota
	// WriteStrict logs failures and returns them to the caller.
	WriteStrict
)

func (m WriteMode) String() string {
	if m == WriteStrict {
		return "strict"
	}
	return "best-effort"
}

// Resolver picks the clipboard backend for a single operation.
type Resolver interface {
	Select(ctx context.Context) (clipboard.Backend, bool)
}

// Tracker holds the last known clipboard text. Refresh and Update are meant
// to be called sequentially; the derived views may be read at any time.
type Tracker struct {
	mu           sync.RWMutex
	content      string
	resolver     Resolver
	writeMode    WriteMode
	previewLimit int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithWriteMode sets how write failures are reported. The default is
// WriteBestEffort.
func WithWriteMode(mode WriteMode) Option {
	return func(t *Tracker) {
		t.writeMode = mode
	}
}

// WithPreviewLimit sets the preview length in UTF-16 code units.
func WithPreviewLimit(limit int) Option {
	return func(t *Tracker) {
		t.previewLimit = limit
	}
}

// New returns a tracker with empty content that resolves its backend
// through resolver on every call.
func New(resolver Resolver, opts ...Option) *Tracker {
	t := &Tracker{
		resolver:     resolver,
		writeMode:    WriteBestEffort,
		previewLimit: textstats.DefaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Content returns the tracked text.
func (t *Tracker) Content() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.content
}

// Preview returns the tracked text, truncated past the preview limit.
func (t *Tracker) Preview() string {
	return textstats.Preview(t.Content(), t.previewLimit)
}

// Stats computes fresh statistics over the tracked text.
func (t *Tracker) Stats() textstats.Stats {
	return textstats.Compute(t.Content())
}

// Refresh reads the clipboard into the tracked state. Without a usable
// backend it does nothing. Read failures are returned and leave the state
// untouched.
func (t *Tracker) Refresh(ctx context.Context) error {
	backend, ok := t.resolver.Select(ctx)
	if !ok {
		return nil
	}

	text, err := backend.Read(ctx)
	if err != nil {
		return errors.ClipboardReadError(backend.Name(), err)
	}

	t.set(text)
	logger.Debug().Str("backend", backend.Name()).Int("bytes", len(text)).Msg("clipboard refreshed")
	return nil
}

// Update writes text to the clipboard and then sets the tracked state to
// text, whether or not the write succeeded. On the shell backend the host
// is told to ignore the resulting capture before the write happens.
//
// In best-effort mode Update always returns nil.
func (t *Tracker) Update(ctx context.Context, text string) error {
	err := t.write(ctx, text)
	t.set(text)

	if err == nil {
		return nil
	}
	logger.Warn().Err(err).Str("write_mode", t.writeMode.String()).Msg("clipboard update not applied to the system clipboard")
	if t.writeMode == WriteStrict {
		return err
	}
	return nil
}

func (t *Tracker) write(ctx context.Context, text string) error {
	backend, ok := t.resolver.Select(ctx)
	if !ok {
		return nil
	}

	if s, ok := backend.(clipboard.Suppressor); ok {
		if err := s.SuppressNextCapture(ctx, text); err != nil {
			return errors.HostNotifyError(errors.FromContext(err, "notify host"))
		}
	}

	if err := backend.Write(ctx, text); err != nil {
		return errors.ClipboardWriteError(backend.Name(), errors.FromContext(err, "write clipboard"))
	}
	return nil
}

func (t *Tracker) set(text string) {
	t.mu.Lock()
	t.content = text
	t.mu.Unlock()
}
