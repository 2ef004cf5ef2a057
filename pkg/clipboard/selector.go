package clipboard

import (
	"context"

	"cliptrack/pkg/host"
	"cliptrack/pkg/logger"
)

// Mode chooses how the Selector resolves a backend.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeShell  Mode = "shell"
	ModeSystem Mode = "system"
	ModeNone   Mode = "none"
)

// Selector resolves the backend to use for a single operation. Resolution
// happens on every call, so a host that starts or stops between calls is
// picked up.
type Selector struct {
	mode    Mode
	shell   Backend
	system  Backend
	inShell func() bool
}

// NewSelector builds a selector from explicit backends. inShell is the
// runtime-detection predicate; a nil predicate means never in the shell.
func NewSelector(mode Mode, shell, system Backend, inShell func() bool) *Selector {
	if inShell == nil {
		inShell = func() bool { return false }
	}
	if mode == "" {
		mode = ModeAuto
	}
	return &Selector{mode: mode, shell: shell, system: system, inShell: inShell}
}

// DefaultSelector wires the native shell backend to the host channel and
// detects the shell runtime by the host's registration marker.
func DefaultSelector(mode Mode, channel *host.FileChannel) *Selector {
	return NewSelector(mode, NewShellBackend(channel), NewSystemBackend(), channel.Running)
}

// Mode returns the configured mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Select returns the backend for this call, or false when no clipboard
// capability is usable.
func (s *Selector) Select(ctx context.Context) (Backend, bool) {
	switch s.mode {
	case ModeNone:
		return nil, false
	case ModeShell:
		if available(s.shell) {
			return s.shell, true
		}
	case ModeSystem:
		if available(s.system) {
			return s.system, true
		}
	default:
		if s.inShell() && available(s.shell) {
			return s.shell, true
		}
		if available(s.system) {
			return s.system, true
		}
	}

	logger.Debug().Str("mode", string(s.mode)).Msg("no clipboard backend available")
	return nil, false
}
