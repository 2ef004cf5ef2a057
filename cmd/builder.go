package cmd

import (
	"context"
	"fmt"

	"cliptrack/pkg/clipboard"
	"cliptrack/pkg/config"
	"cliptrack/pkg/errors"
	"cliptrack/pkg/host"
	"cliptrack/pkg/tracker"

	"github.com/spf13/cobra"
)

// TrackerFunc runs a command body against a configured tracker.
type TrackerFunc func(ctx context.Context, cmd *cobra.Command, args []string, tr *tracker.Tracker) error

// ConfigOverride adjusts the loaded configuration from command flags.
type ConfigOverride func(cmd *cobra.Command, cfg *config.Config)

type CommandBuilder struct {
	cmd       *cobra.Command
	overrides []ConfigOverride
}

func NewCommand(name, short, long string) *CommandBuilder {
	return &CommandBuilder{
		cmd: &cobra.Command{
			Use:     name,
			Short:   short,
			Long:    long,
			Example: "",
		},
	}
}

func (b *CommandBuilder) WithExample(example string) *CommandBuilder {
	b.cmd.Example = example
	return b
}

// WithTracker loads the configuration, wires a tracker to the selected
// clipboard backend and runs fn under the --timeout context.
func (b *CommandBuilder) WithTracker(fn TrackerFunc) *CommandBuilder {
	b.cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, override := range b.overrides {
			override(cmd, cfg)
		}

		ctx, cancel := GetContext()
		defer cancel()

		tr := newTracker(cfg)
		return errors.FromContext(fn(ctx, cmd, args, tr), cmd.Name())
	}
	return b
}

// WithConfigOverride registers a flag-driven config adjustment applied
// before the tracker is built.
func (b *CommandBuilder) WithConfigOverride(override ConfigOverride) *CommandBuilder {
	b.overrides = append(b.overrides, override)
	return b
}

func (b *CommandBuilder) Build() *cobra.Command {
	return b.cmd
}

// loadConfig reads the config and applies the --backend override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendFlag != "" {
		switch backendFlag {
		case config.BackendAuto, config.BackendShell, config.BackendSystem, config.BackendNone:
			cfg.Clipboard.Backend = backendFlag
		default:
			return nil, errors.ValidationError(fmt.Sprintf("unknown --backend %q", backendFlag))
		}
	}
	return cfg, nil
}

func newTracker(cfg *config.Config) *tracker.Tracker {
	channel := host.NewFileChannel(cfg.Host.StateDir)
	selector := clipboard.DefaultSelector(clipboard.Mode(cfg.Clipboard.Backend), channel)

	mode := tracker.WriteBestEffort
	if cfg.Clipboard.WriteMode == config.WriteModeStrict {
		mode = tracker.WriteStrict
	}

	return tracker.New(selector,
		tracker.WithWriteMode(mode),
		tracker.WithPreviewLimit(cfg.Clipboard.PreviewLimit),
	)
}
