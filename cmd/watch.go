package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cliptrack/pkg/clipboard"
	"cliptrack/pkg/config"
	"cliptrack/pkg/errors"
	"cliptrack/pkg/host"
	"cliptrack/pkg/logger"
	"cliptrack/pkg/textstats"
	"cliptrack/pkg/tracker"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type WatchConfig struct {
	Interval    time.Duration
	RefreshFunc func(ctx context.Context) error
	OnError     func(error)
}

// RunWatch calls RefreshFunc immediately and then on every tick until ctx
// is done. Refresh errors go to OnError and do not stop the loop.
func RunWatch(ctx context.Context, cfg WatchConfig) error {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Duration(config.DefaultWatchInterval) * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if cfg.RefreshFunc != nil {
			if err := cfg.RefreshFunc(ctx); err != nil && ctx.Err() == nil && cfg.OnError != nil {
				cfg.OnError(err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Capture is one externally sourced clipboard change seen by the host.
type Capture struct {
	At      time.Time       `json:"at" yaml:"at"`
	Hash    string          `json:"hash" yaml:"hash"`
	Preview string          `json:"preview" yaml:"preview"`
	Stats   textstats.Stats `json:"stats" yaml:"stats"`
}

// captureLoop turns clipboard refreshes into captures, skipping the ones
// the app asked the host to ignore.
type captureLoop struct {
	tracker   *tracker.Tracker
	guard     *host.FileChannel
	onCapture func(Capture)
	now       func() time.Time

	primed bool
	last   string
}

func (l *captureLoop) tick(ctx context.Context) error {
	if err := l.tracker.Refresh(ctx); err != nil {
		return err
	}

	content := l.tracker.Content()
	if !l.primed {
		// What is on the clipboard at startup is not a change.
		l.primed = true
		l.last = content
		return nil
	}
	if content == l.last {
		return nil
	}
	l.last = content

	ignored, err := l.guard.Consume(content)
	if err != nil {
		logger.Warn().Err(err).Msg("could not read pending capture suppression")
	}
	hash := host.HashContent(content)
	if ignored {
		logger.Debug().Str("hash", hash).Msg("ignored clipboard change written by cliptrack")
		return nil
	}

	l.onCapture(Capture{
		At:      l.now(),
		Hash:    hash,
		Preview: l.tracker.Preview(),
		Stats:   l.tracker.Stats(),
	})
	return nil
}

var watchInterval int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the clipboard host and report external changes",
	Long: `Run as the desktop clipboard host: poll the native clipboard, report every
change made by other applications, and skip changes written by
'cliptrack set' while this host is running.

Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		interval := cfg.Watch.IntervalSeconds
		if cmd.Flags().Changed("interval") {
			interval = watchInterval
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runHost(ctx, cmd.OutOrStdout(), cfg, time.Duration(interval)*time.Second)
	},
}

func runHost(ctx context.Context, w io.Writer, cfg *config.Config, interval time.Duration) error {
	channel := host.NewFileChannel(cfg.Host.StateDir)
	if err := channel.Register(os.Getpid(), interval); err != nil {
		return errors.FileError("failed to register clipboard host", err)
	}
	defer func() {
		if err := channel.Unregister(); err != nil {
			logger.Warn().Err(err).Msg("failed to unregister clipboard host")
		}
	}()

	// The host observes the clipboard, so it reads natively and never
	// announces anything.
	selector := clipboard.NewSelector(clipboard.Mode(cfg.Clipboard.Backend),
		clipboard.NewNativeBackend(), clipboard.NewSystemBackend(),
		func() bool { return true })
	tr := tracker.New(selector, tracker.WithPreviewLimit(cfg.Clipboard.PreviewLimit))

	out := NewOutputWriter(outputFormat)
	out.SetWriter(w)
	loop := &captureLoop{
		tracker:   tr,
		guard:     channel,
		onCapture: func(c Capture) { printCapture(w, out, c) },
		now:       time.Now,
	}

	logger.Info().
		Str("state_dir", channel.Dir()).
		Str("backend", cfg.Clipboard.Backend).
		Dur("interval", interval).
		Msg("clipboard host started")

	err := RunWatch(ctx, WatchConfig{
		Interval:    interval,
		RefreshFunc: func(ctx context.Context) error {
			if err := channel.Heartbeat(); err != nil {
				logger.Warn().Err(err).Msg("failed to refresh host marker")
			}
			return loop.tick(ctx)
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("clipboard poll failed")
		},
	})
	if stderrors.Is(err, context.Canceled) {
		logger.Info().Msg("clipboard host stopped")
		return nil
	}
	return err
}

func printCapture(w io.Writer, out *OutputWriter, c Capture) {
	if out.IsStructured() {
		if err := out.Write(c); err != nil {
			logger.Warn().Err(err).Msg("failed to write capture")
		}
		return
	}
	color.New(color.FgCyan).Fprintf(w, "[%s] ", FormatTimestamp(c.At))
	fmt.Fprintf(w, "%s  %s\n", firstLine(c.Preview, 60), color.New(color.Faint).Sprint(c.Stats.Summary()))
}

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval", config.DefaultWatchInterval, "Poll interval in seconds")
}
