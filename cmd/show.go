package cmd

import (
	"context"
	"fmt"

	"cliptrack/pkg/textstats"
	"cliptrack/pkg/tracker"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Snapshot is the structured form of `show`.
type Snapshot struct {
	Preview   string          `json:"preview" yaml:"preview"`
	Truncated bool            `json:"truncated" yaml:"truncated"`
	Stats     textstats.Stats `json:"stats" yaml:"stats"`
}

func newSnapshot(tr *tracker.Tracker) Snapshot {
	preview := tr.Preview()
	return Snapshot{
		Preview:   preview,
		Truncated: preview != tr.Content(),
		Stats:     tr.Stats(),
	}
}

var showCmd = NewCommand(
	"show",
	"Show the current clipboard text",
	`Read the clipboard and print a preview of its text. Long content is cut
at the configured preview limit (2000 characters by default).`,
).WithExample(`  cliptrack show
  cliptrack show --format json`).
	WithTracker(func(ctx context.Context, cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		if err := tr.Refresh(ctx); err != nil {
			return err
		}

		snap := newSnapshot(tr)
		out := NewOutputWriter(outputFormat)
		out.SetWriter(cmd.OutOrStdout())
		if out.IsStructured() {
			return out.Write(snap)
		}

		w := cmd.OutOrStdout()
		if snap.Stats.TotalChars == 0 {
			color.New(color.FgYellow).Fprintln(w, "Clipboard is empty.")
			return nil
		}
		fmt.Fprintln(w, snap.Preview)
		fmt.Fprintln(w)
		color.New(color.Faint).Fprintln(w, snap.Stats.Summary())
		return nil
	}).
	Build()
