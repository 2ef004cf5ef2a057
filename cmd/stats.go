package cmd

import (
	"context"
	"io"
	"os"

	"cliptrack/pkg/errors"
	"cliptrack/pkg/textstats"
	"cliptrack/pkg/tracker"

	"github.com/spf13/cobra"
)

var statsInput string

var statsCmd = NewCommand(
	"stats",
	"Show statistics about the clipboard text",
	`Read the clipboard and count characters, lines, words, letters, digits,
punctuation, whitespace, non-ASCII and Chinese characters.

Use --input to analyse a file (or - for stdin) instead of the clipboard.`,
).WithExample(`  cliptrack stats
  cliptrack stats --format yaml
  git log -1 --format=%B | cliptrack stats --input -`).
	WithTracker(func(ctx context.Context, cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		var stats textstats.Stats
		if statsInput != "" {
			text, err := readInput(cmd.InOrStdin(), statsInput)
			if err != nil {
				return err
			}
			stats = textstats.Compute(text)
		} else {
			if err := tr.Refresh(ctx); err != nil {
				return err
			}
			stats = tr.Stats()
		}

		out := NewOutputWriter(outputFormat)
		out.SetWriter(cmd.OutOrStdout())
		if out.IsStructured() {
			return out.Write(stats)
		}
		PrintStatsTable(cmd.OutOrStdout(), stats)
		return nil
	}).
	Build()

// readInput reads all of stdin when path is "-", otherwise the named file.
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.FileError("failed to read stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.FileError("failed to read "+path, err)
	}
	return string(data), nil
}

func init() {
	statsCmd.Flags().StringVarP(&statsInput, "input", "i", "", "Analyse this file (- for stdin) instead of the clipboard")
}
