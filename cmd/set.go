package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cliptrack/pkg/config"
	"cliptrack/pkg/errors"
	"cliptrack/pkg/textstats"
	"cliptrack/pkg/tracker"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setStrict   bool
	setFromHTML bool
	setQuiet    bool
)

var setCmd = NewCommand(
	"set [text...]",
	"Write text to the clipboard",
	`Write text to the clipboard. Arguments are joined with spaces; without
arguments the text is read from stdin.

Inside a running host (cliptrack watch) the host is told to ignore the
capture caused by this write. Write failures are logged and ignored unless
--strict is given; the tracked text is updated either way.`,
).WithExample(`  cliptrack set "hello world"
  echo hello | cliptrack set
  curl -s https://example.com | cliptrack set --from-html
  cliptrack set --strict --backend system "must land"`).
	WithConfigOverride(func(cmd *cobra.Command, cfg *config.Config) {
		if setStrict {
			cfg.Clipboard.WriteMode = config.WriteModeStrict
		}
	}).
	WithTracker(func(ctx context.Context, cmd *cobra.Command, args []string, tr *tracker.Tracker) error {
		text, err := setText(cmd, args)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if IsDryRun() {
			stats := textstats.Compute(text)
			PrintDryRunAction(w, "write to the clipboard", map[string]string{
				"characters": strconv.Itoa(stats.TotalChars),
				"lines":      strconv.Itoa(stats.TotalLines),
				"preview":    firstLine(text, 60),
			})
			return nil
		}

		if err := tr.Update(ctx, text); err != nil {
			return err
		}

		if setQuiet {
			return nil
		}
		out := NewOutputWriter(outputFormat)
		out.SetWriter(w)
		if out.IsStructured() {
			return out.Write(newSnapshot(tr))
		}
		color.New(color.FgGreen).Fprint(w, "✓ ")
		fmt.Fprintf(w, "Copied %s\n", tr.Stats().Summary())
		return nil
	}).
	Build()

func setText(cmd *cobra.Command, args []string) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		input, err := readInput(cmd.InOrStdin(), "-")
		if err != nil {
			return "", err
		}
		text = input
	}

	if setFromHTML {
		md, err := htmlToMarkdown(text)
		if err != nil {
			return "", errors.NewWithError(errors.ExitCodeValidation, "failed to convert HTML", err)
		}
		text = md
	}
	return text, nil
}

func htmlToMarkdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)

	return conv.ConvertString(html)
}

func init() {
	setCmd.Flags().BoolVar(&setStrict, "strict", false, "Fail when the clipboard write fails instead of only logging it")
	setCmd.Flags().BoolVar(&setFromHTML, "from-html", false, "Treat the input as HTML and copy it as Markdown")
	setCmd.Flags().BoolVarP(&setQuiet, "quiet", "q", false, "Print nothing on success")
}
