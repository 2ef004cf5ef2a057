package completions

import (
	"strings"

	"github.com/spf13/cobra"
)

type Completer struct {
	formats   []string
	backends  []string
	logLevels []string
}

func NewCompleter() *Completer {
	return &Completer{
		formats: []string{
			"table\tHuman-readable output",
			"json\tJSON output",
			"yaml\tYAML output",
		},
		backends: []string{
			"auto\tNative clipboard under a running host, system clipboard otherwise",
			"shell\tNative clipboard with host capture suppression",
			"system\tPlatform clipboard utilities (pbcopy, xclip, wl-copy)",
			"none\tDo not touch the clipboard",
		},
		logLevels: []string{
			"debug\tVerbose diagnostics",
			"info\tDefault",
			"warn\tWarnings only",
			"error\tErrors only",
		},
	}
}

func (c *Completer) CompleteFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.filterPrefix(c.formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteBackend(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.filterPrefix(c.backends, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) CompleteLogLevel(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.filterPrefix(c.logLevels, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func RegisterCompletions(rootCmd *cobra.Command) {
	completer := NewCompleter()

	rootCmd.RegisterFlagCompletionFunc("format", completer.CompleteFormat)
	rootCmd.RegisterFlagCompletionFunc("backend", completer.CompleteBackend)
	rootCmd.RegisterFlagCompletionFunc("log-level", completer.CompleteLogLevel)
}
