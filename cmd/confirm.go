package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

// IsDryRun returns true if dry-run mode is enabled
func IsDryRun() bool {
	return dryRunFlag
}

// PrintDryRunAction prints a dry-run action with details in key order
func PrintDryRunAction(w io.Writer, action string, details map[string]string) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	yellow.Fprintf(w, "[DRY-RUN] Would %s:\n", action)
	for _, key := range keys {
		cyan.Fprintf(w, "  %s: ", key)
		fmt.Fprintln(w, details[key])
	}
}
