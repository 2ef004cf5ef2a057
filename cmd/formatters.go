package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cliptrack/pkg/textstats"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatTable is the default human-readable format
	FormatTable OutputFormat = "table"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs as YAML
	FormatYAML OutputFormat = "yaml"
)

// OutputWriter handles structured output formatting
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

// NewOutputWriter creates a new output writer with the specified format
func NewOutputWriter(format string) *OutputWriter {
	f := OutputFormat(strings.ToLower(format))
	if f != FormatJSON && f != FormatYAML {
		f = FormatTable // default
	}
	return &OutputWriter{
		format: f,
		writer: os.Stdout,
	}
}

// SetWriter sets a custom writer (used in tests)
func (w *OutputWriter) SetWriter(writer io.Writer) {
	w.writer = writer
}

// GetFormat returns the current format
func (w *OutputWriter) GetFormat() OutputFormat {
	return w.format
}

// IsStructured returns true if the format is JSON or YAML
func (w *OutputWriter) IsStructured() bool {
	return w.format == FormatJSON || w.format == FormatYAML
}

// Write outputs the data in the configured format
func (w *OutputWriter) Write(data interface{}) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		defer encoder.Close()
		return encoder.Encode(data)
	default:
		// Table format is handled by individual commands
		return nil
	}
}

// ValidFormats returns a list of valid output formats
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}

func FormatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("15:04:05")
}

type statRow struct {
	label string
	value int
}

func statRows(s textstats.Stats) []statRow {
	return []statRow{
		{"Characters", s.TotalChars},
		{"Non-whitespace characters", s.NonEmptyChars},
		{"Lines", s.TotalLines},
		{"Non-empty lines", s.NonEmptyLines},
		{"Longest line", s.LongestLine},
		{"Words", s.TotalWords},
		{"Letters", s.TotalLetters},
		{"Uppercase", s.TotalUppercase},
		{"Lowercase", s.TotalLowercase},
		{"Digits", s.TotalDigits},
		{"Punctuation", s.TotalPunctuation},
		{"Whitespace", s.TotalSpaces},
		{"Non-ASCII characters", s.NonASCIIChars},
		{"Chinese characters", s.TotalChineseChars},
	}
}

// PrintStatsTable renders statistics as an aligned two-column table.
func PrintStatsTable(w io.Writer, s textstats.Stats) {
	cyan := color.New(color.FgCyan)
	bold := color.New(color.Bold)

	rows := statRows(s)
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	bold.Fprintln(w, "Clipboard statistics")
	fmt.Fprintln(w, strings.Repeat("=", width+10))
	for _, r := range rows {
		cyan.Fprintf(w, "%-*s", width, r.label)
		fmt.Fprintf(w, "  %d\n", r.value)
	}
}

// firstLine returns the first line of s, cut to limit characters.
func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return s
}
