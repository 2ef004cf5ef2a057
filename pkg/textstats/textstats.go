// Package textstats computes descriptive counters over clipboard text.
//
// Every counter is an independent scan of the input; none reuses another's
// result. Lengths are measured in UTF-16 code units, so a character outside
// the Basic Multilingual Plane (most emoji) counts as two.
package textstats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// DefaultPreviewLimit is the number of UTF-16 code units Preview keeps
// before truncating.
const DefaultPreviewLimit = 2000

// whitespaceClass mirrors the ECMAScript \s class.
const whitespaceClass = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	whitespaceRe  = regexp.MustCompile(`[` + whitespaceClass + `]`)
	letterRe      = regexp.MustCompile(`[a-zA-Z]`)
	wordRe        = regexp.MustCompile(`\b\w+\b`)
	nonASCIIRe    = regexp.MustCompile(`[^\x00-\x7F]`)
	digitRe       = regexp.MustCompile(`\d`)
	punctuationRe = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")
	chineseRe     = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	lowerRe       = regexp.MustCompile(`[a-z]`)
)

// Stats is a snapshot of counters over a piece of text.
type Stats struct {
	TotalChars        int `json:"totalChars" yaml:"totalChars"`
	NonEmptyChars     int `json:"nonEmptyChars" yaml:"nonEmptyChars"`
	TotalLines        int `json:"totalLines" yaml:"totalLines"`
	NonEmptyLines     int `json:"nonEmptyLines" yaml:"nonEmptyLines"`
	TotalLetters      int `json:"totalLetters" yaml:"totalLetters"`
	TotalWords        int `json:"totalWords" yaml:"totalWords"`
	NonASCIIChars     int `json:"nonAsciiChars" yaml:"nonAsciiChars"`
	TotalDigits       int `json:"totalDigits" yaml:"totalDigits"`
	TotalPunctuation  int `json:"totalPunctuation" yaml:"totalPunctuation"`
	TotalSpaces       int `json:"totalSpaces" yaml:"totalSpaces"`
	TotalChineseChars int `json:"totalChineseChars" yaml:"totalChineseChars"`
	TotalUppercase    int `json:"totalUppercase" yaml:"totalUppercase"`
	TotalLowercase    int `json:"totalLowercase" yaml:"totalLowercase"`
	LongestLine       int `json:"longestLine" yaml:"longestLine"`
}

// Compute scans s and returns its statistics.
//
// Lines are the segments produced by splitting on "\n", so the empty string
// has exactly one (empty) line.
func Compute(s string) Stats {
	return Stats{
		TotalChars:        Len(s),
		NonEmptyChars:     Len(whitespaceRe.ReplaceAllString(s, "")),
		TotalLines:        len(strings.Split(s, "\n")),
		NonEmptyLines:     countNonEmptyLines(s),
		TotalLetters:      count(letterRe, s),
		TotalWords:        count(wordRe, s),
		NonASCIIChars:     countUnits(nonASCIIRe, s),
		TotalDigits:       count(digitRe, s),
		TotalPunctuation:  count(punctuationRe, s),
		TotalSpaces:       count(whitespaceRe, s),
		TotalChineseChars: count(chineseRe, s),
		TotalUppercase:    count(upperRe, s),
		TotalLowercase:    count(lowerRe, s),
		LongestLine:       longestLine(s),
	}
}

// Preview returns s unchanged when it fits in limit code units, otherwise
// its first limit code units followed by a truncation marker. A surrogate
// pair straddling the limit is dropped whole. A limit of zero or less means
// DefaultPreviewLimit.
func Preview(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	if Len(s) <= limit {
		return s
	}

	n := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if n+w > limit {
			return s[:i] + TruncationMarker(limit)
		}
		n += w
	}
	return s + TruncationMarker(limit)
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		if w := utf16.RuneLen(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	return n
}

// TruncationMarker is appended to previews cut at limit characters.
func TruncationMarker(limit int) string {
	return fmt.Sprintf("...(超过%d字符已截断)", limit)
}

// Summary renders the headline counters on a single line.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d chars, %d words, %d lines (longest %d)",
		s.TotalChars, s.TotalWords, s.TotalLines, s.LongestLine)
}

func count(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}

// countUnits is count with every match weighted by its UTF-16 length.
func countUnits(re *regexp.Regexp, s string) int {
	n := 0
	for _, m := range re.FindAllString(s, -1) {
		n += Len(m)
	}
	return n
}

func countNonEmptyLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimFunc(line, isSpace) != "" {
			n++
		}
	}
	return n
}

func longestLine(s string) int {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		if n := Len(line); n > longest {
			longest = n
		}
	}
	return longest
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00a0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}
