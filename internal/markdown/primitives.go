// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown provides line-oriented scanning of Markdown documents.
// It is not a Markdown parser: fences, headings, links and inline code are
// recognized with simple patterns, which is all the lint rules need.
package markdown

import (
	"regexp"
	"strings"
)

// A closing '#' sequence counts only when whitespace precedes it.
var headingRegex = regexp.MustCompile(`^(#{1,6})\s+(.*?)(?:\s+#+)?\s*$`)

// IsFence reports whether the line opens or closes a fenced code block.
// Any line starting with ``` (after trimming) toggles the fence state.
func IsFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// FenceLanguage returns the info string token of a fence line, or "".
func FenceLanguage(line string) string {
	rest := strings.TrimLeft(strings.TrimSpace(line), "`")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsBareFence reports whether the line is exactly three backticks with no language.
func IsBareFence(line string) bool {
	return strings.TrimSpace(line) == "```"
}

// IsTableLine reports whether the line is a table row.
func IsTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// InlineCodeSpans returns [start, end) byte ranges of inline code spans,
// delimiters included. An opening run of N backticks closes at the next run
// of exactly N backticks; unclosed runs are not spans.
func InlineCodeSpans(line string) [][2]int {
	var spans [][2]int
	i := 0
	for i < len(line) {
		if line[i] != '`' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] == '`' {
			i++
		}
		n := i - start
		// An unclosed run leaves i past the literal backticks.
		for j := i; j < len(line); {
			if line[j] != '`' {
				j++
				continue
			}
			k := j
			for k < len(line) && line[k] == '`' {
				k++
			}
			if k-j == n {
				spans = append(spans, [2]int{start, k})
				i = k
				break
			}
			j = k
		}
	}
	return spans
}

// InInlineCode reports whether byte offset idx lies inside an inline code span.
func InInlineCode(line string, idx int) bool {
	for _, s := range InlineCodeSpans(line) {
		if idx >= s[0] && idx < s[1] {
			return true
		}
	}
	return false
}

// StripInlineCode blanks out inline code spans, preserving byte offsets.
func StripInlineCode(line string) string {
	spans := InlineCodeSpans(line)
	if len(spans) == 0 {
		return line
	}
	b := []byte(line)
	for _, s := range spans {
		for i := s[0]; i < s[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// ParseHeading parses an ATX heading line.
func ParseHeading(line string) (level int, text string, ok bool) {
	m := headingRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}
