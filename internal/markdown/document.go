// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"regexp"
	"strings"
)

// Link regex: [text](target). Nested parens are not supported.
// The index-based API is used so image links like ![alt](img.png) can be skipped.
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)

// Heading is an ATX heading found outside code fences.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Link is an inline link found outside code fences and inline code.
type Link struct {
	Text   string
	Target string
	Line   int
}

// Fence is a fenced code block. EndLine is 0 when the fence is never closed.
type Fence struct {
	StartLine int
	EndLine   int
	Language  string
	Bare      bool
}

// Document holds the facts extracted from one file in a single pass.
// Line numbers are 1-based.
type Document struct {
	Path    string
	Content string
	Lines   []string

	// InFence[i] is true when line i+1 is a fence delimiter or fenced content.
	InFence  []bool
	Headings []Heading
	Links    []Link
	Fences   []Fence

	// Err is set when the file could not be read; all other fields are then empty.
	Err error
}

// Scan extracts headings, links and fences from content.
func Scan(path, content string) *Document {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	doc := &Document{
		Path:    path,
		Content: content,
		Lines:   lines,
		InFence: make([]bool, len(lines)),
	}

	var open *Fence
	for i, line := range lines {
		lineNo := i + 1

		if IsFence(line) {
			doc.InFence[i] = true
			if open == nil {
				open = &Fence{StartLine: lineNo, Language: FenceLanguage(line), Bare: IsBareFence(line)}
			} else {
				open.EndLine = lineNo
				doc.Fences = append(doc.Fences, *open)
				open = nil
			}
			continue
		}
		if open != nil {
			doc.InFence[i] = true
			continue
		}

		if level, text, ok := ParseHeading(line); ok {
			doc.Headings = append(doc.Headings, Heading{Level: level, Text: text, Line: lineNo})
		}

		for _, mi := range linkRegex.FindAllStringSubmatchIndex(line, -1) {
			if mi[0] > 0 && line[mi[0]-1] == '!' {
				continue
			}
			if InInlineCode(line, mi[0]) {
				continue
			}
			doc.Links = append(doc.Links, Link{
				Text:   line[mi[2]:mi[3]],
				Target: strings.TrimSpace(line[mi[4]:mi[5]]),
				Line:   lineNo,
			})
		}
	}
	if open != nil {
		doc.Fences = append(doc.Fences, *open)
	}
	return doc
}

// FirstH1 returns the text of the first level-1 heading.
func (d *Document) FirstH1() (string, bool) {
	for _, h := range d.Headings {
		if h.Level == 1 {
			return h.Text, true
		}
	}
	return "", false
}

// CountHeadings returns the number of headings at the given level.
func (d *Document) CountHeadings(level int) int {
	n := 0
	for _, h := range d.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}
