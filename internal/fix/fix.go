// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fix rewrites markdown files to remove mechanical formatting problems.
// It runs outside the lint path and keeps the rendered output unchanged.
package fix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/projection"
)

// Kinds of fix applied to a file.
const (
	TrailingWhitespace = "trailing-whitespace"
	HeadingSpace       = "heading-space"
	BlankLines         = "blank-lines"
	FinalNewline       = "final-newline"
	LineEndings        = "line-endings"
)

// Options configures a fix run.
type Options struct {
	// DryRun reports what would change without writing files.
	DryRun bool
}

// FileChange records the fixes applied to one file.
type FileChange struct {
	Path  string   `json:"path"`
	Fixes []string `json:"fixes"`
}

// Result lists the files a run changed (or would change, in dry-run mode).
type Result struct {
	FilesChecked int          `json:"filesChecked"`
	Changed      []FileChange `json:"changed"`
	DryRun       bool         `json:"dryRun"`
}

var headingNoSpace = regexp.MustCompile(`^(#{1,6})([[:alnum:]].*)$`)

// Run formats each file (slash paths relative to root) in order.
func Run(ctx context.Context, root string, files []string, opts Options) (*Result, error) {
	res := &Result{FilesChecked: len(files), Changed: []FileChange{}, DryRun: opts.DryRun}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := filepath.Join(root, filepath.FromSlash(rel))
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		out, fixes := Format(string(b))
		if len(fixes) == 0 {
			continue
		}
		res.Changed = append(res.Changed, FileChange{Path: rel, Fixes: fixes})
		if opts.DryRun {
			continue
		}
		if err := projection.AtomicWrite(p, []byte(out)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", rel, err)
		}
	}
	return res, nil
}

// Format returns the fixed content and the kinds of fix applied, in a fixed order.
// Fenced code is left untouched apart from line endings.
func Format(content string) (string, []string) {
	applied := make(map[string]bool)

	if strings.Contains(content, "\r\n") {
		content = strings.ReplaceAll(content, "\r\n", "\n")
		applied[LineEndings] = true
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	blanks := 0
	flush := func() {
		if blanks >= 3 {
			applied[BlankLines] = true
			blanks = 1
		}
		for ; blanks > 0; blanks-- {
			out = append(out, "")
		}
	}
	blockStart := true
	for i, line := range lines {
		if inFence {
			if markdown.IsFence(line) {
				inFence = false
				blockStart = true
			}
			out = append(out, line)
			continue
		}

		text := strings.TrimRight(line, " \t")
		tail := line[len(text):]
		if text == "" {
			if tail != "" {
				applied[TrailingWhitespace] = true
			}
			blanks++
			blockStart = true
			continue
		}
		flush()

		heading := false
		if markdown.IsFence(text) {
			inFence = true
		} else if fixed, ok := fixHeading(text, blockStart); ok {
			text = fixed
			heading = true
			applied[HeadingSpace] = true
		} else {
			_, _, heading = markdown.ParseHeading(text)
		}

		if tail != "" {
			if !heading && !inFence && isHardBreak(tail) && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
				text += tail
			} else {
				applied[TrailingWhitespace] = true
			}
		}
		out = append(out, text)
		blockStart = heading
	}

	// A well-formed file leaves exactly one empty element after the final newline.
	if inFence {
		for blanks = 0; len(out) > 0 && out[len(out)-1] == ""; blanks++ {
			out = out[:len(out)-1]
		}
	}
	if len(out) == 0 {
		if content != "" {
			applied[FinalNewline] = true
		}
		return "", orderedFixes(applied)
	}
	if blanks != 1 {
		applied[FinalNewline] = true
	}
	return strings.Join(out, "\n") + "\n", orderedFixes(applied)
}

// fixHeading inserts the missing space after a heading marker. Only lines that
// start a block qualify, and a single '#' must be followed by an upper-case
// letter, so hashtags, issue numbers and shebangs in prose are left alone.
func fixHeading(line string, blockStart bool) (string, bool) {
	if !blockStart {
		return "", false
	}
	m := headingNoSpace.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if len(m[1]) == 1 {
		r, _ := utf8.DecodeRuneInString(m[2])
		if !unicode.IsUpper(r) {
			return "", false
		}
	}
	return m[1] + " " + m[2], true
}

// isHardBreak reports whether a trailing whitespace run is a Markdown hard
// line break: two or more spaces and nothing else.
func isHardBreak(tail string) bool {
	return len(tail) >= 2 && strings.Trim(tail, " ") == ""
}

func orderedFixes(applied map[string]bool) []string {
	var fixes []string
	for _, k := range []string{LineEndings, TrailingWhitespace, HeadingSpace, BlankLines, FinalNewline} {
		if applied[k] {
			fixes = append(fixes, k)
		}
	}
	return fixes
}
