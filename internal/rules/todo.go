// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/runner"
)

// CommentTag is one entry of the tag vocabulary.
type CommentTag struct {
	Tag      string
	Severity config.IssueSeverity
	Label    string
	Enabled  bool
}

// BuiltinTags returns the built-in vocabulary. Informational tags are common
// words in prose, so they are opt-in.
func BuiltinTags() []CommentTag {
	return []CommentTag{
		{Tag: "TODO", Severity: config.IssueWarn, Label: "Unfinished work", Enabled: true},
		{Tag: "FIXME", Severity: config.IssueError, Label: "Needs fixing", Enabled: true},
		{Tag: "XXX", Severity: config.IssueWarn, Label: "Needs attention", Enabled: true},
		{Tag: "HACK", Severity: config.IssueWarn, Label: "Workaround", Enabled: true},
		{Tag: "BUG", Severity: config.IssueError, Label: "Known bug", Enabled: true},
		{Tag: "NOTE", Severity: config.IssueInfo, Label: "Note"},
		{Tag: "REVIEW", Severity: config.IssueInfo, Label: "Needs review"},
		{Tag: "OPTIMIZE", Severity: config.IssueInfo, Label: "Optimization opportunity"},
		{Tag: "WARNING", Severity: config.IssueWarn, Label: "Warning"},
		{Tag: "QUESTION", Severity: config.IssueInfo, Label: "Open question"},
	}
}

// ResolveTags merges tag overrides and custom tags into the built-in vocabulary.
// Tag names compare case-insensitively; a custom tag replaces a built-in one.
func ResolveTags(rc config.TodoRule) []CommentTag {
	tags := BuiltinTags()
	index := make(map[string]int, len(tags))
	for i, t := range tags {
		index[t.Tag] = i
	}

	for name, o := range rc.Tags {
		i, ok := index[strings.ToUpper(name)]
		if !ok {
			continue
		}
		if o.Enabled != nil {
			tags[i].Enabled = *o.Enabled
		}
		if o.Severity != "" {
			tags[i].Severity = o.Severity
		}
		if o.Label != "" {
			tags[i].Label = o.Label
		}
	}

	for _, c := range rc.CustomTags {
		t := CommentTag{Tag: strings.ToUpper(c.Tag), Severity: c.Severity, Label: c.Label, Enabled: true}
		if t.Severity == "" {
			t.Severity = config.IssueWarn
		}
		if t.Label == "" {
			t.Label = t.Tag
		}
		if i, ok := index[t.Tag]; ok {
			tags[i] = t
			continue
		}
		index[t.Tag] = len(tags)
		tags = append(tags, t)
	}

	enabled := tags[:0]
	for _, t := range tags {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// TodoComments reports tag comments such as TODO and FIXME. Each issue carries
// the severity of its tag; the rule severity alone decides pass or fail.
type TodoComments struct{}

func NewTodoComments() runner.Rule { return &TodoComments{} }

func (r *TodoComments) ID() string { return config.RuleTodoComments }

func (r *TodoComments) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.TodoComments.Severity
}

type tagMatcher struct {
	tag CommentTag
	re  *regexp.Regexp
}

type tagHit struct {
	pos int
	tag CommentTag
}

func (r *TodoComments) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.TodoComments

	var matchers []tagMatcher
	for _, t := range ResolveTags(rc) {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(t.Tag) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", t.Tag, err)
		}
		matchers = append(matchers, tagMatcher{tag: t, re: re})
	}
	var excludes []*regexp.Regexp
	for _, p := range rc.ExcludePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		excludes = append(excludes, re)
	}

	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, doc := range docs {
		for i, line := range doc.Lines {
			if rc.IgnoreInCodeBlocks && doc.InFence[i] {
				continue
			}
			if rc.IgnoreInTables && markdown.IsTableLine(line) {
				continue
			}
			text := line
			if rc.IgnoreInInlineCode {
				text = markdown.StripInlineCode(line)
			}
			skipped := excludedSpans(excludes, text)

			var hits []tagHit
			for _, m := range matchers {
				for _, loc := range m.re.FindAllStringIndex(text, -1) {
					if inSpans(skipped, loc[0]) {
						continue
					}
					hits = append(hits, tagHit{pos: loc[0], tag: m.tag})
				}
			}
			sort.SliceStable(hits, func(a, b int) bool { return hits[a].pos < hits[b].pos })

			for _, h := range hits {
				issues = append(issues, runner.Issue{
					File:       doc.Path,
					Line:       i + 1,
					Message:    fmt.Sprintf("%s (%s): %s", h.tag.Label, h.tag.Tag, truncate(line, 80)),
					Suggestion: fmt.Sprintf("Resolve or track the %s outside the documentation", h.tag.Tag),
					Severity:   h.tag.Severity,
				})
			}
		}
	}
	return issues, nil
}

// excludedSpans returns the byte ranges of s matched by any exclude pattern.
// A tag starting inside one of them is not reported.
func excludedSpans(res []*regexp.Regexp, s string) [][]int {
	var spans [][]int
	for _, re := range res {
		spans = append(spans, re.FindAllStringIndex(s, -1)...)
	}
	return spans
}

func inSpans(spans [][]int, pos int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}
