package rules

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/runner"
)

// LegacyFileNames flags references to file names matching a legacy pattern
// (snake_case markdown names by default) in prose.
type LegacyFileNames struct{}

func NewLegacyFileNames() runner.Rule { return &LegacyFileNames{} }

func (r *LegacyFileNames) ID() string { return config.RuleLegacyFileNames }

func (r *LegacyFileNames) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.LegacyFileNames.Severity
}

func (r *LegacyFileNames) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.LegacyFileNames
	re, err := regexp.Compile(rc.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid legacy file name pattern: %w", err)
	}
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, doc := range docs {
		for i, line := range doc.Lines {
			if doc.InFence[i] {
				continue
			}
			for _, m := range re.FindAllString(markdown.StripInlineCode(line), -1) {
				if slices.Contains(rc.Exclude, m) {
					continue
				}
				issues = append(issues, runner.Issue{
					File:       doc.Path,
					Line:       i + 1,
					Message:    "Legacy file name reference: " + m,
					Suggestion: "Use " + strings.ReplaceAll(m, "_", "-"),
				})
			}
		}
	}
	return issues, nil
}

// MarkerSection requires one of a set of marker strings in every matched file.
// It backs both versionInfo and relatedDocuments.
type MarkerSection struct {
	id      string
	setting func(*config.Config) config.MarkerRule
	missing string
}

func NewVersionInfo() runner.Rule {
	return &MarkerSection{
		id:      config.RuleVersionInfo,
		setting: func(c *config.Config) config.MarkerRule { return c.Rules.VersionInfo },
		missing: "Missing version information",
	}
}

func NewRelatedDocuments() runner.Rule {
	return &MarkerSection{
		id:      config.RuleRelatedDocuments,
		setting: func(c *config.Config) config.MarkerRule { return c.Rules.RelatedDocuments },
		missing: "Missing related documents section",
	}
}

func (r *MarkerSection) ID() string { return r.id }

func (r *MarkerSection) Severity(cfg *config.Config) config.Severity {
	return r.setting(cfg).Severity
}

func (r *MarkerSection) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := r.setting(deps.Config)
	files := deps.Files
	if len(rc.Include) > 0 {
		files = filesMatching(files, rc.Include)
	}

	var issues []runner.Issue
	for _, f := range files {
		doc, err := deps.Document(f)
		if err != nil {
			return nil, err
		}
		if containsAny(doc.Content, rc.Markers) {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       f,
			Message:    r.missing,
			Suggestion: "Add one of: " + strings.Join(rc.Markers, ", "),
		})
	}
	return issues, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// HeadingHierarchy flags headings more than one level deeper than the previous one.
type HeadingHierarchy struct{}

func NewHeadingHierarchy() runner.Rule { return &HeadingHierarchy{} }

func (r *HeadingHierarchy) ID() string { return config.RuleHeadingHierarchy }

func (r *HeadingHierarchy) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.HeadingHierarchy.Severity
}

func (r *HeadingHierarchy) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, doc := range docs {
		prev := 0
		for _, h := range doc.Headings {
			if prev > 0 && h.Level > prev+1 {
				issues = append(issues, runner.Issue{
					File:       doc.Path,
					Line:       h.Line,
					Message:    fmt.Sprintf("Heading level jumps from h%d to h%d", prev, h.Level),
					Suggestion: fmt.Sprintf("Use h%d instead", prev+1),
				})
			}
			prev = h.Level
		}
	}
	return issues, nil
}

// CodeBlockLanguage flags bare ``` fences that open a non-empty block.
type CodeBlockLanguage struct{}

func NewCodeBlockLanguage() runner.Rule { return &CodeBlockLanguage{} }

func (r *CodeBlockLanguage) ID() string { return config.RuleCodeBlockLanguage }

func (r *CodeBlockLanguage) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.CodeBlockLanguage.Severity
}

func (r *CodeBlockLanguage) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, doc := range docs {
		for _, f := range doc.Fences {
			if !f.Bare {
				continue
			}
			// StartLine is 1-based, so it indexes the line after the fence.
			if f.StartLine >= len(doc.Lines) || strings.TrimSpace(doc.Lines[f.StartLine]) == "" {
				continue
			}
			issues = append(issues, runner.Issue{
				File:       doc.Path,
				Line:       f.StartLine,
				Message:    "Code block without language specification",
				Suggestion: "Add a language after the opening fence, e.g. ```bash or ```text",
			})
		}
	}
	return issues, nil
}

// Terminology flags discouraged term variants outside code fences.
// Matching is a case-sensitive substring match.
type Terminology struct{}

func NewTerminology() runner.Rule { return &Terminology{} }

func (r *Terminology) ID() string { return config.RuleTerminology }

func (r *Terminology) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.Terminology.Severity
}

func (r *Terminology) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	terms := deps.Config.Terminology
	if len(terms) == 0 {
		return nil, nil
	}
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	var issues []runner.Issue
	for _, doc := range docs {
		for i, line := range doc.Lines {
			if doc.InFence[i] {
				continue
			}
			for _, t := range terms {
				for _, v := range t.Variants {
					if !strings.Contains(line, v) {
						continue
					}
					issues = append(issues, runner.Issue{
						File:       doc.Path,
						Line:       i + 1,
						Message:    fmt.Sprintf("Inconsistent terminology: %q", v),
						Suggestion: fmt.Sprintf("Use %q instead of %q", t.Preferred, v),
					})
				}
			}
		}
	}
	return issues, nil
}

// RequiredFiles checks that every configured path exists under the docs root.
type RequiredFiles struct{}

func NewRequiredFiles() runner.Rule { return &RequiredFiles{} }

func (r *RequiredFiles) ID() string { return config.RuleRequiredFiles }

func (r *RequiredFiles) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.RequiredFiles.Severity
}

func (r *RequiredFiles) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	var issues []runner.Issue
	for _, f := range deps.Config.RequiredFiles {
		if exists(docsPath(deps.DocsDir, f)) {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       f,
			Message:    "Required file missing: " + f,
			Suggestion: "Create " + f,
		})
	}
	return issues, nil
}
