package rules

import (
	"context"
	"fmt"
	"os"
	"path"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
)

var (
	numberedFolderRegex = regexp.MustCompile(`^(\d{2})-[a-z0-9-]+$`)
	strictFileNameRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*\.md$`)
)

// DefaultFileNamePatterns are accepted file names when no patterns are configured.
var DefaultFileNamePatterns = []string{
	`^[A-Z0-9]+(-[A-Z0-9]+)*\.md$`,
	`^[a-z0-9]+(-[a-z0-9]+)*\.md$`,
	`^README\.md$`,
	`^CHANGELOG\.md$`,
}

// FolderStructure checks expected folders and their required files.
type FolderStructure struct{}

func NewFolderStructure() runner.Rule { return &FolderStructure{} }

func (r *FolderStructure) ID() string { return config.RuleFolderStructure }

func (r *FolderStructure) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.FolderStructure.Severity
}

func (r *FolderStructure) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.FolderStructure
	folders := rc.Folders
	if len(folders) == 0 {
		folders = config.DefaultFolders()
	}

	var issues []runner.Issue
	known := make(map[string]bool)
	for _, def := range folders {
		known[strings.SplitN(def.Path, "/", 2)[0]] = true

		if !isDir(docsPath(deps.DocsDir, def.Path)) {
			if def.Required {
				issues = append(issues, runner.Issue{
					File:       def.Path,
					Message:    "Required folder missing: " + def.Path,
					Suggestion: folderSuggestion(def),
				})
			}
			continue
		}
		for _, f := range def.Files {
			rel := path.Join(def.Path, f)
			if !exists(docsPath(deps.DocsDir, rel)) {
				issues = append(issues, runner.Issue{
					File:       rel,
					Message:    "Required file missing: " + rel,
					Suggestion: "Create " + rel,
				})
			}
		}
	}

	if !rc.CheckUnknown {
		return issues, nil
	}
	dirs, err := deps.Scanner.Dirs(".")
	if err != nil {
		return nil, fmt.Errorf("listing docs root: %w", err)
	}
	allowed := allowedFolders(deps.Config, rc.AllowedExtra)
	for _, d := range dirs {
		if known[d] || allowed[d] {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       d,
			Message:    "Unknown folder: " + d,
			Suggestion: "Move its documents into a standard folder or list it in allowedExtra",
		})
	}
	return issues, nil
}

func folderSuggestion(def config.FolderDefinition) string {
	if def.Description != "" {
		return fmt.Sprintf("Create %s/ (%s)", def.Path, def.Description)
	}
	return fmt.Sprintf("Create %s/", def.Path)
}

// allowedFolders are top-level folders exempt from structure and numbering checks.
func allowedFolders(cfg *config.Config, extra []string) map[string]bool {
	allowed := make(map[string]bool)
	for _, f := range config.SpecialFolders {
		allowed[f] = true
	}
	for _, f := range extra {
		allowed[f] = true
	}
	if cfg.I18n != nil && cfg.I18n.TranslationsFolder != "" {
		allowed[cfg.I18n.TranslationsFolder] = true
	}
	return allowed
}

// FolderNumbering checks NN-name folder prefixes under the strict paths.
type FolderNumbering struct{}

func NewFolderNumbering() runner.Rule { return &FolderNumbering{} }

func (r *FolderNumbering) ID() string { return config.RuleFolderNumbering }

func (r *FolderNumbering) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.FolderNumbering.Severity
}

func (r *FolderNumbering) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.FolderNumbering
	allowed := allowedFolders(deps.Config, deps.Config.Rules.FolderStructure.AllowedExtra)

	var issues []runner.Issue
	for _, strict := range rc.StrictPaths {
		dirs, err := deps.Scanner.Dirs(strict)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", strict, err)
		}

		var numbered, unnumbered []string
		for _, d := range dirs {
			switch {
			case numberedFolderRegex.MatchString(d):
				numbered = append(numbered, d)
			case strict == "." && allowed[d]:
			default:
				unnumbered = append(unnumbered, d)
			}
		}
		if len(numbered) == 0 {
			continue
		}

		for _, d := range unnumbered {
			issues = append(issues, runner.Issue{
				File:       path.Join(strict, d),
				Message:    "Folder is not numbered: " + d,
				Suggestion: fmt.Sprintf("Rename to NN-%s", strings.ToLower(d)),
			})
		}

		if rc.CheckSequence {
			if issue, ok := firstGap(strict, numbered); ok {
				issues = append(issues, issue)
			}
		}
	}
	return issues, nil
}

// firstGap reports the first missing number in the sorted folder prefixes.
func firstGap(parent string, numbered []string) (runner.Issue, bool) {
	type entry struct {
		n    int
		name string
	}
	entries := make([]entry, 0, len(numbered))
	for _, d := range numbered {
		n, _ := strconv.Atoi(numberedFolderRegex.FindStringSubmatch(d)[1])
		entries = append(entries, entry{n: n, name: d})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].n < entries[j].n })

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1].n, entries[i].n
		if cur > prev+1 {
			return runner.Issue{
				File:       path.Join(parent, entries[i].name),
				Message:    fmt.Sprintf("Numbering gap: expected %02d before %s", prev+1, entries[i].name),
				Suggestion: fmt.Sprintf("Renumber %s to %02d", entries[i].name, prev+1),
			}, true
		}
	}
	return runner.Issue{}, false
}

// FileNaming checks markdown file names against the naming convention.
type FileNaming struct{}

func NewFileNaming() runner.Rule { return &FileNaming{} }

func (r *FileNaming) ID() string { return config.RuleFileNaming }

func (r *FileNaming) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.FileNaming.Severity
}

func (r *FileNaming) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.FileNaming

	var patterns []*regexp.Regexp
	suggestion := "Use UPPER-CASE.md or README.md"
	if rc.Strict {
		patterns = []*regexp.Regexp{strictFileNameRegex}
	} else {
		src := rc.Patterns
		if len(src) == 0 {
			src = DefaultFileNamePatterns
		}
		for _, p := range src {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid file name pattern %q: %w", p, err)
			}
			patterns = append(patterns, re)
		}
		suggestion = "Rename to match one of: " + strings.Join(src, ", ")
	}

	var issues []runner.Issue
	for _, f := range deps.Files {
		base := path.Base(f)
		if (rc.Strict && base == "README.md") || matchesAny(patterns, base) {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       f,
			Message:    "File name does not follow naming convention: " + base,
			Suggestion: suggestion,
		})
	}
	return issues, nil
}

// DuplicateContent flags files sharing the same first H1 title.
type DuplicateContent struct{}

func NewDuplicateContent() runner.Rule { return &DuplicateContent{} }

func (r *DuplicateContent) ID() string { return config.RuleDuplicateContent }

func (r *DuplicateContent) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.DuplicateContent.Severity
}

func (r *DuplicateContent) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	docs, err := documents(ctx, deps)
	if err != nil {
		return nil, err
	}

	type titled struct {
		file string
		line int
	}
	byTitle := make(map[string][]titled)
	var order []string
	for _, doc := range docs {
		for _, h := range doc.Headings {
			if h.Level != 1 {
				continue
			}
			if _, ok := byTitle[h.Text]; !ok {
				order = append(order, h.Text)
			}
			byTitle[h.Text] = append(byTitle[h.Text], titled{file: doc.Path, line: h.Line})
			break
		}
	}

	var issues []runner.Issue
	for _, title := range order {
		group := byTitle[title]
		if len(group) < 2 {
			continue
		}
		for _, t := range group {
			var others []string
			for _, o := range group {
				if o.file != t.file {
					others = append(others, o.file)
				}
			}
			issues = append(issues, runner.Issue{
				File:       t.file,
				Line:       t.line,
				Message:    fmt.Sprintf("Duplicate title %q also used in: %s", title, strings.Join(others, ", ")),
				Suggestion: "Give each document a distinct title or merge them",
			})
		}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].File < issues[j].File })
	return issues, nil
}

// StandardFileNames flags detail-suffixed documents and conflicting file pairs.
type StandardFileNames struct{}

func NewStandardFileNames() runner.Rule { return &StandardFileNames{} }

func (r *StandardFileNames) ID() string { return config.RuleStandardFileNames }

func (r *StandardFileNames) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.StandardFileNames.Severity
}

func (r *StandardFileNames) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.StandardFileNames

	var suffixes []*regexp.Regexp
	for _, p := range rc.DetailSuffixes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid detail suffix pattern %q: %w", p, err)
		}
		suffixes = append(suffixes, re)
	}

	var issues []runner.Issue
	byDir := make(map[string][]string)
	var dirs []string
	for _, f := range deps.Files {
		dir, base := path.Dir(f), path.Base(f)
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], base)

		if matchesAny(suffixes, base) {
			issues = append(issues, runner.Issue{
				File:       f,
				Message:    "Detail document should be split: " + base,
				Suggestion: fmt.Sprintf("Split %s into a folder of smaller documents", base),
			})
		}
	}

	for _, dir := range dirs {
		names := byDir[dir]
		for _, pair := range rc.ConflictingPairs {
			if !slices.Contains(names, pair.Preferred) || !slices.Contains(names, pair.Other) {
				continue
			}
			issues = append(issues, runner.Issue{
				File:       path.Join(dir, pair.Other),
				Message:    fmt.Sprintf("Conflicting file names: %s and %s in the same folder", pair.Other, pair.Preferred),
				Suggestion: fmt.Sprintf("Merge %s into %s", pair.Other, pair.Preferred),
			})
		}
	}
	return issues, nil
}
