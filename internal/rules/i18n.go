package rules

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/markdown"
	"github.com/bartekus/doclint/internal/runner"
)

var (
	languageCodeRegex = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
	versionRegex      = regexp.MustCompile(`(?i)version[:\s]*v?(\d+(?:\.\d+)*)`)
)

// I18nStructure validates the translation layout. Source documents live at the
// docs root; translations mirror them under <translationsFolder>/<lang>/.
type I18nStructure struct{}

func NewI18nStructure() runner.Rule { return &I18nStructure{} }

func (r *I18nStructure) ID() string { return config.RuleI18nStructure }

func (r *I18nStructure) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.I18nStructure.Severity
}

func (r *I18nStructure) Run(_ context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	ic := deps.Config.I18n
	if ic == nil {
		return nil, nil
	}
	folder := ic.TranslationsFolder
	if folder == "" {
		folder = config.DefaultTranslationsFolder
	}

	if !isDir(docsPath(deps.DocsDir, folder)) {
		if len(ic.TargetLanguages) == 0 {
			return nil, nil
		}
		return []runner.Issue{{
			File:       folder,
			Message:    "Translations folder missing: " + folder,
			Suggestion: fmt.Sprintf("Create %s/<lang>/ for each target language", folder),
		}}, nil
	}

	dirs, err := deps.Scanner.Dirs(folder)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}

	var issues []runner.Issue
	var langs []string
	for _, d := range dirs {
		rel := path.Join(folder, d)
		switch {
		case !languageCodeRegex.MatchString(d):
			issues = append(issues, runner.Issue{
				File:       rel,
				Message:    "Invalid language folder name: " + d,
				Suggestion: "Use an ISO 639-1 code, optionally with a region (e.g. ja, pt-BR)",
			})
		case d == ic.SourceLanguage:
			issues = append(issues, runner.Issue{
				File:       rel,
				Message:    "Source language folder found in translations: " + d,
				Suggestion: "Keep source documents at the docs root",
			})
		default:
			langs = append(langs, d)
		}
	}

	for _, lang := range ic.TargetLanguages {
		if !slices.Contains(dirs, lang) {
			issues = append(issues, runner.Issue{
				File:       path.Join(folder, lang),
				Message:    "Missing translation folder for " + lang,
				Suggestion: fmt.Sprintf("Create %s/%s/", folder, lang),
			})
		}
	}

	if !ic.CheckSync {
		return issues, nil
	}
	if len(ic.TargetLanguages) > 0 {
		langs = slices.DeleteFunc(langs, func(l string) bool { return !slices.Contains(ic.TargetLanguages, l) })
	}

	var sources []string
	for _, f := range deps.Files {
		if !strings.HasPrefix(f, folder+"/") {
			sources = append(sources, f)
		}
	}
	for _, lang := range langs {
		syncIssues, err := checkSync(deps, folder+"/"+lang+"/", lang, sources)
		if err != nil {
			return nil, err
		}
		issues = append(issues, syncIssues...)
	}
	return issues, nil
}

func checkSync(deps *runner.Deps, prefix, lang string, sources []string) ([]runner.Issue, error) {
	var issues []runner.Issue
	for _, src := range sources {
		tr := prefix + src
		if !deps.Corpus.Has(tr) {
			issues = append(issues, runner.Issue{
				File:       src,
				Message:    fmt.Sprintf("Missing %s translation", lang),
				Suggestion: "Create " + tr,
			})
			continue
		}
		srcDoc, err := deps.Document(src)
		if err != nil {
			return nil, err
		}
		trDoc, err := deps.Document(tr)
		if err != nil {
			return nil, err
		}
		issues = append(issues, compareTranslation(srcDoc, trDoc)...)
	}

	for _, f := range deps.Files {
		rel, ok := strings.CutPrefix(f, prefix)
		if !ok || slices.Contains(sources, rel) {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       f,
			Message:    "Orphaned translation: no source document " + rel,
			Suggestion: "Remove it or restore " + rel,
		})
	}
	return issues, nil
}

func compareTranslation(src, tr *markdown.Document) []runner.Issue {
	var issues []runner.Issue

	if sv := extractVersion(src.Content); sv != "" {
		tv := extractVersion(tr.Content)
		if tv != sv {
			if tv == "" {
				tv = "none"
			}
			issues = append(issues, runner.Issue{
				File:       tr.Path,
				Message:    fmt.Sprintf("Version mismatch: source %s, translation %s", sv, tv),
				Suggestion: "Update the translation to match " + src.Path,
			})
		}
	}

	for _, level := range []int{1, 2} {
		s, t := src.CountHeadings(level), tr.CountHeadings(level)
		if s == t {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       tr.Path,
			Message:    fmt.Sprintf("H%d count differs from source: %d vs %d", level, t, s),
			Suggestion: "Align the heading structure with " + src.Path,
		})
	}
	return issues
}

func extractVersion(content string) string {
	m := versionRegex.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}
