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
	"github.com/bartekus/doclint/internal/scanner"
)

// Requirement is the first sighting of a requirement ID.
type Requirement struct {
	ID          string
	File        string
	Line        int
	Description string
}

// Coverage summarizes how many requirements are referenced by test cases.
// Percent is 100 when there are no requirements.
type Coverage struct {
	Total     int
	Covered   int
	Percent   float64
	Uncovered []string
}

// ComputeCoverage checks every requirement against the covered ID set.
func ComputeCoverage(reqs []Requirement, covered map[string]bool) Coverage {
	c := Coverage{Total: len(reqs), Percent: 100}
	for _, r := range reqs {
		if covered[r.ID] {
			c.Covered++
		} else {
			c.Uncovered = append(c.Uncovered, r.ID)
		}
	}
	if c.Total > 0 {
		c.Percent = float64(c.Covered) / float64(c.Total) * 100
	}
	return c
}

// ExtractRequirements returns requirement IDs in document order; the first
// occurrence of an ID wins.
func ExtractRequirements(docs []*markdown.Document, re *regexp.Regexp) []Requirement {
	seen := make(map[string]bool)
	var reqs []Requirement
	for _, doc := range docs {
		for i, line := range doc.Lines {
			for _, id := range re.FindAllString(line, -1) {
				if seen[id] {
					continue
				}
				seen[id] = true
				reqs = append(reqs, Requirement{
					ID:          id,
					File:        doc.Path,
					Line:        i + 1,
					Description: truncate(line, 100),
				})
			}
		}
	}
	return reqs
}

// ExtractCoverage collects requirement IDs referenced from test-case documents.
// An ID counts as covered when it appears in brackets after a test-case ID on
// the same line, or anywhere in a test-case document.
func ExtractCoverage(docs []*markdown.Document, testCase, requirement *regexp.Regexp) (map[string]bool, error) {
	paired, err := regexp.Compile(`(?:` + testCase.String() + `)[^\[\n]*\[([^\]\n]+)\]`)
	if err != nil {
		return nil, fmt.Errorf("combining test case pattern: %w", err)
	}
	covered := make(map[string]bool)
	for _, doc := range docs {
		for _, m := range paired.FindAllStringSubmatch(doc.Content, -1) {
			for _, id := range requirement.FindAllString(m[1], -1) {
				covered[id] = true
			}
		}
		// Bare mentions count too, which favours recall over precision.
		for _, id := range requirement.FindAllString(doc.Content, -1) {
			covered[id] = true
		}
	}
	return covered, nil
}

// RequirementTestMapping maps requirement IDs to test cases and enforces a
// coverage threshold.
type RequirementTestMapping struct{}

func NewRequirementTestMapping() runner.Rule { return &RequirementTestMapping{} }

func (r *RequirementTestMapping) ID() string { return config.RuleRequirementTestMapping }

func (r *RequirementTestMapping) Severity(cfg *config.Config) config.Severity {
	return cfg.Rules.RequirementTestMapping.Severity
}

func (r *RequirementTestMapping) Run(ctx context.Context, deps *runner.Deps) ([]runner.Issue, error) {
	rc := deps.Config.Rules.RequirementTestMapping

	reqRe, err := regexp.Compile(rc.RequirementPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid requirement pattern: %w", err)
	}
	tcRe, err := regexp.Compile(rc.TestCasePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid test case pattern: %w", err)
	}

	reqDocs, err := subsetDocuments(ctx, deps, rc.RequirementFiles)
	if err != nil {
		return nil, err
	}
	tcDocs, err := subsetDocuments(ctx, deps, rc.TestCaseFiles)
	if err != nil {
		return nil, err
	}
	reqLabel := strings.Join(rc.RequirementFiles, ", ")
	tcLabel := strings.Join(rc.TestCaseFiles, ", ")

	var issues []runner.Issue
	if rc.RequireTestCases && len(tcDocs) == 0 && len(reqDocs) > 0 {
		issues = append(issues, runner.Issue{
			File:       tcLabel,
			Message:    "No test case files found",
			Suggestion: "Add test case documents matching " + tcLabel,
		})
	}
	if len(reqDocs) > 0 && !anyMatch(reqDocs, reqRe) {
		issues = append(issues, runner.Issue{
			File:       reqLabel,
			Message:    "No requirement IDs found in requirement files",
			Suggestion: fmt.Sprintf("Tag requirements with IDs matching %s", rc.RequirementPattern),
		})
	}
	if len(tcDocs) > 0 && !anyMatch(tcDocs, tcRe) {
		issues = append(issues, runner.Issue{
			File:       tcLabel,
			Message:    "No test case IDs found in test case files",
			Suggestion: fmt.Sprintf("Tag test cases with IDs matching %s", rc.TestCasePattern),
		})
	}

	reqs := ExtractRequirements(reqDocs, reqRe)
	covered, err := ExtractCoverage(tcDocs, tcRe, reqRe)
	if err != nil {
		return nil, err
	}

	cov := ComputeCoverage(reqs, covered)
	for _, req := range reqs {
		if covered[req.ID] {
			continue
		}
		issues = append(issues, runner.Issue{
			File:       req.File,
			Line:       req.Line,
			Message:    fmt.Sprintf("Requirement %s has no test case", req.ID),
			Suggestion: fmt.Sprintf("Reference [%s] from a test case in %s", req.ID, tcLabel),
		})
	}

	if cov.Percent < rc.CoverageThreshold {
		uncovered := append([]string(nil), cov.Uncovered...)
		sort.Strings(uncovered)
		issues = append(issues, runner.Issue{
			File: reqLabel,
			Message: fmt.Sprintf("Requirement coverage %.1f%% (%d/%d) is below the %.0f%% threshold; uncovered: %s",
				cov.Percent, cov.Covered, cov.Total, rc.CoverageThreshold, strings.Join(uncovered, ", ")),
			Suggestion: "Add test cases for the uncovered requirements",
		})
	}
	return issues, nil
}

func subsetDocuments(ctx context.Context, deps *runner.Deps, patterns []string) ([]*markdown.Document, error) {
	var docs []*markdown.Document
	for _, f := range deps.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !scanner.MatchAny(patterns, f) {
			continue
		}
		doc, err := deps.Document(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func anyMatch(docs []*markdown.Document, re *regexp.Regexp) bool {
	for _, d := range docs {
		if re.MatchString(d.Content) {
			return true
		}
	}
	return false
}
