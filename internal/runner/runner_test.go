package runner

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/doclint/internal/config"
)

// MockRule implements Rule for testing.
type MockRule struct {
	id     string
	sev    config.Severity
	issues []Issue
	err    error
	panics bool
	called int
	files  []string
}

func (m *MockRule) ID() string { return m.id }

func (m *MockRule) Severity(*config.Config) config.Severity { return m.sev }

func (m *MockRule) Run(_ context.Context, deps *Deps) ([]Issue, error) {
	m.called++
	m.files = deps.Files
	if m.panics {
		panic("kaboom")
	}
	return m.issues, m.err
}

func docsTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# "+f+"\n"), 0o644))
	}
	return dir
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.DocsDir = dir
	return cfg
}

func issue(file, msg string) Issue { return Issue{File: file, Message: msg} }

func TestLinter_Lint(t *testing.T) {
	dir := docsTree(t, "b.md", "a.md", "guide/c.md", "node_modules/x/d.md")

	r1 := &MockRule{id: "r1", sev: config.SeverityError}
	r2 := &MockRule{id: "r2", sev: config.SeverityWarn, issues: []Issue{issue("a.md", "w1"), issue("b.md", "w2")}}
	r3 := &MockRule{id: "r3", sev: config.SeverityOff}

	l := NewLinter([]Rule{r1, r2, r3})
	res, err := l.Lint(context.Background(), testConfig(dir), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.FilesChecked)
	assert.Equal(t, []string{"a.md", "b.md", "guide/c.md"}, r1.files)
	require.Len(t, res.RuleResults, 2)
	assert.Equal(t, "r1", res.RuleResults[0].Rule)
	assert.Equal(t, "r2", res.RuleResults[1].Rule)
	assert.Equal(t, 0, r3.called, "off rules must not run")

	_, ok := res.Result("r3")
	assert.False(t, ok)

	assert.True(t, res.Passed, "warn issues never fail the run")
	assert.Equal(t, Summary{Errors: 0, Warnings: 2, Passed: 1}, res.Summary)
	assert.Equal(t, []string{"r2"}, res.FailedRules())
	assert.Equal(t, 2, res.IssueCount())
}

func TestLinter_PassFailLaw(t *testing.T) {
	dir := docsTree(t, "a.md")

	tests := []struct {
		name   string
		rules  []Rule
		passed bool
	}{
		{
			name:   "error rule with issues fails",
			rules:  []Rule{&MockRule{id: "e", sev: config.SeverityError, issues: []Issue{issue("a.md", "x")}}},
			passed: false,
		},
		{
			name:   "error rule clean passes",
			rules:  []Rule{&MockRule{id: "e", sev: config.SeverityError}},
			passed: true,
		},
		{
			name: "many warnings still pass",
			rules: []Rule{
				&MockRule{id: "w", sev: config.SeverityWarn, issues: []Issue{issue("a.md", "1"), issue("a.md", "2"), issue("a.md", "3")}},
				&MockRule{id: "e", sev: config.SeverityError},
			},
			passed: true,
		},
		{
			name:   "no rules pass",
			rules:  nil,
			passed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewLinter(tt.rules).Lint(context.Background(), testConfig(dir), RunOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.passed, res.Passed)
		})
	}
}

func TestLinter_RuleFailureIsolation(t *testing.T) {
	dir := docsTree(t, "a.md")

	failing := &MockRule{id: "failing", sev: config.SeverityWarn, err: errors.New("bad pattern")}
	panicking := &MockRule{id: "panicking", sev: config.SeverityError, panics: true}
	after := &MockRule{id: "after", sev: config.SeverityError}

	res, err := NewLinter([]Rule{failing, panicking, after}).Lint(context.Background(), testConfig(dir), RunOptions{})
	require.NoError(t, err)
	require.Len(t, res.RuleResults, 3)

	f := res.RuleResults[0]
	assert.Equal(t, config.SeverityWarn, f.Severity)
	assert.False(t, f.Passed)
	require.Len(t, f.Issues, 1)
	assert.Equal(t, "Rule error: bad pattern", f.Issues[0].Message)

	p := res.RuleResults[1]
	assert.Equal(t, config.SeverityError, p.Severity)
	require.Len(t, p.Issues, 1)
	assert.Contains(t, p.Issues[0].Message, "Rule error: panic: kaboom")

	assert.Equal(t, 1, after.called)
	assert.True(t, res.RuleResults[2].Passed)
	assert.False(t, res.Passed)
}

func TestLinter_OnlySkip(t *testing.T) {
	dir := docsTree(t, "a.md")

	newRules := func() []Rule {
		return []Rule{
			&MockRule{id: "brokenLinks", sev: config.SeverityError},
			&MockRule{id: "terminology", sev: config.SeverityWarn},
			&MockRule{id: "folderNumbering", sev: config.SeverityOff},
		}
	}
	ids := func(res *LintResult) []string {
		var out []string
		for _, rr := range res.RuleResults {
			out = append(out, rr.Rule)
		}
		return out
	}

	tests := []struct {
		name string
		opts RunOptions
		want []string
	}{
		{name: "all enabled", opts: RunOptions{}, want: []string{"brokenLinks", "terminology"}},
		{name: "only", opts: RunOptions{Only: []string{"brokenLinks"}}, want: []string{"brokenLinks"}},
		{name: "only off rule", opts: RunOptions{Only: []string{"folderNumbering"}}, want: nil},
		{name: "skip", opts: RunOptions{Skip: []string{"brokenLinks"}}, want: []string{"terminology"}},
		{name: "skip wins over only", opts: RunOptions{Only: []string{"brokenLinks"}, Skip: []string{"brokenLinks"}}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewLinter(newRules()).Lint(context.Background(), testConfig(dir), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestLinter_Preconditions(t *testing.T) {
	r := &MockRule{id: "r", sev: config.SeverityError}
	l := NewLinter([]Rule{r})

	_, err := l.Lint(context.Background(), testConfig(filepath.Join(t.TempDir(), "missing")), RunOptions{})
	assert.ErrorIs(t, err, ErrDocsDirNotFound)

	_, err = l.Lint(context.Background(), testConfig(t.TempDir()), RunOptions{})
	assert.ErrorIs(t, err, ErrNoMarkdownFiles)
	assert.Contains(t, err.Error(), "No markdown files found")

	dir := docsTree(t, "notes.txt")
	_, err = l.Lint(context.Background(), testConfig(dir), RunOptions{})
	assert.ErrorIs(t, err, ErrNoMarkdownFiles)

	assert.Equal(t, 0, r.called)
}

func TestLinter_Deterministic(t *testing.T) {
	dir := docsTree(t, "z.md", "a.md", "m/b.md")
	rule := NewRule("files", func(*config.Config) config.Severity { return config.SeverityWarn },
		func(_ context.Context, deps *Deps) ([]Issue, error) {
			var out []Issue
			for _, f := range deps.Files {
				out = append(out, issue(f, "seen"))
			}
			return out, nil
		})
	l := NewLinter([]Rule{rule})

	first, err := l.Lint(context.Background(), testConfig(dir), RunOptions{})
	require.NoError(t, err)
	second, err := l.Lint(context.Background(), testConfig(dir), RunOptions{})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestLinter_LintStructure(t *testing.T) {
	dir := t.TempDir()

	structure := &MockRule{id: config.RuleFolderStructure, sev: config.SeverityError}
	numbering := &MockRule{id: config.RuleFolderNumbering, sev: config.SeverityWarn}
	content := &MockRule{id: config.RuleBrokenLinks, sev: config.SeverityError}

	l := NewLinter([]Rule{content, structure, numbering})
	res, err := l.LintStructure(context.Background(), config.DefaultStructure(dir), RunOptions{})
	require.NoError(t, err, "an empty tree is valid structure input")

	assert.Equal(t, 0, res.FilesChecked)
	assert.Equal(t, 0, content.called)
	assert.Equal(t, 1, structure.called)
	require.Len(t, res.RuleResults, 2)

	_, err = l.LintStructure(context.Background(), config.DefaultStructure(filepath.Join(dir, "nope")), RunOptions{})
	assert.ErrorIs(t, err, ErrDocsDirNotFound)
}

func TestDeps_Document(t *testing.T) {
	dir := docsTree(t, "a.md")
	var got error
	rule := NewRule("reader", func(*config.Config) config.Severity { return config.SeverityError },
		func(_ context.Context, deps *Deps) ([]Issue, error) {
			doc, err := deps.Document("a.md")
			require.NoError(t, err)
			assert.Equal(t, "a.md", doc.Path)
			_, got = deps.Document("other.md")
			return nil, nil
		})

	_, err := NewLinter([]Rule{rule}).Lint(context.Background(), testConfig(dir), RunOptions{})
	require.NoError(t, err)
	assert.Error(t, got)
}

func TestNewLinter_Rules(t *testing.T) {
	l := NewLinter([]Rule{&MockRule{id: "a"}, &MockRule{id: "b"}}, WithLogger(nil))
	assert.True(t, l.Has("b"))
	assert.False(t, l.Has("c"))
	assert.Len(t, l.Rules(), 2)
}
