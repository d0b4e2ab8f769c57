package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
)

// writeTree creates files under a temp dir. A key ending in "/" creates an empty directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// lintRule runs a single rule through the linter and returns its result.
func lintRule(t *testing.T, rule runner.Rule, dir string, cfg *config.Config) runner.RuleResult {
	t.Helper()
	cfg.DocsDir = dir
	res, err := runner.NewLinter([]runner.Rule{rule}).Lint(context.Background(), cfg, runner.RunOptions{})
	require.NoError(t, err)
	rr, ok := res.Result(rule.ID())
	require.True(t, ok, "rule %s did not run", rule.ID())
	return rr
}

func messages(issues []runner.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

func withPrefix(issues []runner.Issue, prefix string) []runner.Issue {
	var out []runner.Issue
	for _, is := range issues {
		if strings.HasPrefix(is.Message, prefix) {
			out = append(out, is)
		}
	}
	return out
}
