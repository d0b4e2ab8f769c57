// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
	"github.com/bartekus/doclint/internal/testutil/golden"
)

func sampleResult() *runner.LintResult {
	return runner.Aggregate(3, []runner.RuleResult{
		runner.NewRuleResult(config.RuleBrokenLinks, config.SeverityError, []runner.Issue{
			{File: "README.md", Line: 3, Message: "Broken link: missing.md", Suggestion: "Check the link target"},
		}),
		runner.NewRuleResult(config.RuleTodoComments, config.SeverityWarn, []runner.Issue{
			{File: "guide/a.md", Line: 7, Message: "Todo (TODO): finish the guide", Severity: config.IssueWarn},
		}),
		runner.NewRuleResult(config.RuleHeadingHierarchy, config.SeverityWarn, nil),
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("sarif")
	assert.ErrorContains(t, err, `unknown format "sarif"`)
}

func TestMarkdown_Golden(t *testing.T) {
	golden.Assert(t, "markdown", Markdown(sampleResult()))
}

func TestMarkdown_NoRules(t *testing.T) {
	got := Markdown(runner.Aggregate(2, nil))
	assert.Contains(t, got, "**Status:** PASSED")
	assert.NotContains(t, got, "## Rules")
}

func TestJSON(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, JSON(&a, sampleResult()))
	require.NoError(t, JSON(&b, sampleResult()))
	assert.Equal(t, a.String(), b.String())

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(a.Bytes(), &decoded))
	assert.Equal(t, float64(3), decoded["filesChecked"])
	assert.Equal(t, false, decoded["passed"])
	assert.Contains(t, a.String(), `"ruleResults": [`)
	assert.Contains(t, a.String(), `"severity": "warn"`)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatText, Options{}))
	out := buf.String()

	assert.Contains(t, out, "doclint: 3 files checked")
	assert.Contains(t, out, "brokenLinks")
	assert.Contains(t, out, "README.md:3  Broken link: missing.md")
	assert.Contains(t, out, "suggestion: Check the link target")
	assert.Contains(t, out, "guide/a.md:7  [warn] Todo (TODO): finish the guide")
	assert.Contains(t, out, "FAILED: 1 errors, 1 warnings, 1 rules passed")
	assert.NotContains(t, out, "\x1b[", "no styling without color")
}

func TestWrite_Formats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(), FormatMarkdown, Options{}))
	assert.Equal(t, Markdown(sampleResult()), buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, sampleResult(), FormatJSON, Options{}))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "a.md:4", Location(runner.Issue{File: "a.md", Line: 4}))
	assert.Equal(t, "docs", Location(runner.Issue{File: "docs"}))
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(nil))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil))
}
