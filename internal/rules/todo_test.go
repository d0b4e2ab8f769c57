// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
)

const todoDoc = "# Notes\n" +
	"TODO: write the intro\n" +
	"Mention `TODO` in code.\n" +
	"```\nFIXME inside fence\n```\n" +
	"| todo | table row |\n" +
	"Please note this.\n" +
	"fixme later\n"

func TestTodoComments_Defaults(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": todoDoc})

	rr := lintRule(t, NewTodoComments(), dir, config.Default())
	require.Len(t, rr.Issues, 3)

	assert.Equal(t, 2, rr.Issues[0].Line)
	assert.Equal(t, config.IssueWarn, rr.Issues[0].Severity)
	assert.Contains(t, rr.Issues[0].Message, "(TODO)")

	assert.Equal(t, 7, rr.Issues[1].Line, "table rows are checked unless configured")
	assert.Equal(t, 9, rr.Issues[2].Line)
	assert.Equal(t, config.IssueError, rr.Issues[2].Severity)
}

func TestTodoComments_Options(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": todoDoc + "DRAFT section\nTODO(skip): generated\n"})

	on := true
	cfg := config.Default()
	cfg.Rules.TodoComments.IgnoreInTables = true
	cfg.Rules.TodoComments.IgnoreInCodeBlocks = false
	cfg.Rules.TodoComments.Tags = map[string]config.TagSetting{"note": {Enabled: &on, Severity: config.IssueInfo}}
	cfg.Rules.TodoComments.CustomTags = []config.CustomTag{{Tag: "draft", Severity: config.IssueInfo, Label: "Draft"}}
	cfg.Rules.TodoComments.ExcludePatterns = []string{`TODO\(skip\)`}

	rr := lintRule(t, NewTodoComments(), dir, cfg)
	var lines []int
	for _, is := range rr.Issues {
		lines = append(lines, is.Line)
	}
	// 2 TODO, 5 FIXME in fence, 8 note, 9 fixme, 10 DRAFT.
	assert.Equal(t, []int{2, 5, 8, 9, 10}, lines)
	assert.Contains(t, rr.Issues[4].Message, "Draft (DRAFT)")
}

func TestTodoComments_TagSeverityDoesNotFailRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": "# A\nFIXME: broken\n"})
	cfg := config.Default()
	cfg.DocsDir = dir

	res, err := runner.NewLinter([]runner.Rule{NewTodoComments()}).Lint(context.Background(), cfg, runner.RunOptions{})
	require.NoError(t, err)
	require.Len(t, res.RuleResults, 1)
	assert.Equal(t, config.IssueError, res.RuleResults[0].Issues[0].Severity)
	assert.True(t, res.Passed, "rule severity warn decides the outcome")
}

func TestTodoComments_ExcludeSuppressesOnlyMatchedTag(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": "# A\nTODO(skip): generated; FIXME real bug here\n"})
	cfg := config.Default()
	cfg.Rules.TodoComments.ExcludePatterns = []string{`TODO\(skip\)`}

	rr := lintRule(t, NewTodoComments(), dir, cfg)
	require.Len(t, rr.Issues, 1)
	assert.Equal(t, 2, rr.Issues[0].Line)
	assert.Contains(t, rr.Issues[0].Message, "(FIXME)")
	assert.Equal(t, config.IssueError, rr.Issues[0].Severity)
}

func TestTodoComments_BadExcludePattern(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": "# A\n"})
	cfg := config.Default()
	cfg.Rules.TodoComments.ExcludePatterns = []string{"("}

	rr := lintRule(t, NewTodoComments(), dir, cfg)
	require.Len(t, rr.Issues, 1)
	assert.Contains(t, rr.Issues[0].Message, "Rule error:")
}

func TestResolveTags(t *testing.T) {
	off := false
	tags := ResolveTags(config.TodoRule{
		Tags:       map[string]config.TagSetting{"HACK": {Enabled: &off}, "TODO": {Label: "Later"}},
		CustomTags: []config.CustomTag{{Tag: "NOTE"}},
	})

	byName := make(map[string]CommentTag)
	for _, tg := range tags {
		byName[tg.Tag] = tg
	}
	assert.NotContains(t, byName, "HACK")
	assert.NotContains(t, byName, "QUESTION")
	assert.Equal(t, "Later", byName["TODO"].Label)
	assert.Equal(t, config.IssueWarn, byName["NOTE"].Severity)
	assert.Equal(t, "NOTE", byName["NOTE"].Label)
}
