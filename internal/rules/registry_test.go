package rules

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/doclint/internal/config"
	"github.com/bartekus/doclint/internal/runner"
)

func TestIDs(t *testing.T) {
	want := []string{
		config.RuleBrokenLinks,
		config.RuleLegacyFileNames,
		config.RuleVersionInfo,
		config.RuleRelatedDocuments,
		config.RuleHeadingHierarchy,
		config.RuleTodoComments,
		config.RuleCodeBlockLanguage,
		config.RuleOrphanDocuments,
		config.RuleTerminology,
		config.RuleBidirectionalRefs,
		config.RuleRequiredFiles,
		config.RuleI18nStructure,
		config.RuleStandardsDrift,
		config.RuleFolderStructure,
		config.RuleFolderNumbering,
		config.RuleFileNaming,
		config.RuleDuplicateContent,
		config.RuleStandardFileNames,
		config.RuleRequirementTestMapping,
	}
	assert.Equal(t, want, IDs())

	seen := make(map[string]bool)
	for _, id := range IDs() {
		assert.False(t, seen[id], "duplicate rule id %s", id)
		seen[id] = true
	}
}

func TestRegistry_AllOff(t *testing.T) {
	dir := writeTree(t, map[string]string{"README.md": "# Home\n"})
	cfg := config.StructureConfig{DocsDir: dir}.AsConfig()
	cfg.Rules.FolderStructure.Severity = config.SeverityOff
	cfg.Rules.FolderNumbering.Severity = config.SeverityOff
	cfg.Rules.FileNaming.Severity = config.SeverityOff
	cfg.Rules.DuplicateContent.Severity = config.SeverityOff

	res, err := runner.NewLinter(Registry()).Lint(context.Background(), cfg, runner.RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.RuleResults)
	assert.True(t, res.Passed)
	assert.Equal(t, 1, res.FilesChecked)
}

func TestRegistry_Deterministic(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"README.md":                "# Home\n\nSee [guide](02-design/GUIDE.md) and [gone](missing.md).\n\nTODO: finish\n",
		"02-design/GUIDE.md":       "# Guide\n\n### Skipped\n\n```\ncode\n```\n",
		"02-design/old_notes.md":   "# Home\n\nRefers to setup_guide.md\n",
		"01-requirements/REQS.md":  "# Requirements\n\n- FR-001 thing\n",
		"04-testing/TEST-CASES.md": "# Cases\n\n- TC-U001 [FR-001]\n",
		"i18n/fr/README.md":        "# Accueil\n",
		"misc/":                    "",
	})
	cfg := config.Default()
	cfg.DocsDir = dir
	cfg.Rules.RequirementTestMapping.Severity = config.SeverityWarn

	lint := func() []byte {
		res, err := runner.NewLinter(Registry()).Lint(context.Background(), cfg, runner.RunOptions{})
		require.NoError(t, err)
		b, err := json.Marshal(res)
		require.NoError(t, err)
		return b
	}

	first := lint()
	assert.JSONEq(t, string(first), string(lint()))

	var res runner.LintResult
	require.NoError(t, json.Unmarshal(first, &res))
	assert.False(t, res.Passed)
	broken, ok := res.Result(config.RuleBrokenLinks)
	require.True(t, ok)
	assert.Equal(t, []string{"Broken link: missing.md"}, messages(broken.Issues))
}
