// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML_ScalarAndMappingSettings(t *testing.T) {
	data := []byte(`
docsDir: documentation
rules:
  brokenLinks: warn
  headingHierarchy: "off"
  todoComments:
    severity: error
    ignoreInTables: true
    customTags:
      - tag: DRAFT
        severity: info
        label: Draft
  requirementTestMapping:
    severity: error
    coverageThreshold: 90
`)
	cfg, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "documentation", cfg.DocsDir)
	assert.Equal(t, SeverityWarn, cfg.Rules.BrokenLinks.Severity)
	assert.Equal(t, SeverityOff, cfg.Rules.HeadingHierarchy.Severity)

	todo := cfg.Rules.TodoComments
	assert.Equal(t, SeverityError, todo.Severity)
	assert.True(t, todo.IgnoreInTables)
	// Unset fields keep their defaults.
	assert.True(t, todo.IgnoreInCodeBlocks)
	assert.True(t, todo.IgnoreInInlineCode)
	require.Len(t, todo.CustomTags, 1)
	assert.Equal(t, IssueInfo, todo.CustomTags[0].Severity)

	tr := cfg.Rules.RequirementTestMapping
	assert.Equal(t, SeverityError, tr.Severity)
	assert.Equal(t, 90.0, tr.CoverageThreshold)
	assert.Equal(t, DefaultRequirementPattern, tr.RequirementPattern)
	assert.True(t, tr.RequireTestCases)

	// Untouched rules keep default severities.
	assert.Equal(t, SeverityError, cfg.Rules.RequiredFiles.Severity)
	assert.Equal(t, []string{"**/*.md"}, cfg.Include)
}

func TestFromYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad severity", data: "rules:\n  brokenLinks: fatal\n"},
		{name: "sequence setting", data: "rules:\n  brokenLinks: [warn]\n"},
		{name: "threshold out of range", data: "rules:\n  requirementTestMapping:\n    coverageThreshold: 150\n"},
		{name: "term without variants", data: "terminology:\n  - preferred: sign in\n"},
		{name: "empty include", data: "include: []\n"},
		{name: "i18n without source", data: "i18n:\n  targetLanguages: [ja]\n"},
		{name: "not yaml", data: "rules: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestFromYAML_I18nDefaultsFolder(t *testing.T) {
	cfg, err := FromYAML([]byte("i18n:\n  sourceLanguage: en\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.I18n)
	assert.Equal(t, DefaultTranslationsFolder, cfg.I18n.TranslationsFolder)
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"off": SeverityOff, "warn": SeverityWarn, "WARNING": SeverityWarn, " error ": SeverityError,
	} {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSeverity("critical")
	assert.Error(t, err)

	assert.False(t, SeverityOff.Enabled())
	assert.False(t, Severity("").Enabled())
	assert.True(t, SeverityWarn.Enabled())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, path, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	cfgPath := filepath.Join(dir, ".doclint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("docsDir: handbook\n"), 0o644))

	cfg, path, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
	assert.Equal(t, "handbook", cfg.DocsDir)
}

func TestMarshalRoundTripKeepsSeverities(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := FromYAML(data)
	require.NoError(t, err)
	want := Default().Rules
	assert.Equal(t, want.BrokenLinks, cfg.Rules.BrokenLinks)
	assert.Equal(t, want.TodoComments.Severity, cfg.Rules.TodoComments.Severity)
	assert.Equal(t, want.FolderNumbering.StrictPaths, cfg.Rules.FolderNumbering.StrictPaths)
	assert.Equal(t, want.StandardFileNames.ConflictingPairs, cfg.Rules.StandardFileNames.ConflictingPairs)
	assert.Equal(t, want.RequirementTestMapping, cfg.Rules.RequirementTestMapping)
}

func TestStructureConfig_AsConfig(t *testing.T) {
	sc := DefaultStructure("docs")
	cfg := sc.AsConfig()

	assert.Equal(t, SeverityError, cfg.Rules.FolderStructure.Severity)
	assert.Equal(t, SeverityOff, cfg.Rules.FolderNumbering.Severity)
	assert.Equal(t, SeverityOff, cfg.Rules.BrokenLinks.Severity)
	assert.Equal(t, SeverityWarn, cfg.Rules.FileNaming.Severity)

	num := FolderNumberingRule{Severity: SeverityWarn, StrictPaths: []string{"."}}
	sc.Numbering = &num
	cfg = sc.AsConfig()
	assert.Equal(t, SeverityWarn, cfg.Rules.FolderNumbering.Severity)
}
