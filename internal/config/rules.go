// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "gopkg.in/yaml.v3"

// RulesConfig holds one typed setting per rule. Every setting carries its own Severity.
type RulesConfig struct {
	BrokenLinks            SeverityRule          `yaml:"brokenLinks"`
	LegacyFileNames        LegacyFileNamesRule   `yaml:"legacyFileNames"`
	VersionInfo            MarkerRule            `yaml:"versionInfo"`
	RelatedDocuments       MarkerRule            `yaml:"relatedDocuments"`
	HeadingHierarchy       SeverityRule          `yaml:"headingHierarchy"`
	TodoComments           TodoRule              `yaml:"todoComments"`
	CodeBlockLanguage      SeverityRule          `yaml:"codeBlockLanguage"`
	OrphanDocuments        OrphanRule            `yaml:"orphanDocuments"`
	Terminology            SeverityRule          `yaml:"terminology"`
	BidirectionalRefs      SeverityRule          `yaml:"bidirectionalRefs"`
	RequiredFiles          SeverityRule          `yaml:"requiredFiles"`
	I18nStructure          SeverityRule          `yaml:"i18nStructure"`
	StandardsDrift         StandardsDriftRule    `yaml:"standardsDrift"`
	FolderStructure        FolderStructureRule   `yaml:"folderStructure"`
	FolderNumbering        FolderNumberingRule   `yaml:"folderNumbering"`
	FileNaming             FileNamingRule        `yaml:"fileNaming"`
	DuplicateContent       SeverityRule          `yaml:"duplicateContent"`
	StandardFileNames      StandardFileNamesRule `yaml:"standardFileNames"`
	RequirementTestMapping TraceabilityRule      `yaml:"requirementTestMapping"`
}

// Severities returns a pointer to every rule's severity, in registry order.
func (r *RulesConfig) Severities() []*Severity {
	return []*Severity{
		&r.BrokenLinks.Severity,
		&r.LegacyFileNames.Severity,
		&r.VersionInfo.Severity,
		&r.RelatedDocuments.Severity,
		&r.HeadingHierarchy.Severity,
		&r.TodoComments.Severity,
		&r.CodeBlockLanguage.Severity,
		&r.OrphanDocuments.Severity,
		&r.Terminology.Severity,
		&r.BidirectionalRefs.Severity,
		&r.RequiredFiles.Severity,
		&r.I18nStructure.Severity,
		&r.StandardsDrift.Severity,
		&r.FolderStructure.Severity,
		&r.FolderNumbering.Severity,
		&r.FileNaming.Severity,
		&r.DuplicateContent.Severity,
		&r.StandardFileNames.Severity,
		&r.RequirementTestMapping.Severity,
	}
}

// SeverityRule is a rule setting with no parameters.
type SeverityRule struct {
	Severity Severity `yaml:"severity" validate:"required,oneof=off warn error"`
}

func (r *SeverityRule) UnmarshalYAML(n *yaml.Node) error {
	type plain SeverityRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

type LegacyFileNamesRule struct {
	Severity Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	// Pattern is a regular expression matched against every line.
	Pattern string   `yaml:"pattern"`
	Exclude []string `yaml:"exclude"`
}

func (r *LegacyFileNamesRule) UnmarshalYAML(n *yaml.Node) error {
	type plain LegacyFileNamesRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// MarkerRule requires one of Markers to appear in every file matched by Include.
// Include entries are globs, or plain substrings of the relative path.
type MarkerRule struct {
	Severity Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	Include  []string `yaml:"include"`
	Markers  []string `yaml:"markers" validate:"dive,required"`
}

func (r *MarkerRule) UnmarshalYAML(n *yaml.Node) error {
	type plain MarkerRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// TagSetting overrides a built-in comment tag.
type TagSetting struct {
	Enabled  *bool         `yaml:"enabled"`
	Severity IssueSeverity `yaml:"severity" validate:"omitempty,oneof=info warn error"`
	Label    string        `yaml:"label"`
}

// CustomTag adds a tag to the vocabulary.
type CustomTag struct {
	Tag      string        `yaml:"tag" validate:"required"`
	Severity IssueSeverity `yaml:"severity" validate:"omitempty,oneof=info warn error"`
	Label    string        `yaml:"label"`
}

type TodoRule struct {
	Severity           Severity              `yaml:"severity" validate:"required,oneof=off warn error"`
	Tags               map[string]TagSetting `yaml:"tags" validate:"dive"`
	CustomTags         []CustomTag           `yaml:"customTags" validate:"dive"`
	IgnoreInCodeBlocks bool                  `yaml:"ignoreInCodeBlocks"`
	IgnoreInInlineCode bool                  `yaml:"ignoreInInlineCode"`
	IgnoreInTables     bool                  `yaml:"ignoreInTables"`
	ExcludePatterns    []string              `yaml:"excludePatterns"`
}

func (r *TodoRule) UnmarshalYAML(n *yaml.Node) error {
	type plain TodoRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

type OrphanRule struct {
	Severity Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	Exclude  []string `yaml:"exclude"`
}

func (r *OrphanRule) UnmarshalYAML(n *yaml.Node) error {
	type plain OrphanRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// StandardsDriftRule compares category folders against a template tree.
// An empty TemplateDir selects the bundled templates.
type StandardsDriftRule struct {
	Severity    Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	TemplateDir string   `yaml:"templateDir"`
	Categories  []string `yaml:"categories" validate:"dive,required"`
}

func (r *StandardsDriftRule) UnmarshalYAML(n *yaml.Node) error {
	type plain StandardsDriftRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// FolderDefinition models one expected folder of a documentation layout.
type FolderDefinition struct {
	Path          string   `yaml:"path" validate:"required"`
	Required      bool     `yaml:"required"`
	Description   string   `yaml:"description,omitempty"`
	Files         []string `yaml:"files,omitempty"`
	OptionalFiles []string `yaml:"optionalFiles,omitempty"`
}

// FolderStructureRule validates folders. An empty Folders list selects the canonical layout.
type FolderStructureRule struct {
	Severity     Severity           `yaml:"severity" validate:"required,oneof=off warn error"`
	Folders      []FolderDefinition `yaml:"folders" validate:"dive"`
	CheckUnknown bool               `yaml:"checkUnknown"`
	AllowedExtra []string           `yaml:"allowedExtra"`
}

func (r *FolderStructureRule) UnmarshalYAML(n *yaml.Node) error {
	type plain FolderStructureRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

type FolderNumberingRule struct {
	Severity      Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	StrictPaths   []string `yaml:"strictPaths"`
	CheckSequence bool     `yaml:"checkSequence"`
}

func (r *FolderNumberingRule) UnmarshalYAML(n *yaml.Node) error {
	type plain FolderNumberingRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// FileNamingRule: Strict allows only UPPER-CASE.md and README.md;
// otherwise a file must match one of Patterns.
type FileNamingRule struct {
	Severity Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	Strict   bool     `yaml:"strict"`
	Patterns []string `yaml:"patterns"`
}

func (r *FileNamingRule) UnmarshalYAML(n *yaml.Node) error {
	type plain FileNamingRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// FilePair names two file names serving the same role; Other is the one to fix.
type FilePair struct {
	Preferred string `yaml:"preferred" validate:"required"`
	Other     string `yaml:"other" validate:"required"`
}

type StandardFileNamesRule struct {
	Severity         Severity   `yaml:"severity" validate:"required,oneof=off warn error"`
	DetailSuffixes   []string   `yaml:"detailSuffixes"`
	ConflictingPairs []FilePair `yaml:"conflictingPairs" validate:"dive"`
}

func (r *StandardFileNamesRule) UnmarshalYAML(n *yaml.Node) error {
	type plain StandardFileNamesRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}

// TraceabilityRule configures requirement to test-case mapping.
type TraceabilityRule struct {
	Severity           Severity `yaml:"severity" validate:"required,oneof=off warn error"`
	RequirementFiles   []string `yaml:"requirementFiles"`
	TestCaseFiles      []string `yaml:"testCaseFiles"`
	RequirementPattern string   `yaml:"requirementPattern"`
	TestCasePattern    string   `yaml:"testCasePattern"`
	RequireTestCases   bool     `yaml:"requireTestCases"`
	CoverageThreshold  float64  `yaml:"coverageThreshold" validate:"gte=0,lte=100"`
}

func (r *TraceabilityRule) UnmarshalYAML(n *yaml.Node) error {
	type plain TraceabilityRule
	return decodeSetting(n, &r.Severity, (*plain)(r))
}
