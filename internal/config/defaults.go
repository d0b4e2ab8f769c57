// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// DefaultTranslationsFolder is the folder under the docs root holding translations.
const DefaultTranslationsFolder = "i18n"

// Default patterns used by the traceability rule.
const (
	DefaultRequirementPattern = `FR-\d{3}`
	DefaultTestCasePattern    = `TC-[UIEPSDX]\d{3}`
)

// DefaultFolders is the canonical documentation layout.
func DefaultFolders() []FolderDefinition {
	return []FolderDefinition{
		{Path: "01-requirements", Required: true, Description: "Functional and non-functional requirements", OptionalFiles: []string{"README.md"}},
		{Path: "02-design", Required: true, Description: "Architecture and design documents", OptionalFiles: []string{"README.md"}},
		{Path: "03-development", Required: true, Description: "Development guides and standards", OptionalFiles: []string{"README.md"}},
		{Path: "04-testing", Required: true, Description: "Test plans and test cases", OptionalFiles: []string{"README.md"}},
		{Path: "05-operations", Required: false, Description: "Deployment and operations runbooks"},
		{Path: "06-decisions", Required: false, Description: "Architecture decision records"},
	}
}

// SpecialFolders are top-level folders never reported as unknown.
var SpecialFolders = []string{DefaultTranslationsFolder, "assets", "images", "_templates"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DocsDir:       "docs",
		Include:       []string{"**/*.md"},
		Exclude:       []string{"**/node_modules/**"},
		RequiredFiles: []string{"README.md"},
		Rules: RulesConfig{
			BrokenLinks: SeverityRule{Severity: SeverityError},
			LegacyFileNames: LegacyFileNamesRule{
				Severity: SeverityWarn,
				Pattern:  `\b[a-z0-9]+(?:_[a-z0-9]+)+\.md\b`,
			},
			VersionInfo: MarkerRule{
				Severity: SeverityWarn,
				Include:  []string{"02-design/**/*.md", "03-development/**/*.md"},
				Markers:  []string{"## Version", "## Revision History", "**Version**:"},
			},
			RelatedDocuments: MarkerRule{
				Severity: SeverityWarn,
				Include:  []string{"02-design/**/*.md"},
				Markers:  []string{"## Related Documents", "## Related Docs", "## See Also"},
			},
			HeadingHierarchy: SeverityRule{Severity: SeverityWarn},
			TodoComments: TodoRule{
				Severity:           SeverityWarn,
				IgnoreInCodeBlocks: true,
				IgnoreInInlineCode: true,
			},
			CodeBlockLanguage: SeverityRule{Severity: SeverityWarn},
			OrphanDocuments:   OrphanRule{Severity: SeverityWarn},
			Terminology:       SeverityRule{Severity: SeverityWarn},
			BidirectionalRefs: SeverityRule{Severity: SeverityOff},
			RequiredFiles:     SeverityRule{Severity: SeverityError},
			I18nStructure:     SeverityRule{Severity: SeverityWarn},
			StandardsDrift: StandardsDriftRule{
				Severity:   SeverityOff,
				Categories: []string{"03-development/standards"},
			},
			FolderStructure: FolderStructureRule{
				Severity:     SeverityOff,
				CheckUnknown: true,
			},
			FolderNumbering: FolderNumberingRule{
				Severity:      SeverityOff,
				StrictPaths:   []string{".", "02-design"},
				CheckSequence: true,
			},
			FileNaming:       FileNamingRule{Severity: SeverityWarn},
			DuplicateContent: SeverityRule{Severity: SeverityWarn},
			StandardFileNames: StandardFileNamesRule{
				Severity:         SeverityWarn,
				DetailSuffixes:   []string{`-DETAILS?\.md$`, `-FULL\.md$`},
				ConflictingPairs: []FilePair{{Preferred: "README.md", Other: "INDEX.md"}},
			},
			RequirementTestMapping: TraceabilityRule{
				Severity:           SeverityOff,
				RequirementFiles:   []string{"01-requirements/**/*.md"},
				TestCaseFiles:      []string{"04-testing/**/*.md"},
				RequirementPattern: DefaultRequirementPattern,
				TestCasePattern:    DefaultTestCasePattern,
				RequireTestCases:   true,
				CoverageThreshold:  80,
			},
		},
	}
}
