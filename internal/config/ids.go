// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// Canonical rule names, as used in the rules section and in --only/--skip.
const (
	RuleBrokenLinks            = "brokenLinks"
	RuleLegacyFileNames        = "legacyFileNames"
	RuleVersionInfo            = "versionInfo"
	RuleRelatedDocuments       = "relatedDocuments"
	RuleHeadingHierarchy       = "headingHierarchy"
	RuleTodoComments           = "todoComments"
	RuleCodeBlockLanguage      = "codeBlockLanguage"
	RuleOrphanDocuments        = "orphanDocuments"
	RuleTerminology            = "terminology"
	RuleBidirectionalRefs      = "bidirectionalRefs"
	RuleRequiredFiles          = "requiredFiles"
	RuleI18nStructure          = "i18nStructure"
	RuleStandardsDrift         = "standardsDrift"
	RuleFolderStructure        = "folderStructure"
	RuleFolderNumbering        = "folderNumbering"
	RuleFileNaming             = "fileNaming"
	RuleDuplicateContent       = "duplicateContent"
	RuleStandardFileNames      = "standardFileNames"
	RuleRequirementTestMapping = "requirementTestMapping"
)

// StructureRuleIDs are the rules run by the structure-only entry point.
var StructureRuleIDs = []string{
	RuleFolderStructure,
	RuleFolderNumbering,
	RuleFileNaming,
	RuleDuplicateContent,
}
