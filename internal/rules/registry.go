// Package rules implements the documentation checks run by the linter.
package rules

import "github.com/bartekus/doclint/internal/runner"

// Registry returns every rule in canonical run order.
func Registry() []runner.Rule {
	return []runner.Rule{
		NewBrokenLinks(),
		NewLegacyFileNames(),
		NewVersionInfo(),
		NewRelatedDocuments(),
		NewHeadingHierarchy(),
		NewTodoComments(),
		NewCodeBlockLanguage(),
		NewOrphanDocuments(),
		NewTerminology(),
		NewBidirectionalRefs(),
		NewRequiredFiles(),
		NewI18nStructure(),
		NewStandardsDrift(),
		NewFolderStructure(),
		NewFolderNumbering(),
		NewFileNaming(),
		NewDuplicateContent(),
		NewStandardFileNames(),
		NewRequirementTestMapping(),
	}
}

// IDs returns the canonical rule names in run order.
func IDs() []string {
	reg := Registry()
	ids := make([]string, len(reg))
	for i, r := range reg {
		ids[i] = r.ID()
	}
	return ids
}
