package scanner

import (
	"sort"
	"strings"
)

// FilterOptions defines criteria for including or excluding files.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "drafts" excludes "drafts/foo.md" and "guide/drafts/bar.md",
	// but not "drafts_old/foo.md".
	ExcludeDirs []string

	// IncludeExtensions is a list of extensions to include (e.g., ".md").
	// If empty, all extensions are included.
	IncludeExtensions []string

	// Include and Exclude are glob patterns applied after the checks above.
	Include []string
	Exclude []string
}

// DefaultExcludeDirs returns directories never descended into during discovery.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".git",
		"vendor",
		".doclint",
	}
}

// FilterFiles applies the filter options to a list of slash paths.
// It returns a new slice, deduplicated and sorted deterministically.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	matcher := NewGlobMatcher(opts.Include, opts.Exclude)
	seen := make(map[string]bool, len(paths))

	var filtered []string
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		if shouldExclude(p, opts.ExcludeDirs) {
			continue
		}
		if !shouldIncludeExtension(p, opts.IncludeExtensions) {
			continue
		}
		if !matcher.Match(p) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.Strings(filtered)
	return filtered
}

// shouldExclude returns true if any directory segment of the path is excluded.
func shouldExclude(p string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	parts := strings.Split(p, "/")
	for _, part := range parts[:len(parts)-1] {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

// shouldIncludeExtension returns true if extensions is empty OR the path matches one (case-insensitive).
func shouldIncludeExtension(p string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(p)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
