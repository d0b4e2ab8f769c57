package scanner

import (
	"path"
	"strings"
)

// GlobMatcher matches slash paths against include/exclude patterns.
//
// Patterns use path.Match syntax per segment, plus ** which matches any number
// of segments (including none). A pattern without a slash also matches the
// base name, so "CHANGELOG.md" excludes that file in every folder.
//
// Safe for concurrent use after creation.
type GlobMatcher struct {
	includes []string
	excludes []string
}

// NewGlobMatcher creates a matcher. Empty includes include everything not excluded.
func NewGlobMatcher(includes, excludes []string) *GlobMatcher {
	return &GlobMatcher{includes: includes, excludes: excludes}
}

// Match reports whether p is included and not excluded.
func (m *GlobMatcher) Match(p string) bool {
	if MatchAny(m.excludes, p) {
		return false
	}
	if len(m.includes) == 0 {
		return true
	}
	return MatchAny(m.includes, p)
}

// MatchAny reports whether p matches any of the patterns.
func MatchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, p) {
			return true
		}
	}
	return false
}

// MatchGlob matches a single pattern against a slash path.
func MatchGlob(pattern, p string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	p = strings.TrimPrefix(p, "./")
	if matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/")) {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(p))
		return ok
	}
	return false
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pat[0], segs[0])
		if err != nil || !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}

// IsGlob reports whether s contains glob metacharacters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// MatchIncludeEntry matches an include-list entry that is either a glob or a
// plain substring of the path.
func MatchIncludeEntry(entry, p string) bool {
	if IsGlob(entry) {
		return MatchGlob(entry, p)
	}
	return strings.Contains(p, entry)
}
