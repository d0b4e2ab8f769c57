// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"path"
	"strings"
)

// IsExternal reports whether a link target points outside the document tree.
func IsExternal(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "http") ||
		strings.Contains(t, "://") ||
		strings.HasPrefix(t, "mailto:")
}

// StripAnchor removes any #fragment and ?query from a link target.
func StripAnchor(target string) string {
	if idx := strings.Index(target, "#"); idx != -1 {
		target = target[:idx]
	}
	if idx := strings.Index(target, "?"); idx != -1 {
		target = target[:idx]
	}
	return strings.TrimSpace(target)
}

// ResolveMarkdownLink resolves a link target found in the file at from
// (slash path relative to the docs root) into a docs-root relative path.
// Targets that are external, pure anchors, or not .md files return ok=false.
// Targets starting with "/" resolve from the docs root.
func ResolveMarkdownLink(from, target string) (string, bool) {
	if IsExternal(target) {
		return "", false
	}
	target = StripAnchor(target)
	if target == "" || !strings.HasSuffix(strings.ToLower(target), ".md") {
		return "", false
	}
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/")), true
	}
	return path.Clean(path.Join(path.Dir(from), target)), true
}
