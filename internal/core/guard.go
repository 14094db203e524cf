package core

import (
	"path/filepath"
	"strings"
)

// IsSafe reports whether candidate, resolved against root, stays inside root.
// The check runs on the cleaned absolute path, never on the raw candidate,
// so "..", absolute overrides and redundant separators are all handled.
func IsSafe(root, candidate string) bool {
	_, ok := ResolveWithin(root, candidate)
	return ok
}

// ResolveWithin resolves candidate against root and returns the resulting
// absolute path along with whether it is contained in root. The path is
// returned even when containment fails, for diagnostics only.
func ResolveWithin(root, candidate string) (string, bool) {
	root = filepath.Clean(root)

	var resolved string
	if filepath.IsAbs(candidate) {
		resolved = filepath.Clean(candidate)
	} else {
		resolved = filepath.Join(root, candidate)
	}

	if resolved == root {
		return resolved, true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return resolved, strings.HasPrefix(resolved, prefix)
}
