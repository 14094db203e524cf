package core

import (
	"regexp"
	"strings"
)

var (
	// linkPattern matches markdown links: [label](target).
	linkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)

	// inlineFilePattern matches `name.ext` mentions in single backticks.
	inlineFilePattern = regexp.MustCompile("`([^`\\s]+\\.\\w{1,10})`")

	// safeRefChars is the allowed alphabet for inline filename mentions.
	safeRefChars = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)
)

// ScanReferences returns the relative resource paths referenced by a
// document, in order of first appearance with duplicates removed.
// Link targets come first, then inline-code filename mentions. Paths are
// returned raw; containment is the caller's job (see IsSafe).
func ScanReferences(text string) []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(ref string) {
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)
	}

	for _, m := range linkPattern.FindAllStringSubmatch(text, -1) {
		target := m[1]
		if strings.HasPrefix(target, "http") ||
			strings.HasPrefix(target, "#") ||
			strings.HasPrefix(target, "mailto:") {
			continue
		}
		add(target)
	}

	for _, m := range inlineFilePattern.FindAllStringSubmatch(text, -1) {
		token := m[1]
		if !safeRefChars.MatchString(token) {
			continue
		}
		if strings.HasPrefix(token, ".") || strings.Contains(token, "..") {
			continue
		}
		add(token)
	}

	return refs
}
