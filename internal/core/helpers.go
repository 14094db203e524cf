package core

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxSnippetLen bounds the error/content excerpt carried by a failed report.
const maxSnippetLen = 200

var sanitizeRegexp = regexp.MustCompile(`[^\w-]`)

// SanitizeName replaces every character outside [A-Za-z0-9_-] with '-'.
// Unlike a slug it keeps case and does not trim; an empty result means
// no usable name could be derived.
func SanitizeName(name string) string {
	return sanitizeRegexp.ReplaceAllString(name, "-")
}

// snippet returns s truncated to maxSnippetLen characters.
func snippet(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxSnippetLen {
		return s
	}
	return string(r[:maxSnippetLen])
}

// writeFileAtomic writes data to path via a temp file and rename, so
// readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving %s: %w", filepath.Base(path), err)
	}
	return nil
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// expandPath expands ~ to the home directory and $VAR to env values.
func expandPath(p string) string {
	if strings.Contains(p, "$") {
		p = os.ExpandEnv(p)
	}

	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}
