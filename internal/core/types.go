// Package core provides the business logic for duckfetch.
// It has zero UI dependencies and is independently testable.
package core

import "time"

// Config represents the duckfetch configuration stored at ~/.duckfetch/config.json.
type Config struct {
	SetsRoot         string `json:"setsRoot,omitempty" validate:"required"`
	Timeout          string `json:"timeout,omitempty"` // Go duration string, e.g. "30s"
	UserAgent        string `json:"userAgent,omitempty" validate:"required,printascii"`
	MaxBytes         int64  `json:"maxBytes,omitempty" validate:"gt=0"`
	FetchConcurrency int    `json:"fetchConcurrency,omitempty" validate:"gte=1,lte=64"`
}

// ResourceSet is a named directory of files produced by an install.
type ResourceSet struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Files       []string `json:"files"`
	Description string   `json:"description,omitempty"` // From SKILL.md frontmatter, if any
	Source      string   `json:"source,omitempty"`      // Install URL recorded in the lock file
}

// SkillMetadata is the YAML frontmatter parsed from a SKILL.md file.
type SkillMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	License     string `yaml:"license,omitempty"`
}

// FetchResult is the outcome of a single GET. Transport failures are
// represented with Status 0 and a diagnostic in Err.
type FetchResult struct {
	URL     string
	Status  int
	OK      bool
	Content string
	Err     string
}

// FailureKind classifies why an operation did not (fully) succeed.
type FailureKind int

const (
	// FailureNone means the operation succeeded.
	FailureNone FailureKind = iota
	// FailureInvalidInput means the URL or name was rejected before any I/O.
	FailureInvalidInput
	// FailureFetch means a network error or a non-success HTTP status.
	FailureFetch
	// FailureSandbox means a path resolved outside its set directory.
	FailureSandbox
	// FailureNotFound means the named set does not exist.
	FailureNotFound
)

// String returns a human-readable label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidInput:
		return "invalid input"
	case FailureFetch:
		return "fetch failure"
	case FailureSandbox:
		return "sandbox violation"
	case FailureNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// FailedReference is a reference that was not installed, with the reason.
type FailedReference struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// InstallReport is the outcome of one install operation.
type InstallReport struct {
	Success  bool              `json:"success"`
	Name     string            `json:"name,omitempty"`
	Dir      string            `json:"dir,omitempty"`
	Source   string            `json:"source,omitempty"`
	Filename string            `json:"filename,omitempty"`
	Fetched  []string          `json:"fetched"`
	Failed   []FailedReference `json:"failed"`
	Status   int               `json:"status,omitempty"` // HTTP status of a failed primary fetch
	Message  string            `json:"message,omitempty"`
	Kind     FailureKind       `json:"-"`
}

// LockFile represents the duckfetch.lock.json file that records installed sets.
type LockFile struct {
	LockVersion int         `json:"lockVersion"`
	Sets        []LockedSet `json:"sets"`
}

// LockedSet is a single recorded install in the lock file.
type LockedSet struct {
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Files       []string  `json:"files,omitempty"`
	InstalledAt time.Time `json:"installedAt"`
}
