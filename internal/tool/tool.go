// Package tool exposes the install, uninstall, list and update operations
// as an invocation surface: every call yields human-readable text plus a
// machine-readable details object whose "success" field reports the outcome.
package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barysiuk/duckfetch/internal/core"
)

// Installer is the part of core.Installer the service needs.
type Installer interface {
	Install(ctx context.Context, rawURL, nameOverride string) (*core.InstallReport, error)
	Reinstall(ctx context.Context, name string) ([]*core.InstallReport, error)
}

// Inventory is the part of core.Inventory the service needs.
type Inventory interface {
	List() ([]core.ResourceSet, error)
	Remove(name string) error
}

// Result is the outcome of one operation.
type Result struct {
	Text    string
	Success bool
	Details any
}

// InstallDetails describes one install.
type InstallDetails struct {
	Success bool                   `json:"success"`
	Name    string                 `json:"name,omitempty"`
	Dir     string                 `json:"dir,omitempty"`
	Source  string                 `json:"source,omitempty"`
	Fetched []string               `json:"fetched"`
	Failed  []core.FailedReference `json:"failed"`
	Status  int                    `json:"status,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// UninstallDetails describes one removal.
type UninstallDetails struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SetSummary is one entry of a listing.
type SetSummary struct {
	Name        string   `json:"name"`
	Files       []string `json:"files"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// ListDetails describes the installed sets.
type ListDetails struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Sets    []SetSummary `json:"sets"`
}

// UpdateDetails aggregates the reinstall of one or more recorded sets.
type UpdateDetails struct {
	Success bool             `json:"success"`
	Results []InstallDetails `json:"results"`
	Kind    string           `json:"kind,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Service binds the operations to an installer and an inventory.
type Service struct {
	installer Installer
	inventory Inventory
}

// NewService creates a Service.
func NewService(installer Installer, inventory Inventory) *Service {
	return &Service{installer: installer, inventory: inventory}
}

// Install fetches a skill from rawURL. Expected failures come back as an
// unsuccessful Result; the error is reserved for unexpected faults.
func (s *Service) Install(ctx context.Context, rawURL, name string) (Result, error) {
	report, err := s.installer.Install(ctx, rawURL, name)
	if err != nil {
		return Result{}, err
	}
	details := installDetails(report)
	return Result{
		Text:    installText(report),
		Success: details.Success,
		Details: details,
	}, nil
}

// Uninstall removes the named skill.
func (s *Service) Uninstall(name string) (Result, error) {
	details := UninstallDetails{Name: name}

	var text string
	err := s.inventory.Remove(name)
	switch {
	case err == nil:
		details.Success = true
		return Result{Text: fmt.Sprintf("Uninstalled %s", name), Success: true, Details: details}, nil
	case errors.Is(err, core.ErrSetNotFound):
		details.Kind = core.FailureNotFound.String()
		text = fmt.Sprintf("Skill %q not found", name)
	case errors.Is(err, core.ErrInvalidName):
		details.Kind = core.FailureInvalidInput.String()
		text = fmt.Sprintf("Invalid skill name %q", name)
	default:
		return Result{}, err
	}

	details.Error = err.Error()
	return Result{Text: text, Details: details}, nil
}

// List reports every installed skill.
func (s *Service) List() (Result, error) {
	sets, err := s.inventory.List()
	if err != nil {
		return Result{}, err
	}

	details := ListDetails{Success: true, Count: len(sets), Sets: make([]SetSummary, 0, len(sets))}
	for _, set := range sets {
		details.Sets = append(details.Sets, SetSummary{
			Name:        set.Name,
			Files:       set.Files,
			Description: set.Description,
			Source:      set.Source,
		})
	}

	return Result{Text: listText(sets), Success: true, Details: details}, nil
}

// Update re-fetches recorded skills from their recorded sources. An empty
// name updates all of them.
func (s *Service) Update(ctx context.Context, name string) (Result, error) {
	reports, err := s.installer.Reinstall(ctx, name)
	if err != nil {
		if errors.Is(err, core.ErrSetNotFound) {
			return Result{
				Text: fmt.Sprintf("Skill %q has no install record", name),
				Details: UpdateDetails{
					Results: []InstallDetails{},
					Kind:    core.FailureNotFound.String(),
					Error:   err.Error(),
				},
			}, nil
		}
		return Result{}, err
	}

	details := UpdateDetails{Success: true, Results: make([]InstallDetails, 0, len(reports))}
	texts := make([]string, 0, len(reports))
	for _, r := range reports {
		d := installDetails(r)
		details.Results = append(details.Results, d)
		details.Success = details.Success && d.Success
		texts = append(texts, installText(r))
	}

	text := strings.Join(texts, "\n\n")
	if len(reports) == 0 {
		text = "No recorded skills to update."
	}
	return Result{Text: text, Success: details.Success, Details: details}, nil
}

func installDetails(r *core.InstallReport) InstallDetails {
	d := InstallDetails{
		Success: r.Success,
		Name:    r.Name,
		Dir:     r.Dir,
		Source:  r.Source,
		Fetched: r.Fetched,
		Failed:  r.Failed,
		Status:  r.Status,
	}
	if !r.Success {
		d.Kind = r.Kind.String()
		d.Error = r.Message
	}
	return d
}

func installText(r *core.InstallReport) string {
	if !r.Success {
		return r.Message
	}

	var b strings.Builder
	b.WriteString(r.Message)
	fmt.Fprintf(&b, "\nDirectory: %s", r.Dir)
	b.WriteString("\nFetched:")
	for _, f := range r.Fetched {
		fmt.Fprintf(&b, "\n  - %s", f)
	}
	if len(r.Failed) > 0 {
		b.WriteString("\nFailed:")
		for _, f := range r.Failed {
			fmt.Fprintf(&b, "\n  - %s (%s)", f.Path, f.Reason)
		}
	}
	return b.String()
}

func listText(sets []core.ResourceSet) string {
	if len(sets) == 0 {
		return "No skills installed."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Installed skills (%d):", len(sets))
	for _, set := range sets {
		fmt.Fprintf(&b, "\n  %s (%d file(s))", set.Name, len(set.Files))
		if len(set.Files) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(set.Files, ", "))
		}
	}
	return b.String()
}
