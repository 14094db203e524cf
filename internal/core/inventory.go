package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrSetNotFound is returned when a named set does not exist.
	ErrSetNotFound = errors.New("skill not found")

	// ErrInvalidName is returned for names that cannot denote a set directory.
	ErrInvalidName = errors.New("invalid skill name")
)

// Inventory lists and removes installed resource sets.
type Inventory struct {
	setsRoot string
	log      *slog.Logger
}

// NewInventory creates an Inventory over setsRoot.
func NewInventory(setsRoot string, logger *slog.Logger) *Inventory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inventory{setsRoot: setsRoot, log: logger}
}

// SetsRoot returns the directory the inventory operates on.
func (inv *Inventory) SetsRoot() string {
	return inv.setsRoot
}

// List returns every set under the sets root, sorted by name, with the
// immediate files of each. The sets root is created if missing.
func (inv *Inventory) List() ([]ResourceSet, error) {
	if err := os.MkdirAll(inv.setsRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating sets root: %w", err)
	}

	entries, err := os.ReadDir(inv.setsRoot)
	if err != nil {
		return nil, fmt.Errorf("reading sets root: %w", err)
	}

	// Lock file errors only cost us the Source column.
	lf, err := ReadLockFile(inv.setsRoot)
	if err != nil {
		inv.log.Warn("ignoring unreadable lock file", "error", err)
		lf = &LockFile{}
	}

	sets := []ResourceSet{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		setDir := filepath.Join(inv.setsRoot, entry.Name())
		files, err := listFiles(setDir)
		if err != nil {
			return nil, err
		}

		set := ResourceSet{
			Name:  entry.Name(),
			Path:  setDir,
			Files: files,
		}
		if meta, err := ParseSkillMd(filepath.Join(setDir, skillFileName)); err == nil {
			set.Description = meta.Description
		}
		if locked, ok := lf.Find(entry.Name()); ok {
			set.Source = locked.Source
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Get returns a single set by name.
func (inv *Inventory) Get(name string) (*ResourceSet, error) {
	setDir, err := inv.setDir(name)
	if err != nil {
		return nil, err
	}
	if !dirExists(setDir) {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}
	files, err := listFiles(setDir)
	if err != nil {
		return nil, err
	}
	set := &ResourceSet{Name: name, Path: setDir, Files: files}
	if meta, err := ParseSkillMd(filepath.Join(setDir, skillFileName)); err == nil {
		set.Description = meta.Description
	}
	if lf, err := ReadLockFile(inv.setsRoot); err == nil {
		if locked, ok := lf.Find(name); ok {
			set.Source = locked.Source
		}
	}
	return set, nil
}

// Remove deletes the named set and everything in it. It fails with
// ErrSetNotFound, without touching the filesystem, if no such set exists.
func (inv *Inventory) Remove(name string) error {
	setDir, err := inv.setDir(name)
	if err != nil {
		return err
	}
	if !dirExists(setDir) {
		return fmt.Errorf("%w: %q", ErrSetNotFound, name)
	}

	if err := os.RemoveAll(setDir); err != nil {
		return fmt.Errorf("removing skill directory: %w", err)
	}
	inv.log.Debug("removed skill", "skill", name, "path", setDir)

	if err := RemoveLockEntry(inv.setsRoot, name); err != nil {
		inv.log.Warn("failed to update lock file", "error", err)
	}
	return nil
}

// setDir validates name and returns its directory under the sets root.
func (inv *Inventory) setDir(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	root, err := filepath.Abs(inv.setsRoot)
	if err != nil {
		return "", fmt.Errorf("resolving sets root: %w", err)
	}
	dir, ok := ResolveWithin(root, name)
	if !ok || dir == root {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return dir, nil
}

// listFiles returns the names of the immediate regular files in dir.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(dir), err)
	}
	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
