package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	lockFileName       = "duckfetch.lock.json"
	currentLockVersion = 1
)

// lockMu serializes read-modify-write cycles on lock files within a process.
var lockMu sync.Mutex

// LockFilePath returns the full path to the lock file under the sets root.
func LockFilePath(setsRoot string) string {
	return filepath.Join(setsRoot, lockFileName)
}

// ReadLockFile reads and parses the lock file under setsRoot.
// Returns an empty lock file if it does not exist.
func ReadLockFile(setsRoot string) (*LockFile, error) {
	data, err := os.ReadFile(LockFilePath(setsRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return &LockFile{LockVersion: currentLockVersion, Sets: []LockedSet{}}, nil
		}
		return nil, fmt.Errorf("reading lock file: %w", err)
	}

	var lf LockFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	if lf.Sets == nil {
		lf.Sets = []LockedSet{}
	}
	return &lf, nil
}

// WriteLockFile writes the lock file atomically, sets sorted by name.
func WriteLockFile(setsRoot string, lf *LockFile) error {
	sort.Slice(lf.Sets, func(i, j int) bool {
		return lf.Sets[i].Name < lf.Sets[j].Name
	})

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(setsRoot, 0o755); err != nil {
		return fmt.Errorf("creating sets root: %w", err)
	}
	return writeFileAtomic(LockFilePath(setsRoot), data)
}

// Find returns the recorded entry for name, if any.
func (lf *LockFile) Find(name string) (LockedSet, bool) {
	for _, s := range lf.Sets {
		if s.Name == name {
			return s, true
		}
	}
	return LockedSet{}, false
}

// AddOrUpdateLockEntry upserts an entry by name.
func AddOrUpdateLockEntry(setsRoot string, entry LockedSet) error {
	lockMu.Lock()
	defer lockMu.Unlock()

	lf, err := ReadLockFile(setsRoot)
	if err != nil {
		return err
	}

	found := false
	for i, s := range lf.Sets {
		if s.Name == entry.Name {
			lf.Sets[i] = entry
			found = true
			break
		}
	}
	if !found {
		lf.Sets = append(lf.Sets, entry)
	}
	return WriteLockFile(setsRoot, lf)
}

// RemoveLockEntry drops the entry for name.
// No-op if the lock file does not exist or has no such entry.
func RemoveLockEntry(setsRoot string, name string) error {
	lockMu.Lock()
	defer lockMu.Unlock()

	if !fileExists(LockFilePath(setsRoot)) {
		return nil
	}
	lf, err := ReadLockFile(setsRoot)
	if err != nil {
		return err
	}

	kept := lf.Sets[:0]
	removed := false
	for _, s := range lf.Sets {
		if s.Name == name {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if !removed {
		return nil
	}
	lf.Sets = kept
	return WriteLockFile(setsRoot, lf)
}
