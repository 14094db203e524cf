package core

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestReadLockFile_Missing(t *testing.T) {
	lf, err := ReadLockFile(t.TempDir())
	if err != nil {
		t.Fatalf("ReadLockFile() error: %v", err)
	}
	if lf.LockVersion != currentLockVersion || len(lf.Sets) != 0 {
		t.Errorf("unexpected lock file: %+v", lf)
	}
}

func TestWriteLockFile_SortedAndNewlineTerminated(t *testing.T) {
	dir := t.TempDir()
	lf := &LockFile{
		LockVersion: currentLockVersion,
		Sets: []LockedSet{
			{Name: "zeta", Source: "https://e/z/SKILL.md"},
			{Name: "alpha", Source: "https://e/a/SKILL.md"},
		},
	}
	if err := WriteLockFile(dir, lf); err != nil {
		t.Fatalf("WriteLockFile() error: %v", err)
	}

	data, err := os.ReadFile(LockFilePath(dir))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Error("lock file should end with a newline")
	}
	if strings.Index(content, "alpha") > strings.Index(content, "zeta") {
		t.Error("sets should be sorted by name")
	}
}

func TestAddOrUpdateLockEntry(t *testing.T) {
	dir := t.TempDir()
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := AddOrUpdateLockEntry(dir, LockedSet{Name: "demo", Source: "https://e/v1.md", InstalledAt: first}); err != nil {
		t.Fatal(err)
	}
	if err := AddOrUpdateLockEntry(dir, LockedSet{Name: "demo", Source: "https://e/v2.md", Files: []string{"v2.md"}}); err != nil {
		t.Fatal(err)
	}
	if err := AddOrUpdateLockEntry(dir, LockedSet{Name: "other", Source: "https://e/o.md"}); err != nil {
		t.Fatal(err)
	}

	lf, err := ReadLockFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(lf.Sets) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lf.Sets))
	}
	demo, ok := lf.Find("demo")
	if !ok {
		t.Fatal("demo entry missing")
	}
	if demo.Source != "https://e/v2.md" || len(demo.Files) != 1 {
		t.Errorf("demo not updated: %+v", demo)
	}
}

func TestRemoveLockEntry(t *testing.T) {
	dir := t.TempDir()

	// No lock file: no-op, and none gets created.
	if err := RemoveLockEntry(dir, "ghost"); err != nil {
		t.Fatalf("RemoveLockEntry() error: %v", err)
	}
	if fileExists(LockFilePath(dir)) {
		t.Error("RemoveLockEntry should not create a lock file")
	}

	_ = AddOrUpdateLockEntry(dir, LockedSet{Name: "a", Source: "https://e/a.md"})
	_ = AddOrUpdateLockEntry(dir, LockedSet{Name: "b", Source: "https://e/b.md"})

	if err := RemoveLockEntry(dir, "a"); err != nil {
		t.Fatal(err)
	}
	lf, _ := ReadLockFile(dir)
	if _, ok := lf.Find("a"); ok {
		t.Error("a should be removed")
	}
	if _, ok := lf.Find("b"); !ok {
		t.Error("b should remain")
	}
}

func TestReadLockFile_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(LockFilePath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadLockFile(dir); err == nil {
		t.Error("expected parse error")
	}
}
