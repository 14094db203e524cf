package core

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// setupSet creates a set directory with the given files, simulating what
// the Installer would have written.
func setupSet(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, name, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInventory_ListEmptyCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "skills")
	inv := NewInventory(root, nil)

	sets, err := inv.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if sets == nil || len(sets) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", sets)
	}
	if !dirExists(root) {
		t.Error("expected sets root to be created")
	}
}

func TestInventory_List(t *testing.T) {
	root := t.TempDir()
	setupSet(t, root, "beta", map[string]string{
		"SKILL.md":     "---\nname: beta\ndescription: Beta skill\n---\n# Beta\n",
		"guide.md":     "guide",
		"docs/deep.md": "not listed",
	})
	setupSet(t, root, "alpha", map[string]string{
		"README.md": "plain",
	})
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AddOrUpdateLockEntry(root, LockedSet{
		Name:        "beta",
		Source:      "https://example.com/beta/SKILL.md",
		InstalledAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	sets, err := NewInventory(root, nil).List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets, got %d: %+v", len(sets), sets)
	}

	if sets[0].Name != "alpha" || sets[1].Name != "beta" {
		t.Errorf("sets not sorted by name: %s, %s", sets[0].Name, sets[1].Name)
	}
	if !reflect.DeepEqual(sets[0].Files, []string{"README.md"}) {
		t.Errorf("alpha files = %v", sets[0].Files)
	}
	if !reflect.DeepEqual(sets[1].Files, []string{"SKILL.md", "guide.md"}) {
		t.Errorf("beta files = %v (subdirectories must not be listed)", sets[1].Files)
	}
	if sets[1].Description != "Beta skill" {
		t.Errorf("beta description = %q", sets[1].Description)
	}
	if sets[1].Source != "https://example.com/beta/SKILL.md" {
		t.Errorf("beta source = %q", sets[1].Source)
	}
	if sets[0].Source != "" {
		t.Errorf("alpha source = %q, want empty", sets[0].Source)
	}
}

func TestInventory_Remove(t *testing.T) {
	t.Run("removes set and lock entry", func(t *testing.T) {
		root := t.TempDir()
		setupSet(t, root, "demo", map[string]string{"SKILL.md": "x", "a/b.md": "y"})
		if err := AddOrUpdateLockEntry(root, LockedSet{Name: "demo", Source: "https://e/x.md"}); err != nil {
			t.Fatal(err)
		}

		if err := NewInventory(root, nil).Remove("demo"); err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "demo")); !os.IsNotExist(err) {
			t.Error("set directory should be gone")
		}
		lf, err := ReadLockFile(root)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := lf.Find("demo"); ok {
			t.Error("lock entry should be removed")
		}
	})

	t.Run("nonexistent is not found and mutates nothing", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "skills")
		err := NewInventory(root, nil).Remove("nonexistent")
		if !errors.Is(err, ErrSetNotFound) {
			t.Fatalf("Remove() error = %v, want ErrSetNotFound", err)
		}
		if _, err := os.Stat(root); !os.IsNotExist(err) {
			t.Error("Remove of a missing set must not create the sets root")
		}
	})

	t.Run("rejects names that escape the root", func(t *testing.T) {
		base := t.TempDir()
		root := filepath.Join(base, "skills")
		setupSet(t, base, "victim", map[string]string{"keep.txt": "keep"})
		inv := NewInventory(root, nil)

		for _, name := range []string{"", ".", "..", "../victim", "a/b", `a\b`} {
			err := inv.Remove(name)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Remove(%q) error = %v, want ErrInvalidName", name, err)
			}
		}
		if !fileExists(filepath.Join(base, "victim", "keep.txt")) {
			t.Error("files outside the sets root must survive")
		}
	})
}

func TestInventory_Get(t *testing.T) {
	root := t.TempDir()
	setupSet(t, root, "demo", map[string]string{"SKILL.md": "---\ndescription: Demo\n---\n"})
	inv := NewInventory(root, nil)

	set, err := inv.Get("demo")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if set.Description != "Demo" {
		t.Errorf("Description = %q", set.Description)
	}

	if _, err := inv.Get("missing"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSetNotFound", err)
	}
}

func TestParseSkillMd(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	meta, err := ParseSkillMd(write("ok.md", "---\nname: demo\ndescription: A demo\nlicense: MIT\n---\nbody\n"))
	if err != nil {
		t.Fatalf("ParseSkillMd() error: %v", err)
	}
	if meta.Name != "demo" || meta.Description != "A demo" || meta.License != "MIT" {
		t.Errorf("unexpected metadata: %+v", meta)
	}

	for name, content := range map[string]string{
		"empty.md":        "",
		"nofront.md":      "# Title\n",
		"unterminated.md": "---\nname: x\n",
		"badyaml.md":      "---\nname: [unclosed\n---\n",
	} {
		if _, err := ParseSkillMd(write(name, content)); err == nil {
			t.Errorf("ParseSkillMd(%s) expected error", name)
		}
	}
}
