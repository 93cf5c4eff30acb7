package cleaner

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.AppImage"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.AppImage"), 250)
	writeFile(t, filepath.Join(root, "notes.txt"), 10)

	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class:   "appimages",
		Roots:   []string{root},
		Mode:    ModeGlob,
		Pattern: "*.AppImage",
	})

	if cat.Len() != 2 {
		t.Fatalf("scan found %d items, want 2: %+v", cat.Len(), cat.Items)
	}
	if cat.TotalSize() != 350 {
		t.Errorf("TotalSize() = %d, want 350", cat.TotalSize())
	}
	for _, item := range cat.Items {
		if !item.HasTag(TagExecutable) {
			t.Errorf("item %s missing executable tag", item.ID)
		}
	}
}

func TestScanMissingRootSkipped(t *testing.T) {
	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class: "browser",
		Roots: []string{filepath.Join(t.TempDir(), "does-not-exist")},
		Mode:  ModeDirAsItem,
	})

	if !cat.Empty() {
		t.Errorf("missing root should yield empty catalog, got %+v", cat.Items)
	}
}

func TestScanDirAsItem(t *testing.T) {
	root := t.TempDir()
	cacheDir := filepath.Join(root, "thumbnails")
	writeFile(t, filepath.Join(cacheDir, "one"), 100)
	writeFile(t, filepath.Join(cacheDir, "deep", "two"), 200)

	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class: "thumbnails",
		Roots: []string{cacheDir},
		Mode:  ModeDirAsItem,
	})

	if cat.Len() != 1 {
		t.Fatalf("scan found %d items, want 1", cat.Len())
	}
	item := cat.Items[0]
	if item.Size != 300 {
		t.Errorf("directory size = %d, want 300 (apparent usage summed)", item.Size)
	}
	if !item.HasTag(TagRebuildable) {
		t.Errorf("thumbnails directory should carry the rebuildable tag")
	}
}

func TestScanEntries(t *testing.T) {
	trash := t.TempDir()
	writeFile(t, filepath.Join(trash, "old.doc"), 40)
	writeFile(t, filepath.Join(trash, "folder", "inner"), 60)

	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class: "trash",
		Roots: []string{trash},
		Mode:  ModeEntries,
	})

	if cat.Len() != 2 {
		t.Fatalf("scan found %d items, want 2", cat.Len())
	}
	if cat.TotalSize() != 100 {
		t.Errorf("TotalSize() = %d, want 100", cat.TotalSize())
	}
}

func TestScanAgeFilter(t *testing.T) {
	root := t.TempDir()
	oldFile := filepath.Join(root, "stale.tmp")
	newFile := filepath.Join(root, "fresh.tmp")
	writeFile(t, oldFile, 10)
	writeFile(t, newFile, 10)

	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatal(err)
	}

	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class:  "tmpfiles",
		Roots:  []string{root},
		Mode:   ModeEntries,
		MaxAge: 24 * time.Hour,
	})

	if cat.Len() != 1 {
		t.Fatalf("scan found %d items, want only the stale one", cat.Len())
	}
	if filepath.Base(cat.Items[0].ID) != "stale.tmp" {
		t.Errorf("kept %s, want stale.tmp", cat.Items[0].ID)
	}
}

func TestScanDeduplicatesSymlinkedRoots(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "cache")
	writeFile(t, filepath.Join(target, "data"), 100)

	link := filepath.Join(root, "cache-link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := NewScanner(nil)
	cat := s.Scan(Descriptor{
		Class: "browser",
		Roots: []string{target, link},
		Mode:  ModeDirAsItem,
	})

	if cat.Len() != 1 {
		t.Errorf("symlinked root duplicated the item: %+v", cat.Items)
	}
}

func TestCatalogAddDeduplicates(t *testing.T) {
	cat := NewCatalog("test")
	if !cat.Add(Item{ID: "a", Size: 10}) {
		t.Error("first Add should succeed")
	}
	if cat.Add(Item{ID: "a", Size: 20}) {
		t.Error("duplicate identifier should be rejected")
	}
	if cat.TotalSize() != 10 {
		t.Errorf("TotalSize() = %d, want 10", cat.TotalSize())
	}
}

func TestCatalogAddClampsNegativeSize(t *testing.T) {
	cat := NewCatalog("test")
	cat.Add(Item{ID: "a", Size: -5})
	if cat.Items[0].Size != 0 {
		t.Errorf("negative size should clamp to zero, got %d", cat.Items[0].Size)
	}
}

func TestCatalogPick(t *testing.T) {
	cat := NewCatalog("test")
	cat.Add(Item{ID: "a", Size: 1})
	cat.Add(Item{ID: "b", Size: 2})
	cat.Add(Item{ID: "c", Size: 3})

	items := cat.Pick(Selection{Indices: []int{0, 2}})
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "c" {
		t.Errorf("Pick() = %+v", items)
	}
}

func TestTagsFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"/home/u/Downloads/tool.AppImage", TagExecutable},
		{"/home/u/.cache/thumbnails", TagRebuildable},
		{"/home/u/.cache/pip", TagCritical},
		{"/home/u/.config/google-chrome", TagRebuildable},
	}

	for _, tt := range tests {
		tags := TagsFor(tt.name, DefaultTagRules)
		found := false
		for _, tag := range tags {
			if tag == tt.want {
				found = true
			}
		}
		if !found {
			t.Errorf("TagsFor(%q) = %v, want to include %q", tt.name, tags, tt.want)
		}
	}

	if tags := TagsFor("/var/random", DefaultTagRules); len(tags) != 0 {
		t.Errorf("unmatched name should have no tags, got %v", tags)
	}
}
