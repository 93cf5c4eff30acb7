package cleaner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/actionlog"
)

// ScanMode selects how a descriptor's roots are turned into items.
type ScanMode int

const (
	// ModeDirAsItem treats each existing root directory as one item,
	// sized by walking it.
	ModeDirAsItem ScanMode = iota

	// ModeEntries treats each immediate child of a root as an item.
	ModeEntries

	// ModeGlob walks the roots and emits files whose base name matches
	// the descriptor pattern.
	ModeGlob
)

// Descriptor describes one resource class for the scanner: where to look,
// what to match, and how to tag what is found.
type Descriptor struct {
	Class   string
	Roots   []string
	Mode    ScanMode
	Pattern string        // base-name glob, ModeGlob only
	MaxAge  time.Duration // keep only entries older than this; 0 disables
	Tags    []TagRule     // nil means DefaultTagRules
}

// Scanner enumerates removable resources. Scans are read-only: nothing is
// mutated, and locations that are missing or unreadable are skipped
// without failing the scan.
type Scanner struct {
	log *actionlog.Log
	now func() time.Time
}

// NewScanner creates a scanner that records skipped locations in log.
func NewScanner(log *actionlog.Log) *Scanner {
	if log == nil {
		log = actionlog.Discard()
	}
	return &Scanner{log: log, now: time.Now}
}

// Scan builds the catalog for one resource class. Items are de-duplicated
// by resolved identifier and sized individually so the aggregate stays
// correct for partial selections.
func (s *Scanner) Scan(desc Descriptor) *Catalog {
	catalog := NewCatalog(desc.Class)
	rules := desc.Tags
	if rules == nil {
		rules = DefaultTagRules
	}

	resolved := make(map[string]bool)

	for _, root := range desc.Roots {
		info, err := os.Lstat(root)
		if err != nil {
			// Missing roots are expected (not every host has every
			// browser or cache directory).
			continue
		}

		switch desc.Mode {
		case ModeDirAsItem:
			if !info.IsDir() {
				continue
			}
			s.addItem(catalog, resolved, root, s.dirSize(root), rules)

		case ModeEntries:
			entries, err := os.ReadDir(root)
			if err != nil {
				s.log.Printf("scan: skipping unreadable location %s: %v", root, err)
				continue
			}
			for _, entry := range entries {
				path := filepath.Join(root, entry.Name())
				if !s.oldEnough(path, desc.MaxAge) {
					continue
				}
				s.addItem(catalog, resolved, path, s.entrySize(path), rules)
			}

		case ModeGlob:
			s.scanGlob(catalog, resolved, root, desc, rules)
		}
	}

	return catalog
}

func (s *Scanner) scanGlob(catalog *Catalog, resolved map[string]bool, root string, desc Descriptor, rules []TagRule) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Printf("scan: skipping unreadable location %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			// Hidden directories are noise for file-pattern scans.
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		ok, matchErr := filepath.Match(desc.Pattern, d.Name())
		if matchErr != nil || !ok {
			return nil
		}
		if !s.oldEnough(path, desc.MaxAge) {
			return nil
		}
		s.addItem(catalog, resolved, path, s.entrySize(path), rules)
		return nil
	})
	if walkErr != nil {
		s.log.Printf("scan: walk of %s aborted: %v", root, walkErr)
	}
}

// addItem registers one candidate, de-duplicating by resolved path so a
// symlinked root and its target never appear twice.
func (s *Scanner) addItem(catalog *Catalog, resolved map[string]bool, path string, size int64, rules []TagRule) {
	id := filepath.Clean(path)
	key := id
	if r, err := filepath.EvalSymlinks(path); err == nil {
		key = r
	}
	if resolved[key] {
		return
	}
	resolved[key] = true

	catalog.Add(Item{
		ID:        id,
		Label:     id,
		Size:      size,
		Tags:      TagsFor(id, rules),
		Removable: true,
	})
}

// entrySize returns the apparent size of a file or directory. Symlinks
// are counted at their own size, never followed.
func (s *Scanner) entrySize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if info.IsDir() {
		return s.dirSize(path)
	}
	return info.Size()
}

// dirSize sums apparent file sizes under dir. WalkDir does not follow
// symlinks, which keeps the scan inside the declared roots. Unreadable
// subtrees contribute nothing instead of failing the walk.
func (s *Scanner) dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// oldEnough applies the age filter. maxAge == 0 admits everything.
func (s *Scanner) oldEnough(path string, maxAge time.Duration) bool {
	if maxAge == 0 {
		return true
	}
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return s.now().Sub(info.ModTime()) > maxAge
}
