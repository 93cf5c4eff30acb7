// Package cleaner implements the selective resource reclamation core:
// catalog scanning, kernel retention policy, selection parsing,
// confirmation gating, batch execution and space accounting.
package cleaner

import "fmt"

// Well-known item tags. Tags are assigned by the scanner from the
// declarative rule table in tags.go and consulted when rendering warnings.
const (
	TagCritical    = "critical"
	TagRebuildable = "rebuildable"
	TagExecutable  = "executable"
)

// Item is a single removable resource inside a catalog: a file, a
// directory, a package or a container object.
type Item struct {
	// ID is the unique identifier within a catalog: a filesystem path,
	// package name or object ID.
	ID string

	// Label is what the user sees in listings.
	Label string

	// Size is the item's apparent size in bytes. Never negative.
	Size int64

	Tags      []string
	Removable bool
}

// HasTag reports whether the item carries the given tag.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the enumerated, sized set of removable items produced by one
// scan for one resource class. Catalogs are ephemeral: they live for a
// single cleanup step and are never persisted.
type Catalog struct {
	Class string
	Items []Item

	seen map[string]bool
}

// NewCatalog creates an empty catalog for a resource class.
func NewCatalog(class string) *Catalog {
	return &Catalog{
		Class: class,
		seen:  make(map[string]bool),
	}
}

// Add appends an item, de-duplicating by identifier. A negative size is
// clamped to zero. Returns false if the identifier was already present.
func (c *Catalog) Add(item Item) bool {
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[item.ID] {
		return false
	}
	if item.Size < 0 {
		item.Size = 0
	}
	c.seen[item.ID] = true
	c.Items = append(c.Items, item)
	return true
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.Items)
}

// Empty reports whether the catalog has no items.
func (c *Catalog) Empty() bool {
	return len(c.Items) == 0
}

// TotalSize returns the aggregate size of all items. It is computed from
// the per-item sizes so it stays consistent with partial selections.
func (c *Catalog) TotalSize() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Size
	}
	return total
}

// Pick returns the items addressed by a validated selection.
func (c *Catalog) Pick(sel Selection) []Item {
	items := make([]Item, 0, len(sel.Indices))
	for _, idx := range sel.Indices {
		if idx >= 0 && idx < len(c.Items) {
			items = append(items, c.Items[idx])
		}
	}
	return items
}

// FormatBytes renders a byte count in human-readable form.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
