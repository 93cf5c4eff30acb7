package cleaner

import "path/filepath"

// TagRule maps a base-name glob pattern to the tags applied to matching
// items. The scanner consults this table instead of branching on known
// directory names, so new cache rules are added here only.
type TagRule struct {
	Pattern string
	Tags    []string
}

// DefaultTagRules covers the resource names the cleanup steps produce.
var DefaultTagRules = []TagRule{
	{Pattern: "*.AppImage", Tags: []string{TagExecutable}},
	{Pattern: "*.appimage", Tags: []string{TagExecutable}},
	{Pattern: "thumbnails", Tags: []string{TagRebuildable}},
	{Pattern: "mozilla", Tags: []string{TagRebuildable}},
	{Pattern: "chromium", Tags: []string{TagRebuildable}},
	{Pattern: "google-chrome", Tags: []string{TagRebuildable}},
	{Pattern: "Cache*", Tags: []string{TagRebuildable}},
	{Pattern: "pip", Tags: []string{TagCritical, TagRebuildable}},
	{Pattern: "yarn", Tags: []string{TagCritical, TagRebuildable}},
	{Pattern: "go-build", Tags: []string{TagRebuildable}},
	{Pattern: "Trash", Tags: []string{TagCritical}},
}

// TagsFor returns the tags every matching rule contributes for a resource
// name. Patterns are matched against the base name only.
func TagsFor(name string, rules []TagRule) []string {
	base := filepath.Base(name)

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range rules {
		ok, err := filepath.Match(rule.Pattern, base)
		if err != nil || !ok {
			continue
		}
		for _, tag := range rule.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
