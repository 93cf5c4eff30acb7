package cleaner

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrRunningKernelUnknown is returned when the booted kernel cannot be
// matched against the installed kernel images. The engine fails closed:
// no kernel becomes a removal candidate.
var ErrRunningKernelUnknown = errors.New("running kernel could not be determined")

// ErrRetentionViolation is returned when a computed plan would remove the
// running kernel or leave no fallback. It cannot occur by construction and
// aborts the kernel step if it ever does.
var ErrRetentionViolation = errors.New("kernel retention invariant violated")

// KernelVersion is an orderable kernel version key, e.g. the
// "5.15.0-91-generic" part of linux-image-5.15.0-91-generic.
type KernelVersion struct {
	Raw    string
	Parts  []int  // numeric components: major, minor, patch, ABI build
	Suffix string // flavor suffix, e.g. "generic"
}

// ParseKernelVersion splits a version string into numeric components and
// a trailing flavor suffix. Leading tokens that parse as integers become
// components; the first non-numeric token starts the suffix.
func ParseKernelVersion(raw string) KernelVersion {
	v := KernelVersion{Raw: raw}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '-'
	})
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			v.Suffix = strings.Join(tokens[i:], "-")
			break
		}
		v.Parts = append(v.Parts, n)
	}
	return v
}

// Compare orders versions component-wise, treating missing components as
// zero, and falls back to lexical comparison of the suffix.
func (v KernelVersion) Compare(o KernelVersion) int {
	n := len(v.Parts)
	if len(o.Parts) > n {
		n = len(o.Parts)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v.Parts) {
			a = v.Parts[i]
		}
		if i < len(o.Parts) {
			b = o.Parts[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(v.Suffix, o.Suffix)
}

func (v KernelVersion) String() string {
	return v.Raw
}

// KernelEntry is one installed kernel version with its full package
// family. Removal is atomic per entry: either the whole family goes or
// the entry is reported failed.
type KernelEntry struct {
	Version KernelVersion
	Package string   // the linux-image package
	Related []string // headers, modules, extras for the same version
	Running bool
	Size    int64 // summed installed size of the family
}

// Family returns every package belonging to this kernel version.
func (e KernelEntry) Family() []string {
	return append([]string{e.Package}, e.Related...)
}

// RetentionPlan classifies installed kernels under the retention
// invariant: the running kernel and the most recent other version are
// always kept.
type RetentionPlan struct {
	Keep       []KernelEntry
	Candidates []KernelEntry
}

// PlanRetention builds the retention plan for the installed kernel
// entries given the booted kernel version string (as from uname -r).
//
// The running version is never a candidate. Of the remaining versions the
// single most recent one is a mandatory safety keep; everything older is
// a candidate. With fewer than two non-running versions there is nothing
// to remove. An empty or unmatched running version fails closed.
func PlanRetention(entries []KernelEntry, running string) (RetentionPlan, error) {
	plan := RetentionPlan{}

	if running == "" {
		plan.Keep = append(plan.Keep, entries...)
		return plan, ErrRunningKernelUnknown
	}

	sorted := make([]KernelEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version.Compare(sorted[j].Version) < 0
	})

	matched := false
	var nonRunning []KernelEntry
	for i := range sorted {
		if sorted[i].Version.Raw == running {
			sorted[i].Running = true
			matched = true
			plan.Keep = append(plan.Keep, sorted[i])
			continue
		}
		nonRunning = append(nonRunning, sorted[i])
	}

	if !matched {
		plan = RetentionPlan{Keep: append([]KernelEntry(nil), entries...)}
		return plan, ErrRunningKernelUnknown
	}

	// Fewer than two other versions: the sole other kernel (if any) is
	// the fallback keep, not a candidate.
	if len(nonRunning) < 2 {
		plan.Keep = append(plan.Keep, nonRunning...)
		return plan, nil
	}

	newest := nonRunning[len(nonRunning)-1]
	plan.Keep = append(plan.Keep, newest)
	plan.Candidates = nonRunning[:len(nonRunning)-1]

	if err := plan.validate(running); err != nil {
		return RetentionPlan{Keep: append([]KernelEntry(nil), entries...)}, err
	}
	return plan, nil
}

// validate rechecks the invariant on a computed plan.
func (p RetentionPlan) validate(running string) error {
	for _, c := range p.Candidates {
		if c.Running || c.Version.Raw == running {
			return ErrRetentionViolation
		}
	}
	if len(p.Candidates) > 0 && len(p.Keep) < 2 {
		return ErrRetentionViolation
	}
	return nil
}
