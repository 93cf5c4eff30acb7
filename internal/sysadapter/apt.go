package sysadapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

// kernelFamilyPrefixes are the package name prefixes that together form
// one kernel version's package family. The image package leads; partial
// removal of a family is never offered to the user.
var kernelFamilyPrefixes = []string{
	"linux-headers-",
	"linux-modules-",
	"linux-modules-extra-",
	"linux-image-extra-",
}

// APT wraps dpkg and apt-get for the package-cache and kernel steps.
type APT struct {
	*Base
}

// NewAPT creates the APT adapter.
func NewAPT(run Runner) *APT {
	return &APT{Base: NewBase("apt", "APT (Debian/Ubuntu)", "apt-get", run)}
}

// RunningKernel returns the booted kernel version as reported by uname.
func (a *APT) RunningKernel(ctx context.Context) (string, error) {
	out, err := a.run.Output(ctx, "uname", "-r")
	if err != nil {
		return "", fmt.Errorf("failed to determine running kernel: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// InstalledKernels lists installed kernel image packages with their full
// package families and summed installed sizes. An entry whose metadata
// cannot be read is dropped, never guessed at.
func (a *APT) InstalledKernels(ctx context.Context) ([]cleaner.KernelEntry, error) {
	out, err := a.run.Output(ctx, "dpkg-query", "-W",
		"-f=${Package}\\t${Status}\\t${Installed-Size}\\n", "linux-image-*")
	if err != nil {
		return nil, fmt.Errorf("failed to query installed kernels: %w", err)
	}

	var entries []cleaner.KernelEntry
	for _, row := range parseDpkgRows(out) {
		version := kernelVersionFromPackage(row.pkg)
		if version == "" {
			// Meta packages like linux-image-generic carry no version.
			continue
		}

		entry := cleaner.KernelEntry{
			Version: cleaner.ParseKernelVersion(version),
			Package: row.pkg,
			Size:    row.size,
		}

		related, relatedSize, err := a.kernelFamily(ctx, version)
		if err != nil {
			// Per-entry metadata failure excludes the entry from
			// candidacy rather than risking a partial family removal.
			continue
		}
		entry.Related = related
		entry.Size += relatedSize

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Version.Compare(entries[j].Version) < 0
	})
	return entries, nil
}

// kernelFamily resolves the headers/modules/extra packages installed for
// one kernel version.
func (a *APT) kernelFamily(ctx context.Context, version string) ([]string, int64, error) {
	var family []string
	var total int64

	for _, prefix := range kernelFamilyPrefixes {
		out, err := a.run.OutputQuiet(ctx, "dpkg-query", "-W",
			"-f=${Package}\\t${Status}\\t${Installed-Size}\\n", prefix+version+"*")
		if err != nil {
			// Exit 1 means no package matches the pattern, so this
			// family member is simply absent. Anything else is a real
			// metadata failure and must disqualify the entry.
			if dpkgNoMatch(err) {
				continue
			}
			return nil, 0, fmt.Errorf("failed to resolve %s%s family: %w", prefix, version, err)
		}
		for _, row := range parseDpkgRows(out) {
			family = append(family, row.pkg)
			total += row.size
		}
	}
	return family, total, nil
}

// PurgeKernel removes one kernel entry's whole package family. A
// simulate-only run is issued first; only if apt accepts the plan is the
// mutating purge executed.
func (a *APT) PurgeKernel(ctx context.Context, entry cleaner.KernelEntry) error {
	family := entry.Family()

	simArgs := append([]string{"-s", "purge"}, family...)
	if _, err := a.run.Output(ctx, a.Binary(), simArgs...); err != nil {
		return fmt.Errorf("dry-run purge of %s failed: %w", entry.Package, err)
	}

	args := append([]string{"-y", "purge"}, family...)
	if err := a.run.RunSudo(ctx, a.Binary(), args...); err != nil {
		return fmt.Errorf("failed to purge %s: %w", entry.Package, err)
	}
	return nil
}

// SimulateAutoremove returns the packages apt would autoremove.
func (a *APT) SimulateAutoremove(ctx context.Context) ([]string, error) {
	out, err := a.run.Output(ctx, a.Binary(), "-s", "autoremove")
	if err != nil {
		return nil, fmt.Errorf("failed to simulate autoremove: %w", err)
	}
	return parseSimulatedRemovals(out), nil
}

// Autoremove removes orphaned dependencies. Used both as its own step
// and as the dependency-cleanup pass after kernel removal.
func (a *APT) Autoremove(ctx context.Context) error {
	return a.run.RunSudo(ctx, a.Binary(), "-y", "autoremove", "--purge")
}

// Clean drops the package file cache; all=false keeps files still
// downloadable (autoclean).
func (a *APT) Clean(ctx context.Context, all bool) error {
	cmd := "autoclean"
	if all {
		cmd = "clean"
	}
	return a.run.RunSudo(ctx, a.Binary(), cmd)
}

// LockActive reports whether another package manager currently holds the
// dpkg lock. This is the health-check precondition before any apt step,
// not a lock of our own.
func (a *APT) LockActive(ctx context.Context) bool {
	locks := []string{
		"/var/lib/dpkg/lock-frontend",
		"/var/lib/dpkg/lock",
		"/var/lib/apt/lists/lock",
	}
	for _, lock := range locks {
		// fuser exits zero when a process holds the file.
		if _, err := a.run.OutputQuiet(ctx, "fuser", lock); err == nil {
			return true
		}
	}
	return false
}

// dpkgNoMatch reports whether a dpkg-query error only means that no
// installed package matched the pattern. dpkg-query exits 1 for that
// case and 2 for real failures like an unreadable status database.
func dpkgNoMatch(err error) bool {
	var exit *exec.ExitError
	return errors.As(err, &exit) && exit.ExitCode() == 1
}

type dpkgRow struct {
	pkg  string
	size int64 // bytes
}

// parseDpkgRows parses "package\tstatus\tinstalled-size" rows, keeping
// only installed packages. Installed-Size is reported in KiB.
func parseDpkgRows(output string) []dpkgRow {
	var rows []dpkgRow

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		if !strings.Contains(fields[1], "installed") ||
			strings.Contains(fields[1], "not-installed") ||
			strings.Contains(fields[1], "deinstall") {
			continue
		}

		row := dpkgRow{pkg: fields[0]}
		if len(fields) >= 3 {
			if kb, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64); err == nil {
				row.size = kb * 1024
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// parseSimulatedRemovals extracts package names from "Remv pkg [version]"
// lines of apt-get -s output.
func parseSimulatedRemovals(output string) []string {
	var packages []string

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Remv ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			packages = append(packages, fields[1])
		}
	}
	return packages
}

// kernelVersionFromPackage extracts the version key from a kernel image
// package name, e.g. linux-image-5.15.0-91-generic -> 5.15.0-91-generic.
// Returns "" for meta packages without an embedded version.
func kernelVersionFromPackage(pkg string) string {
	rest := strings.TrimPrefix(pkg, "linux-image-")
	rest = strings.TrimPrefix(rest, "unsigned-")
	if rest == pkg || rest == "" {
		return ""
	}
	// A real version starts with a digit; meta packages (generic,
	// virtual, lowlatency) do not.
	if rest[0] < '0' || rest[0] > '9' {
		return ""
	}
	return rest
}
