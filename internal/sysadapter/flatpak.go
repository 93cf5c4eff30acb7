package sysadapter

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// Flatpak wraps the flatpak CLI for the unused-runtime step.
type Flatpak struct {
	*Base
}

// NewFlatpak creates the flatpak adapter.
func NewFlatpak(run Runner) *Flatpak {
	return &Flatpak{Base: NewBase("flatpak", "Flatpak", "flatpak", run)}
}

// InstalledRuntimes returns the refs of installed runtimes, used to
// report what the unused-runtime pass may touch.
func (f *Flatpak) InstalledRuntimes(ctx context.Context) ([]string, error) {
	out, err := f.run.Output(ctx, f.Binary(), "list", "--runtime", "--columns=ref")
	if err != nil {
		return nil, fmt.Errorf("failed to list flatpak runtimes: %w", err)
	}

	var refs []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		ref := strings.TrimSpace(scanner.Text())
		if ref != "" && !strings.HasPrefix(ref, "Ref") {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// RemoveUnused uninstalls runtimes no installed application references.
// Flatpak computes the unused set itself.
func (f *Flatpak) RemoveUnused(ctx context.Context) error {
	return f.run.Run(ctx, f.Binary(), "uninstall", "--unused", "-y", "--noninteractive")
}
