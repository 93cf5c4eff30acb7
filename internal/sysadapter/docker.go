package sysadapter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

// Docker wraps the docker CLI for the container cleanup step.
type Docker struct {
	*Base
}

// NewDocker creates the Docker adapter.
func NewDocker(run Runner) *Docker {
	return &Docker{Base: NewBase("docker", "Docker", "docker", run)}
}

// Ping verifies the daemon answers. An unreachable daemon is reported as
// a recoverable condition.
func (d *Docker) Ping(ctx context.Context) error {
	if !d.IsAvailable() {
		return ErrToolUnavailable
	}
	if _, err := d.run.OutputQuiet(ctx, d.Binary(), "info", "--format", "{{.ServerVersion}}"); err != nil {
		return fmt.Errorf("%w: %v", ErrDaemonUnreachable, err)
	}
	return nil
}

// DanglingImages lists untagged images left behind by rebuilds.
func (d *Docker) DanglingImages(ctx context.Context) ([]cleaner.Item, error) {
	out, err := d.run.Output(ctx, d.Binary(), "images",
		"--filter", "dangling=true",
		"--format", "{{.ID}}\t{{.Repository}}:{{.Tag}}\t{{.Size}}")
	if err != nil {
		return nil, fmt.Errorf("failed to list dangling images: %w", err)
	}
	return parseDockerTable(out, "image"), nil
}

// StoppedContainers lists exited and created containers.
func (d *Docker) StoppedContainers(ctx context.Context) ([]cleaner.Item, error) {
	out, err := d.run.Output(ctx, d.Binary(), "ps", "-a",
		"--filter", "status=exited", "--filter", "status=created",
		"--format", "{{.ID}}\t{{.Names}}\t{{.Size}}")
	if err != nil {
		return nil, fmt.Errorf("failed to list stopped containers: %w", err)
	}
	return parseDockerTable(out, "container"), nil
}

// UnusedVolumes lists volumes no container references. Volume sizes are
// not reported by the CLI listing, so they carry size zero.
func (d *Docker) UnusedVolumes(ctx context.Context) ([]cleaner.Item, error) {
	out, err := d.run.Output(ctx, d.Binary(), "volume", "ls", "-q", "--filter", "dangling=true")
	if err != nil {
		return nil, fmt.Errorf("failed to list unused volumes: %w", err)
	}

	var items []cleaner.Item
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		items = append(items, cleaner.Item{
			ID:        name,
			Label:     "volume " + name,
			Removable: true,
		})
	}
	return items, nil
}

// RemoveImage deletes one image by ID.
func (d *Docker) RemoveImage(ctx context.Context, id string) error {
	return d.run.Run(ctx, d.Binary(), "rmi", id)
}

// RemoveContainer deletes one stopped container by ID.
func (d *Docker) RemoveContainer(ctx context.Context, id string) error {
	return d.run.Run(ctx, d.Binary(), "rm", id)
}

// RemoveVolume deletes one volume by name.
func (d *Docker) RemoveVolume(ctx context.Context, name string) error {
	return d.run.Run(ctx, d.Binary(), "volume", "rm", name)
}

// PruneBuildCache drops the builder cache.
func (d *Docker) PruneBuildCache(ctx context.Context) error {
	return d.run.Run(ctx, d.Binary(), "builder", "prune", "-f")
}

// parseDockerTable parses "id\tlabel\tsize" rows from docker --format
// output.
func parseDockerTable(output, kind string) []cleaner.Item {
	var items []cleaner.Item

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 || fields[0] == "" {
			continue
		}

		item := cleaner.Item{
			ID:        fields[0],
			Label:     kind + " " + fields[1],
			Removable: true,
		}
		if len(fields) >= 3 {
			item.Size = parseDockerSize(fields[2])
		}
		items = append(items, item)
	}
	return items
}

// parseDockerSize converts docker's human sizes ("1.23GB", "456MB",
// "0B (virtual 1.2GB)") to bytes. Unparseable sizes become zero.
func parseDockerSize(s string) int64 {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}

	units := []struct {
		suffix string
		factor float64
	}{
		{"TB", 1e12}, {"GB", 1e9}, {"MB", 1e6}, {"kB", 1e3}, {"KB", 1e3}, {"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			num := strings.TrimSuffix(s, u.suffix)
			f, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0
			}
			return int64(f * u.factor)
		}
	}
	return 0
}
