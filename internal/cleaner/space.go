package cleaner

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
)

// SpaceSample is the available space on the primary reclaimable
// filesystem at one point in time.
type SpaceSample struct {
	AvailableBytes uint64
	At             time.Time
}

// Accountant measures free space before and after cleanup operations.
type Accountant struct {
	path  string
	usage func(string) (*disk.UsageStat, error)
	now   func() time.Time
}

// NewAccountant creates an accountant for the filesystem containing path.
// An empty path measures the root filesystem.
func NewAccountant(path string) *Accountant {
	if path == "" {
		path = "/"
	}
	return &Accountant{
		path:  path,
		usage: disk.Usage,
		now:   time.Now,
	}
}

// Sample returns the currently available space.
func (a *Accountant) Sample() (SpaceSample, error) {
	stat, err := a.usage(a.path)
	if err != nil {
		return SpaceSample{}, fmt.Errorf("failed to sample free space on %s: %w", a.path, err)
	}
	return SpaceSample{AvailableBytes: stat.Free, At: a.now()}, nil
}

// Delta returns after minus before in bytes. A negative delta is a valid
// result: other processes consume space concurrently with cleanup.
func Delta(before, after SpaceSample) int64 {
	return int64(after.AvailableBytes) - int64(before.AvailableBytes)
}

// DescribeDelta renders a space delta for the summary line. Non-positive
// deltas are reported as no significant change, never as an error.
func DescribeDelta(delta int64) string {
	if delta <= 0 {
		return "no significant space change"
	}
	return fmt.Sprintf("freed %s", FormatBytes(delta))
}
