package rescheck

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Reader abstracts system resource detection for testability.
type Reader interface {
	// TotalMemory returns total system memory in bytes. In containers,
	// this respects cgroup limits.
	TotalMemory() (uint64, error)

	// FreeMemory returns currently available memory in bytes.
	FreeMemory() (uint64, error)

	// FreeDiskSpace returns free disk space in bytes at the given path.
	FreeDiskSpace(path string) (uint64, error)

	// LoadAverage returns the one-minute load average.
	LoadAverage() (float64, error)

	// NumCPUs returns the number of available CPUs.
	NumCPUs() int
}

// RealReader implements Reader using actual system calls.
type RealReader struct{}

// NumCPUs returns the number of available CPUs. Go's runtime.NumCPU()
// already respects container CPU limits.
func (r *RealReader) NumCPUs() int {
	return runtime.NumCPU()
}

// readCgroupMemoryLimit reads memory limit from a cgroup file.
func readCgroupMemoryLimit(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content := strings.TrimSpace(string(data))

	// "max" means unlimited in cgroup v2
	if content == "max" {
		return 0, nil
	}

	return strconv.ParseUint(content, 10, 64)
}
