//go:build darwin

package rescheck

import (
	"fmt"
	"syscall"
)

// TotalMemory returns total memory on macOS via sysctl.
func (r *RealReader) TotalMemory() (uint64, error) {
	return syscall.SysctlUint64("hw.memsize")
}

// FreeMemory is not cheaply available on macOS without linking against
// mach APIs; the probe degrades this to a Warn with an explanation.
func (r *RealReader) FreeMemory() (uint64, error) {
	return 0, fmt.Errorf("free memory detection not supported on darwin")
}

// FreeDiskSpace returns free disk space in bytes.
func (r *RealReader) FreeDiskSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// LoadAverage is reported only on Linux.
func (r *RealReader) LoadAverage() (float64, error) {
	return 0, fmt.Errorf("load average not supported on darwin")
}
