//go:build !linux && !darwin

package rescheck

import "fmt"

func (r *RealReader) TotalMemory() (uint64, error) {
	return 0, fmt.Errorf("total memory detection not supported on this platform")
}

func (r *RealReader) FreeMemory() (uint64, error) {
	return 0, fmt.Errorf("free memory detection not supported on this platform")
}

func (r *RealReader) FreeDiskSpace(path string) (uint64, error) {
	return 0, fmt.Errorf("disk space detection not supported on this platform")
}

func (r *RealReader) LoadAverage() (float64, error) {
	return 0, fmt.Errorf("load average not supported on this platform")
}
