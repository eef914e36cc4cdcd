// Package rescheck probes system resources: memory and disk against the
// run's thresholds, plus informational CPU identification.
package rescheck

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

// Category is the report grouping for resource outcomes.
const Category = "System Resources"

// Probe classifies system resources against the context thresholds.
type Probe struct {
	Reader Reader
}

// New creates a Probe using real system calls.
func New() *Probe {
	return &Probe{Reader: &RealReader{}}
}

func (p *Probe) Name() string { return "resources" }

// Run executes the resource checks. Disk space on the configuration
// volume is the only three-way classification; memory shortfalls are
// Warn, and CPU information is always Pass.
func (p *Probe) Run(env *check.Env) []check.Outcome {
	return []check.Outcome{
		p.totalMemory(env),
		p.freeMemory(env),
		p.disk(env),
		p.cpu(),
	}
}

func (p *Probe) totalMemory(env *check.Env) check.Outcome {
	total, err := p.Reader.TotalMemory()
	if err != nil {
		return check.Warned(Category, "Total Memory", "could not determine total memory").
			WithDetailf("error: %v", err)
	}
	if total < env.MinTotalMemory {
		return check.Warnf(Category, "Total Memory", "%s is below the recommended %s",
			FormatSize(total), FormatSize(env.MinTotalMemory)).
			WithDetail("the gateway may be killed under memory pressure")
	}
	return check.Passf(Category, "Total Memory", "%s (minimum %s)",
		FormatSize(total), FormatSize(env.MinTotalMemory))
}

func (p *Probe) freeMemory(env *check.Env) check.Outcome {
	free, err := p.Reader.FreeMemory()
	if err != nil {
		return check.Warned(Category, "Free Memory", "could not determine free memory").
			WithDetailf("error: %v", err)
	}
	if free < env.MinFreeMemory {
		return check.Warnf(Category, "Free Memory", "%s available, below the recommended %s",
			FormatSize(free), FormatSize(env.MinFreeMemory))
	}
	return check.Passf(Category, "Free Memory", "%s available", FormatSize(free))
}

// disk applies the three-way threshold on the volume hosting the
// configuration directory.
func (p *Probe) disk(env *check.Env) check.Outcome {
	free, err := p.Reader.FreeDiskSpace(env.ConfigDir)
	if err != nil {
		// the config dir may not exist yet; fall back to the current volume
		free, err = p.Reader.FreeDiskSpace(".")
	}
	if err != nil {
		return check.Warned(Category, "Free Disk Space", "could not determine free disk space").
			WithDetailf("error: %v", err)
	}

	switch {
	case free < env.DiskFailThreshold:
		return check.Failf(Category, "Free Disk Space", "%s free, below the required %s",
			FormatSize(free), FormatSize(env.DiskFailThreshold)).
			WithDetail("free disk space before starting the gateway; memory databases need room to grow")
	case free < env.DiskPassThreshold:
		return check.Warnf(Category, "Free Disk Space", "%s free, below the recommended %s",
			FormatSize(free), FormatSize(env.DiskPassThreshold))
	default:
		return check.Passf(Category, "Free Disk Space", "%s free", FormatSize(free))
	}
}

// cpu is informational only and always Pass.
func (p *Probe) cpu() check.Outcome {
	brand := strings.TrimSpace(cpuid.CPU.BrandName)
	if brand == "" {
		brand = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	}

	cores := p.Reader.NumCPUs()
	outcome := check.Passf(Category, "CPU", "%s, %d cores", brand, cores)

	if load, err := p.Reader.LoadAverage(); err == nil {
		outcome = outcome.WithDetailf("load average (1m): %.2f", load)
	}
	return outcome
}
