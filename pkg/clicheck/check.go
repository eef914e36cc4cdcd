// Package clicheck probes the moorhen installation: the CLI binary on
// PATH, its reported version, and the global npm package.
package clicheck

import (
	"context"
	"strings"
	"time"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/cmdrunner"
)

// Category is the report grouping for installation outcomes.
const Category = "Moorhen Installation"

// Probe verifies the product CLI is installed and responsive.
type Probe struct {
	Runner  cmdrunner.Runner
	Timeout time.Duration
}

// New creates a Probe using real OS commands.
func New() *Probe {
	return &Probe{Runner: &cmdrunner.RealRunner{}}
}

func (p *Probe) Name() string { return "moorhen-cli" }

// Run executes the installation checks. A missing CLI is a Fail (little
// else can work without it) but never aborts the run.
func (p *Probe) Run(env *check.Env) []check.Outcome {
	var outcomes []check.Outcome

	cliPath, err := p.Runner.LookPath("moorhen")
	if err != nil {
		outcomes = append(outcomes,
			check.Failed(Category, "Moorhen CLI", "moorhen not found in PATH").
				WithDetail("install with: npm install -g moorhen"))
	} else {
		outcomes = append(outcomes,
			check.Passf(Category, "Moorhen CLI", "found at %s", cliPath))
		outcomes = append(outcomes, p.cliVersion())
	}

	outcomes = append(outcomes, p.globalPackage())
	return outcomes
}

func (p *Probe) cliVersion() check.Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, stderr, err := p.Runner.Run(ctx, "moorhen", "--version")
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return check.Warnf(Category, "CLI Version", "version command timed out after %s", p.timeout())
		}
		return check.Warned(Category, "CLI Version", "could not determine version").
			WithDetailf("moorhen --version failed: %v", err)
	}

	version := strings.TrimSpace(stdout)
	if version == "" {
		version = strings.TrimSpace(stderr)
	}
	if version == "" {
		return check.Warned(Category, "CLI Version", "version command produced no output")
	}
	return check.Passf(Category, "CLI Version", "version %s", version)
}

// globalPackage checks whether moorhen is installed globally via npm.
// Absence is a Warn: the CLI may legitimately come from another install
// channel, but a missing global package usually means a broken upgrade.
func (p *Probe) globalPackage() check.Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, _, err := p.Runner.Run(ctx, "npm", "ls", "-g", "--depth=0", "moorhen")
	if err != nil || !strings.Contains(stdout, "moorhen@") {
		return check.Warned(Category, "Global npm Package", "moorhen is not installed globally via npm").
			WithDetail("install with: npm install -g moorhen")
	}
	return check.Passed(Category, "Global npm Package", "moorhen is installed globally")
}

func (p *Probe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return cmdrunner.DefaultTimeout
}
