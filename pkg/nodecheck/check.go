// Package nodecheck probes the Node.js runtime environment: the node
// binary itself, its version against the supported minimum, and the npm
// and pnpm package managers.
package nodecheck

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/cmdrunner"
)

// Category is the report grouping for runtime-environment outcomes.
const Category = "Node.js Environment"

var versionRe = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Probe verifies the Node.js runtime and its package managers.
type Probe struct {
	Runner  cmdrunner.Runner
	Timeout time.Duration // per version command (default cmdrunner.DefaultTimeout)
}

// New creates a Probe using real OS commands.
func New() *Probe {
	return &Probe{Runner: &cmdrunner.RealRunner{}}
}

func (p *Probe) Name() string { return "node-runtime" }

// Run executes the runtime checks. node and npm are hard dependencies
// (Fail when absent), pnpm is optional (Warn when absent).
func (p *Probe) Run(env *check.Env) []check.Outcome {
	var outcomes []check.Outcome

	nodePath, err := p.Runner.LookPath("node")
	if err != nil {
		outcomes = append(outcomes,
			check.Failed(Category, "Node.js Installed", "node not found in PATH").
				WithDetail("install Node.js "+env.MinNodeVersion+" or newer from https://nodejs.org"))
	} else {
		outcomes = append(outcomes,
			check.Passf(Category, "Node.js Installed", "found at %s", nodePath))
		outcomes = append(outcomes, p.nodeVersion(env))
	}

	if npmPath, err := p.Runner.LookPath("npm"); err != nil {
		outcomes = append(outcomes,
			check.Failed(Category, "npm Installed", "npm not found in PATH").
				WithDetail("npm ships with Node.js; reinstall Node.js to restore it"))
	} else {
		outcomes = append(outcomes,
			check.Passf(Category, "npm Installed", "found at %s", npmPath))
	}

	if _, err := p.Runner.LookPath("pnpm"); err != nil {
		outcomes = append(outcomes,
			check.Warned(Category, "pnpm Installed", "pnpm not found (optional)").
				WithDetail("install with: npm install -g pnpm"))
	} else {
		outcomes = append(outcomes,
			check.Passed(Category, "pnpm Installed", "found in PATH"))
	}

	return outcomes
}

// nodeVersion runs `node --version` and compares against the minimum.
func (p *Probe) nodeVersion(env *check.Env) check.Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, stderr, err := p.Runner.Run(ctx, "node", "--version")
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return check.Warnf(Category, "Node.js Version", "version command timed out after %s", p.timeout())
		}
		return check.Warned(Category, "Node.js Version", "could not determine version").
			WithDetailf("node --version failed: %v", err)
	}

	raw := strings.TrimSpace(stdout)
	if raw == "" {
		raw = strings.TrimSpace(stderr)
	}
	current, ok := ParseVersion(raw)
	if !ok {
		return check.Warnf(Category, "Node.js Version", "unrecognized version output %q", raw)
	}

	minimum, err := semver.NewVersion(env.MinNodeVersion)
	if err != nil {
		return check.Warnf(Category, "Node.js Version", "invalid minimum version %q", env.MinNodeVersion)
	}

	if current.LessThan(minimum) {
		return check.Failf(Category, "Node.js Version", "version %s is below minimum %s", current, minimum).
			WithDetail("upgrade Node.js: https://nodejs.org/en/download")
	}
	return check.Passf(Category, "Node.js Version", "version %s (minimum %s)", current, minimum)
}

func (p *Probe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return cmdrunner.DefaultTimeout
}

// ParseVersion extracts the first X.Y.Z semver from arbitrary version
// command output such as "v22.3.0".
func ParseVersion(output string) (*semver.Version, bool) {
	m := versionRe.FindString(output)
	if m == "" {
		return nil, false
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, false
	}
	return v, true
}
