// Package configcheck probes the moorhen configuration on disk: the
// JSONC config file, the .env file, and the workspace and memory
// directories.
package configcheck

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

// Category is the report grouping for configuration outcomes.
const Category = "Configuration"

// Probe inspects the configuration directory contents.
type Probe struct {
	FS FileSystem
}

// New creates a Probe using the real filesystem.
func New() *Probe {
	return &Probe{FS: &RealFileSystem{}}
}

func (p *Probe) Name() string { return "configuration" }

// Run executes the configuration checks. Missing files and directories
// are Warn (this may be the first run); a config syntax error is Fail.
func (p *Probe) Run(env *check.Env) []check.Outcome {
	var outcomes []check.Outcome

	outcomes = append(outcomes, p.configFile(env)...)
	outcomes = append(outcomes, p.envFile(env))
	outcomes = append(outcomes, p.dir(env.WorkspaceDir, "Workspace Directory",
		"create it or set MOORHEN_WORKSPACE"))
	outcomes = append(outcomes, p.memoryDir(env))

	return outcomes
}

// configFile validates existence, JSONC syntax and the execution mode.
func (p *Probe) configFile(env *check.Env) []check.Outcome {
	if _, err := p.FS.Stat(env.ConfigFile); err != nil {
		return []check.Outcome{
			check.Warnf(Category, "Config File", "%s not found (first run?)", env.ConfigFile).
				WithDetail("run `moorhen setup` to create the default configuration"),
		}
	}

	content, err := p.FS.ReadFile(env.ConfigFile)
	if err != nil {
		return []check.Outcome{
			check.Failf(Category, "Config File", "cannot read %s", env.ConfigFile).
				WithDetailf("read error: %v", err),
		}
	}

	jsonStr := string(StripComments(content))
	if !gjson.Valid(jsonStr) {
		return []check.Outcome{
			check.Failf(Category, "Config Syntax", "%s is not valid JSON", env.ConfigFile).
				WithDetail("comments (// and /* */) are allowed; check for trailing commas or unclosed braces"),
		}
	}

	outcomes := []check.Outcome{
		check.Passf(Category, "Config Syntax", "%s parses cleanly", env.ConfigFile),
	}

	mode := gjson.Get(jsonStr, "mode")
	switch {
	case !mode.Exists():
		outcomes = append(outcomes,
			check.Passed(Category, "Execution Mode", "mode not set (default: local)"))
	case mode.String() == "local":
		outcomes = append(outcomes,
			check.Passed(Category, "Execution Mode", `mode is "local"`))
	default:
		outcomes = append(outcomes,
			check.Warnf(Category, "Execution Mode", "mode is %q, expected \"local\"", mode.String()).
				WithDetail("non-local modes delegate execution elsewhere; local diagnostics may not apply"))
	}

	return outcomes
}

func (p *Probe) envFile(env *check.Env) check.Outcome {
	if _, err := p.FS.Stat(env.EnvFile); err != nil {
		return check.Warnf(Category, "Env File", "%s not found", env.EnvFile).
			WithDetail("optional; used for per-install credential overrides")
	}
	return check.Passf(Category, "Env File", "%s present", env.EnvFile)
}

func (p *Probe) dir(path, name, hint string) check.Outcome {
	info, err := p.FS.Stat(path)
	if err != nil {
		return check.Warnf(Category, name, "%s not found", path).WithDetail(hint)
	}
	if !info.IsDir() {
		return check.Failf(Category, name, "%s exists but is not a directory", path)
	}
	return check.Passf(Category, name, "%s present", path)
}

// memoryDir reports the memory directory and its database file count.
func (p *Probe) memoryDir(env *check.Env) check.Outcome {
	info, err := p.FS.Stat(env.MemoryDir)
	if err != nil {
		return check.Warnf(Category, "Memory Directory", "%s not found", env.MemoryDir).
			WithDetail("created automatically on first gateway start")
	}
	if !info.IsDir() {
		return check.Failf(Category, "Memory Directory", "%s exists but is not a directory", env.MemoryDir)
	}

	entries, err := p.FS.ReadDir(env.MemoryDir)
	if err != nil {
		return check.Warnf(Category, "Memory Directory", "%s present but unreadable", env.MemoryDir).
			WithDetailf("read error: %v", err)
	}

	dbCount := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".db") {
			dbCount++
		}
	}
	return check.Passf(Category, "Memory Directory", "%s present (%d database files)", env.MemoryDir, dbCount)
}
