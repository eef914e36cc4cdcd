// Package optcheck probes optional tooling: the docker container
// runtime and its compose plugin, a browser binary, the ollama local
// inference server, and git. Every absence is a Warn, never a Fail.
package optcheck

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/cmdrunner"
)

// Category is the report grouping for optional-dependency outcomes.
const Category = "Optional Dependencies"

// OllamaURL is the well-known local inference server endpoint.
const OllamaURL = "http://127.0.0.1:11434/"

// browserNames are candidate browser binaries searched on PATH.
var browserNames = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}

// browserPaths are known install locations searched when no binary is on
// PATH.
var browserPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	"/usr/bin/google-chrome",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
}

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FileStater abstracts file stat for the browser path search.
type FileStater interface {
	Stat(path string) (os.FileInfo, error)
}

// RealFileStater uses actual os.Stat.
type RealFileStater struct{}

func (r *RealFileStater) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Probe checks for optional tooling.
type Probe struct {
	Runner  cmdrunner.Runner
	Client  HTTPClient
	Stater  FileStater
	Timeout time.Duration
}

// New creates a Probe using real OS commands and a short-timeout HTTP
// client for the local inference probe.
func New() *Probe {
	return &Probe{
		Runner: &cmdrunner.RealRunner{},
		Client: &http.Client{Timeout: 2 * time.Second},
		Stater: &RealFileStater{},
	}
}

func (p *Probe) Name() string { return "optional-deps" }

// Run executes all optional-tool checks.
func (p *Probe) Run(_ *check.Env) []check.Outcome {
	outcomes := []check.Outcome{
		p.docker(),
		p.compose(),
		p.browser(),
		p.tool("Git", "git", "version control; needed for workspace history"),
		p.tool("Ollama", "ollama", "local model inference; install from https://ollama.com"),
	}
	outcomes = append(outcomes, p.ollamaServer())
	return outcomes
}

func (p *Probe) docker() check.Outcome {
	if _, err := p.Runner.LookPath("docker"); err != nil {
		return check.Warned(Category, "Docker", "docker not found (optional)").
			WithDetail("needed only for sandboxed tool execution")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, _, err := p.Runner.Run(ctx, "docker", "--version")
	if err != nil {
		return check.Warned(Category, "Docker", "docker found but not responding").
			WithDetailf("docker --version failed: %v", err)
	}
	return check.Passf(Category, "Docker", "%s", strings.TrimSpace(stdout))
}

func (p *Probe) compose() check.Outcome {
	if _, err := p.Runner.LookPath("docker"); err != nil {
		return check.Warned(Category, "Docker Compose", "docker not installed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, _, err := p.Runner.Run(ctx, "docker", "compose", "version")
	if err != nil {
		return check.Warned(Category, "Docker Compose", "compose plugin not available (optional)")
	}
	return check.Passf(Category, "Docker Compose", "%s", strings.TrimSpace(stdout))
}

// browser searches PATH first, then the known absolute install paths.
func (p *Probe) browser() check.Outcome {
	for _, name := range browserNames {
		if path, err := p.Runner.LookPath(name); err == nil {
			return check.Passf(Category, "Browser", "found %s at %s", name, path)
		}
	}
	for _, path := range browserPaths {
		if _, err := p.Stater.Stat(path); err == nil {
			return check.Passf(Category, "Browser", "found at %s", path)
		}
	}
	return check.Warned(Category, "Browser", "no Chrome/Chromium install found (optional)").
		WithDetail("needed only for browser automation tools")
}

func (p *Probe) tool(name, binary, hint string) check.Outcome {
	path, err := p.Runner.LookPath(binary)
	if err != nil {
		return check.Warnf(Category, name, "%s not found (optional)", binary).WithDetail(hint)
	}
	return check.Passf(Category, name, "found at %s", path)
}

// ollamaServer probes the local inference HTTP endpoint. Unreachable is
// a Warn: the binary may be installed but the server not started.
func (p *Probe) ollamaServer() check.Outcome {
	req, err := http.NewRequest(http.MethodHead, OllamaURL, nil)
	if err != nil {
		return check.Warned(Category, "Ollama Server", "could not build local probe request").
			WithDetailf("error: %v", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return check.Warnf(Category, "Ollama Server", "not responding at %s (optional)", OllamaURL).
			WithDetail("start with: ollama serve")
	}
	_ = resp.Body.Close()
	return check.Passf(Category, "Ollama Server", "responding at %s (HTTP %d)", OllamaURL, resp.StatusCode)
}

func (p *Probe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return cmdrunner.DefaultTimeout
}
