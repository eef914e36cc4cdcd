// Package netcheck probes external network reachability: HTTP HEAD
// requests to the provider APIs and the npm registry, plus system proxy
// detection. Any HTTP response counts as reachable; only a connection-
// level failure is a Fail.
package netcheck

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

// Category is the report grouping for reachability outcomes.
const Category = "Network Connectivity"

// RequestTimeout bounds each HEAD request.
const RequestTimeout = 3 * time.Second

// maxInFlight caps concurrent reachability requests.
const maxInFlight = 4

// Endpoint is one external host probed for reachability.
type Endpoint struct {
	Name string
	URL  string
}

// DefaultEndpoints are the provider APIs and the package registry the
// product depends on.
var DefaultEndpoints = []Endpoint{
	{Name: "Anthropic API", URL: "https://api.anthropic.com"},
	{Name: "OpenAI API", URL: "https://api.openai.com"},
	{Name: "OpenRouter API", URL: "https://openrouter.ai/api/v1"},
	{Name: "npm Registry", URL: "https://registry.npmjs.org"},
}

// proxyVars are the conventional proxy environment variables, checked in
// both cases.
var proxyVars = []string{"HTTPS_PROXY", "HTTP_PROXY", "NO_PROXY", "https_proxy", "http_proxy", "no_proxy"}

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Probe checks reachability of the default endpoints and reports proxy
// configuration.
type Probe struct {
	Client    HTTPClient
	Getter    check.EnvGetter
	Endpoints []Endpoint // defaults to DefaultEndpoints
}

// New creates a Probe with a short-timeout real HTTP client.
func New() *Probe {
	return &Probe{
		Client: &http.Client{Timeout: RequestTimeout},
		Getter: &check.RealEnvGetter{},
	}
}

func (p *Probe) Name() string { return "network" }

// Run fans the HEAD requests out concurrently, then emits outcomes in
// endpoint-list order followed by the proxy report.
func (p *Probe) Run(_ *check.Env) []check.Outcome {
	endpoints := p.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}

	results := make([]check.Outcome, len(endpoints))
	var g errgroup.Group
	g.SetLimit(maxInFlight)

	for i, ep := range endpoints {
		i, ep := i, ep
		g.Go(func() error {
			results[i] = p.head(ep)
			return nil
		})
	}
	_ = g.Wait()

	return append(results, p.proxy())
}

func (p *Probe) head(ep Endpoint) check.Outcome {
	req, err := http.NewRequest(http.MethodHead, ep.URL, nil)
	if err != nil {
		return check.Failf(Category, ep.Name, "invalid endpoint URL %s", ep.URL).
			WithDetailf("error: %v", err)
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return check.Failf(Category, ep.Name, "unreachable: %s", ep.URL).
			WithDetailf("connection error: %v", err)
	}
	_ = resp.Body.Close()

	// Any HTTP status, including errors, proves the host is reachable.
	return check.Passf(Category, ep.Name, "reachable (HTTP %d, %s)",
		resp.StatusCode, time.Since(start).Round(time.Millisecond))
}

// proxy reports configured proxy variables; always informational.
func (p *Probe) proxy() check.Outcome {
	var configured []string
	for _, name := range proxyVars {
		if value, ok := p.Getter.LookupEnv(name); ok && value != "" {
			configured = append(configured, name+"="+value)
		}
	}
	if len(configured) == 0 {
		return check.Passed(Category, "Proxy Configuration", "no system proxy configured")
	}
	return check.Passf(Category, "Proxy Configuration", "proxy configured (%d variables)", len(configured)).
		WithDetail(strings.Join(configured, "\n"))
}
