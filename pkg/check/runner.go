package check

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Probe is implemented by all diagnostic probes. Run receives the shared
// read-only execution context and returns zero or more outcomes. A probe
// must degrade internal faults (missing files, unreachable hosts, absent
// tools) into Warn or Fail outcomes rather than panic; the Runner still
// recovers a panicking probe as a last resort.
//
// Implementations:
//   - nodecheck.Probe: Node.js runtime and package managers
//   - clicheck.Probe: moorhen CLI installation
//   - configcheck.Probe: config file, .env, workspace and memory dirs
//   - credcheck.Probe: provider credentials across all sources
//   - portcheck.Probe: gateway/bridge port ownership and connectivity
//   - optcheck.Probe: optional tooling (docker, browser, ollama, git)
//   - netcheck.Probe: external API and registry reachability
//   - rescheck.Probe: memory, disk and CPU resources
//   - envvarcheck.Probe: recognized MOORHEN_* environment variables
type Probe interface {
	Name() string
	Run(env *Env) []Outcome
}

// Category is a named, ordered group of probes. The category order is
// fixed per run and affects only report layout, never correctness.
type Category struct {
	Name   string
	Probes []Probe
}

// Runner drives execution of every registered probe, category by
// category, and records all outcomes in the Aggregator. A fault inside
// one probe never prevents later probes from running.
type Runner struct {
	Categories []Category
	Agg        *Aggregator

	// OnCategory is invoked when a category starts, OnOutcome for every
	// recorded outcome. Both are optional and used for streaming output.
	OnCategory func(name string)
	OnOutcome  func(o Outcome)

	Log logrus.FieldLogger // defaults to the standard logger
}

// Run executes all categories in order and returns the final totals.
func (r *Runner) Run(env *Env) Totals {
	if r.Agg == nil {
		r.Agg = NewAggregator()
	}

	for _, cat := range r.Categories {
		if r.OnCategory != nil {
			r.OnCategory(cat.Name)
		}
		for _, p := range cat.Probes {
			start := time.Now()
			outcomes := r.safeRun(cat.Name, p, env)
			r.log().WithFields(logrus.Fields{
				"probe":    p.Name(),
				"outcomes": len(outcomes),
				"elapsed":  time.Since(start).Round(time.Millisecond),
			}).Debug("probe finished")

			for _, o := range outcomes {
				r.Agg.Record(o)
				if r.OnOutcome != nil {
					r.OnOutcome(o)
				}
			}
		}
	}

	return r.Agg.Totals()
}

// safeRun is the single isolation boundary around probe execution. A
// panic inside a probe becomes one Warn outcome carrying the panic text,
// and the run continues with the next probe.
func (r *Runner) safeRun(category string, p Probe, env *Env) (outcomes []Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log().WithField("probe", p.Name()).Warnf("probe panicked: %v", rec)
			outcomes = []Outcome{
				Warned(category, p.Name(), "probe failed unexpectedly").
					WithDetailf("internal fault: %v", rec),
			}
		}
	}()

	return p.Run(env)
}

func (r *Runner) log() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}
