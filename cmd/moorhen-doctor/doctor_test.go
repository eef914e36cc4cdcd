package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/cmdrunner"
	"github.com/moorhenlabs/moorhen-doctor/pkg/nodecheck"
	"github.com/moorhenlabs/moorhen-doctor/pkg/report"
)

type stubProbe struct {
	name     string
	outcomes []check.Outcome
}

func (p *stubProbe) Name() string                     { return p.name }
func (p *stubProbe) Run(_ *check.Env) []check.Outcome { return p.outcomes }

// Missing Node.js runtime: the probe fails, but every other category
// still runs and the run classifies as needs attention with exit code 1.
func TestScenario_MissingRuntime(t *testing.T) {
	noNode := &nodecheck.Probe{Runner: &cmdrunner.MockRunner{
		LookPathFunc: func(file string) (string, error) {
			return "", errors.New("not found")
		},
	}}

	agg := check.NewAggregator()
	var buf bytes.Buffer
	printer := &report.Printer{Out: &buf, Width: 40}

	runner := &check.Runner{
		Categories: []check.Category{
			{Name: nodecheck.Category, Probes: []check.Probe{noNode}},
			{Name: "Configuration", Probes: []check.Probe{
				&stubProbe{name: "config", outcomes: []check.Outcome{
					check.Passed("Configuration", "Config Syntax", "parses cleanly"),
				}},
			}},
			{Name: "System Resources", Probes: []check.Probe{
				&stubProbe{name: "resources", outcomes: []check.Outcome{
					check.Passed("System Resources", "CPU", "8 cores"),
				}},
			}},
		},
		Agg:        agg,
		OnCategory: printer.Category,
		OnOutcome:  printer.Outcome,
	}

	runner.Run(&check.Env{MinNodeVersion: "22.0.0"})
	summary := report.Build(agg)
	printer.Summary(summary)

	// exactly one Fail for the missing runtime binary
	installFails := 0
	for _, o := range summary.Failures {
		if o.Name == "Node.js Installed" {
			installFails++
		}
	}
	assert.Equal(t, 1, installFails)

	// the other categories still ran and were recorded
	assert.GreaterOrEqual(t, summary.Totals.Total, 3)
	assert.Contains(t, buf.String(), "Config Syntax")
	assert.Contains(t, buf.String(), "CPU")

	assert.Equal(t, report.StatusNeedsAttention, summary.Status)
	assert.Equal(t, 1, summary.ExitCode())
}

// Warnings alone keep the exit code at zero regardless of count.
func TestScenario_WarningsOnlyStatus(t *testing.T) {
	makeAgg := func(warns int) *check.Aggregator {
		agg := check.NewAggregator()
		agg.Record(check.Passed("A", "ok", "fine"))
		for i := 0; i < warns; i++ {
			agg.Record(check.Warned("A", "warn", "meh"))
		}
		return agg
	}

	two := report.Build(makeAgg(2))
	assert.Equal(t, report.StatusHealthy, two.Status)
	assert.Equal(t, 0, two.ExitCode())

	four := report.Build(makeAgg(4))
	assert.Equal(t, report.StatusFunctional, four.Status)
	assert.Equal(t, 0, four.ExitCode())
}
