package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProbe struct {
	name     string
	outcomes []Outcome
}

func (p *stubProbe) Name() string         { return p.name }
func (p *stubProbe) Run(_ *Env) []Outcome { return p.outcomes }

type panicProbe struct{}

func (p *panicProbe) Name() string         { return "panicky" }
func (p *panicProbe) Run(_ *Env) []Outcome { panic("nil map write") }

func TestRunner_RecordsAllOutcomes(t *testing.T) {
	agg := NewAggregator()
	runner := &Runner{
		Categories: []Category{
			{Name: "A", Probes: []Probe{
				&stubProbe{name: "one", outcomes: []Outcome{Passed("A", "x", "ok")}},
			}},
			{Name: "B", Probes: []Probe{
				&stubProbe{name: "two", outcomes: []Outcome{
					Warned("B", "y", "meh"),
					Failed("B", "z", "bad"),
				}},
			}},
		},
		Agg: agg,
	}

	totals := runner.Run(&Env{})
	assert.Equal(t, Totals{Total: 3, Pass: 1, Warn: 1, Fail: 1}, totals)
}

func TestRunner_PanicIsolation(t *testing.T) {
	agg := NewAggregator()
	runner := &Runner{
		Categories: []Category{
			{Name: "Before", Probes: []Probe{
				&stubProbe{name: "before", outcomes: []Outcome{Passed("Before", "b", "ok")}},
			}},
			{Name: "Broken", Probes: []Probe{&panicProbe{}}},
			{Name: "After", Probes: []Probe{
				&stubProbe{name: "after", outcomes: []Outcome{Passed("After", "a", "ok")}},
			}},
		},
		Agg: agg,
	}

	totals := runner.Run(&Env{})

	// the panicking probe becomes exactly one Warn; both neighbors still ran
	assert.Equal(t, Totals{Total: 3, Pass: 2, Warn: 1, Fail: 0}, totals)

	warns := agg.Warnings()
	assert.Len(t, warns, 1)
	assert.Equal(t, "Broken", warns[0].Category)
	assert.Equal(t, "panicky", warns[0].Name)
	assert.Contains(t, warns[0].Detail, "nil map write")
}

func TestRunner_CategoryAndOutcomeCallbacks(t *testing.T) {
	var categories []string
	var outcomes []string

	runner := &Runner{
		Categories: []Category{
			{Name: "First", Probes: []Probe{
				&stubProbe{name: "p1", outcomes: []Outcome{Passed("First", "a", "ok")}},
			}},
			{Name: "Second", Probes: []Probe{
				&stubProbe{name: "p2", outcomes: []Outcome{Warned("Second", "b", "meh")}},
			}},
		},
		Agg:        NewAggregator(),
		OnCategory: func(name string) { categories = append(categories, name) },
		OnOutcome:  func(o Outcome) { outcomes = append(outcomes, o.Name) },
	}

	runner.Run(&Env{})

	assert.Equal(t, []string{"First", "Second"}, categories)
	assert.Equal(t, []string{"a", "b"}, outcomes)
}

func TestRunner_IdempotentAcrossRuns(t *testing.T) {
	makeRunner := func() *Runner {
		return &Runner{
			Categories: []Category{
				{Name: "A", Probes: []Probe{
					&stubProbe{name: "p", outcomes: []Outcome{
						Passed("A", "x", "ok"),
						Warned("A", "y", "meh"),
					}},
				}},
			},
			Agg: NewAggregator(),
		}
	}

	first := makeRunner()
	second := makeRunner()
	env := &Env{}

	first.Run(env)
	second.Run(env)

	assert.Equal(t, first.Agg.Totals(), second.Agg.Totals())
	assert.Equal(t, first.Agg.Warnings(), second.Agg.Warnings())
	assert.Equal(t, first.Agg.Passes(), second.Agg.Passes())
}
