package check

import "sync"

// Totals holds per-severity outcome counts for a run.
type Totals struct {
	Total int
	Pass  int
	Warn  int
	Fail  int
}

// Aggregator accumulates outcomes for the duration of one run. Outcomes
// are stored in three severity buckets in insertion order. Record is safe
// for concurrent use; the query methods return copies.
type Aggregator struct {
	mu     sync.Mutex
	passes []Outcome
	warns  []Outcome
	fails  []Outcome
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record appends the outcome to the bucket matching its severity.
func (a *Aggregator) Record(o Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch o.Severity {
	case Warn:
		a.warns = append(a.warns, o)
	case Fail:
		a.fails = append(a.fails, o)
	default:
		a.passes = append(a.passes, o)
	}
}

// Totals returns the per-severity counts.
func (a *Aggregator) Totals() Totals {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Totals{
		Total: len(a.passes) + len(a.warns) + len(a.fails),
		Pass:  len(a.passes),
		Warn:  len(a.warns),
		Fail:  len(a.fails),
	}
}

// HasFailures reports whether any Fail outcome was recorded.
func (a *Aggregator) HasFailures() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.fails) > 0
}

// Passes returns the recorded Pass outcomes in insertion order.
func (a *Aggregator) Passes() []Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Outcome(nil), a.passes...)
}

// Warnings returns the recorded Warn outcomes in insertion order.
func (a *Aggregator) Warnings() []Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Outcome(nil), a.warns...)
}

// Failures returns the recorded Fail outcomes in insertion order.
func (a *Aggregator) Failures() []Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Outcome(nil), a.fails...)
}
