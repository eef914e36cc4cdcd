package check

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator_TotalsSum(t *testing.T) {
	agg := NewAggregator()
	agg.Record(Passed("A", "a1", "ok"))
	agg.Record(Passed("A", "a2", "ok"))
	agg.Record(Warned("B", "b1", "meh"))
	agg.Record(Failed("C", "c1", "broken"))

	totals := agg.Totals()
	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 2, totals.Pass)
	assert.Equal(t, 1, totals.Warn)
	assert.Equal(t, 1, totals.Fail)
	assert.Equal(t, totals.Total, totals.Pass+totals.Warn+totals.Fail)
}

func TestAggregator_InsertionOrderPreserved(t *testing.T) {
	agg := NewAggregator()
	agg.Record(Failed("Net", "endpoint-1", "down"))
	agg.Record(Warned("Net", "endpoint-2", "slow"))
	agg.Record(Failed("Net", "endpoint-3", "down"))

	fails := agg.Failures()
	assert.Equal(t, []string{"endpoint-1", "endpoint-3"}, []string{fails[0].Name, fails[1].Name})
}

func TestAggregator_DuplicateNamesRecordedIndependently(t *testing.T) {
	agg := NewAggregator()
	agg.Record(Passed("Net", "Reachability", "host a"))
	agg.Record(Passed("Net", "Reachability", "host b"))

	assert.Equal(t, 2, agg.Totals().Pass)
}

func TestAggregator_HasFailures(t *testing.T) {
	agg := NewAggregator()
	assert.False(t, agg.HasFailures())

	agg.Record(Warned("A", "a", "meh"))
	assert.False(t, agg.HasFailures())

	agg.Record(Failed("A", "b", "broken"))
	assert.True(t, agg.HasFailures())
}

func TestAggregator_QueryReturnsCopy(t *testing.T) {
	agg := NewAggregator()
	agg.Record(Warned("A", "a", "meh"))

	warns := agg.Warnings()
	warns[0].Name = "mutated"

	assert.Equal(t, "a", agg.Warnings()[0].Name)
}

func TestAggregator_ConcurrentRecord(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			agg.Record(Passed("A", fmt.Sprintf("p%d", n), "ok"))
			agg.Record(Warned("A", fmt.Sprintf("w%d", n), "meh"))
			agg.Record(Failed("A", fmt.Sprintf("f%d", n), "bad"))
		}(i)
	}
	wg.Wait()

	totals := agg.Totals()
	assert.Equal(t, 150, totals.Total)
	assert.Equal(t, 50, totals.Pass)
	assert.Equal(t, 50, totals.Warn)
	assert.Equal(t, 50, totals.Fail)
}
