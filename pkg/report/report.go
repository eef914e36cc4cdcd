// Package report renders check outcomes to the terminal and derives the
// run's overall status and exit code.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jwalton/go-supportscolor"
	"golang.org/x/term"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

var (
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	bold   = "\033[1m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, yellow, red, bold, reset = "", "", "", "", ""
	}
}

// Status is the overall classification of a completed run.
type Status string

const (
	StatusHealthy        Status = "healthy"
	StatusFunctional     Status = "functional with warnings"
	StatusNeedsAttention Status = "needs attention"
)

// Classify derives the overall status from the final totals: healthy
// with zero failures and at most three warnings, functional with more
// warnings, needs attention as soon as anything failed.
func Classify(t check.Totals) Status {
	switch {
	case t.Fail > 0:
		return StatusNeedsAttention
	case t.Warn > 3:
		return StatusFunctional
	default:
		return StatusHealthy
	}
}

// Summary is the programmatically consumable result of one run.
type Summary struct {
	Totals   check.Totals
	Status   Status
	Failures []check.Outcome
	Warnings []check.Outcome
	Passes   []check.Outcome
}

// Build assembles the Summary from the final aggregator state.
func Build(agg *check.Aggregator) Summary {
	totals := agg.Totals()
	return Summary{
		Totals:   totals,
		Status:   Classify(totals),
		Failures: agg.Failures(),
		Warnings: agg.Warnings(),
		Passes:   agg.Passes(),
	}
}

// ExitCode maps the summary to the process exit status: 1 when anything
// failed, 0 otherwise. Warnings never affect the exit code.
func (s Summary) ExitCode() int {
	if s.Totals.Fail > 0 {
		return 1
	}
	return 0
}

// Printer streams categories and outcomes to the terminal and renders
// the final summary block.
type Printer struct {
	Out     io.Writer
	Verbose bool
	Width   int // rule-line width; 0 autodetects from the terminal
}

// NewPrinter creates a Printer writing to stdout.
func NewPrinter(verbose bool) *Printer {
	return &Printer{Out: os.Stdout, Verbose: verbose}
}

// Category prints a category header.
func (p *Printer) Category(name string) {
	fmt.Fprintf(p.Out, "\n%s%s%s\n", bold, name, reset)
}

// Outcome prints one result line, with detail lines when verbose.
func (p *Printer) Outcome(o check.Outcome) {
	fmt.Fprintf(p.Out, "  %s %s: %s\n", tag(o.Severity), o.Name, o.Message)
	if p.Verbose && o.Detail != "" {
		for _, line := range strings.Split(o.Detail, "\n") {
			fmt.Fprintf(p.Out, "         %s\n", line)
		}
	}
}

// Summary prints the end-of-run block: counts, failures with remediation
// hints, warnings, and the overall status.
func (p *Printer) Summary(s Summary) {
	rule := strings.Repeat("─", p.width())

	fmt.Fprintf(p.Out, "\n%s\n", rule)
	fmt.Fprintf(p.Out, "%sSummary%s  %d checks: %s%d passed%s, %s%d warnings%s, %s%d failed%s\n",
		bold, reset, s.Totals.Total,
		green, s.Totals.Pass, reset,
		yellow, s.Totals.Warn, reset,
		red, s.Totals.Fail, reset)

	if len(s.Failures) > 0 {
		fmt.Fprintf(p.Out, "\n%sFailures:%s\n", red, reset)
		for i, o := range s.Failures {
			fmt.Fprintf(p.Out, "  %d. [%s] %s: %s\n", i+1, o.Category, o.Name, o.Message)
			if o.Detail != "" {
				fmt.Fprintf(p.Out, "     → %s\n", o.Detail)
			}
		}
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintf(p.Out, "\n%sWarnings:%s\n", yellow, reset)
		for i, o := range s.Warnings {
			fmt.Fprintf(p.Out, "  %d. [%s] %s: %s\n", i+1, o.Category, o.Name, o.Message)
			if p.Verbose && o.Detail != "" {
				fmt.Fprintf(p.Out, "     → %s\n", o.Detail)
			}
		}
	}

	fmt.Fprintf(p.Out, "\nOverall status: %s%s%s\n", statusColor(s.Status), s.Status, reset)
}

func (p *Printer) width() int {
	if p.Width > 0 {
		return p.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < 60 {
		return w
	}
	return 60
}

func tag(s check.Severity) string {
	switch s {
	case check.Fail:
		return red + "[FAIL]" + reset
	case check.Warn:
		return yellow + "[WARN]" + reset
	default:
		return green + "[ OK ]" + reset
	}
}

func statusColor(s Status) string {
	switch s {
	case StatusNeedsAttention:
		return red
	case StatusFunctional:
		return yellow
	default:
		return green
	}
}
