package check

import "fmt"

// Severity ranks the concern level of a single diagnostic outcome.
// The order is total: Fail > Warn > Pass.
type Severity int

const (
	Pass Severity = iota
	Warn
	Fail
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single diagnostic check. It is a value type
// and is never mutated after construction; WithDetail returns a copy.
type Outcome struct {
	Category string // report grouping, e.g. "Node.js Environment"
	Name     string // specific check, e.g. "Node.js Version"
	Severity Severity
	Message  string // one-line human-readable result
	Detail   string // extra context, shown only in verbose output
}

// Passed creates a Pass outcome.
func Passed(category, name, message string) Outcome {
	return Outcome{Category: category, Name: name, Severity: Pass, Message: message}
}

// Passf creates a Pass outcome with a formatted message.
func Passf(category, name, format string, args ...any) Outcome {
	return Passed(category, name, fmt.Sprintf(format, args...))
}

// Warned creates a Warn outcome.
func Warned(category, name, message string) Outcome {
	return Outcome{Category: category, Name: name, Severity: Warn, Message: message}
}

// Warnf creates a Warn outcome with a formatted message.
func Warnf(category, name, format string, args ...any) Outcome {
	return Warned(category, name, fmt.Sprintf(format, args...))
}

// Failed creates a Fail outcome.
func Failed(category, name, message string) Outcome {
	return Outcome{Category: category, Name: name, Severity: Fail, Message: message}
}

// Failf creates a Fail outcome with a formatted message.
func Failf(category, name, format string, args ...any) Outcome {
	return Failed(category, name, fmt.Sprintf(format, args...))
}

// WithDetail returns a copy of the outcome carrying the given detail text.
func (o Outcome) WithDetail(detail string) Outcome {
	o.Detail = detail
	return o
}

// WithDetailf returns a copy of the outcome carrying formatted detail text.
func (o Outcome) WithDetailf(format string, args ...any) Outcome {
	return o.WithDetail(fmt.Sprintf(format, args...))
}
