// Package cmdrunner provides the command-execution seam shared by all
// probes that shell out to external tools.
package cmdrunner

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds external command execution so an unresponsive
// tool cannot stall the run.
const DefaultTimeout = 5 * time.Second

// Runner abstracts command lookup and execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// RealRunner implements Runner using actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command under the given context and returns its output.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(name string, args ...string) (string, string, error)
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Run calls the mock function, ignoring the context.
func (m *MockRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	return m.RunFunc(name, args...)
}
