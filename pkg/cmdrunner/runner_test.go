package cmdrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockRunner(t *testing.T) {
	mock := &MockRunner{
		LookPathFunc: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
		RunFunc: func(name string, args ...string) (string, string, error) {
			return "v22.3.0", "", nil
		},
	}

	path, err := mock.LookPath("node")
	assert.NoError(t, err)
	assert.Equal(t, "/usr/bin/node", path)

	stdout, stderr, err := mock.Run(context.Background(), "node", "--version")
	assert.NoError(t, err)
	assert.Equal(t, "v22.3.0", stdout)
	assert.Empty(t, stderr)
}

func TestRealRunner_LookPathMissing(t *testing.T) {
	runner := &RealRunner{}
	_, err := runner.LookPath("definitely-not-a-real-binary-4f5a6b")
	assert.Error(t, err)
}
