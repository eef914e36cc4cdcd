package envvarcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
)

type mapGetter map[string]string

func (m mapGetter) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestRun_AlwaysPass(t *testing.T) {
	probe := &Probe{Getter: mapGetter{
		"MOORHEN_GATEWAY_PORT": "9001",
	}}

	outcomes := probe.Run(&check.Env{})

	assert.Len(t, outcomes, len(Recognized))
	for _, o := range outcomes {
		assert.Equal(t, check.Pass, o.Severity, "%s must always be Pass", o.Name)
	}
}

func TestRun_SetValueShown(t *testing.T) {
	probe := &Probe{Getter: mapGetter{
		"MOORHEN_BIND_MODE": "all-interfaces",
	}}

	outcomes := probe.Run(&check.Env{})

	var bindMode check.Outcome
	for _, o := range outcomes {
		if o.Name == "MOORHEN_BIND_MODE" {
			bindMode = o
		}
	}
	assert.Equal(t, "set: all-interfaces", bindMode.Message)
}

func TestRun_UnsetShowsDefault(t *testing.T) {
	probe := &Probe{Getter: mapGetter{}}

	for _, o := range probe.Run(&check.Env{}) {
		assert.Contains(t, o.Message, "default:")
	}
}

func TestRun_TokenIsMasked(t *testing.T) {
	secret := "tok-abcdefgh-SECRETMIDDLE-wxyz"
	probe := &Probe{Getter: mapGetter{
		"MOORHEN_GATEWAY_TOKEN": secret,
	}}

	for _, o := range probe.Run(&check.Env{}) {
		if o.Name == "MOORHEN_GATEWAY_TOKEN" {
			assert.NotContains(t, o.Message, "SECRETMIDDLE")
			assert.Contains(t, o.Message, "tok-abcd")
		}
	}
}
