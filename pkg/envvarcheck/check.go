// Package envvarcheck enumerates the recognized MOORHEN_* environment
// variables. Every variable yields one Pass outcome showing either the
// configured value or the applicable default; the gateway token is
// masked.
package envvarcheck

import (
	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/credcheck"
)

// Category is the report grouping for environment-variable outcomes.
const Category = "Environment Variables"

// Variable is one recognized product environment variable.
type Variable struct {
	Name    string
	Default string
	Secret  bool // mask the value when set
}

// Recognized lists every product environment variable, in report order.
var Recognized = []Variable{
	{Name: "MOORHEN_CONFIG_DIR", Default: "~/.moorhen"},
	{Name: "MOORHEN_WORKSPACE", Default: "<config-dir>/workspace"},
	{Name: "MOORHEN_GATEWAY_PORT", Default: "18789"},
	{Name: "MOORHEN_BRIDGE_PORT", Default: "18790"},
	{Name: "MOORHEN_BIND_MODE", Default: "loopback"},
	{Name: "MOORHEN_GATEWAY_TOKEN", Default: "(unset)", Secret: true},
	{Name: "MOORHEN_STATE_DIR", Default: "<config-dir>/state"},
}

// Probe reports the recognized environment variables.
type Probe struct {
	Getter check.EnvGetter
}

// New creates a Probe using the real process environment.
func New() *Probe {
	return &Probe{Getter: &check.RealEnvGetter{}}
}

func (p *Probe) Name() string { return "env-vars" }

// Run emits one Pass outcome per recognized variable.
func (p *Probe) Run(_ *check.Env) []check.Outcome {
	outcomes := make([]check.Outcome, 0, len(Recognized))
	for _, v := range Recognized {
		value, ok := p.Getter.LookupEnv(v.Name)
		switch {
		case !ok || value == "":
			outcomes = append(outcomes,
				check.Passf(Category, v.Name, "not set (default: %s)", v.Default))
		case v.Secret:
			outcomes = append(outcomes,
				check.Passf(Category, v.Name, "set: %s", credcheck.Mask(value)))
		default:
			outcomes = append(outcomes,
				check.Passf(Category, v.Name, "set: %s", value))
		}
	}
	return outcomes
}
