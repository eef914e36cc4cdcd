// Package credcheck probes for LLM provider credentials across the
// process environment, the .env file, and the config file. Discovered
// secrets are always masked before display.
package credcheck

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/configcheck"
)

// Category is the report grouping for credential outcomes.
const Category = "Credentials"

// ProviderEnvVars lists the recognized provider credential variables, in
// report order.
var ProviderEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"OPENAI_API_KEY",
	"OPENROUTER_API_KEY",
	"GEMINI_API_KEY",
	"MISTRAL_API_KEY",
	"GROQ_API_KEY",
	"DEEPSEEK_API_KEY",
	"XAI_API_KEY",
}

// Probe locates provider credentials. The system cannot function with
// zero credentials, so finding none anywhere is a Fail.
type Probe struct {
	Getter check.EnvGetter
	FS     configcheck.FileSystem
}

// New creates a Probe using the real environment and filesystem.
func New() *Probe {
	return &Probe{Getter: &check.RealEnvGetter{}, FS: &configcheck.RealFileSystem{}}
}

func (p *Probe) Name() string { return "credentials" }

// Run scans all three credential sources. Every finding is one Pass
// outcome with a masked value and fingerprint; zero findings across all
// sources is exactly one Fail outcome.
func (p *Probe) Run(env *check.Env) []check.Outcome {
	var outcomes []check.Outcome

	for _, name := range ProviderEnvVars {
		if value, ok := p.Getter.LookupEnv(name); ok && value != "" {
			outcomes = append(outcomes, found(name, "environment", value))
		}
	}

	outcomes = append(outcomes, p.envFileEntries(env)...)
	outcomes = append(outcomes, p.configReferences(env)...)

	if len(outcomes) == 0 {
		return []check.Outcome{
			check.Failed(Category, "Provider Credentials", "no provider credentials found").
				WithDetail("set at least one provider API key, e.g. export ANTHROPIC_API_KEY=..."),
		}
	}
	return outcomes
}

func (p *Probe) envFileEntries(env *check.Env) []check.Outcome {
	content, err := p.FS.ReadFile(env.EnvFile)
	if err != nil {
		return nil // absence already reported by the configuration probe
	}

	entries := ParseEnvFile(string(content))
	var outcomes []check.Outcome
	for _, name := range ProviderEnvVars {
		if value, ok := entries[name]; ok && value != "" {
			outcomes = append(outcomes, found(name, ".env file", value))
		}
	}
	return outcomes
}

// configReferences scans providers.*.apiKey entries in the config file.
func (p *Probe) configReferences(env *check.Env) []check.Outcome {
	content, err := p.FS.ReadFile(env.ConfigFile)
	if err != nil {
		return nil
	}

	jsonStr := string(configcheck.StripComments(content))
	if !gjson.Valid(jsonStr) {
		return nil // syntax failure already reported by the configuration probe
	}

	var outcomes []check.Outcome
	gjson.Get(jsonStr, "providers").ForEach(func(provider, cfg gjson.Result) bool {
		if key := cfg.Get("apiKey"); key.Exists() && key.String() != "" {
			outcomes = append(outcomes,
				found(fmt.Sprintf("providers.%s.apiKey", provider.String()), "config file", key.String()))
		}
		return true
	})
	return outcomes
}

func found(name, source, value string) check.Outcome {
	return check.Passf(Category, name, "configured via %s: %s", source, Mask(value)).
		WithDetailf("fingerprint: %s", Fingerprint(value))
}
