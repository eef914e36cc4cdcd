package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Default ports for the moorhen gateway and bridge processes.
const (
	DefaultGatewayPort = 18789
	DefaultBridgePort  = 18790
)

// MinNodeVersion is the minimum supported Node.js runtime version.
const MinNodeVersion = "22.0.0"

// Resource thresholds applied by the system-resources probe.
const (
	MinTotalMemory    = 2 << 30 // 2GB
	MinFreeMemory     = 1 << 30 // 1GB
	DiskPassThreshold = 5 << 30 // 5GB
	DiskFailThreshold = 1 << 30 // 1GB
)

// EnvGetter abstracts environment variable lookup for testability.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter uses the real process environment.
type RealEnvGetter struct{}

func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Env is the read-only execution context shared by all probes in a run.
// It is constructed once at process start and never mutated afterwards.
type Env struct {
	ConfigDir    string // resolved configuration directory
	ConfigFile   string // <configdir>/config.json
	EnvFile      string // <configdir>/.env
	WorkspaceDir string // MOORHEN_WORKSPACE or <configdir>/workspace
	MemoryDir    string // <configdir>/memory
	StateDir     string // MOORHEN_STATE_DIR or <configdir>/state

	GatewayPort int
	BridgePort  int

	MinNodeVersion string

	MinTotalMemory    uint64
	MinFreeMemory     uint64
	DiskPassThreshold uint64
	DiskFailThreshold uint64

	Verbose bool
}

// ResolveEnv builds the execution context from the --config-dir flag and
// the process environment. Precedence for the configuration directory is
// flag > MOORHEN_CONFIG_DIR > ~/.moorhen.
func ResolveEnv(configDirFlag string, verbose bool, getter EnvGetter) (*Env, error) {
	if getter == nil {
		getter = &RealEnvGetter{}
	}

	dir := configDirFlag
	if dir == "" {
		if v, ok := getter.LookupEnv("MOORHEN_CONFIG_DIR"); ok && v != "" {
			dir = v
		}
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve configuration directory: %w", err)
		}
		dir = filepath.Join(home, ".moorhen")
	}

	workspace := filepath.Join(dir, "workspace")
	if v, ok := getter.LookupEnv("MOORHEN_WORKSPACE"); ok && v != "" {
		workspace = v
	}
	state := filepath.Join(dir, "state")
	if v, ok := getter.LookupEnv("MOORHEN_STATE_DIR"); ok && v != "" {
		state = v
	}

	return &Env{
		ConfigDir:    dir,
		ConfigFile:   filepath.Join(dir, "config.json"),
		EnvFile:      filepath.Join(dir, ".env"),
		WorkspaceDir: workspace,
		MemoryDir:    filepath.Join(dir, "memory"),
		StateDir:     state,

		GatewayPort: portFromEnv(getter, "MOORHEN_GATEWAY_PORT", DefaultGatewayPort),
		BridgePort:  portFromEnv(getter, "MOORHEN_BRIDGE_PORT", DefaultBridgePort),

		MinNodeVersion: MinNodeVersion,

		MinTotalMemory:    MinTotalMemory,
		MinFreeMemory:     MinFreeMemory,
		DiskPassThreshold: DiskPassThreshold,
		DiskFailThreshold: DiskFailThreshold,

		Verbose: verbose,
	}, nil
}

// portFromEnv reads a port override, falling back to the default when the
// variable is unset or not a valid port number.
func portFromEnv(getter EnvGetter, key string, def int) int {
	v, ok := getter.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	port, err := strconv.Atoi(v)
	if err != nil || port < 1 || port > 65535 {
		return def
	}
	return port
}
