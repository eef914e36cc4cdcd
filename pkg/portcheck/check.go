// Package portcheck probes the moorhen service ports: who owns the
// gateway and bridge ports, how many worker processes are running, and
// whether the gateway actually accepts connections.
package portcheck

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/moorhenlabs/moorhen-doctor/pkg/check"
	"github.com/moorhenlabs/moorhen-doctor/pkg/cmdrunner"
)

// Category is the report grouping for service/port outcomes.
const Category = "Services & Ports"

// DialTimeout bounds the live gateway connect attempt.
const DialTimeout = 2 * time.Second

// workerPattern matches the moorhen worker process command line.
const workerPattern = "moorhen-bridge"

// TCPDialer abstracts network dialing for testability.
type TCPDialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealTCPDialer uses the real net package.
type RealTCPDialer struct{}

func (d *RealTCPDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// PortOwner identifies the process listening on a local port.
type PortOwner struct {
	Command string
	PID     int
}

// Probe inspects service port ownership and gateway connectivity.
type Probe struct {
	Runner  cmdrunner.Runner
	Dialer  TCPDialer
	Timeout time.Duration // per external command
}

// New creates a Probe using real OS commands and the real network.
func New() *Probe {
	return &Probe{Runner: &cmdrunner.RealRunner{}, Dialer: &RealTCPDialer{}}
}

func (p *Probe) Name() string { return "services-ports" }

// Run executes the service checks: ownership of both ports, the worker
// instance count, and a live connect to the gateway.
func (p *Probe) Run(env *check.Env) []check.Outcome {
	outcomes := []check.Outcome{
		p.portOwnership("Gateway Port", "gateway", env.GatewayPort),
		p.portOwnership("Bridge Port", "bridge", env.BridgePort),
		p.workerCount(),
		p.gatewayConnect(env.GatewayPort),
	}
	return outcomes
}

// portOwnership classifies a port as free (Warn: service not running),
// owned by the product runtime (Pass), or owned by an unrelated process
// (Fail: port conflict).
func (p *Probe) portOwnership(name, service string, port int) check.Outcome {
	owner, err := p.owner(port)
	if err != nil {
		return check.Warnf(Category, name, "cannot determine owner of port %d", port).
			WithDetailf("lsof unavailable or failed: %v", err)
	}
	if owner == nil {
		return check.Warnf(Category, name, "port %d is free: %s is not running", port, service).
			WithDetailf("start it with: moorhen %s start", service)
	}
	if ownRuntime(owner.Command) {
		return check.Passf(Category, name, "%s listening on port %d (%s, pid %d)",
			service, port, owner.Command, owner.PID)
	}
	return check.Failf(Category, name, "port %d is occupied by an unrelated process", port).
		WithDetailf("owner: %s (pid %d); stop it or override MOORHEN_%s_PORT",
			owner.Command, owner.PID, strings.ToUpper(service))
}

// owner queries lsof for the listener on the given port. A nil owner
// with nil error means the port is free.
func (p *Probe) owner(port int) (*PortOwner, error) {
	if _, err := p.Runner.LookPath("lsof"); err != nil {
		return nil, fmt.Errorf("lsof not found in PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, _, err := p.Runner.Run(ctx, "lsof",
		"-nP", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN", "-Fcp")
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("lsof timed out after %s", p.timeout())
		}
		// lsof exits nonzero when nothing matches
		return nil, nil
	}

	return parseLsofFields(stdout), nil
}

// parseLsofFields reads lsof -F output: one field per line, `p<pid>`
// then `c<command>` for each process.
func parseLsofFields(output string) *PortOwner {
	owner := &PortOwner{}
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}
		switch line[0] {
		case 'p':
			if pid, err := strconv.Atoi(line[1:]); err == nil {
				owner.PID = pid
			}
		case 'c':
			owner.Command = line[1:]
		}
		if owner.PID != 0 && owner.Command != "" {
			return owner
		}
	}
	if owner.PID == 0 && owner.Command == "" {
		return nil
	}
	return owner
}

// ownRuntime reports whether a process name belongs to the product's own
// runtime stack.
func ownRuntime(command string) bool {
	cmd := strings.ToLower(command)
	return cmd == "node" || strings.HasPrefix(cmd, "moorhen")
}

// workerCount flags more than two concurrent worker processes as a
// stale-process suspicion.
func (p *Probe) workerCount() check.Outcome {
	if _, err := p.Runner.LookPath("pgrep"); err != nil {
		return check.Warned(Category, "Worker Processes", "cannot count worker processes").
			WithDetail("pgrep not found in PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout())
	defer cancel()

	stdout, _, err := p.Runner.Run(ctx, "pgrep", "-c", "-f", workerPattern)
	if err != nil {
		// pgrep exits 1 when no process matches
		return check.Passf(Category, "Worker Processes", "no %s processes running", workerPattern)
	}

	count, convErr := strconv.Atoi(strings.TrimSpace(stdout))
	if convErr != nil {
		return check.Warned(Category, "Worker Processes", "cannot count worker processes").
			WithDetailf("unexpected pgrep output %q", strings.TrimSpace(stdout))
	}
	if count > 2 {
		return check.Warnf(Category, "Worker Processes", "%d %s processes running", count, workerPattern).
			WithDetail("more than two workers suggests stale processes; consider moorhen bridge restart")
	}
	return check.Passf(Category, "Worker Processes", "%d %s process(es) running", count, workerPattern)
}

// gatewayConnect performs the bounded live connect to the gateway port.
func (p *Probe) gatewayConnect(port int) check.Outcome {
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))

	conn, err := p.Dialer.DialTimeout("tcp", address, DialTimeout)
	if err != nil {
		return check.Warnf(Category, "Gateway Connectivity", "could not connect to %s", address).
			WithDetailf("dial error: %v", err)
	}
	_ = conn.Close()
	return check.Passf(Category, "Gateway Connectivity", "connected to %s", address)
}

func (p *Probe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return cmdrunner.DefaultTimeout
}
