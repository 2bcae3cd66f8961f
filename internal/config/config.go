// Package config captures environment-supplied settings once at startup.
// Values are threaded explicitly into constructors; components never read
// the environment themselves.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultWorkspaceRoot  = "workspace"
	defaultMaxHops        = 16
	defaultSandboxTimeout = 20 * time.Second
	maxSandboxTimeout     = 40 * time.Second
	defaultPythonBin      = "python3"
)

// Config holds the core loop settings.
type Config struct {
	// WorkspaceRoot is the designated directory for all tool and sandbox files.
	WorkspaceRoot string
	// MaxHops bounds tool-dispatch-then-resend cycles within one user turn.
	MaxHops int
	// SandboxTimeout is the default wall-clock budget per sandbox run.
	SandboxTimeout time.Duration
	// SandboxTimeoutMax caps caller-supplied budgets.
	SandboxTimeoutMax time.Duration
	// PythonBin is the interpreter used by the sandbox executor.
	PythonBin string
}

// Load reads the SAGE_* environment variables, falling back to defaults.
// Invalid values are ignored rather than fatal; the defaults are safe.
func Load() Config {
	cfg := Config{
		WorkspaceRoot:     defaultWorkspaceRoot,
		MaxHops:           defaultMaxHops,
		SandboxTimeout:    defaultSandboxTimeout,
		SandboxTimeoutMax: maxSandboxTimeout,
		PythonBin:         defaultPythonBin,
	}

	if v := os.Getenv("SAGE_WORKSPACE"); v != "" {
		cfg.WorkspaceRoot = v
	}
	if v := os.Getenv("SAGE_MAX_HOPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxHops = n
		}
	}
	if v := os.Getenv("SAGE_SANDBOX_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			d := time.Duration(secs * float64(time.Second))
			if d > cfg.SandboxTimeoutMax {
				d = cfg.SandboxTimeoutMax
			}
			cfg.SandboxTimeout = d
		}
	}
	if v := os.Getenv("SAGE_PYTHON"); v != "" {
		cfg.PythonBin = v
	}
	return cfg
}
