// Package sandbox executes model-supplied source code in an isolated,
// resource-bounded subprocess rooted at the workspace.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sage-agent/sage/internal/telemetry"
	"github.com/sage-agent/sage/internal/workspace"
)

// maxOutputRunes caps captured output so a chatty script cannot overwhelm the
// conversation.
const maxOutputRunes = 10_000

const outputTruncationNote = "\n... (output truncated, exceeded 10000 characters)"

// Executor runs source in a fresh interpreter subprocess per request. The
// subprocess gets the workspace as its working directory and is killed, along
// with its process group, when the wall-clock budget expires or the caller
// cancels.
type Executor struct {
	ws             *workspace.Workspace
	python         string
	defaultTimeout time.Duration
	maxTimeout     time.Duration
	log            zerolog.Logger
}

// New returns an executor bound to ws. defaultTimeout applies when a run has
// no caller-supplied budget; maxTimeout caps any budget.
func New(ws *workspace.Workspace, python string, defaultTimeout, maxTimeout time.Duration, log zerolog.Logger) *Executor {
	return &Executor{
		ws:             ws,
		python:         python,
		defaultTimeout: defaultTimeout,
		maxTimeout:     maxTimeout,
		log:            log,
	}
}

// Run executes source and returns the completed Run record. Runtime failures
// of the script (exceptions, timeouts, missing modules) are captured inside
// the Run, not returned as errors; the error return covers host-side problems
// only (no source, interpreter missing, context canceled).
func (e *Executor) Run(ctx context.Context, source string, budget time.Duration) (*Run, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("no code provided to execute")
	}
	if budget <= 0 {
		budget = e.defaultTimeout
	}
	if budget > e.maxTimeout {
		budget = e.maxTimeout
	}

	run := &Run{ID: uuid.NewString(), Source: source}

	scriptDir, err := os.MkdirTemp("", "sage-sandbox-")
	if err != nil {
		return nil, fmt.Errorf("sandbox script dir: %w", err)
	}
	defer os.RemoveAll(scriptDir)

	script := filepath.Join(scriptDir, "sandbox_script.py")
	if err := os.WriteFile(script, []byte(HarnessScript(source)), 0o644); err != nil {
		return nil, fmt.Errorf("write sandbox script: %w", err)
	}

	before, err := e.ws.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("workspace snapshot: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.python, script)
	cmd.Dir = e.ws.Root()
	cmd.Env = subprocessEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureProcGroup(cmd)
	cmd.WaitDelay = 2 * time.Second

	start := time.Now()
	runErr := cmd.Run()
	run.Duration = time.Since(start)

	out := stdout.String()
	if s := strings.TrimSpace(stderr.String()); s != "" {
		out += "\n\nErrors:\n" + s
	}
	run.Stdout = truncateRunes(out, maxOutputRunes)

	switch {
	case ctx.Err() != nil:
		// Caller cancellation, not a script timeout; subprocess already killed.
		return nil, ctx.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		run.TimedOut = true
		run.ExitStatus = -1
	case runErr != nil:
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("sandbox start: %w", runErr)
		}
		run.ExitStatus = exitErr.ExitCode()
	}

	arts, err := e.ws.NewFilesSince(before)
	if err != nil {
		return nil, fmt.Errorf("enumerate artifacts: %w", err)
	}
	run.Artifacts = arts

	e.log.Debug().
		Str("run_id", run.ID).
		Dur("duration", run.Duration).
		Int("artifacts", len(run.Artifacts)).
		Bool("timed_out", run.TimedOut).
		Int("exit_status", run.ExitStatus).
		Msg("sandbox run finished")
	telemetry.Emit("sandbox_run", map[string]any{
		"run_id":      run.ID,
		"duration_ms": run.Duration.Milliseconds(),
		"artifacts":   len(run.Artifacts),
		"timed_out":   run.TimedOut,
		"exit_status": run.ExitStatus,
	})

	return run, nil
}

// subprocessEnv builds a minimal environment for the interpreter: enough to
// run, nothing that leaks host configuration.
func subprocessEnv() []string {
	env := []string{"PYTHONUNBUFFERED=1", "MPLBACKEND=Agg"}
	for _, key := range []string{"PATH", "HOME", "LANG", "TMPDIR"} {
		if v := os.Getenv(key); v != "" {
			env = append(env, key+"="+v)
		}
	}
	return env
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + outputTruncationNote
}
