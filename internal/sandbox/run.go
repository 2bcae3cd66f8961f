package sandbox

import (
	"fmt"
	"strings"
	"time"
)

// Run captures one sandbox execution, from submitted source to observed
// effects. A Run lives only long enough to be folded into a tool result.
type Run struct {
	ID         string
	Source     string
	Stdout     string
	Artifacts  []string
	ExitStatus int
	TimedOut   bool
	Duration   time.Duration
}

// Failed reports whether the run ended abnormally.
func (r *Run) Failed() bool {
	return r.TimedOut || r.ExitStatus != 0
}

// ResultText renders the run for a tool result: captured output first, then
// the timeout marker if any, then the artifact listing. Partial output from a
// failed run is never dropped.
func (r *Run) ResultText() string {
	out := strings.TrimSpace(r.Stdout)
	if out == "" {
		out = "(no output)"
	}
	if r.TimedOut {
		out += "\n\nError: code execution timed out."
	}
	if n := len(r.Artifacts); n > 0 {
		out += fmt.Sprintf("\n\n%d file(s) generated: %s", n, strings.Join(r.Artifacts, ", "))
	}
	return out
}
