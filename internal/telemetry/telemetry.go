// Package telemetry emits JSONL observability events for the agent loop.
//
// Emission is opt-in via SAGE_OBSERVE_JSON=1; events append to
// .sage/events.jsonl in the working directory. Turn IDs correlate events
// belonging to one user turn and travel through context.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const eventDir = ".sage"
const eventFile = "events.jsonl"

// Enabled reports whether JSONL emission is on.
func Enabled() bool {
	return os.Getenv("SAGE_OBSERVE_JSON") == "1"
}

// Emit writes a single JSON line when SAGE_OBSERVE_JSON=1, augmenting fields
// with RFC3339Nano time and the event name. Emission failures are reported on
// stderr and never interrupt the caller.
func Emit(name string, fields map[string]any) {
	if !Enabled() {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(eventDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", eventDir, err)
		return
	}

	path := filepath.Join(eventDir, eventFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
