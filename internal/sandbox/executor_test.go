package sandbox_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sage-agent/sage/internal/sandbox"
	"github.com/sage-agent/sage/internal/workspace"
)

func newExecutor(t *testing.T) (*sandbox.Executor, *workspace.Workspace) {
	t.Helper()
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available")
	}
	ws, err := workspace.New(t.TempDir())
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	return sandbox.New(ws, python, 20*time.Second, 40*time.Second, zerolog.Nop()), ws
}

func TestRun_Idempotent_PrintOK(t *testing.T) {
	for i := 0; i < 2; i++ {
		e, _ := newExecutor(t)
		run, err := e.Run(context.Background(), `print("ok")`, 0)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if run.Failed() {
			t.Fatalf("run failed: %+v", run)
		}
		if strings.TrimSpace(run.Stdout) != "ok" {
			t.Fatalf("stdout: got %q", run.Stdout)
		}
		if len(run.Artifacts) != 0 {
			t.Fatalf("expected zero artifacts, got %v", run.Artifacts)
		}
	}
}

func TestRun_ArtifactCapture(t *testing.T) {
	e, _ := newExecutor(t)
	code := `with open("img_a.png", "wb") as f:
    f.write(b"a")
with open("img_b.png", "wb") as f:
    f.write(b"b")
print("done")`
	run, err := e.Run(context.Background(), code, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if run.Failed() {
		t.Fatalf("run failed: stdout=%q", run.Stdout)
	}
	if len(run.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %v", run.Artifacts)
	}
	text := run.ResultText()
	if !strings.Contains(text, "2 file(s) generated") {
		t.Fatalf("missing artifact count in result text: %q", text)
	}
	for _, name := range []string{"img_a.png", "img_b.png"} {
		if !strings.Contains(text, name) {
			t.Fatalf("missing artifact name %q in result text: %q", name, text)
		}
	}
}

func TestRun_Timeout_ProcessTerminated(t *testing.T) {
	e, _ := newExecutor(t)
	start := time.Now()
	run, err := e.Run(context.Background(), "import time\ntime.sleep(30)", 500*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !run.TimedOut || !run.Failed() {
		t.Fatalf("expected timed-out failure, got %+v", run)
	}
	if !strings.Contains(run.ResultText(), "timed out") {
		t.Fatalf("missing timeout marker: %q", run.ResultText())
	}
	// cmd.Run returning within the wait delay means the subprocess was
	// reaped, not orphaned.
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("run did not terminate promptly: %v", elapsed)
	}
}

func TestRun_PartialOutputBeforeFailure(t *testing.T) {
	e, _ := newExecutor(t)
	run, err := e.Run(context.Background(), "print(\"before\")\nraise ValueError(\"boom\")", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !run.Failed() {
		t.Fatal("expected failed run")
	}
	if !strings.Contains(run.Stdout, "before") {
		t.Fatalf("partial output lost: %q", run.Stdout)
	}
	if !strings.Contains(run.Stdout, "ValueError") {
		t.Fatalf("error text missing: %q", run.Stdout)
	}
}

func TestRun_BlockedImportCapturedAsText(t *testing.T) {
	e, _ := newExecutor(t)
	run, err := e.Run(context.Background(), "import definitely_not_allowed_pkg", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !run.Failed() {
		t.Fatal("expected failed run")
	}
	if !strings.Contains(run.Stdout, "blocked import") {
		t.Fatalf("expected blocked import message, got %q", run.Stdout)
	}
}

func TestRun_Cancellation(t *testing.T) {
	e, _ := newExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()
	if _, err := e.Run(ctx, "import time\ntime.sleep(30)", 20*time.Second); err == nil {
		t.Fatal("expected error on caller cancellation")
	}
}

func TestRun_EmptySourceRejected(t *testing.T) {
	e, _ := newExecutor(t)
	if _, err := e.Run(context.Background(), "   \n", 0); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestHarnessScript_IndentsUserCode(t *testing.T) {
	s := sandbox.HarnessScript("x = 1\nprint(x)")
	if !strings.Contains(s, "        x = 1\n") || !strings.Contains(s, "        print(x)\n") {
		t.Fatalf("user code not indented into harness body:\n%s", s)
	}
	if !strings.Contains(s, `matplotlib.use("Agg")`) {
		t.Fatal("harness must force the Agg backend")
	}
}
