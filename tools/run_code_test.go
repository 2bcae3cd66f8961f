package tools_test

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/sage-agent/sage/internal/logging"
	"github.com/sage-agent/sage/internal/sandbox"
	"github.com/sage-agent/sage/tools"
)

func newRunCodeDef(t *testing.T) tools.ToolDefinition {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	log := logging.New(false)
	ex := sandbox.New(sharedWS, "python3", 10*time.Second, 40*time.Second, log)
	return tools.NewRunCodeTool(ex)
}

func TestRunCode_StdoutReturned(t *testing.T) {
	def := newRunCodeDef(t)
	out, err := callTool(t, def, tools.RunCodeInput{Code: `print("hi from sandbox")`})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(out, "hi from sandbox") {
		t.Fatalf("got %q", out)
	}
}

func TestRunCode_FailureCarriesOutput(t *testing.T) {
	def := newRunCodeDef(t)
	_, err := callTool(t, def, tools.RunCodeInput{Code: "print('partial')\nraise ValueError('boom')"})
	if err == nil {
		t.Fatal("expected error for failing run")
	}
	if !strings.Contains(err.Error(), "partial") || !strings.Contains(err.Error(), "ValueError") {
		t.Fatalf("error should carry run output, got: %v", err)
	}
}

func TestRunCode_EmptyCode_Error(t *testing.T) {
	def := newRunCodeDef(t)
	_, err := callTool(t, def, tools.RunCodeInput{Code: "  \n "})
	if err == nil {
		t.Fatal("expected error for empty code")
	}
}

func TestRunCode_MalformedInput_Error(t *testing.T) {
	def := newRunCodeDef(t)
	_, err := def.Function(context.Background(), json.RawMessage(`{"code": 42}`))
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}
