package tools_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sage-agent/sage/internal/workspace"
	"github.com/sage-agent/sage/tools"
)

var (
	sharedDir string
	sharedWS  *workspace.Workspace

	readFileDef  tools.ToolDefinition
	listFilesDef tools.ToolDefinition
	editFileDef  tools.ToolDefinition
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tools-tests-")
	if err != nil {
		panic(err)
	}
	ws, err := workspace.New(dir)
	if err != nil {
		panic(err)
	}
	sharedDir = dir
	sharedWS = ws
	readFileDef = tools.NewReadFileTool(ws)
	listFilesDef = tools.NewListFilesTool(ws)
	editFileDef = tools.NewEditFileTool(ws)

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// Helper to create per-test relative paths
func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}

func callTool(t *testing.T, def tools.ToolDefinition, input any) (string, error) {
	t.Helper()
	b, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	return def.Function(context.Background(), b)
}
