package tools

import (
	"github.com/sage-agent/sage/internal/sandbox"
	"github.com/sage-agent/sage/internal/workspace"
)

// Default assembles the standard tool set: file access and code execution
// bound to the workspace, web fetching, and the provider-executed text editor.
func Default(ws *workspace.Workspace, exec *sandbox.Executor) (*Registry, error) {
	r := NewRegistry()
	defs := []ToolDefinition{
		NewReadFileTool(ws),
		NewListFilesTool(ws),
		NewEditFileTool(ws),
		NewRunCodeTool(exec),
		NewWebFetchTool(),
		NewTextEditorTool(),
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}
