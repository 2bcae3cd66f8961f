package tools

import "github.com/anthropics/anthropic-sdk-go"

// NewTextEditorTool returns the provider-executed text editor definition.
//
// The provider implements this tool itself, so the definition carries no
// handler; the dispatcher answers its calls with a placeholder result instead
// of executing anything locally. Only models that ship the 2025-01-24 editor
// may see it advertised.
func NewTextEditorTool() ToolDefinition {
	return ToolDefinition{
		Name:         "str_replace_editor",
		Description:  "Provider-side text editor for viewing and modifying files.",
		InputSchema:  anthropic.ToolInputSchemaParam{},
		Embedded:     true,
		EmbeddedType: "text_editor_20250124",
		CompatibleModels: []string{
			"claude-3-5-sonnet",
			"claude-3-7-sonnet",
		},
	}
}
