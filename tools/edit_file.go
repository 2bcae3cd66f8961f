package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sage-agent/sage/internal/workspace"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path"`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; empty when creating a new file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with"`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

// NewEditFileTool returns the edit_file definition bound to ws.
func NewEditFileTool(ws *workspace.Workspace) ToolDefinition {
	return ToolDefinition{
		Name: "edit_file",
		Description: `Create or modify a text file addressed by a relative path within the workspace.

When old_str is empty and the file doesn't exist, a new file is created with new_str as its content.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
		InputSchema: EditFileInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in EditFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}

			if in.Path == "" || in.OldStr == in.NewStr {
				return "", fmt.Errorf("invalid edit parameters")
			}

			oldContent, readErr := ws.ReadFile(in.Path)
			if readErr != nil {
				// Missing file plus empty OldStr means create.
				if in.OldStr == "" {
					if err := ws.WriteFile(in.Path, in.NewStr); err != nil {
						return "", err
					}
					return fmt.Sprintf("Successfully created file %s", in.Path), nil
				}
				return "", readErr
			}

			// The file exists: require a non-empty old_str to avoid ambiguous
			// whole-file overwrites.
			if in.OldStr == "" {
				return "", fmt.Errorf("old_str must be provided when editing an existing file")
			}

			newContent := strings.ReplaceAll(oldContent, in.OldStr, in.NewStr)
			if newContent == oldContent {
				return "", fmt.Errorf("old_str not found in file")
			}

			if err := ws.WriteFile(in.Path, newContent); err != nil {
				return "", err
			}
			return "OK", nil
		},
	}
}
