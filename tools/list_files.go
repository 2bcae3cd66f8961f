package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/sage-agent/sage/internal/workspace"
)

type ListFilesInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative path to list files from (defaults to the workspace root)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

var ListFilesInputSchema = GenerateSchema[ListFilesInput]()

// defaultListFilesPageSize is the fallback page size when page_size <= 0.
const defaultListFilesPageSize = 200

// NewListFilesTool returns the list_files definition bound to ws.
//
// Entries are sorted so paging is deterministic across filesystems; the
// output contract is a JSON-encoded []string with directories suffixed "/".
func NewListFilesTool(ws *workspace.Workspace) ToolDefinition {
	return ToolDefinition{
		Name:        "list_files",
		Description: "List names of files in a directory within the workspace (non-recursive).",
		InputSchema: ListFilesInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in ListFilesInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			page := in.Page
			if page <= 0 {
				page = 1
			}
			pageSize := in.PageSize
			if pageSize <= 0 {
				pageSize = defaultListFilesPageSize
			}

			names, err := ws.ListDir(in.Path)
			if err != nil {
				return "", err
			}
			sort.Strings(names)

			start := (page - 1) * pageSize
			// Out-of-range page returns an empty JSON array; keep the output contract.
			if start >= len(names) {
				return "[]", nil
			}
			end := start + pageSize
			if end > len(names) {
				end = len(names)
			}

			b, err := json.Marshal(names[start:end])
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}
