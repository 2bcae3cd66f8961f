package workspace

import "encoding/json"

// ToolError is a machine-readable error body surfaced back to the model as
// tool result content.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool_result
// payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}
