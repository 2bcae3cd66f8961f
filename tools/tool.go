package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Handler executes a tool invocation. Input is the raw JSON object supplied
// by the model; the returned string becomes the tool_result content. A non-nil
// error marks the result as failed; the dispatcher never lets it propagate
// further.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// ToolDefinition describes one invocable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    Handler

	// Embedded tools are executed by the model provider itself; they are
	// advertised by EmbeddedType instead of schema and never dispatched to
	// local code.
	Embedded     bool
	EmbeddedType string

	// CompatibleModels restricts which models the tool is advertised to.
	// Empty means every model.
	CompatibleModels []string
}

// CompatibleWith reports whether the definition may be advertised to model.
func (d ToolDefinition) CompatibleWith(model string) bool {
	if len(d.CompatibleModels) == 0 {
		return true
	}
	for _, m := range d.CompatibleModels {
		if strings.Contains(model, m) {
			return true
		}
	}
	return false
}

// Outcome is the normalised result of one tool invocation. Every dispatch
// resolves to exactly this shape, whether the handler succeeded, returned an
// error, or panicked.
type Outcome struct {
	Text   string
	Failed bool
}
