package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/rs/zerolog"

	"github.com/sage-agent/sage/internal/telemetry"
	"github.com/sage-agent/sage/tools"
)

// Call is one tool invocation requested by the model.
type Call struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// Dispatcher normalises tool calls into outcomes: lookup, input validation,
// execution and panic containment all end in a tool_result block, never in a
// broken protocol exchange.
type Dispatcher struct {
	registry *tools.Registry
	log      zerolog.Logger
}

func NewDispatcher(registry *tools.Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// DispatchAll executes calls sequentially and returns one tool_result block
// per call, in call order.
func (d *Dispatcher) DispatchAll(ctx context.Context, calls []Call) []anthropic.ContentBlockParamUnion {
	results := make([]anthropic.ContentBlockParamUnion, 0, len(calls))
	for _, call := range calls {
		out := d.Dispatch(ctx, call)
		results = append(results, anthropic.NewToolResultBlock(call.ID, out.Text, out.Failed))
	}
	return results
}

// Dispatch resolves a single call to an outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) tools.Outcome {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	emit := func(outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   call.Name,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(call.Input),
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	def, err := d.registry.Lookup(call.Name)
	if err != nil {
		// The model invented a tool we never advertised.
		d.log.Warn().Str("tool", call.Name).Msg("call to unregistered tool")
		telemetry.Emit("protocol_violation", map[string]any{
			"kind":    "unknown_tool",
			"tool":    call.Name,
			"turn_id": turnID,
		})
		emit(0, "tool not found")
		return tools.Outcome{Text: fmt.Sprintf("tool not found: %s", call.Name), Failed: true}
	}

	if def.Embedded {
		// The provider executes embedded tools itself; locally we only keep
		// the protocol intact by answering the call.
		emit(0, "")
		return tools.Outcome{Text: "tool handled by provider"}
	}

	if err := validateInput(def.InputSchema, call.Input); err != nil {
		emit(0, "invalid input")
		return tools.Outcome{Text: fmt.Sprintf("invalid input for %s: %v", call.Name, err), Failed: true}
	}

	out := d.execute(ctx, def, call)
	if out.Failed {
		// Generic error string keeps raw payloads out of telemetry; the
		// detailed message still reaches the model in the tool result.
		emit(0, "tool error")
	} else {
		emit(len(out.Text), "")
	}
	return out
}

// execute runs the handler, converting a panic into a failed outcome so one
// misbehaving tool cannot take down the loop.
func (d *Dispatcher) execute(ctx context.Context, def tools.ToolDefinition, call Call) (out tools.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("tool", call.Name).Interface("panic", r).Msg("tool handler panicked")
			out = tools.Outcome{Text: fmt.Sprintf("tool %s failed: internal error", call.Name), Failed: true}
		}
	}()

	text, err := def.Function(ctx, call.Input)
	if err != nil {
		return tools.Outcome{Text: err.Error(), Failed: true}
	}
	return tools.Outcome{Text: text}
}
