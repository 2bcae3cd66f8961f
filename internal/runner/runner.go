package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sage-agent/sage/internal/history"
	"github.com/sage-agent/sage/internal/telemetry"
	"github.com/sage-agent/sage/tools"
)

// ErrHopLimit is returned when a turn exhausts its model round-trip budget.
// The outstanding tool calls have already been answered with failed results,
// so history stays well formed and the conversation can continue.
var ErrHopLimit = errors.New("hop limit reached")

// TransportError wraps a Messages API failure. Nothing from the failed turn
// was committed, so the caller may simply retry the user input.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

const defaultMaxTokens = 8192

// Runner drives one conversation turn at a time: send window, collect the
// assistant reply, dispatch tool calls, repeat until the assistant answers
// with text only.
type Runner struct {
	client     *anthropic.Client
	registry   *tools.Registry
	dispatcher *Dispatcher
	model      anthropic.Model
	maxHops    int
	maxTokens  int64
	log        zerolog.Logger
	out        io.Writer
}

func New(client *anthropic.Client, registry *tools.Registry, model anthropic.Model, maxHops int, log zerolog.Logger, out io.Writer) *Runner {
	return &Runner{
		client:     client,
		registry:   registry,
		dispatcher: NewDispatcher(registry, log),
		model:      model,
		maxHops:    maxHops,
		maxTokens:  defaultMaxTokens,
		log:        log,
		out:        out,
	}
}

// catalog builds the tool list advertised to the model: custom tools by their
// generated schema, embedded tools by their provider type.
func (r *Runner) catalog() []anthropic.ToolUnionParam {
	defs := r.registry.ForModel(string(r.model))
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		if def.Embedded {
			switch def.EmbeddedType {
			case "text_editor_20250124":
				out = append(out, anthropic.ToolUnionParam{
					OfTextEditor20250124: &anthropic.ToolTextEditor20250124Param{},
				})
			default:
				r.log.Warn().Str("tool", def.Name).Str("type", def.EmbeddedType).Msg("unsupported embedded tool type, not advertised")
			}
			continue
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: def.InputSchema,
		}})
	}
	return out
}

// RunTurn processes one user input to completion. Messages produced during
// the turn are held aside and committed to conv only when the turn resolves;
// a transport failure therefore leaves conv untouched.
func (r *Runner) RunTurn(ctx context.Context, conv *history.Conversation, userText string) error {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = uuid.NewString()
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	pending := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(userText)),
	}

	for hop := 0; ; hop++ {
		window := conv.Window(pending...)
		if err := history.CheckPairing(window); err != nil {
			return fmt.Errorf("refusing to send malformed window: %w", err)
		}

		telemetry.Emit("model_call", map[string]any{
			"turn_id":  turnID,
			"model":    string(r.model),
			"hop":      hop,
			"messages": len(window),
		})

		msg, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     r.model,
			MaxTokens: r.maxTokens,
			Messages:  window,
			Tools:     r.catalog(),
		})
		if err != nil {
			r.log.Error().Err(err).Int("hop", hop).Msg("messages api call failed")
			return &TransportError{Err: err}
		}
		pending = append(pending, msg.ToParam())

		var calls []Call
		for _, block := range msg.Content {
			switch v := block.AsAny().(type) {
			case anthropic.TextBlock:
				fmt.Fprintf(r.out, "\u001b[93mClaude\u001b[0m: %s\n", v.Text)
			case anthropic.ToolUseBlock:
				calls = append(calls, Call{
					ID:    v.ID,
					Name:  v.Name,
					Input: json.RawMessage(v.JSON.Input.Raw()),
				})
			}
		}

		if len(calls) == 0 {
			conv.Commit(pending...)
			conv.EndTurn()
			return nil
		}

		if hop+1 >= r.maxHops {
			// Answer the outstanding calls so the committed history keeps
			// every tool_use paired with a tool_result.
			results := make([]anthropic.ContentBlockParamUnion, 0, len(calls))
			for _, call := range calls {
				results = append(results, anthropic.NewToolResultBlock(call.ID, "hop limit reached, tool call not executed", true))
			}
			pending = append(pending, anthropic.NewUserMessage(results...))
			conv.Commit(pending...)
			conv.EndTurn()
			r.log.Warn().Int("max_hops", r.maxHops).Msg("turn exhausted its hop budget")
			return ErrHopLimit
		}

		results := r.dispatcher.DispatchAll(ctx, calls)
		pending = append(pending, anthropic.NewUserMessage(results...))
	}
}
