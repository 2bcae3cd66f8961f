package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sage-agent/sage/internal/sandbox"
)

type RunCodeInput struct {
	Code           string `json:"code" jsonschema_description:"Python source code to execute in the sandbox."`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema_description:"Optional execution budget in seconds; clamped to the configured maximum."`
}

var RunCodeInputSchema = GenerateSchema[RunCodeInput]()

// NewRunCodeTool returns the run_code definition bound to exec.
//
// A run that completes but fails (nonzero exit or timeout) is reported as an
// error carrying the run's captured output, so the model sees tracebacks and
// partial stdout rather than a bare failure flag.
func NewRunCodeTool(exec *sandbox.Executor) ToolDefinition {
	return ToolDefinition{
		Name: "run_code",
		Description: `Execute Python code in a sandboxed subprocess rooted at the workspace.

Available libraries include numpy, pandas and matplotlib; other third-party imports are blocked. Figures are saved automatically as plot_N.png in the workspace. Output is the combined stdout of the run plus a list of files the run created.`,
		InputSchema: RunCodeInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in RunCodeInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			if strings.TrimSpace(in.Code) == "" {
				return "", errors.New("code is empty")
			}

			run, err := exec.Run(ctx, in.Code, time.Duration(in.TimeoutSeconds)*time.Second)
			if err != nil {
				return "", err
			}
			if run.Failed() {
				return "", fmt.Errorf("%s", run.ResultText())
			}
			return run.ResultText(), nil
		},
	}
}
