// Package provider constructs the model client.
package provider

import (
	"os"

	"github.com/anthropics/anthropic-sdk-go"
)

// NewClient returns a client using the API key from the env.
func NewClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

// DefaultModel is used when ANTHROPIC_MODEL is unset.
const DefaultModel = anthropic.ModelClaude3_5HaikuLatest

// Model returns the active model identifier.
func Model() anthropic.Model {
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		return anthropic.Model(v)
	}
	return DefaultModel
}
