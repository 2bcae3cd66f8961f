package memory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go"
)

// Message is a minimal persisted view of a chat turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// DefaultPath returns the conversation store location for a workspace root.
func DefaultPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, ".sage", "conversation.json")
}

// LoadConversation reads persisted messages. A missing file is an empty
// conversation, not an error.
func LoadConversation(path string) ([]Message, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SaveConversation writes msgs to path, creating parent directories as
// needed.
func SaveConversation(path string, msgs []Message) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// FromParams extracts the persistable text view of API messages: text blocks
// keep their role, everything else is dropped.
func FromParams(params []anthropic.MessageParam) []Message {
	var out []Message
	for _, p := range params {
		var texts string
		for _, block := range p.Content {
			if t := block.OfText; t != nil {
				if texts != "" {
					texts += "\n"
				}
				texts += t.Text
			}
		}
		if texts == "" {
			continue
		}
		out = append(out, Message{Role: string(p.Role), Text: texts})
	}
	return out
}

// ToParams rebuilds API messages from persisted ones. Unknown roles are
// skipped rather than guessed at.
func ToParams(msgs []Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, m := range msgs {
		if m.Text == "" {
			continue
		}
		switch m.Role {
		case string(anthropic.MessageParamRoleUser):
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		case string(anthropic.MessageParamRoleAssistant):
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		}
	}
	return out
}
