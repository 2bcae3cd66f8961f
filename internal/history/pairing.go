package history

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// PairingError reports a tool_use/tool_result mismatch between an assistant
// message and the user message answering it. It signals a contract violation
// in how the history was assembled, not a tool-level failure.
type PairingError struct {
	Index  int    // index of the offending message
	Reason string // reason code: not_followed_by_user, results_not_leading, missing_results, extra_results, order_mismatch
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("tool pairing violation at message %d: %s", e.Index, e.Reason)
}

// CheckPairing verifies that every tool_use block in an assistant message is
// answered, in the next user message, by exactly one tool_result with a
// matching id, in the same relative order. A trailing assistant message with
// unanswered tool_use blocks is allowed: that turn is still being resolved.
//
// In the answering user message all tool_result blocks must come first; text
// (if any) follows.
func CheckPairing(msgs []anthropic.MessageParam) error {
	for i := 0; i < len(msgs); i++ {
		m := msgs[i]
		if m.Role != anthropic.MessageParamRoleAssistant {
			continue
		}
		useIDs := toolUseIDs(m)
		if len(useIDs) == 0 {
			continue
		}
		if i == len(msgs)-1 {
			continue
		}

		next := msgs[i+1]
		if next.Role != anthropic.MessageParamRoleUser {
			return &PairingError{Index: i, Reason: "not_followed_by_user"}
		}

		resultIDs, leading := leadingToolResultIDs(next)
		if !leading {
			return &PairingError{Index: i + 1, Reason: "results_not_leading"}
		}
		if len(resultIDs) < len(useIDs) {
			return &PairingError{Index: i + 1, Reason: "missing_results"}
		}
		if len(resultIDs) > len(useIDs) {
			return &PairingError{Index: i + 1, Reason: "extra_results"}
		}
		for j := range useIDs {
			if resultIDs[j] != useIDs[j] {
				return &PairingError{Index: i + 1, Reason: "order_mismatch"}
			}
		}
	}
	return nil
}

// toolUseIDs returns the tool_use ids of an assistant message in block order.
func toolUseIDs(m anthropic.MessageParam) []string {
	var ids []string
	for _, blk := range m.Content {
		if tu := blk.OfToolUse; tu != nil && tu.ID != "" {
			ids = append(ids, tu.ID)
		}
	}
	return ids
}

// leadingToolResultIDs returns the ids of the leading tool_result segment of
// a user message, in block order. leading=false when a tool_result appears
// after a non-result block.
func leadingToolResultIDs(m anthropic.MessageParam) (ids []string, leading bool) {
	seenNonResult := false
	for _, blk := range m.Content {
		if tr := blk.OfToolResult; tr != nil {
			if seenNonResult {
				return ids, false
			}
			if tr.ToolUseID != "" {
				ids = append(ids, tr.ToolUseID)
			}
			continue
		}
		seenNonResult = true
	}
	return ids, true
}
