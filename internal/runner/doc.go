// Package runner coordinates message exchange with the Anthropic Messages API
// and dispatches tool calls.
//
// Invariants:
//   - every tool_use block in an assistant message is answered by exactly one
//     tool_result block, matched by ID and order, in the next user message;
//   - a turn's messages reach the conversation history only once the turn
//     resolves, so a transport failure leaves history exactly as it was.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package runner
