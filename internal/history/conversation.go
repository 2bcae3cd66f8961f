// Package history owns conversation state for the agent loop.
//
// The message sequence is append-only: turns are committed as whole units, so
// an aborted turn never leaves a partially-appended message behind. Only the
// loop appends; everything else gets copies.
package history

import "github.com/anthropics/anthropic-sdk-go"

// Conversation is the ordered message history plus the turn counter.
type Conversation struct {
	msgs  []anthropic.MessageParam
	turns int
}

// New returns an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// Len returns the number of committed messages.
func (c *Conversation) Len() int { return len(c.msgs) }

// Turns returns how many user turns have completed.
func (c *Conversation) Turns() int { return c.turns }

// Messages returns a copy of the committed history.
func (c *Conversation) Messages() []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Window returns the committed history followed by pending, as a fresh slice
// safe to hand to the transport.
func (c *Conversation) Window(pending ...anthropic.MessageParam) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(c.msgs)+len(pending))
	out = append(out, c.msgs...)
	out = append(out, pending...)
	return out
}

// Commit appends fully-formed messages to the history.
func (c *Conversation) Commit(msgs ...anthropic.MessageParam) {
	c.msgs = append(c.msgs, msgs...)
}

// EndTurn marks one user turn as complete.
func (c *Conversation) EndTurn() {
	c.turns++
}
