// Package trace provides the entry model and parsing for JSONL session-log
// files: sequences of conversational entries, possibly split across a main
// thread and agent sub-threads, possibly spanning multiple sessions.
package trace

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind classifies an entry by its top-level "type" field.
type Kind int

const (
	KindUser Kind = iota
	KindAssistant
	KindSystem
	KindSummary
	// KindMalformed marks a line that failed to parse. Malformed entries
	// stay in the stream so line numbers keep meaning, but render at zero
	// height unless the viewer chooses to surface them.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindSystem:
		return "system"
	case KindSummary:
		return "summary"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ContentBlock is one block within a message body.
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Thinking  string          `json:"thinking,omitempty"`
	Name      string          `json:"name,omitempty"` // tool_use
	ID        string          `json:"id,omitempty"`   // tool_use
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"` // tool_result
	Content   json.RawMessage `json:"content,omitempty"`     // tool_result
}

// Entry is one parsed line of a session log.
type Entry struct {
	Kind       Kind
	UUID       string
	ParentUUID string
	SessionID  string
	AgentID    string // "" for the main thread
	Sidechain  bool
	Timestamp  time.Time
	Model      string // assistant entries
	Blocks     []ContentBlock
	Line       int // 1-based source line number

	// Malformed entries only.
	Raw      string
	ParseErr string
}

// ID returns a stable identity for the entry: the UUID when present,
// otherwise a line-derived fallback so malformed and UUID-less entries still
// cache and hit-test consistently.
func (e *Entry) ID() string {
	if e.UUID != "" {
		return e.UUID
	}
	return fmt.Sprintf("line:%d", e.Line)
}

// IsMalformed reports whether the entry is a parse failure placeholder.
func (e *Entry) IsMalformed() bool { return e.Kind == KindMalformed }

// Text returns the entry's flattened text content: text blocks joined by
// newlines, other block types skipped.
func (e *Entry) Text() string {
	var text string
	for _, b := range e.Blocks {
		if b.Type == "text" && b.Text != "" {
			if text != "" {
				text += "\n"
			}
			text += b.Text
		}
	}
	return text
}
