package viewstate

import (
	"time"

	"github.com/wethinkt/seslog/internal/trace"
)

// Session is the view state for one session: the main conversation plus one
// Conversation per agent sub-thread, created on first reference so a
// sub-thread that is never mentioned costs nothing. Agent conversations are
// independently owned and hold no back-reference to the session.
type Session struct {
	sessionID string
	main      *Conversation
	agents    map[string]*Conversation
	agentIDs  []string // creation order, for deterministic cycling
	startLine int
	startTime time.Time
}

// NewSession creates an empty session.
func NewSession(sessionID string) *Session {
	return &Session{
		sessionID: sessionID,
		main:      NewConversation("", nil),
		agents:    make(map[string]*Conversation),
	}
}

// SessionID returns the session identifier.
func (s *Session) SessionID() string { return s.sessionID }

// StartLine returns the session's cumulative line offset from the start of
// the log, for multi-session continuous scrolling.
func (s *Session) StartLine() int { return s.startLine }

// SetStartLine sets the cumulative line offset.
func (s *Session) SetStartLine(line int) { s.startLine = line }

// StartTime returns the timestamp of the first entry added to the session,
// main or agent. False until a timestamped entry arrives.
func (s *Session) StartTime() (time.Time, bool) {
	return s.startTime, !s.startTime.IsZero()
}

// Main returns the main conversation.
func (s *Session) Main() *Conversation { return s.main }

// Agent returns the conversation for an agent sub-thread, or nil when no
// entry has referenced it yet. Read-only lookup; never creates.
func (s *Session) Agent(id string) *Conversation { return s.agents[id] }

// AgentIDs returns the agent sub-thread IDs in creation order.
func (s *Session) AgentIDs() []string { return s.agentIDs }

// Conversation routes an agent ID to its conversation: "" means the main
// thread, anything else an agent thread (nil when absent).
func (s *Session) Conversation(agentID string) *Conversation {
	if agentID == "" {
		return s.main
	}
	return s.agents[agentID]
}

// agent returns the conversation for id, creating it on first reference.
// Newly created conversations get the current layout params immediately so
// they are renderable before any relayout pass.
func (s *Session) agent(id string, params LayoutParams, measure MeasureFunc) *Conversation {
	if conv, ok := s.agents[id]; ok {
		return conv
	}
	conv := NewConversation(id, nil)
	conv.RecomputeLayout(params, measure)
	s.agents[id] = conv
	s.agentIDs = append(s.agentIDs, id)
	return conv
}

// AddEntry appends an entry to the conversation its AgentID names, creating
// agent conversations lazily.
func (s *Session) AddEntry(entry trace.Entry, params LayoutParams, measure MeasureFunc) {
	if s.startTime.IsZero() && !entry.Timestamp.IsZero() {
		s.startTime = entry.Timestamp
	}
	target := s.main
	if entry.AgentID != "" {
		target = s.agent(entry.AgentID, params, measure)
	}
	target.Append([]trace.Entry{entry}, params, measure)
}

// TotalHeight returns the main conversation's document height. Agent
// threads render in their own pane and do not contribute to the continuous
// scroll height.
func (s *Session) TotalHeight() int { return s.main.TotalHeight() }

// EntryCount returns the number of entries across main and agent threads.
func (s *Session) EntryCount() int {
	n := s.main.Len()
	for _, conv := range s.agents {
		n += conv.Len()
	}
	return n
}

// RecomputeLayout rebuilds the layout of every conversation in the session.
func (s *Session) RecomputeLayout(params LayoutParams, measure MeasureFunc) {
	s.main.RecomputeLayout(params, measure)
	for _, id := range s.agentIDs {
		s.agents[id].RecomputeLayout(params, measure)
	}
}
