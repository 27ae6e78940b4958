package viewstate

import "github.com/wethinkt/seslog/internal/trace"

// Log is the top-level view state for one log file: sessions in file order.
// A change of session ID in the entry stream starts a new session; the new
// session's start line is the summed height of everything before it, so the
// continuous-scroll offsets of earlier sessions never move.
type Log struct {
	sessions  []*Session
	currentID string
}

// NewLog creates an empty log view state.
func NewLog() *Log {
	return &Log{}
}

// SessionCount returns the number of sessions.
func (l *Log) SessionCount() int { return len(l.sessions) }

// IsEmpty reports whether no sessions exist.
func (l *Log) IsEmpty() bool { return len(l.sessions) == 0 }

// Session returns the session at index, or nil if out of range.
func (l *Log) Session(index int) *Session {
	if index < 0 || index >= len(l.sessions) {
		return nil
	}
	return l.sessions[index]
}

// Sessions returns the sessions in order. The slice is shared; do not
// mutate.
func (l *Log) Sessions() []*Session { return l.sessions }

// Current returns the most recent session, or nil when empty. Streaming
// appends always land here.
func (l *Log) Current() *Session {
	if len(l.sessions) == 0 {
		return nil
	}
	return l.sessions[len(l.sessions)-1]
}

// ActiveSession returns the index of the session containing scrollLine: the
// last session whose start line is at or before it. Returns -1 when empty.
func (l *Log) ActiveSession(scrollLine int) int {
	for i := len(l.sessions) - 1; i >= 0; i-- {
		if l.sessions[i].StartLine() <= scrollLine {
			return i
		}
	}
	return -1
}

// AddEntry routes an entry to its session and conversation, starting a new
// session when the entry's session ID differs from the current one. Entries
// without a session ID stay in the current session.
func (l *Log) AddEntry(entry trace.Entry, params LayoutParams, measure MeasureFunc) {
	boundary := len(l.sessions) == 0 ||
		(entry.SessionID != "" && entry.SessionID != l.currentID)
	if boundary {
		session := NewSession(entry.SessionID)
		session.SetStartLine(l.totalHeight())
		l.sessions = append(l.sessions, session)
		l.currentID = entry.SessionID
	}
	l.Current().AddEntry(entry, params, measure)
}

// AddEntries routes a batch of entries in order.
func (l *Log) AddEntries(entries []trace.Entry, params LayoutParams, measure MeasureFunc) {
	for _, e := range entries {
		l.AddEntry(e, params, measure)
	}
}

// RecomputeLayout rebuilds every session's layout and recomputes session
// start lines from the new heights.
func (l *Log) RecomputeLayout(params LayoutParams, measure MeasureFunc) {
	line := 0
	for _, s := range l.sessions {
		s.RecomputeLayout(params, measure)
		s.SetStartLine(line)
		line += s.TotalHeight()
	}
}

// EntryCount returns the number of entries across all sessions.
func (l *Log) EntryCount() int {
	n := 0
	for _, s := range l.sessions {
		n += s.EntryCount()
	}
	return n
}

func (l *Log) totalHeight() int {
	total := 0
	for _, s := range l.sessions {
		total += s.TotalHeight()
	}
	return total
}
