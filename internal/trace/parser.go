package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// rawEntry is the wire shape of one log line.
type rawEntry struct {
	Type       string          `json:"type"`
	UUID       string          `json:"uuid"`
	ParentUUID *string         `json:"parentUuid"`
	Timestamp  string          `json:"timestamp"`
	SessionID  string          `json:"sessionId"`
	AgentID    string          `json:"agentId"`
	Sidechain  bool            `json:"isSidechain"`
	Message    json.RawMessage `json:"message"`
	Summary    string          `json:"summary"` // summary entries carry text here
}

// rawMessage is the message body; content varies by entry type.
type rawMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"` // string or []ContentBlock
}

// ParseLine parses a single log line into an Entry. It never fails: lines
// that are not valid entries come back as KindMalformed with the raw text
// and the parse error attached. line is the 1-based source line number.
func ParseLine(data []byte, line int) Entry {
	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return malformed(data, line, err)
	}

	entry := Entry{
		UUID:      raw.UUID,
		SessionID: raw.SessionID,
		AgentID:   raw.AgentID,
		Sidechain: raw.Sidechain,
		Line:      line,
	}
	if raw.ParentUUID != nil {
		entry.ParentUUID = *raw.ParentUUID
	}
	if raw.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
			entry.Timestamp = ts
		}
	}

	switch raw.Type {
	case "user":
		entry.Kind = KindUser
	case "assistant":
		entry.Kind = KindAssistant
	case "system":
		entry.Kind = KindSystem
	case "summary":
		entry.Kind = KindSummary
		entry.Blocks = []ContentBlock{{Type: "text", Text: raw.Summary}}
		return entry
	default:
		return malformed(data, line, fmt.Errorf("unknown entry type %q", raw.Type))
	}

	if len(raw.Message) > 0 {
		var msg rawMessage
		if err := json.Unmarshal(raw.Message, &msg); err != nil {
			return malformed(data, line, fmt.Errorf("parse message: %w", err))
		}
		entry.Model = msg.Model
		entry.Blocks = parseContent(msg.Content)
	}
	return entry
}

// parseContent normalizes a message content field, which can be a plain
// string or an array of blocks, into []ContentBlock.
func parseContent(raw json.RawMessage) []ContentBlock {
	if len(raw) == 0 {
		return nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return []ContentBlock{{Type: "text", Text: str}}
	}
	var blocks []ContentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		return blocks
	}
	return nil
}

func malformed(data []byte, line int, err error) Entry {
	return Entry{
		Kind:     KindMalformed,
		Line:     line,
		Raw:      string(data),
		ParseErr: err.Error(),
	}
}

// Parser reads JSONL session logs line by line.
type Parser struct {
	scanner *bufio.Scanner
	lineNum int
}

// NewParser creates a parser from an io.Reader.
func NewParser(r io.Reader) *Parser {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines (some tool results can be large)
	const maxCapacity = 10 * 1024 * 1024 // 10MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	return &Parser{scanner: scanner}
}

// Next reads the next entry. Malformed lines come back as KindMalformed
// entries rather than errors; the stream only fails on I/O problems or a
// line beyond the buffer cap. Returns nil, nil at EOF.
func (p *Parser) Next() (*Entry, error) {
	for p.scanner.Scan() {
		p.lineNum++
		line := p.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		entry := ParseLine(line, p.lineNum)
		return &entry, nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", p.lineNum+1, err)
	}
	return nil, nil // EOF
}

// ReadAll reads every remaining entry.
func (p *Parser) ReadAll() ([]Entry, error) {
	var entries []Entry
	for {
		entry, err := p.Next()
		if err != nil {
			return entries, err
		}
		if entry == nil {
			return entries, nil
		}
		entries = append(entries, *entry)
	}
}

// LineNum returns the number of lines consumed so far.
func (p *Parser) LineNum() int { return p.lineNum }
