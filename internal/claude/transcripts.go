package claude

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"iter"
	"os"
	"time"
)

// maxLineSize bounds a single JSONL record. Assistant turns that write
// large files can run to several megabytes.
const maxLineSize = 32 * 1024 * 1024

// rawRecord is the superset of fields read from any transcript line.
type rawRecord struct {
	Type       string          `json:"type"`
	UUID       string          `json:"uuid"`
	ParentUUID string          `json:"parentUuid"`
	SessionID  string          `json:"sessionId"`
	CWD        string          `json:"cwd"`
	Timestamp  *string         `json:"timestamp"`
	Message    json.RawMessage `json:"message"`
	Summary    *string         `json:"summary"`
	LeafUUID   string          `json:"leafUuid"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Usage   *rawUsage       `json:"usage"`
}

type rawUsage struct {
	InputTokens  *int64 `json:"input_tokens"`
	OutputTokens *int64 `json:"output_tokens"`
}

type rawBlock struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Text  *string         `json:"text"`
	Input json.RawMessage `json:"input"`
}

// Decoder reads transcript entries from a JSONL stream. Like bufio.Scanner
// it is single-pass; call Err after iterating to learn why it stopped.
type Decoder struct {
	sc     *bufio.Scanner
	window Window
	err    error
}

// NewDecoder returns a decoder that yields entries of r inside w.
func NewDecoder(r io.Reader, w Window) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{sc: sc, window: w}
}

// All yields every valid entry in stream order. Blank lines, malformed
// JSON, unknown record types, records failing shape validation and
// records timestamped outside the window are skipped.
func (d *Decoder) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for d.sc.Scan() {
			line := d.sc.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			entry, ok := decodeLine(line, d.window)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
		}
		d.err = d.sc.Err()
	}
}

// Err returns the first read error encountered by All.
func (d *Decoder) Err() error {
	return d.err
}

// ParseFile reads one transcript file into a Transcript.
func ParseFile(path string, w Window) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f, w)
}

// Parse reads a whole JSONL stream into a Transcript.
func Parse(r io.Reader, w Window) (Transcript, error) {
	var t Transcript
	dec := NewDecoder(r, w)
	for entry := range dec.All() {
		switch e := entry.(type) {
		case UserEntry:
			t.Users = append(t.Users, e)
		case AssistantEntry:
			t.Assistants = append(t.Assistants, e)
		case SummaryEntry:
			t.Summaries = append(t.Summaries, e)
		}
	}
	return t, dec.Err()
}

func decodeLine(line []byte, w Window) (Entry, bool) {
	var rec rawRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, false
	}

	// Records without a timestamp are not subject to the window.
	if rec.Timestamp != nil && *rec.Timestamp != "" {
		if !w.Contains(ParseTimestamp(*rec.Timestamp, w.Loc())) {
			return nil, false
		}
	}

	switch rec.Type {
	case "user":
		return decodeUser(&rec, w.Loc())
	case "assistant":
		return decodeAssistant(&rec, w.Loc())
	case "summary":
		if rec.Summary == nil {
			return nil, false
		}
		return SummaryEntry{Summary: *rec.Summary, LeafUUID: rec.LeafUUID}, true
	default:
		return nil, false
	}
}

func decodeUser(rec *rawRecord, loc *time.Location) (Entry, bool) {
	ts, ok := requiredTimestamp(rec, loc)
	if !ok || rec.UUID == "" || len(rec.Message) == 0 {
		return nil, false
	}
	var msg rawMessage
	if err := json.Unmarshal(rec.Message, &msg); err != nil || msg.Role != "user" {
		return nil, false
	}
	// Tool results arrive as user records with array content; only
	// plain-text prompts qualify.
	var content string
	if err := json.Unmarshal(msg.Content, &content); err != nil {
		return nil, false
	}
	return UserEntry{
		UUID:       rec.UUID,
		Timestamp:  ts,
		ParentUUID: rec.ParentUUID,
		SessionID:  rec.SessionID,
		CWD:        rec.CWD,
		Content:    content,
	}, true
}

func decodeAssistant(rec *rawRecord, loc *time.Location) (Entry, bool) {
	ts, ok := requiredTimestamp(rec, loc)
	if !ok || rec.UUID == "" || len(rec.Message) == 0 {
		return nil, false
	}
	var msg rawMessage
	if err := json.Unmarshal(rec.Message, &msg); err != nil || msg.Role != "assistant" {
		return nil, false
	}
	var raw []rawBlock
	if err := json.Unmarshal(msg.Content, &raw); err != nil {
		return nil, false
	}

	blocks := make([]ContentBlock, 0, len(raw))
	for _, b := range raw {
		switch b.Type {
		case "text":
			if b.Text == nil {
				return nil, false
			}
			blocks = append(blocks, TextBlock{Text: *b.Text})
		case "tool_use":
			if b.Name == "" {
				return nil, false
			}
			var input map[string]any
			if err := json.Unmarshal(b.Input, &input); err != nil || input == nil {
				return nil, false
			}
			blocks = append(blocks, ToolUseBlock{ID: b.ID, Name: b.Name, Input: input})
		default:
			// Only text and tool_use blocks are valid; thinking or image
			// records are not responses.
			return nil, false
		}
	}

	entry := AssistantEntry{
		UUID:       rec.UUID,
		Timestamp:  ts,
		ParentUUID: rec.ParentUUID,
		SessionID:  rec.SessionID,
		Blocks:     blocks,
	}
	if msg.Usage != nil {
		if msg.Usage.InputTokens == nil || msg.Usage.OutputTokens == nil {
			return nil, false
		}
		entry.Usage = &Usage{
			InputTokens:  *msg.Usage.InputTokens,
			OutputTokens: *msg.Usage.OutputTokens,
		}
	}
	return entry, true
}

func requiredTimestamp(rec *rawRecord, loc *time.Location) (time.Time, bool) {
	if rec.Timestamp == nil {
		return time.Time{}, false
	}
	ts := ParseTimestamp(*rec.Timestamp, loc)
	return ts, !ts.IsZero()
}
