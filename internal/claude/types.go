package claude

import "time"

// Kind discriminates the transcript record variants the parser understands.
type Kind int

const (
	KindUser Kind = iota + 1
	KindAssistant
	KindSummary
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Entry is one parsed transcript record. The concrete type is one of
// UserEntry, AssistantEntry or SummaryEntry.
type Entry interface {
	Kind() Kind
	isEntry()
}

// UserEntry is a prompt typed by the user.
type UserEntry struct {
	UUID       string    `json:"uuid"`
	Timestamp  time.Time `json:"timestamp"`
	ParentUUID string    `json:"parentUuid,omitempty"`
	SessionID  string    `json:"sessionId,omitempty"`
	CWD        string    `json:"cwd,omitempty"`
	Content    string    `json:"content"`
}

// AssistantEntry is one assistant turn: text and tool invocations in order.
type AssistantEntry struct {
	UUID       string         `json:"uuid"`
	Timestamp  time.Time      `json:"timestamp"`
	ParentUUID string         `json:"parentUuid,omitempty"`
	SessionID  string         `json:"sessionId,omitempty"`
	Blocks     []ContentBlock `json:"-"`
	Usage      *Usage         `json:"usage,omitempty"`
}

// SummaryEntry is the conversation summary Claude Code writes when a
// session is compacted or titled. It carries no reliable id.
type SummaryEntry struct {
	Summary  string `json:"summary"`
	LeafUUID string `json:"leafUuid,omitempty"`
}

func (UserEntry) Kind() Kind      { return KindUser }
func (AssistantEntry) Kind() Kind { return KindAssistant }
func (SummaryEntry) Kind() Kind   { return KindSummary }

func (UserEntry) isEntry()      {}
func (AssistantEntry) isEntry() {}
func (SummaryEntry) isEntry()   {}

// Usage holds the token counts reported for an assistant message.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// ContentBlock is one element of an assistant message: TextBlock or ToolUseBlock.
type ContentBlock interface {
	isBlock()
}

// TextBlock is free text written by the assistant.
type TextBlock struct {
	Text string
}

// ToolUseBlock is a tool invocation with its open-ended input map.
type ToolUseBlock struct {
	ID    string
	Name  string
	Input map[string]any
}

func (TextBlock) isBlock()    {}
func (ToolUseBlock) isBlock() {}

// HistoryEntry represents a single entry in ~/.claude/history.jsonl.
type HistoryEntry struct {
	Display   string `json:"display"`
	Timestamp int64  `json:"timestamp"`
	Project   string `json:"project"`
	SessionID string `json:"sessionId"`
}

// Transcript collects the entries parsed from one file, in file order.
type Transcript struct {
	Users      []UserEntry
	Assistants []AssistantEntry
	Summaries  []SummaryEntry
}

// Len returns the number of entries of all kinds.
func (t Transcript) Len() int {
	return len(t.Users) + len(t.Assistants) + len(t.Summaries)
}
