package claude

import "strings"

// ToolUse is one tool invocation extracted from an assistant entry.
type ToolUse struct {
	Name  string
	Input map[string]any
}

// ToolInput is the typed view of a tool invocation's input. The concrete
// type is WriteInput, EditInput, BashInput or GenericInput.
type ToolInput interface {
	ToolName() string
}

// WriteInput is the input of the Write tool.
type WriteInput struct {
	Content  string
	FilePath string
	// HasPath reports whether file_path was a string, possibly empty.
	HasPath bool
}

// EditInput is the input of the Edit tool.
type EditInput struct {
	NewString string
	FilePath  string
	HasPath   bool
}

// BashInput is the input of the Bash tool.
type BashInput struct {
	Command string
}

// GenericInput covers every other tool, and known tools whose input does
// not carry the expected fields.
type GenericInput struct {
	Name   string
	Fields map[string]any
}

func (WriteInput) ToolName() string     { return "Write" }
func (EditInput) ToolName() string      { return "Edit" }
func (BashInput) ToolName() string      { return "Bash" }
func (g GenericInput) ToolName() string { return g.Name }

// Text returns the entry's text blocks joined with newlines.
func (e AssistantEntry) Text() string {
	var parts []string
	for _, b := range e.Blocks {
		if t, ok := b.(TextBlock); ok {
			parts = append(parts, t.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ToolUses returns the entry's tool invocations in content order.
func (e AssistantEntry) ToolUses() []ToolUse {
	var uses []ToolUse
	for _, b := range e.Blocks {
		if t, ok := b.(ToolUseBlock); ok {
			uses = append(uses, ToolUse{Name: t.Name, Input: t.Input})
		}
	}
	return uses
}

// Typed selects the input variant by tool name.
func (u ToolUse) Typed() ToolInput {
	switch u.Name {
	case "Write":
		if content, ok := stringField(u.Input, "content"); ok {
			path, ok := stringField(u.Input, "file_path")
			return WriteInput{Content: content, FilePath: path, HasPath: ok}
		}
	case "Edit":
		if s, ok := stringField(u.Input, "new_string"); ok {
			path, ok := stringField(u.Input, "file_path")
			return EditInput{NewString: s, FilePath: path, HasPath: ok}
		}
	case "Bash":
		if cmd, ok := stringField(u.Input, "command"); ok {
			return BashInput{Command: cmd}
		}
	}
	return GenericInput{Name: u.Name, Fields: u.Input}
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
