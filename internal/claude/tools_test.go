package claude

import "testing"

func TestToolUse_Typed(t *testing.T) {
	tests := []struct {
		name string
		use  ToolUse
		want ToolInput
	}{
		{
			name: "write",
			use:  ToolUse{Name: "Write", Input: map[string]any{"content": "x", "file_path": "/a/b.go"}},
			want: WriteInput{Content: "x", FilePath: "/a/b.go", HasPath: true},
		},
		{
			name: "write without path",
			use:  ToolUse{Name: "Write", Input: map[string]any{"content": "x"}},
			want: WriteInput{Content: "x"},
		},
		{
			name: "write with empty path",
			use:  ToolUse{Name: "Write", Input: map[string]any{"content": "x", "file_path": ""}},
			want: WriteInput{Content: "x", HasPath: true},
		},
		{
			name: "write with non-string path",
			use:  ToolUse{Name: "Write", Input: map[string]any{"content": "x", "file_path": 7}},
			want: WriteInput{Content: "x"},
		},
		{
			name: "edit",
			use:  ToolUse{Name: "Edit", Input: map[string]any{"new_string": "y", "file_path": "/a/c.py"}},
			want: EditInput{NewString: "y", FilePath: "/a/c.py", HasPath: true},
		},
		{
			name: "bash",
			use:  ToolUse{Name: "Bash", Input: map[string]any{"command": "ls -la"}},
			want: BashInput{Command: "ls -la"},
		},
		{
			name: "bash with non-string command",
			use:  ToolUse{Name: "Bash", Input: map[string]any{"command": 42}},
			want: GenericInput{Name: "Bash", Fields: map[string]any{"command": 42}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.use.Typed()
			if got.ToolName() != tt.want.ToolName() {
				t.Fatalf("ToolName() = %q, want %q", got.ToolName(), tt.want.ToolName())
			}
			switch want := tt.want.(type) {
			case GenericInput:
				g, ok := got.(GenericInput)
				if !ok {
					t.Fatalf("got %T, want GenericInput", got)
				}
				if g.Fields["command"] != want.Fields["command"] {
					t.Errorf("Fields = %v, want %v", g.Fields, want.Fields)
				}
			default:
				if got != tt.want {
					t.Errorf("Typed() = %#v, want %#v", got, tt.want)
				}
			}
		})
	}
}

func TestToolUse_TypedUnknownTool(t *testing.T) {
	got := ToolUse{Name: "Grep", Input: map[string]any{"pattern": "TODO"}}.Typed()
	g, ok := got.(GenericInput)
	if !ok {
		t.Fatalf("got %T, want GenericInput", got)
	}
	if g.Name != "Grep" || g.Fields["pattern"] != "TODO" {
		t.Errorf("GenericInput = %+v", g)
	}
}
