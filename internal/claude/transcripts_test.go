package claude

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// helper to write a JSONL file in a temp dir and return its path.
func writeJSONL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

var utc2025 = YearWindow(2025, time.UTC)

func TestParseFile_AllKinds(t *testing.T) {
	dir := t.TempDir()
	jsonl := strings.Join([]string{
		`{"type":"user","uuid":"u1","sessionId":"s1","cwd":"/home/dev/app","timestamp":"2025-03-01T10:00:00Z","message":{"role":"user","content":"add a login page"}}`,
		`{"type":"assistant","uuid":"a1","sessionId":"s1","timestamp":"2025-03-01T10:00:05Z","message":{"role":"assistant","content":[{"type":"text","text":"Sure."},{"type":"tool_use","id":"t1","name":"Write","input":{"file_path":"/x/login.tsx","content":"a\nb"}},{"type":"text","text":"Done."}],"usage":{"input_tokens":100,"output_tokens":20}}}`,
		`{"type":"summary","summary":"Login page work","leafUuid":"a1"}`,
	}, "\n")
	path := writeJSONL(t, dir, "s1.jsonl", jsonl)

	tr, err := ParseFile(path, utc2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Users) != 1 || len(tr.Assistants) != 1 || len(tr.Summaries) != 1 {
		t.Fatalf("got %d users, %d assistants, %d summaries; want 1 each",
			len(tr.Users), len(tr.Assistants), len(tr.Summaries))
	}

	u := tr.Users[0]
	if u.UUID != "u1" || u.SessionID != "s1" || u.CWD != "/home/dev/app" {
		t.Errorf("user entry = %+v", u)
	}
	if u.Content != "add a login page" {
		t.Errorf("Content = %q, want %q", u.Content, "add a login page")
	}

	a := tr.Assistants[0]
	if got := a.Text(); got != "Sure.\nDone." {
		t.Errorf("Text() = %q, want %q", got, "Sure.\nDone.")
	}
	uses := a.ToolUses()
	if len(uses) != 1 || uses[0].Name != "Write" {
		t.Fatalf("ToolUses() = %+v", uses)
	}
	if a.Usage == nil || a.Usage.InputTokens != 100 || a.Usage.OutputTokens != 20 {
		t.Errorf("Usage = %+v", a.Usage)
	}

	if tr.Summaries[0].Summary != "Login page work" {
		t.Errorf("Summary = %q", tr.Summaries[0].Summary)
	}
}

func TestParseFile_SkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	jsonl := strings.Join([]string{
		``,
		`   `,
		`{not json`,
		`{"type":"progress","uuid":"p1","timestamp":"2025-03-01T10:00:00Z"}`,
		// Wrong role.
		`{"type":"user","uuid":"u0","timestamp":"2025-03-01T10:00:00Z","message":{"role":"assistant","content":"hi"}}`,
		// Tool result content is an array, not a prompt.
		`{"type":"user","uuid":"u2","timestamp":"2025-03-01T10:00:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"t1"}]}}`,
		// Missing uuid.
		`{"type":"user","timestamp":"2025-03-01T10:00:00Z","message":{"role":"user","content":"hi"}}`,
		// Usage with a missing count fails validation.
		`{"type":"assistant","uuid":"a2","timestamp":"2025-03-01T10:00:00Z","message":{"role":"assistant","content":[],"usage":{"input_tokens":1}}}`,
		// Summary without text.
		`{"type":"summary","leafUuid":"x"}`,
		`{"type":"user","uuid":"ok","timestamp":"2025-03-01T10:00:00Z","message":{"role":"user","content":"valid"}}`,
	}, "\n")
	path := writeJSONL(t, dir, "bad.jsonl", jsonl)

	tr, err := ParseFile(path, utc2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", tr.Len())
	}
	if tr.Users[0].UUID != "ok" {
		t.Errorf("survivor = %q, want %q", tr.Users[0].UUID, "ok")
	}
}

func TestParseFile_YearFilter(t *testing.T) {
	dir := t.TempDir()
	jsonl := strings.Join([]string{
		`{"type":"user","uuid":"old","timestamp":"2024-12-31T23:59:59Z","message":{"role":"user","content":"last year"}}`,
		`{"type":"user","uuid":"new","timestamp":"2025-01-01T00:00:00Z","message":{"role":"user","content":"this year"}}`,
		`{"type":"user","uuid":"next","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"next year"}}`,
		// Summaries carry no timestamp and always pass the filter.
		`{"type":"summary","summary":"kept"}`,
		// A timestamped summary outside the year is dropped.
		`{"type":"summary","summary":"dropped","timestamp":"2023-05-05T00:00:00Z"}`,
	}, "\n")
	path := writeJSONL(t, dir, "years.jsonl", jsonl)

	tr, err := ParseFile(path, utc2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Users) != 1 || tr.Users[0].UUID != "new" {
		t.Errorf("users = %+v, want only %q", tr.Users, "new")
	}
	if len(tr.Summaries) != 1 || tr.Summaries[0].Summary != "kept" {
		t.Errorf("summaries = %+v, want only %q", tr.Summaries, "kept")
	}
}

func TestParseFile_YearFilterUsesLocation(t *testing.T) {
	dir := t.TempDir()
	// 2025-01-01T03:00Z is still 2024 in New York.
	jsonl := `{"type":"user","uuid":"u1","timestamp":"2025-01-01T03:00:00Z","message":{"role":"user","content":"hi"}}`
	path := writeJSONL(t, dir, "tz.jsonl", jsonl)

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tr, err := ParseFile(path, YearWindow(2025, ny))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Users) != 0 {
		t.Errorf("expected entry to fall in 2024 local time, got %d users", len(tr.Users))
	}

	tr, err = ParseFile(path, YearWindow(2024, ny))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Users) != 1 {
		t.Errorf("expected 1 user entry in 2024, got %d", len(tr.Users))
	}
}

func TestParseFile_RejectsNonResponseBlocks(t *testing.T) {
	dir := t.TempDir()
	jsonl := strings.Join([]string{
		`{"type":"assistant","uuid":"a1","timestamp":"2025-03-01T10:00:00Z","message":{"role":"assistant","content":[{"type":"thinking","thinking":"hmm"}]}}`,
		`{"type":"assistant","uuid":"a2","timestamp":"2025-03-01T10:00:01Z","message":{"role":"assistant","content":[{"type":"thinking","thinking":"hmm"},{"type":"text","text":"answer"}]}}`,
		`{"type":"assistant","uuid":"a3","timestamp":"2025-03-01T10:00:02Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Bash"}]}}`,
		`{"type":"assistant","uuid":"a4","timestamp":"2025-03-01T10:00:03Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"t2","name":"Bash","input":null}]}}`,
		`{"type":"assistant","uuid":"a5","timestamp":"2025-03-01T10:00:04Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"t3","name":"Bash","input":{}}]}}`,
	}, "\n")
	path := writeJSONL(t, dir, "blocks.jsonl", jsonl)

	tr, err := ParseFile(path, utc2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Assistants) != 1 {
		t.Fatalf("expected 1 assistant entry, got %d", len(tr.Assistants))
	}
	if tr.Assistants[0].UUID != "a5" || len(tr.Assistants[0].Blocks) != 1 {
		t.Errorf("kept %+v, want a5 with one tool_use", tr.Assistants[0])
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl"), utc2025)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecoder_StopsEarly(t *testing.T) {
	jsonl := strings.Join([]string{
		`{"type":"summary","summary":"one"}`,
		`{"type":"summary","summary":"two"}`,
		`{"type":"summary","summary":"three"}`,
	}, "\n")

	dec := NewDecoder(strings.NewReader(jsonl), utc2025)
	var seen []string
	for e := range dec.All() {
		seen = append(seen, e.(SummaryEntry).Summary)
		if len(seen) == 2 {
			break
		}
	}
	if len(seen) != 2 || seen[1] != "two" {
		t.Errorf("seen = %v, want [one two]", seen)
	}
	if dec.Err() != nil {
		t.Errorf("unexpected error: %v", dec.Err())
	}
}

func TestWindow_SinceUntil(t *testing.T) {
	w := Window{
		Year:     2025,
		Location: time.UTC,
		Since:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Until:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	tests := []struct {
		ts   time.Time
		want bool
	}{
		{time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC), false},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC), true},
		{time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Time{}, false},
	}
	for _, tt := range tests {
		if got := w.Contains(tt.ts); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
		}
	}
}

func TestParseFile_ZonelessTimestampUsesWindowLocation(t *testing.T) {
	dir := t.TempDir()
	jsonl := `{"type":"user","uuid":"u1","timestamp":"2025-01-01T03:00:00","message":{"role":"user","content":"happy new year"}}`
	path := writeJSONL(t, dir, "zoneless.jsonl", jsonl)

	newYork := time.FixedZone("EST", -5*60*60)
	tr, err := ParseFile(path, YearWindow(2025, newYork))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.Users) != 1 {
		t.Fatalf("expected 1 user entry, got %d", len(tr.Users))
	}
	if got := tr.Users[0].Timestamp.In(newYork); got.Hour() != 3 || got.Year() != 2025 {
		t.Errorf("timestamp = %v, want 03:00 on 2025-01-01 in EST", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-15T10:00:00Z", time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2025-01-15T10:00:00.123Z", time.Date(2025, 1, 15, 10, 0, 0, 123000000, time.UTC)},
		{"2025-01-15T10:00:00+02:00", time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)},
		{"2025-01-15T10:00:00", time.Date(2025, 1, 15, 10, 0, 0, 0, tokyo)},
		{"2025-01-15T10:00:00.5", time.Date(2025, 1, 15, 10, 0, 0, 500000000, tokyo)},
		{"", time.Time{}},
		{"yesterday", time.Time{}},
	}
	for _, tt := range tests {
		if got := ParseTimestamp(tt.in, tokyo); !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
