package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func mkConversations(t *testing.T, dir string, n int) {
	t.Helper()
	sub := filepath.Join(dir, "projects", "session")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for i := range n {
		name := filepath.Join(sub, "conv"+string(rune('a'+i))+".jsonl")
		if err := os.WriteFile(name, []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// Scan
// ---------------------------------------------------------------------------

func TestScan_GlobalFirstThenByCount(t *testing.T) {
	home := t.TempDir()
	mkConversations(t, filepath.Join(home, ".claude"), 1)
	mkConversations(t, filepath.Join(home, "alpha", ".claude"), 2)
	mkConversations(t, filepath.Join(home, "bravo", ".claude"), 5)

	dirs, err := Scan(Options{Home: home})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 3 {
		t.Fatalf("expected 3 directories, got %d", len(dirs))
	}
	if !dirs[0].IsGlobal || dirs[0].ProjectName != GlobalName {
		t.Errorf("dirs[0] = %+v, want global first", dirs[0])
	}
	if dirs[1].ProjectName != "bravo" || dirs[1].ConversationCount != 5 {
		t.Errorf("dirs[1] = %+v, want bravo with 5 conversations", dirs[1])
	}
	if dirs[2].ProjectName != "alpha" {
		t.Errorf("dirs[2].ProjectName = %q, want %q", dirs[2].ProjectName, "alpha")
	}
	if dirs[1].TotalSizeBytes != 15 {
		t.Errorf("dirs[1].TotalSizeBytes = %d, want 15", dirs[1].TotalSizeBytes)
	}
}

func TestScan_GlobalOnly(t *testing.T) {
	home := t.TempDir()
	mkConversations(t, filepath.Join(home, ".claude"), 1)
	mkConversations(t, filepath.Join(home, "alpha", ".claude"), 2)

	dirs, err := Scan(Options{Home: home, GlobalOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 1 || !dirs[0].IsGlobal {
		t.Errorf("expected only the global directory, got %+v", dirs)
	}
}

func TestScan_GlobalIncludedWhenEmpty(t *testing.T) {
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}

	dirs, err := Scan(Options{Home: home})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 1 || dirs[0].ConversationCount != 0 {
		t.Errorf("expected empty global directory to be listed, got %+v", dirs)
	}
}

func TestScan_SkipsHiddenAndEmptyProjects(t *testing.T) {
	home := t.TempDir()
	mkConversations(t, filepath.Join(home, ".hidden", ".claude"), 3)
	if err := os.MkdirAll(filepath.Join(home, "empty", ".claude"), 0o755); err != nil {
		t.Fatal(err)
	}

	dirs, err := Scan(Options{Home: home})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 0 {
		t.Errorf("expected 0 directories, got %+v", dirs)
	}
}

func TestScan_RejectsPathsOutsideHome(t *testing.T) {
	home := t.TempDir()
	elsewhere := t.TempDir()
	mkConversations(t, filepath.Join(elsewhere, "proj", ".claude"), 2)

	dirs, err := Scan(Options{Home: home, SearchPaths: []string{elsewhere}})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 0 {
		t.Errorf("expected directories outside home to be rejected, got %+v", dirs)
	}
}

func TestScan_HiddenSubdirsNotCounted(t *testing.T) {
	home := t.TempDir()
	proj := filepath.Join(home, "proj", ".claude")
	mkConversations(t, proj, 1)
	cache := filepath.Join(proj, ".cache")
	if err := os.MkdirAll(cache, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cache, "x.jsonl"), []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirs, err := Scan(Options{Home: home})
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 1 || dirs[0].ConversationCount != 1 {
		t.Errorf("expected 1 conversation, got %+v", dirs)
	}
}

// ---------------------------------------------------------------------------
// ProjectName
// ---------------------------------------------------------------------------

func TestProjectName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/dev/myapp/.claude", "myapp"},
		{"/home/dev/-home-dev-webshop/.claude", "webshop"},
		{"/home/dev/-home-dev-webshop-/.claude", "webshop"},
		{"/home/dev/---/.claude", "---"},
	}
	for _, tt := range tests {
		if got := ProjectName(tt.path); got != tt.want {
			t.Errorf("ProjectName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsWithin(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "a")
	if err := os.MkdirAll(inside, 0o755); err != nil {
		t.Fatal(err)
	}
	if !IsWithin(inside, root) {
		t.Errorf("IsWithin(%q, %q) = false, want true", inside, root)
	}
	if !IsWithin(root, root) {
		t.Error("root should be within itself")
	}
	if IsWithin(t.TempDir(), root) {
		t.Error("sibling temp dir should not be within root")
	}
	if IsWithin(filepath.Join(root, "missing"), root) {
		t.Error("nonexistent path should not be within root")
	}
}

func TestDirectory_Size(t *testing.T) {
	d := Directory{TotalSizeBytes: 2048}
	if got := d.Size(); got != "2.0 KiB" {
		t.Errorf("Size() = %q, want %q", got, "2.0 KiB")
	}
}
