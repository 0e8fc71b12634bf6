package claude

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HistorySessionID is the session id given to entries synthesized from
// history.jsonl.
const HistorySessionID = "history"

// ParseHistory reads a history.jsonl file and converts each prompt inside
// the window into a synthetic user entry. Records need both a display
// string and a unix-millisecond timestamp. A missing file yields nil, nil.
func ParseHistory(path string, w Window) ([]UserEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var entries []UserEntry
	scanner := bufio.NewScanner(f)
	// Allow lines up to 1MB for large pasted contents.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var h HistoryEntry
		if err := json.Unmarshal(line, &h); err != nil {
			// Skip malformed lines.
			continue
		}
		if h.Display == "" || h.Timestamp == 0 {
			continue
		}
		ts := time.UnixMilli(h.Timestamp)
		if !w.Contains(ts) {
			continue
		}
		entries = append(entries, UserEntry{
			UUID:      fmt.Sprintf("history-%d", h.Timestamp),
			Timestamp: ts,
			SessionID: HistorySessionID,
			CWD:       h.Project,
			Content:   h.Display,
		})
	}
	return entries, scanner.Err()
}
