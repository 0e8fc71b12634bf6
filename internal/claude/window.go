package claude

import "time"

// Window restricts parsing to one calendar year, judged in Location, and
// optionally to a narrower [Since, Until) range inside it. A zero Year
// disables the year check; zero Since/Until are unbounded.
type Window struct {
	Year     int
	Location *time.Location
	Since    time.Time
	Until    time.Time
}

// YearWindow returns a window covering year in loc.
func YearWindow(year int, loc *time.Location) Window {
	return Window{Year: year, Location: loc}
}

// Loc returns the window's location, defaulting to time.Local.
func (w Window) Loc() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if w.Year != 0 && t.In(w.Loc()).Year() != w.Year {
		return false
	}
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && !t.Before(w.Until) {
		return false
	}
	return true
}

// ParseTimestamp parses the ISO-8601 timestamps Claude Code writes. A
// datetime without a zone suffix is read as wall time in loc.
// It returns the zero time for empty or unparseable input.
func ParseTimestamp(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.ParseInLocation("2006-01-02T15:04:05", s, loc)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}
