package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/report"
)

func testReport() report.Report {
	second := "THE_EXPLORER"
	r := report.Report{
		ID:               "6b1f7c1e-0000-4000-8000-000000000001",
		Year:             2025,
		Persona:          "THE_BUILDER",
		PersonaName:      "The Builder",
		SecondaryPersona: &second,
		Roast:            "r",
		Compliment:       "c",
		GeneratedAt:      "2025-12-31T00:00:00Z",
		Version:          "dev",
		Metrics: analyzer.Metrics{
			TotalPrompts: 10,
			LinesWritten: 300,
			Languages:    map[string]int{"go": 3, "py": 1},
			ToolCounts:   map[string]int{"Write": 4, "Edit": 2, "Bash": 1},
			BashCommands: map[string]int{"go": 1},
		},
		Patterns: analyzer.Patterns{
			ClaudePhrases: map[string]int{"youreRight": 2, "letMe": 5},
			UserStyle: map[string]map[string]int{
				"polite":  {"please": 1, "thanks": 2},
				"yelling": {"allCaps": 0},
			},
		},
		Timeline: analyzer.Timeline{
			DailyActivity: map[string]int{"2025-03-01": 4, "2025-03-02": 6},
			PeakDay:       "Saturday",
			FirstActivity: "2025-03-01",
			LastActivity:  "2025-03-02",
		},
	}
	r.Timeline.HourlyHeatmap[9] = 10
	return r
}

func TestSaveReport_Counts(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	r := testReport()
	require.NoError(t, db.SaveReport(context.Background(), r))

	want := map[string]int{
		"reports":       1,
		"languages":     2,
		"tools":         3,
		"bash_commands": 1,
		"hourly":        24,
		"daily":         2,
		"phrases":       5,
	}
	for table, n := range want {
		got, err := db.RowCount(table, r.ID)
		require.NoError(t, err, table)
		assert.Equal(t, n, got, "rows in %s", table)
	}

	var lines int
	var secondary string
	err = db.Conn().QueryRow("SELECT lines_written, secondary_persona FROM reports WHERE id = ?", r.ID).Scan(&lines, &secondary)
	require.NoError(t, err)
	assert.Equal(t, 300, lines)
	assert.Equal(t, "THE_EXPLORER", secondary)

	var hits int
	err = db.Conn().QueryRow("SELECT count FROM hourly WHERE report_id = ? AND hour = 9", r.ID).Scan(&hits)
	require.NoError(t, err)
	assert.Equal(t, 10, hits)
}

func TestSaveReport_Replaces(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	r := testReport()
	require.NoError(t, db.SaveReport(context.Background(), r))
	r.Metrics.Languages = map[string]int{"rs": 9}
	r.SecondaryPersona = nil
	require.NoError(t, db.SaveReport(context.Background(), r))

	n, err := db.RowCount("languages", r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = db.RowCount("reports", r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var valid bool
	err = db.Conn().QueryRow("SELECT secondary_persona IS NOT NULL FROM reports WHERE id = ?", r.ID).Scan(&valid)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestOpen_FileAndSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "wrapped.db")
	db, err := Open(path)
	require.NoError(t, err)
	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
	require.NoError(t, db.Close())

	// Reopening must not re-run migrations or fail.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, err = db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, v)
}

func TestRowCount_UnknownTable(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()
	_, err = db.RowCount("sqlite_master; DROP TABLE reports", "x")
	assert.Error(t, err)
}
