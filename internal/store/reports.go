package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/miguelrios/2025-compiled/internal/report"
)

// SaveReport writes r and its breakdowns in one transaction. Saving the
// same report id twice replaces the earlier rows.
func (db *DB) SaveReport(ctx context.Context, r report.Report) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	for _, table := range childTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE report_id = ?", r.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	m, tl := r.Metrics, r.Timeline
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports
		(id, year, generated_at, version, persona, persona_name, secondary_persona,
		 roast, compliment, year_summary,
		 total_prompts, total_responses, total_conversations, total_tokens_in, total_tokens_out,
		 lines_written, lines_edited, files_created, files_modified,
		 longest_streak, total_sessions, avg_prompt_length,
		 peak_hour, peak_day, late_night_count, weekend_percent, first_activity, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Year, r.GeneratedAt, r.Version, r.Persona, r.PersonaName, nullString(r.SecondaryPersona),
		r.Roast, r.Compliment, r.YearSummary,
		m.TotalPrompts, m.TotalResponses, m.TotalConversations, m.TotalTokensIn, m.TotalTokensOut,
		m.LinesWritten, m.LinesEdited, m.FilesCreated, m.FilesModified,
		m.LongestStreak, m.TotalSessions, m.AvgPromptLength,
		tl.PeakHour, tl.PeakDay, tl.LateNightCount, tl.WeekendPercent, tl.FirstActivity, tl.LastActivity,
	); err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	counts := []struct {
		table, column string
		values        map[string]int
	}{
		{"languages", "extension", m.Languages},
		{"tools", "name", m.ToolCounts},
		{"bash_commands", "command", m.BashCommands},
		{"daily", "date", tl.DailyActivity},
	}
	for _, c := range counts {
		if err := insertCounts(ctx, tx, r.ID, c.table, c.column, c.values); err != nil {
			return err
		}
	}

	for hour, n := range tl.HourlyHeatmap {
		if _, err := tx.ExecContext(ctx, "INSERT INTO hourly (report_id, hour, count) VALUES (?, ?, ?)", r.ID, hour, n); err != nil {
			return fmt.Errorf("inserting hourly: %w", err)
		}
	}

	if err := insertPhrases(ctx, tx, r); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

var childTables = []string{"languages", "tools", "bash_commands", "hourly", "daily", "phrases"}

func insertCounts(ctx context.Context, tx *sql.Tx, reportID, table, column string, values map[string]int) error {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (report_id, %s, count) VALUES (?, ?, ?)", table, column))
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for _, k := range sortedKeys(values) {
		if _, err := stmt.ExecContext(ctx, reportID, k, values[k]); err != nil {
			return fmt.Errorf("inserting %s %q: %w", table, k, err)
		}
	}
	return nil
}

// insertPhrases stores assistant phrase counts under source "claude" and
// user style counts under source "user".
func insertPhrases(ctx context.Context, tx *sql.Tx, r report.Report) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO phrases (report_id, source, category, key, count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing phrases insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range sortedKeys(r.Patterns.ClaudePhrases) {
		if _, err := stmt.ExecContext(ctx, r.ID, "claude", "phrase", k, r.Patterns.ClaudePhrases[k]); err != nil {
			return fmt.Errorf("inserting phrase %q: %w", k, err)
		}
	}
	for _, category := range sortedKeys(r.Patterns.UserStyle) {
		counts := r.Patterns.UserStyle[category]
		for _, k := range sortedKeys(counts) {
			if _, err := stmt.ExecContext(ctx, r.ID, "user", category, k, counts[k]); err != nil {
				return fmt.Errorf("inserting style %s/%s: %w", category, k, err)
			}
		}
	}
	return nil
}

// RowCount returns the number of rows in table belonging to reportID.
func (db *DB) RowCount(table, reportID string) (int, error) {
	if table != "reports" && !slices.Contains(childTables, table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	column := "report_id"
	if table == "reports" {
		column = "id"
	}
	var n int
	err := db.conn.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", table, column), reportID).Scan(&n)
	return n, err
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
