package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the recorded schema version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}

// migrateV1 creates the report tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id                  TEXT PRIMARY KEY,
			year                INTEGER NOT NULL,
			generated_at        TEXT NOT NULL,
			version             TEXT NOT NULL,
			persona             TEXT NOT NULL,
			persona_name        TEXT NOT NULL,
			secondary_persona   TEXT,
			roast               TEXT NOT NULL,
			compliment          TEXT NOT NULL,
			year_summary        TEXT NOT NULL,
			total_prompts       INTEGER NOT NULL,
			total_responses     INTEGER NOT NULL,
			total_conversations INTEGER NOT NULL,
			total_tokens_in     INTEGER NOT NULL,
			total_tokens_out    INTEGER NOT NULL,
			lines_written       INTEGER NOT NULL,
			lines_edited        INTEGER NOT NULL,
			files_created       INTEGER NOT NULL,
			files_modified      INTEGER NOT NULL,
			longest_streak      INTEGER NOT NULL,
			total_sessions      INTEGER NOT NULL,
			avg_prompt_length   INTEGER NOT NULL,
			peak_hour           INTEGER NOT NULL,
			peak_day            TEXT NOT NULL,
			late_night_count    INTEGER NOT NULL,
			weekend_percent     REAL NOT NULL,
			first_activity      TEXT NOT NULL,
			last_activity       TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS languages (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			extension  TEXT NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, extension)
		)`,

		`CREATE TABLE IF NOT EXISTS tools (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			name       TEXT NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS bash_commands (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			command    TEXT NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, command)
		)`,

		`CREATE TABLE IF NOT EXISTS hourly (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			hour       INTEGER NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, hour)
		)`,

		`CREATE TABLE IF NOT EXISTS daily (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			date       TEXT NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS phrases (
			report_id  TEXT NOT NULL REFERENCES reports(id),
			source     TEXT NOT NULL,
			category   TEXT NOT NULL,
			key        TEXT NOT NULL,
			count      INTEGER NOT NULL,
			PRIMARY KEY (report_id, source, category, key)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reports_year ON reports(year)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_date ON daily(date)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
