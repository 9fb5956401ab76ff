package database

import "fmt"

// schemaStatements are executed in order at service startup. Statements are
// idempotent so repeated startups are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		status VARCHAR(32) NOT NULL DEFAULT 'Active',
		name TEXT NOT NULL DEFAULT '',
		species TEXT NOT NULL DEFAULT '',
		breed TEXT NOT NULL DEFAULT '',
		age TEXT NOT NULL DEFAULT '',
		sex TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		code_status TEXT NOT NULL DEFAULT '',
		icu_criteria TEXT NOT NULL DEFAULT '',
		rounding_data JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_patients_status ON patients (status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		category VARCHAR(64) NOT NULL DEFAULT 'general',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_patient ON tasks (patient_id)`,

	`CREATE TABLE IF NOT EXISTS case_log (
		id UUID PRIMARY KEY,
		resident_id TEXT NOT NULL,
		kind VARCHAR(32) NOT NULL,
		procedure TEXT NOT NULL DEFAULT '',
		participation VARCHAR(8) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		logged_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_case_log_resident ON case_log (resident_id, kind)`,
}

// InitSchema creates the application tables if they do not exist
func (db *DB) InitSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	db.logger.Info("Database schema initialized")
	return nil
}
