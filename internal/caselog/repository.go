package caselog

import (
	"fmt"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Repository implements the CaseLogRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new case log repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.CaseLogRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateEntry records a case log entry
func (r *Repository) CreateEntry(entry *types.CaseLogEntry) error {
	query := `
		INSERT INTO case_log (id, resident_id, kind, procedure, participation, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.ResidentID,
		entry.Kind,
		entry.Procedure,
		entry.Participation,
		entry.Notes,
		entry.LoggedAt,
	)
	if err != nil {
		r.logger.Errorf("Failed to create case log entry: %v", err)
		return fmt.Errorf("failed to create case log entry: %w", err)
	}

	return nil
}

// GetEntries lists a resident's entries, newest first, optionally filtered
// by kind
func (r *Repository) GetEntries(residentID string, kind string) ([]*types.CaseLogEntry, error) {
	query := `
		SELECT id, resident_id, kind, procedure, participation, notes, logged_at
		FROM case_log
		WHERE resident_id = $1`
	args := []interface{}{residentID}

	if kind != "" {
		query += ` AND kind = $2`
		args = append(args, kind)
	}
	query += ` ORDER BY logged_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to list case log entries: %v", err)
		return nil, fmt.Errorf("failed to list case log entries: %w", err)
	}
	defer rows.Close()

	var entries []*types.CaseLogEntry
	for rows.Next() {
		var entry types.CaseLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ResidentID,
			&entry.Kind,
			&entry.Procedure,
			&entry.Participation,
			&entry.Notes,
			&entry.LoggedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case log entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// CountByKind returns the resident's entry counts grouped by kind
func (r *Repository) CountByKind(residentID string) (map[string]int, error) {
	query := `
		SELECT kind, COUNT(*)
		FROM case_log
		WHERE resident_id = $1
		GROUP BY kind`

	rows, err := r.db.Query(query, residentID)
	if err != nil {
		r.logger.Errorf("Failed to count case log entries: %v", err)
		return nil, fmt.Errorf("failed to count case log entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan case log count: %w", err)
		}
		counts[kind] = count
	}

	return counts, rows.Err()
}
