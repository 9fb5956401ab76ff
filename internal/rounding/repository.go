package rounding

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Repository is the postgres-backed persistence adapter for rounding data.
// The rounding record is stored wholesale as JSONB on the patient row; there
// is one current record per patient and each save replaces it.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new rounding repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// ActivePatients returns every non-discharged patient with demographics,
// current stay and the previously persisted rounding record
func (r *Repository) ActivePatients(ctx context.Context) ([]*types.Patient, error) {
	query := `
		SELECT id, status, name, species, breed, age, sex, weight,
		       location, code_status, icu_criteria, rounding_data,
		       created_at, updated_at
		FROM patients
		WHERE status <> $1
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, types.PatientStatusDischarged)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list active patients")
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}
	defer rows.Close()

	var patients []*types.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patient rows: %w", err)
	}

	return patients, nil
}

// UpdatePatientRoundingData replaces the patient's current rounding record.
// The upsert is idempotent: re-sending the same record is harmless.
func (r *Repository) UpdatePatientRoundingData(ctx context.Context, patientID string, record *types.RoundingRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode rounding record: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE patients SET rounding_data = $2, updated_at = NOW() WHERE id = $1`,
		patientID, payload)
	if err != nil {
		r.logger.WithPatientID(patientID).WithError(err).Error("Failed to write rounding data")
		return fmt.Errorf("failed to write rounding data: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rounding write: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not found: %s", patientID))
	}

	return nil
}

// scanPatient builds a Patient from one row of the active-patients query
func scanPatient(rows *sql.Rows) (*types.Patient, error) {
	var p types.Patient
	var stay types.CurrentStay
	var roundingJSON []byte

	err := rows.Scan(
		&p.ID,
		&p.Status,
		&p.Demographics.Name,
		&p.Demographics.Species,
		&p.Demographics.Breed,
		&p.Demographics.Age,
		&p.Demographics.Sex,
		&p.Demographics.Weight,
		&stay.Location,
		&stay.CodeStatus,
		&stay.ICUCriteria,
		&roundingJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan patient row: %w", err)
	}

	if stay != (types.CurrentStay{}) {
		p.CurrentStay = &stay
	}

	if len(roundingJSON) > 0 {
		var record types.RoundingRecord
		if err := json.Unmarshal(roundingJSON, &record); err != nil {
			return nil, fmt.Errorf("failed to decode rounding data for patient %s: %w", p.ID, err)
		}
		p.RoundingData = &record
	}

	return &p, nil
}
