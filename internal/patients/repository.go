package patients

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Repository implements the PatientRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new patient repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.PatientRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreatePatient creates a new patient
func (r *Repository) CreatePatient(p *types.Patient) error {
	query := `
		INSERT INTO patients (
			id, status, name, species, breed, age, sex, weight,
			location, code_status, icu_criteria, rounding_data
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var stay types.CurrentStay
	if p.CurrentStay != nil {
		stay = *p.CurrentStay
	}

	// nil means SQL NULL; a nil []byte would be sent as an empty bytea,
	// which postgres rejects for the JSONB column
	var roundingJSON interface{}
	if p.RoundingData != nil {
		encoded, err := json.Marshal(p.RoundingData)
		if err != nil {
			return fmt.Errorf("failed to encode rounding data: %w", err)
		}
		roundingJSON = encoded
	}

	_, err := r.db.Exec(query,
		p.ID,
		p.Status,
		p.Demographics.Name,
		p.Demographics.Species,
		p.Demographics.Breed,
		p.Demographics.Age,
		p.Demographics.Sex,
		p.Demographics.Weight,
		stay.Location,
		stay.CodeStatus,
		stay.ICUCriteria,
		roundingJSON,
	)
	if err != nil {
		r.logger.Errorf("Failed to create patient: %v", err)
		return fmt.Errorf("failed to create patient: %w", err)
	}

	r.logger.WithPatientID(p.ID).Info("Created patient")
	return nil
}

// GetPatientByID retrieves a patient by ID
func (r *Repository) GetPatientByID(id string) (*types.Patient, error) {
	query := `
		SELECT id, status, name, species, breed, age, sex, weight,
		       location, code_status, icu_criteria, rounding_data,
		       created_at, updated_at
		FROM patients
		WHERE id = $1`

	row := r.db.QueryRow(query, id)
	patient, err := scanPatientRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound,
				fmt.Sprintf("patient not found: %s", id))
		}
		r.logger.Errorf("Failed to get patient %s: %v", id, err)
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

// GetPatients retrieves patients, optionally filtered by status
func (r *Repository) GetPatients(status string) ([]*types.Patient, error) {
	query := `
		SELECT id, status, name, species, breed, age, sex, weight,
		       location, code_status, icu_criteria, rounding_data,
		       created_at, updated_at
		FROM patients`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to list patients: %v", err)
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []*types.Patient
	for rows.Next() {
		patient, err := scanPatientRow(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	return patients, rows.Err()
}

// UpdatePatient applies partial updates to a patient
func (r *Repository) UpdatePatient(id string, updates *types.PatientUpdates) error {
	setParts := []string{}
	args := []interface{}{}
	argIndex := 1

	if updates.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *updates.Status)
		argIndex++
	}

	addColumn := func(col, val string) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", col, argIndex))
		args = append(args, val)
		argIndex++
	}

	if updates.Demographics != nil {
		d := updates.Demographics
		addColumn("name", d.Name)
		addColumn("species", d.Species)
		addColumn("breed", d.Breed)
		addColumn("age", d.Age)
		addColumn("sex", d.Sex)
		addColumn("weight", d.Weight)
	}

	if updates.CurrentStay != nil {
		stay := updates.CurrentStay
		addColumn("location", stay.Location)
		addColumn("code_status", stay.CodeStatus)
		addColumn("icu_criteria", stay.ICUCriteria)
	}

	if len(setParts) == 0 {
		return types.NewValidationError(types.ErrCodeInvalidInput, "no updates provided", nil)
	}

	setParts = append(setParts, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE patients SET %s WHERE id = $%d",
		strings.Join(setParts, ", "), argIndex)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to update patient %s: %v", id, err)
		return fmt.Errorf("failed to update patient: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check patient update: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not found: %s", id))
	}

	return nil
}

// DeletePatient removes a patient and (via cascade) their tasks
func (r *Repository) DeletePatient(id string) error {
	result, err := r.db.Exec(`DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		r.logger.Errorf("Failed to delete patient %s: %v", id, err)
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check patient delete: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not found: %s", id))
	}

	r.logger.WithPatientID(id).Info("Deleted patient")
	return nil
}

// rowScanner lets scanPatientRow work over both Row and Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatientRow(row rowScanner) (*types.Patient, error) {
	var p types.Patient
	var stay types.CurrentStay
	var roundingJSON []byte

	err := row.Scan(
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
		return nil, err
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
