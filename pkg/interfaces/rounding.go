package interfaces

import (
	"context"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// RoundingPersistence is the call boundary to the external patient-record
// store. UpdatePatientRoundingData is an idempotent wholesale upsert of the
// patient's single current rounding record; the caller builds the payload by
// merging persisted and edited fields, but the adapter replaces the record
// as a unit.
type RoundingPersistence interface {
	ActivePatients(ctx context.Context) ([]*types.Patient, error)
	UpdatePatientRoundingData(ctx context.Context, patientID string, record *types.RoundingRecord) error
}

// RoundingService is the rounding-sheet service surface
type RoundingService interface {
	Start(addr string) error
	Stop() error
}
