package rounding

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// saveState is one patient's badge state machine:
// idle -> saving -> {saved, error} -> idle. The saved and error states hold
// for a display window and then revert; the revert is cancellable so a save
// started during the window replaces it instead of racing it.
type saveState struct {
	status types.SaveStatus
	revert *time.Timer
	gen    uint64
}

// DraftStore reconciles auto-derived seed values, the persisted record, and
// the clinician's in-progress edits into one value per field, and manages the
// save lifecycle. One store per rounding session; seeded values live in the
// edit layer and must be explicitly saved like any other edit.
type DraftStore struct {
	mu      sync.Mutex
	logger  *logger.Logger
	cfg     config.DraftsConfig
	adapter interfaces.RoundingPersistence

	patients    map[string]*types.Patient       // persisted snapshot by patient ID
	order       []string                        // stable listing order
	edits       map[string]*types.RoundingRecord // local edit layer (merged records)
	autoDerived map[string]map[string]bool      // fields seeded rather than typed
	states      map[string]*saveState
	carryNotes  map[string]string
}

// NewDraftStore creates an empty draft store backed by the given adapter
func NewDraftStore(cfg config.DraftsConfig, adapter interfaces.RoundingPersistence, log *logger.Logger) *DraftStore {
	return &DraftStore{
		logger:      log,
		cfg:         cfg,
		adapter:     adapter,
		patients:    make(map[string]*types.Patient),
		edits:       make(map[string]*types.RoundingRecord),
		autoDerived: make(map[string]map[string]bool),
		states:      make(map[string]*saveState),
		carryNotes:  make(map[string]string),
	}
}

// Seed pre-populates the edit layer for every active patient by combining
// carry-forward of the previous day's record with demographic auto-fill.
// An overlay is created only when something was actually derived; otherwise
// the sheet falls back to the persisted record verbatim. Discharged patients
// are skipped.
func (s *DraftStore) Seed(patients []*types.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := &CarryForwardOptions{CarryConcerns: s.cfg.CarryConcerns}

	for _, patient := range patients {
		if patient.Status == types.PatientStatusDischarged {
			continue
		}

		s.patients[patient.ID] = patient
		s.order = append(s.order, patient.ID)

		carry := CarryForward(patient.RoundingData, opts)
		fill := AutoFill(patient)

		merged := carry.Data
		derived := make(map[string]bool)
		for _, field := range fill.AutoFilledFields {
			merged.SetValue(field, fill.Values.Value(field))
			derived[field] = true
		}
		for _, field := range fill.CarriedFields {
			merged.SetValue(field, fill.Values.Value(field))
			derived[field] = true
		}

		s.carryNotes[patient.ID] = carry.Message

		if carry.CarriedForward || len(derived) > 0 {
			record := merged
			s.edits[patient.ID] = &record
			s.autoDerived[patient.ID] = derived
		}
	}

	s.logger.WithComponent("drafts").Infof("Seeded rounding session with %d patients, %d pre-filled",
		len(s.patients), len(s.edits))
}

// Patients returns the session's patients in seeding order
func (s *DraftStore) Patients() []*types.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*types.Patient, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.patients[id])
	}
	return result
}

// FieldValue returns the locally-edited value for a field if one exists,
// otherwise the persisted value
func (s *DraftStore) FieldValue(patientID, field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if edits, ok := s.edits[patientID]; ok {
		return edits.Value(field)
	}
	if patient, ok := s.patients[patientID]; ok && patient.RoundingData != nil {
		return patient.RoundingData.Value(field)
	}
	return ""
}

// SetFieldValue writes into the local edit layer only. The field leaves the
// patient's auto-derived set permanently for this session: the set only
// shrinks as the clinician edits.
func (s *DraftStore) SetFieldValue(patientID, field, value string) error {
	if _, ok := FieldConfigFor(field); !ok {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown rounding field: %s", field), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[patientID]
	if !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not in session: %s", patientID))
	}

	edits, ok := s.edits[patientID]
	if !ok {
		record := types.RoundingRecord{}
		if patient.RoundingData != nil {
			record = *patient.RoundingData
		}
		edits = &record
		s.edits[patientID] = edits
	}

	edits.SetValue(field, value)
	delete(s.autoDerived[patientID], field)

	return nil
}

// Draft returns the resolved view of one patient's rounding entry
func (s *DraftStore) Draft(patientID string) (*types.PatientDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[patientID]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not in session: %s", patientID))
	}

	record := types.RoundingRecord{}
	if patient.RoundingData != nil {
		record = *patient.RoundingData
	}
	_, hasEdits := s.edits[patientID]
	if hasEdits {
		record = *s.edits[patientID]
	}

	derived := make([]string, 0, len(s.autoDerived[patientID]))
	for field := range s.autoDerived[patientID] {
		derived = append(derived, field)
	}
	sort.Strings(derived)

	return &types.PatientDraft{
		PatientID:        patientID,
		Record:           record,
		AutoDerived:      derived,
		HasChanges:       hasEdits,
		Status:           s.statusLocked(patientID),
		CarryForwardNote: s.carryNotes[patientID],
	}, nil
}

// HasChanges reports whether a patient has unsaved local edits
func (s *DraftStore) HasChanges(patientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edits[patientID]
	return ok
}

// HasAnyChanges reports whether any patient has unsaved local edits
func (s *DraftStore) HasAnyChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edits) > 0
}

// PendingCount returns the number of patients with unsaved edits
func (s *DraftStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edits)
}

// Status returns a patient's current save status
func (s *DraftStore) Status(patientID string) types.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(patientID)
}

// Statuses returns a snapshot of every non-idle save status
func (s *DraftStore) Statuses() map[string]types.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]types.SaveStatus)
	for id, st := range s.states {
		if st.status != types.SaveStatusIdle {
			snapshot[id] = st.status
		}
	}
	return snapshot
}

// SavePatient sends the full merged record through the persistence adapter.
// Without local edits it is a no-op. On failure the edits stay pending so no
// typed data is lost, the status holds at error for the display window, and
// the error is returned for the caller to surface. Concurrent saves for the
// same patient each read their own snapshot; the last response to land wins
// for status reporting.
func (s *DraftStore) SavePatient(ctx context.Context, patientID string) error {
	s.mu.Lock()

	patient, ok := s.patients[patientID]
	if !ok {
		s.mu.Unlock()
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not in session: %s", patientID))
	}

	edits, ok := s.edits[patientID]
	if !ok {
		s.mu.Unlock()
		return nil
	}

	merged := *edits
	merged.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	s.transitionLocked(patientID, types.SaveStatusSaving)
	s.mu.Unlock()

	saveCtx, cancel := context.WithTimeout(ctx, s.cfg.SaveTimeout())
	defer cancel()

	err := s.adapter.UpdatePatientRoundingData(saveCtx, patientID, &merged)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.transitionLocked(patientID, types.SaveStatusError)
		s.logger.WithPatientID(patientID).WithError(err).Error("Rounding save failed, edits retained")
		return types.NewExternalError(types.ErrCodeExternalError, "rounding save failed", err)
	}

	// The merged record is now the persisted truth; the overlay is spent.
	record := merged
	patient.RoundingData = &record
	delete(s.edits, patientID)
	delete(s.autoDerived, patientID)
	s.transitionLocked(patientID, types.SaveStatusSaved)

	s.logger.WithPatientID(patientID).Info("Rounding record saved")
	return nil
}

// SaveAll saves every patient with pending edits concurrently. Each patient's
// outcome is independent: one failed save neither blocks nor rolls back the
// others. Returns the per-patient results (nil error on success).
func (s *DraftStore) SaveAll(ctx context.Context) map[string]error {
	s.mu.Lock()
	pending := make([]string, 0, len(s.edits))
	for id := range s.edits {
		pending = append(pending, id)
	}
	s.mu.Unlock()

	results := make(map[string]error, len(pending))
	var resultsMu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range pending {
		wg.Add(1)
		go func(patientID string) {
			defer wg.Done()
			err := s.SavePatient(ctx, patientID)
			resultsMu.Lock()
			results[patientID] = err
			resultsMu.Unlock()
		}(id)
	}
	wg.Wait()

	return results
}

// Close cancels any pending status revert timers
func (s *DraftStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.states {
		if st.revert != nil {
			st.revert.Stop()
			st.revert = nil
		}
	}
}

func (s *DraftStore) statusLocked(patientID string) types.SaveStatus {
	if st, ok := s.states[patientID]; ok {
		return st.status
	}
	return types.SaveStatusIdle
}

// transitionLocked moves a patient's badge state machine and (re)arms the
// revert timer for terminal display states. Bumping the generation makes a
// stale timer firing after a newer transition a no-op.
func (s *DraftStore) transitionLocked(patientID string, status types.SaveStatus) {
	st, ok := s.states[patientID]
	if !ok {
		st = &saveState{status: types.SaveStatusIdle}
		s.states[patientID] = st
	}

	if st.revert != nil {
		st.revert.Stop()
		st.revert = nil
	}

	st.status = status
	st.gen++
	gen := st.gen

	var window time.Duration
	switch status {
	case types.SaveStatusSaved:
		window = s.cfg.SavedWindow()
	case types.SaveStatusError:
		window = s.cfg.ErrorWindow()
	default:
		return
	}

	st.revert = time.AfterFunc(window, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.states[patientID]; ok && cur.gen == gen {
			cur.status = types.SaveStatusIdle
			cur.revert = nil
		}
	})
}
