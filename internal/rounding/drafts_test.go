package rounding

import (
	"context"
	"testing"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPersistence is a mock implementation of RoundingPersistence
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) ActivePatients(ctx context.Context) ([]*types.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*types.Patient), args.Error(1)
}

func (m *MockPersistence) UpdatePatientRoundingData(ctx context.Context, patientID string, record *types.RoundingRecord) error {
	args := m.Called(ctx, patientID, record)
	return args.Error(0)
}

func testDraftsConfig() config.DraftsConfig {
	return config.DraftsConfig{
		SaveTimeoutMs: 1000,
		SavedWindowMs: 25,
		ErrorWindowMs: 50,
	}
}

func newTestStore(t *testing.T, adapter *MockPersistence) *DraftStore {
	t.Helper()
	store := NewDraftStore(testDraftsConfig(), adapter, logger.New("error"))
	t.Cleanup(store.Close)
	return store
}

func activePatient(id string) *types.Patient {
	return &types.Patient{
		ID:     id,
		Status: types.PatientStatusActive,
		RoundingData: &types.RoundingRecord{
			Problems:    "Day 2 IVDD",
			Concerns:    "stale concern",
			DayCount:    2,
			LastUpdated: time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339),
		},
	}
}

func TestDraftStore_SeedCarriesForward(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	store.Seed([]*types.Patient{activePatient("p1")})

	assert.True(t, store.HasChanges("p1"), "carried-forward seed lives in the edit layer")
	assert.Equal(t, "Day 3 IVDD", store.FieldValue("p1", types.FieldProblems))
	assert.Equal(t, "", store.FieldValue("p1", types.FieldConcerns), "concerns reset on seed")
}

func TestDraftStore_SeedSkipsDischarged(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	discharged := activePatient("p2")
	discharged.Status = types.PatientStatusDischarged

	store.Seed([]*types.Patient{activePatient("p1"), discharged})

	assert.Len(t, store.Patients(), 1)
	assert.False(t, store.HasChanges("p2"))
}

func TestDraftStore_SeedSkipsPatientsWithNothingDerived(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	// No demographics, no stay, no previous record: nothing to derive.
	store.Seed([]*types.Patient{{ID: "p1", Status: types.PatientStatusActive}})

	assert.False(t, store.HasChanges("p1"), "no overlay when nothing was derived")
	assert.Len(t, store.Patients(), 1, "patient still part of the session")
}

func TestDraftStore_SeedMarksAutoDerivedFields(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	patient := &types.Patient{
		ID:           "p1",
		Status:       types.PatientStatusActive,
		Demographics: types.Demographics{Age: "6y", Sex: "FS", Breed: "Labrador"},
		CurrentStay:  &types.CurrentStay{Location: "ICU"},
	}
	store.Seed([]*types.Patient{patient})

	draft, err := store.Draft("p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{types.FieldSignalment, types.FieldLocation}, draft.AutoDerived)
	assert.Equal(t, "6y FS Lab", draft.Record.Signalment)
}

func TestDraftStore_EditPrecedence(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})

	require.NoError(t, store.SetFieldValue("p1", types.FieldConcerns, "X"))

	assert.Equal(t, "X", store.FieldValue("p1", types.FieldConcerns),
		"local edit wins over persisted and auto-derived values")
}

func TestDraftStore_EditShrinksAutoDerivedSet(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	patient := &types.Patient{
		ID:           "p1",
		Status:       types.PatientStatusActive,
		Demographics: types.Demographics{Age: "6y", Sex: "FS", Breed: "Labrador"},
	}
	store.Seed([]*types.Patient{patient})

	draft, err := store.Draft("p1")
	require.NoError(t, err)
	require.Contains(t, draft.AutoDerived, types.FieldSignalment)

	require.NoError(t, store.SetFieldValue("p1", types.FieldSignalment, "6y FS Lab mix"))

	draft, err = store.Draft("p1")
	require.NoError(t, err)
	assert.NotContains(t, draft.AutoDerived, types.FieldSignalment,
		"a manually touched field leaves the auto-derived set for the session")
}

func TestDraftStore_SetFieldValueValidation(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})

	err := store.SetFieldValue("p1", "notAField", "x")
	require.Error(t, err)

	err = store.SetFieldValue("ghost", types.FieldConcerns, "x")
	require.Error(t, err)
}

func TestDraftStore_SaveWithoutEditsIsNoop(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{{ID: "p1", Status: types.PatientStatusActive}})

	err := store.SavePatient(context.Background(), "p1")

	require.NoError(t, err)
	adapter.AssertNotCalled(t, "UpdatePatientRoundingData", mock.Anything, mock.Anything, mock.Anything)
}

func TestDraftStore_SaveSuccessClearsEdits(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "p1", mock.Anything).Return(nil)

	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})
	require.NoError(t, store.SetFieldValue("p1", types.FieldConcerns, "new concern"))

	err := store.SavePatient(context.Background(), "p1")
	require.NoError(t, err)

	assert.False(t, store.HasChanges("p1"))
	assert.Equal(t, types.SaveStatusSaved, store.Status("p1"))
	// Saved values read back from the refreshed persisted snapshot
	assert.Equal(t, "new concern", store.FieldValue("p1", types.FieldConcerns))

	adapter.AssertCalled(t, "UpdatePatientRoundingData", mock.Anything, "p1",
		mock.MatchedBy(func(rec *types.RoundingRecord) bool {
			return rec.Concerns == "new concern" && rec.LastUpdated != ""
		}))
}

func TestDraftStore_SaveFailureRetainsEdits(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "p1", mock.Anything).
		Return(assert.AnError)

	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})
	require.NoError(t, store.SetFieldValue("p1", types.FieldConcerns, "typed data"))

	err := store.SavePatient(context.Background(), "p1")

	require.Error(t, err)
	assert.True(t, store.HasChanges("p1"), "failed save must not discard typed data")
	assert.Equal(t, types.SaveStatusError, store.Status("p1"))
	assert.Equal(t, "typed data", store.FieldValue("p1", types.FieldConcerns))
}

func TestDraftStore_SaveAllIsolatesFailures(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "pA", mock.Anything).Return(nil)
	adapter.On("UpdatePatientRoundingData", mock.Anything, "pB", mock.Anything).
		Return(assert.AnError)

	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("pA"), activePatient("pB")})

	results := store.SaveAll(context.Background())

	require.Len(t, results, 2)
	assert.NoError(t, results["pA"])
	assert.Error(t, results["pB"])

	assert.Equal(t, types.SaveStatusSaved, store.Status("pA"))
	assert.Equal(t, types.SaveStatusError, store.Status("pB"))
	assert.False(t, store.HasChanges("pA"), "successful save clears edits")
	assert.True(t, store.HasChanges("pB"), "failed save retains edits")
}

func TestDraftStore_SaveAllWithNoPendingEdits(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{{ID: "p1", Status: types.PatientStatusActive}})

	results := store.SaveAll(context.Background())

	assert.Empty(t, results)
	adapter.AssertNotCalled(t, "UpdatePatientRoundingData", mock.Anything, mock.Anything, mock.Anything)
}

func TestDraftStore_StatusRevertsToIdle(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "p1", mock.Anything).Return(nil)

	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})

	require.NoError(t, store.SavePatient(context.Background(), "p1"))
	require.Equal(t, types.SaveStatusSaved, store.Status("p1"))

	assert.Eventually(t, func() bool {
		return store.Status("p1") == types.SaveStatusIdle
	}, time.Second, 5*time.Millisecond, "saved badge reverts after the display window")
}

func TestDraftStore_NewSaveCancelsPendingRevert(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "p1", mock.Anything).Return(nil)

	store := newTestStore(t, adapter)
	store.Seed([]*types.Patient{activePatient("p1")})

	require.NoError(t, store.SavePatient(context.Background(), "p1"))
	require.Equal(t, types.SaveStatusSaved, store.Status("p1"))

	// A second save inside the display window restarts the cycle rather
	// than letting the first revert timer race it.
	require.NoError(t, store.SetFieldValue("p1", types.FieldComments, "addendum"))
	require.NoError(t, store.SavePatient(context.Background(), "p1"))
	assert.Equal(t, types.SaveStatusSaved, store.Status("p1"))

	assert.Eventually(t, func() bool {
		return store.Status("p1") == types.SaveStatusIdle
	}, time.Second, 5*time.Millisecond)
}

func TestDraftStore_SaveTimeoutSurfacesAsError(t *testing.T) {
	adapter := &MockPersistence{}
	adapter.On("UpdatePatientRoundingData", mock.Anything, "p1", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(context.DeadlineExceeded)

	cfg := testDraftsConfig()
	cfg.SaveTimeoutMs = 20
	store := NewDraftStore(cfg, adapter, logger.New("error"))
	t.Cleanup(store.Close)

	store.Seed([]*types.Patient{activePatient("p1")})

	err := store.SavePatient(context.Background(), "p1")

	require.Error(t, err)
	assert.Equal(t, types.SaveStatusError, store.Status("p1"))
	assert.True(t, store.HasChanges("p1"))
}

func TestDraftStore_FieldValueFallsBackToPersisted(t *testing.T) {
	adapter := &MockPersistence{}
	store := newTestStore(t, adapter)

	patient := &types.Patient{
		ID:           "p1",
		Status:       types.PatientStatusActive,
		RoundingData: &types.RoundingRecord{Therapeutics: "gabapentin"},
	}
	// Seed with a record updated today so no overlay is created.
	patient.RoundingData.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	store.Seed([]*types.Patient{patient})

	require.False(t, store.HasChanges("p1"))
	assert.Equal(t, "gabapentin", store.FieldValue("p1", types.FieldTherapeutics))
}
