package rounding

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New("error")
	repo := NewRepository(database.NewFromSQL(db, log), log)

	return repo, mock
}

func patientColumns() []string {
	return []string{
		"id", "status", "name", "species", "breed", "age", "sex", "weight",
		"location", "code_status", "icu_criteria", "rounding_data",
		"created_at", "updated_at",
	}
}

func TestRepository_ActivePatients(t *testing.T) {
	repo, mock := setupTestRepository(t)

	roundingJSON, err := json.Marshal(&types.RoundingRecord{
		Problems: "Day 2 IVDD",
		DayCount: 2,
	})
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows(patientColumns()).
		AddRow("p1", "Active", "Rex", "Canine", "Labrador", "6y", "FS", "28kg",
			"ICU", "Yellow", "Yes", roundingJSON, now, now).
		AddRow("p2", "Active", "Milo", "Feline", "DSH", "10y", "MN", "5kg",
			"", "", "", nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM patients").
		WithArgs(types.PatientStatusDischarged).
		WillReturnRows(rows)

	patients, err := repo.ActivePatients(context.Background())

	require.NoError(t, err)
	require.Len(t, patients, 2)

	assert.Equal(t, "Rex", patients[0].Demographics.Name)
	require.NotNil(t, patients[0].CurrentStay)
	assert.Equal(t, "ICU", patients[0].CurrentStay.Location)
	require.NotNil(t, patients[0].RoundingData)
	assert.Equal(t, "Day 2 IVDD", patients[0].RoundingData.Problems)
	assert.Equal(t, 2, patients[0].RoundingData.DayCount)

	assert.Nil(t, patients[1].CurrentStay, "blank stay columns yield no stay")
	assert.Nil(t, patients[1].RoundingData, "null rounding_data yields no record")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ActivePatients_QueryError(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM patients").
		WillReturnError(assert.AnError)

	_, err := repo.ActivePatients(context.Background())
	require.Error(t, err)
}

func TestRepository_UpdatePatientRoundingData(t *testing.T) {
	repo, mock := setupTestRepository(t)

	record := &types.RoundingRecord{
		Problems:    "Day 3 IVDD",
		DayCount:    3,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	mock.ExpectExec("UPDATE patients SET rounding_data").
		WithArgs("p1", payload).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdatePatientRoundingData(context.Background(), "p1", record)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdatePatientRoundingData_NotFound(t *testing.T) {
	repo, mock := setupTestRepository(t)

	mock.ExpectExec("UPDATE patients SET rounding_data").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePatientRoundingData(context.Background(), "ghost", &types.RoundingRecord{})

	require.Error(t, err)
	vetErr, ok := err.(*types.VetError)
	require.True(t, ok)
	assert.Equal(t, types.ErrorTypeNotFound, vetErr.Type)
}
