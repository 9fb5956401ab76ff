package rounding

import (
	"bytes"
	"testing"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	store := NewDraftStore(testDraftsConfig(), &MockPersistence{}, logger.New("error"))
	t.Cleanup(store.Close)

	patient := &types.Patient{
		ID:           "p1",
		Status:       types.PatientStatusActive,
		Demographics: types.Demographics{Name: "Rex"},
		RoundingData: &types.RoundingRecord{
			Problems:    "Day 2 IVDD",
			Location:    "ICU",
			LastUpdated: time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339),
		},
	}
	store.Seed([]*types.Patient{patient})

	// An in-session edit must appear in the export in place of the seed.
	require.NoError(t, store.SetFieldValue("p1", types.FieldConcerns, "monitor pain score"))

	data, err := store.ExportXLSX()
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Patient", rows[0][0])
	assert.Equal(t, "Signalment", rows[0][1])
	assert.Equal(t, "Additional Comments", rows[0][len(FieldOrder)])

	assert.Equal(t, "Rex", rows[1][0])
	// problems column: carry-forward incremented the day counter
	problemsCol := 1 + indexOfField(t, types.FieldProblems)
	assert.Equal(t, "Day 3 IVDD", rows[1][problemsCol])
	concernsCol := 1 + indexOfField(t, types.FieldConcerns)
	assert.Equal(t, "monitor pain score", rows[1][concernsCol])
}

func indexOfField(t *testing.T, key string) int {
	t.Helper()
	for i, f := range FieldOrder {
		if f == key {
			return i
		}
	}
	t.Fatalf("unknown field %s", key)
	return -1
}
