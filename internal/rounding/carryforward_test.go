package rounding

import (
	"testing"
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yesterdayTimestamp() string {
	return time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
}

func TestCarryForward_NoPreviousData(t *testing.T) {
	result := CarryForward(nil, nil)

	assert.False(t, result.CarriedForward)
	assert.Empty(t, result.FieldsCarried)
	assert.Equal(t, types.RoundingRecord{}, result.Data)
	assert.Equal(t, "No previous rounding data found", result.Message)
}

func TestCarryForward_AlreadyUpdatedToday(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "Day 3 seizures",
		Concerns:    "hypoventilation overnight",
		DayCount:    3,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	result := CarryForward(previous, nil)

	assert.False(t, result.CarriedForward)
	assert.Equal(t, *previous, result.Data, "same-day record must be returned unchanged")
	assert.Equal(t, 3, result.Data.DayCount, "no double increment within the same day")
}

func TestCarryForward_DayCounterMonotonicity(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "Day 3 seizures",
		DayCount:    3,
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	require.True(t, result.CarriedForward)
	assert.Contains(t, result.Data.Problems, "Day 4")
	assert.Equal(t, 4, result.Data.DayCount)
	assert.Contains(t, result.FieldsCarried, "dayCount")
}

func TestCarryForward_StableFieldsCopied(t *testing.T) {
	previous := &types.RoundingRecord{
		Signalment:         "6y FS Lab",
		Location:           "ICU",
		ICUCriteria:        "Yes",
		Code:               "Yellow",
		Problems:           "IVDD",
		DiagnosticFindings: "MRI: T12-T13 extrusion",
		Therapeutics:       "methadone CRI",
		IVC:                "Yes",
		Fluids:             "Yes",
		CRI:                "Yes",
		OvernightDx:        "none",
		Comments:           "recheck neuro exam in AM",
		LastUpdated:        yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	require.True(t, result.CarriedForward)
	for _, field := range carryForwardFields {
		assert.Equal(t, previous.Value(field), result.Data.Value(field), "field %s", field)
	}
	assert.NotEmpty(t, result.Data.LastUpdated)
	assert.NotEqual(t, previous.LastUpdated, result.Data.LastUpdated)
}

func TestCarryForward_ConcernsCleared(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "IVDD",
		Concerns:    "pain score trending up",
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	require.True(t, result.CarriedForward)
	assert.Equal(t, "", result.Data.Concerns)
	assert.NotContains(t, result.FieldsCarried, types.FieldConcerns)
}

func TestCarryForward_ConcernsCarriedWhenConfigured(t *testing.T) {
	previous := &types.RoundingRecord{
		Concerns:    "pain score trending up",
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, &CarryForwardOptions{CarryConcerns: true})

	require.True(t, result.CarriedForward)
	assert.Equal(t, "pain score trending up", result.Data.Concerns)
	assert.Contains(t, result.FieldsCarried, types.FieldConcerns)
}

func TestCarryForward_EmptyFieldsNotCarried(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "IVDD",
		Comments:    "   ",
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	require.True(t, result.CarriedForward)
	assert.Contains(t, result.FieldsCarried, types.FieldProblems)
	assert.NotContains(t, result.FieldsCarried, types.FieldComments)
}

func TestCarryForward_DayCountInitialized(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "new admit, ataxia",
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	require.True(t, result.CarriedForward)
	assert.Equal(t, 1, result.Data.DayCount)
}

func TestCarryForward_Message(t *testing.T) {
	previous := &types.RoundingRecord{
		Problems:    "Day 3 seizures",
		Location:    "ICU",
		DayCount:    3,
		LastUpdated: yesterdayTimestamp(),
	}

	result := CarryForward(previous, nil)

	assert.Contains(t, result.Message, "Day 4")
	assert.Contains(t, result.Message, "Carried forward")
}

func TestIncrementDayCounts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Day 2 seizures", "Day 3 seizures"},
		{"embedded", "Post-op Day 1 IVDD", "Post-op Day 2 IVDD"},
		{"multiple counters all increment", "Day 2 of antibiotics, Day 5 post-op", "Day 3 of antibiotics, Day 6 post-op"},
		{"case insensitive", "day 9 recheck", "Day 10 recheck"},
		{"no counter", "ataxia, no seizures", "ataxia, no seizures"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncrementDayCounts(tt.in))
		})
	}
}

func TestNeedsCarryForward(t *testing.T) {
	assert.False(t, NeedsCarryForward(nil))

	assert.True(t, NeedsCarryForward(&types.RoundingRecord{LastUpdated: yesterdayTimestamp()}))

	today := &types.RoundingRecord{LastUpdated: time.Now().UTC().Format(time.RFC3339)}
	assert.False(t, NeedsCarryForward(today))
}
