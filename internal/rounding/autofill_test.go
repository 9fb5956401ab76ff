package rounding

import (
	"testing"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSignalment(t *testing.T) {
	tests := []struct {
		name string
		demo types.Demographics
		want string
	}{
		{
			"abbreviated breed",
			types.Demographics{Age: "6y", Sex: "FS", Breed: "Labrador Retriever"},
			"6y FS Lab",
		},
		{
			"full words abbreviated",
			types.Demographics{Age: "12 years", Sex: "Male Neutered", Breed: "German Shepherd"},
			"12y MN GSD",
		},
		{
			"bare age gets year suffix",
			types.Demographics{Age: "3", Sex: "F", Breed: "Border Collie"},
			"3y F Border Collie",
		},
		{
			"months kept",
			types.Demographics{Age: "8 months", Sex: "M", Breed: "Pug"},
			"8m M Pug",
		},
		{
			"long unknown breed truncated",
			types.Demographics{Age: "2y", Sex: "FS", Breed: "Nova Scotia Duck Tolling Retriever"},
			"2y FS Nova Scotia Duc",
		},
		{
			"cat shorthand",
			types.Demographics{Age: "10y", Sex: "SF", Breed: "Domestic Shorthair"},
			"10y FS DSH",
		},
		{
			"empty demographics",
			types.Demographics{},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSignalment(tt.demo))
		})
	}
}

func TestAutoFill_SignalmentFromDemographics(t *testing.T) {
	patient := &types.Patient{
		ID:           "p1",
		Demographics: types.Demographics{Age: "6y", Sex: "FS", Breed: "Labrador"},
	}

	result := AutoFill(patient)

	assert.Equal(t, "6y FS Lab", result.Values.Signalment)
	assert.Contains(t, result.AutoFilledFields, types.FieldSignalment)
}

func TestAutoFill_NeverOverwritesExistingFields(t *testing.T) {
	patient := &types.Patient{
		ID:           "p1",
		Demographics: types.Demographics{Age: "6y", Sex: "FS", Breed: "Labrador"},
		CurrentStay:  &types.CurrentStay{Location: "ICU"},
		RoundingData: &types.RoundingRecord{Signalment: "existing"},
	}

	result := AutoFill(patient)

	assert.Empty(t, result.Values.Signalment, "pre-existing signalment must not be overwritten")
	assert.NotContains(t, result.AutoFilledFields, types.FieldSignalment)
	// Location is still fillable; it was empty in the prior record
	assert.Equal(t, "ICU", result.Values.Location)
}

func TestAutoFill_StayFieldsPreferredOverPrior(t *testing.T) {
	patient := &types.Patient{
		ID:          "p1",
		CurrentStay: &types.CurrentStay{Location: "ICU", CodeStatus: "Yellow", ICUCriteria: "Yes"},
	}

	result := AutoFill(patient)

	assert.Equal(t, "ICU", result.Values.Location)
	assert.Equal(t, "Yellow", result.Values.Code)
	assert.Equal(t, "Yes", result.Values.ICUCriteria)
	assert.ElementsMatch(t,
		[]string{types.FieldLocation, types.FieldCode, types.FieldICUCriteria},
		result.AutoFilledFields)
	assert.Empty(t, result.CarriedFields)
}

func TestAutoFill_PriorValuesReportedAsCarried(t *testing.T) {
	patient := &types.Patient{
		ID:           "p1",
		RoundingData: &types.RoundingRecord{Location: "IP", Code: "Green"},
	}

	result := AutoFill(patient)

	assert.Equal(t, "IP", result.Values.Location)
	assert.Equal(t, "Green", result.Values.Code)
	assert.ElementsMatch(t, []string{types.FieldLocation, types.FieldCode}, result.CarriedFields)
	assert.Empty(t, result.AutoFilledFields)
}

func TestAutoFill_NothingDerivable(t *testing.T) {
	result := AutoFill(&types.Patient{ID: "p1"})

	assert.Empty(t, result.AutoFilledFields)
	assert.Empty(t, result.CarriedFields)
	assert.Equal(t, types.RoundingRecord{}, result.Values)
}
