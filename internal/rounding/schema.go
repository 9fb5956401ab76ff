package rounding

import (
	"strings"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// FieldKind is the UI input kind of a rounding field
type FieldKind string

const (
	KindInput    FieldKind = "input"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
)

// FieldConfig describes one rounding sheet column
type FieldConfig struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Options []string  `json:"options,omitempty"`
}

// Select options per field. Order is the dropdown display order.
var selectOptions = map[string][]string{
	types.FieldLocation:    {"IP", "ICU"},
	types.FieldICUCriteria: {"Yes", "No", "n/a"},
	types.FieldCode:        {"Green", "Yellow", "Orange", "Red"},
	types.FieldIVC:         {"Yes", "No"},
	types.FieldFluids:      {"Yes", "No", "n/a"},
	types.FieldCRI:         {"Yes", "No", "No but...", "Yet but..."},
}

// FieldOrder matches the sheet column order used for paste handling and export
var FieldOrder = []string{
	types.FieldSignalment,
	types.FieldLocation,
	types.FieldICUCriteria,
	types.FieldCode,
	types.FieldProblems,
	types.FieldDiagnosticFindings,
	types.FieldTherapeutics,
	types.FieldIVC,
	types.FieldFluids,
	types.FieldCRI,
	types.FieldOvernightDx,
	types.FieldConcerns,
	types.FieldComments,
}

// Fields is the complete rounding sheet field configuration, in column order
var Fields = []FieldConfig{
	{Key: types.FieldSignalment, Label: "Signalment", Kind: KindInput},
	{Key: types.FieldLocation, Label: "Location", Kind: KindSelect, Options: selectOptions[types.FieldLocation]},
	{Key: types.FieldICUCriteria, Label: "ICU Criteria", Kind: KindSelect, Options: selectOptions[types.FieldICUCriteria]},
	{Key: types.FieldCode, Label: "Code Status", Kind: KindSelect, Options: selectOptions[types.FieldCode]},
	{Key: types.FieldProblems, Label: "Problems", Kind: KindTextarea},
	{Key: types.FieldDiagnosticFindings, Label: "Diagnostic Findings", Kind: KindTextarea},
	{Key: types.FieldTherapeutics, Label: "Therapeutics", Kind: KindTextarea},
	{Key: types.FieldIVC, Label: "IVC", Kind: KindSelect, Options: selectOptions[types.FieldIVC]},
	{Key: types.FieldFluids, Label: "Fluids", Kind: KindSelect, Options: selectOptions[types.FieldFluids]},
	{Key: types.FieldCRI, Label: "CRI", Kind: KindSelect, Options: selectOptions[types.FieldCRI]},
	{Key: types.FieldOvernightDx, Label: "Overnight Dx", Kind: KindTextarea},
	{Key: types.FieldConcerns, Label: "Concerns", Kind: KindTextarea},
	{Key: types.FieldComments, Label: "Additional Comments", Kind: KindTextarea},
}

// FieldConfigFor returns the field configuration for a key
func FieldConfigFor(key string) (FieldConfig, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// IsSelectField reports whether a field is an enumerated dropdown
func IsSelectField(key string) bool {
	_, ok := selectOptions[key]
	return ok
}

// OptionsFor returns the legal values for an enumerated field, or nil
func OptionsFor(key string) []string {
	return selectOptions[key]
}

// MatchSelectValue resolves a free-typed or pasted value to the closest legal
// option: exact match, then prefix, then substring, all case-insensitive.
// With no match the input is returned unchanged; downstream storage accepts
// arbitrary strings so a partial paste never errors.
func MatchSelectValue(pasted string, options []string) string {
	if strings.TrimSpace(pasted) == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(pasted))

	for _, opt := range options {
		if strings.ToLower(opt) == normalized {
			return opt
		}
	}

	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), normalized) {
			return opt
		}
	}

	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt), normalized) {
			return opt
		}
	}

	return pasted
}
