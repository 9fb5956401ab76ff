package types

// Rounding field keys. One key per column of the daily rounding sheet,
// in sheet column order.
const (
	FieldSignalment         = "signalment"
	FieldLocation           = "location"
	FieldICUCriteria        = "icuCriteria"
	FieldCode               = "code"
	FieldProblems           = "problems"
	FieldDiagnosticFindings = "diagnosticFindings"
	FieldTherapeutics       = "therapeutics"
	FieldIVC                = "ivc"
	FieldFluids             = "fluids"
	FieldCRI                = "cri"
	FieldOvernightDx        = "overnightDx"
	FieldConcerns           = "concerns"
	FieldComments           = "comments"
)

// RoundingRecord is one clinical rounding entry for one patient on one day.
// One current record per patient; each day's save overwrites the previous.
type RoundingRecord struct {
	Signalment         string `json:"signalment,omitempty"`
	Location           string `json:"location,omitempty"`
	ICUCriteria        string `json:"icuCriteria,omitempty"`
	Code               string `json:"code,omitempty"`
	Problems           string `json:"problems,omitempty"`
	DiagnosticFindings string `json:"diagnosticFindings,omitempty"`
	Therapeutics       string `json:"therapeutics,omitempty"`
	IVC                string `json:"ivc,omitempty"`
	Fluids             string `json:"fluids,omitempty"`
	CRI                string `json:"cri,omitempty"`
	OvernightDx        string `json:"overnightDx,omitempty"`
	Concerns           string `json:"concerns,omitempty"`
	Comments           string `json:"comments,omitempty"`

	// DayCount mirrors the "Day N" counter embedded in Problems.
	DayCount int `json:"dayCount,omitempty"`

	// LastUpdated is the ISO timestamp of the last persistence write. A
	// record updated today is current and must not be carried forward again.
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Value returns the string field addressed by key, or "" for unknown keys.
func (r *RoundingRecord) Value(key string) string {
	switch key {
	case FieldSignalment:
		return r.Signalment
	case FieldLocation:
		return r.Location
	case FieldICUCriteria:
		return r.ICUCriteria
	case FieldCode:
		return r.Code
	case FieldProblems:
		return r.Problems
	case FieldDiagnosticFindings:
		return r.DiagnosticFindings
	case FieldTherapeutics:
		return r.Therapeutics
	case FieldIVC:
		return r.IVC
	case FieldFluids:
		return r.Fluids
	case FieldCRI:
		return r.CRI
	case FieldOvernightDx:
		return r.OvernightDx
	case FieldConcerns:
		return r.Concerns
	case FieldComments:
		return r.Comments
	}
	return ""
}

// SetValue writes the string field addressed by key. Unknown keys are ignored;
// the sheet accepts arbitrary pasted columns and drops what it cannot place.
func (r *RoundingRecord) SetValue(key, value string) {
	switch key {
	case FieldSignalment:
		r.Signalment = value
	case FieldLocation:
		r.Location = value
	case FieldICUCriteria:
		r.ICUCriteria = value
	case FieldCode:
		r.Code = value
	case FieldProblems:
		r.Problems = value
	case FieldDiagnosticFindings:
		r.DiagnosticFindings = value
	case FieldTherapeutics:
		r.Therapeutics = value
	case FieldIVC:
		r.IVC = value
	case FieldFluids:
		r.Fluids = value
	case FieldCRI:
		r.CRI = value
	case FieldOvernightDx:
		r.OvernightDx = value
	case FieldConcerns:
		r.Concerns = value
	case FieldComments:
		r.Comments = value
	}
}

// SaveStatus tracks the save lifecycle of one patient's draft
type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)

// CarryForwardResult is the outcome of deriving today's draft from the
// previous day's record
type CarryForwardResult struct {
	Data           RoundingRecord `json:"data"`
	CarriedForward bool           `json:"carriedForward"`
	FieldsCarried  []string       `json:"fieldsCarried"`
	Message        string         `json:"message"`
}

// AutoFillResult is the outcome of deriving field values from patient
// demographics and the current stay
type AutoFillResult struct {
	Values           RoundingRecord `json:"values"`
	AutoFilledFields []string       `json:"autoFilledFields"`
	CarriedFields    []string       `json:"carriedFields"`
}

// PatientDraft is the resolved view of one patient's rounding entry as
// served to the sheet: edits overlaid on the persisted record
type PatientDraft struct {
	PatientID        string         `json:"patientId"`
	Record           RoundingRecord `json:"record"`
	AutoDerived      []string       `json:"autoDerived"`
	HasChanges       bool           `json:"hasChanges"`
	Status           SaveStatus     `json:"status"`
	CarryForwardNote string         `json:"carryForwardNote,omitempty"`
}
