package types

import "time"

// Patient statuses
const (
	PatientStatusActive     = "Active"
	PatientStatusDischarged = "Discharged"
)

// Demographics holds a patient's structured demographic record
type Demographics struct {
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
	Age     string `json:"age,omitempty"`
	Sex     string `json:"sex,omitempty"`
	Weight  string `json:"weight,omitempty"`
}

// CurrentStay holds the hospitalization details for an admitted patient
type CurrentStay struct {
	Location    string `json:"location,omitempty"`
	CodeStatus  string `json:"codeStatus,omitempty"`
	ICUCriteria string `json:"icuCriteria,omitempty"`
}

// Patient represents a hospitalized patient as served by the patient API
type Patient struct {
	ID           string          `json:"id" db:"id"`
	Status       string          `json:"status" db:"status"`
	Demographics Demographics    `json:"demographics"`
	CurrentStay  *CurrentStay    `json:"currentStay,omitempty"`
	RoundingData *RoundingRecord `json:"roundingData,omitempty"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// PatientUpdates holds optional field updates for a patient
type PatientUpdates struct {
	Status       *string       `json:"status,omitempty"`
	Demographics *Demographics `json:"demographics,omitempty"`
	CurrentStay  *CurrentStay  `json:"currentStay,omitempty"`
}

// Task represents one item on a patient's daily checklist
type Task struct {
	ID          string     `json:"id" db:"id"`
	PatientID   string     `json:"patient_id" db:"patient_id"`
	Title       string     `json:"title" db:"title"`
	Category    string     `json:"category" db:"category"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Case log entry kinds
const (
	CaseKindMRI         = "mri"
	CaseKindAppointment = "appointment"
	CaseKindSurgery     = "surgery"
	CaseKindCase        = "case"
)

// CaseLogEntry is one residency case-log record
type CaseLogEntry struct {
	ID            string    `json:"id" db:"id"`
	ResidentID    string    `json:"resident_id" db:"resident_id"`
	Kind          string    `json:"kind" db:"kind"`
	Procedure     string    `json:"procedure,omitempty" db:"procedure"`
	Participation string    `json:"participation,omitempty" db:"participation"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	LoggedAt      time.Time `json:"logged_at" db:"logged_at"`
}

// CaseLogStats summarizes a resident's progress toward the next milestone
// for one case kind
type CaseLogStats struct {
	Kind          string `json:"kind"`
	Total         int    `json:"total"`
	NextMilestone int    `json:"nextMilestone"`
	ProgressPct   int    `json:"progressPct"`
}

// UserClaims represents validated clinician session claims
type UserClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
