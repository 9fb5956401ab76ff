package interfaces

import (
	"time"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// PatientService is the patient service surface
type PatientService interface {
	Start(addr string) error
	Stop() error
}

// PatientRepository persists patient records
type PatientRepository interface {
	CreatePatient(p *types.Patient) error
	GetPatientByID(id string) (*types.Patient, error)
	GetPatients(status string) ([]*types.Patient, error)
	UpdatePatient(id string, updates *types.PatientUpdates) error
	DeletePatient(id string) error
}

// TaskRepository persists per-patient checklist tasks
type TaskRepository interface {
	CreateTask(task *types.Task) error
	GetTasksByPatient(patientID string) ([]*types.Task, error)
	SetTaskCompleted(taskID string, completed bool, completedAt *time.Time) error
	ResetDailyTasks() (int64, error)
	DeleteTask(taskID string) error
}

// CaseLogRepository persists residency case-log entries
type CaseLogRepository interface {
	CreateEntry(entry *types.CaseLogEntry) error
	GetEntries(residentID string, kind string) ([]*types.CaseLogEntry, error)
	CountByKind(residentID string) (map[string]int, error)
}
