package tasks

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Repository implements the TaskRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new task repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.TaskRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateTask creates a new checklist task for a patient
func (r *Repository) CreateTask(task *types.Task) error {
	query := `
		INSERT INTO tasks (id, patient_id, title, category, completed)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, task.ID, task.PatientID, task.Title, task.Category, task.Completed)
	if err != nil {
		r.logger.Errorf("Failed to create task: %v", err)
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetTasksByPatient retrieves a patient's checklist
func (r *Repository) GetTasksByPatient(patientID string) ([]*types.Task, error) {
	query := `
		SELECT id, patient_id, title, category, completed, completed_at, created_at
		FROM tasks
		WHERE patient_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(query, patientID)
	if err != nil {
		r.logger.Errorf("Failed to list tasks for patient %s: %v", patientID, err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		var task types.Task
		err := rows.Scan(
			&task.ID,
			&task.PatientID,
			&task.Title,
			&task.Category,
			&task.Completed,
			&task.CompletedAt,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}

// SetTaskCompleted toggles a task's completion state
func (r *Repository) SetTaskCompleted(taskID string, completed bool, completedAt *time.Time) error {
	query := `UPDATE tasks SET completed = $2, completed_at = $3 WHERE id = $1`

	result, err := r.db.Exec(query, taskID, completed, completedAt)
	if err != nil {
		r.logger.Errorf("Failed to update task %s: %v", taskID, err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task update: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("task not found: %s", taskID))
	}

	return nil
}

// ResetDailyTasks unchecks every daily recurring task across all patients.
// Custom tasks are left alone. Returns the number of tasks reset.
func (r *Repository) ResetDailyTasks() (int64, error) {
	query := `
		UPDATE tasks
		SET completed = FALSE, completed_at = NULL
		WHERE title = ANY($1) AND completed = TRUE`

	result, err := r.db.Exec(query, pq.Array(DailyTaskTitles()))
	if err != nil {
		r.logger.Errorf("Failed to reset daily tasks: %v", err)
		return 0, fmt.Errorf("failed to reset daily tasks: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count reset tasks: %w", err)
	}

	r.logger.Infof("Reset %d daily tasks", affected)
	return affected, nil
}

// DeleteTask removes a task from a patient's checklist
func (r *Repository) DeleteTask(taskID string) error {
	result, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		r.logger.Errorf("Failed to delete task %s: %v", taskID, err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task delete: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("task not found: %s", taskID))
	}

	return nil
}
