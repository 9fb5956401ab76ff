package tasks

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Handler serves the per-patient checklist endpoints
type Handler struct {
	repository interfaces.TaskRepository
	logger     *logger.Logger
}

// NewHandler creates a new task handler
func NewHandler(repo interfaces.TaskRepository, log *logger.Logger) *Handler {
	return &Handler{
		repository: repo,
		logger:     log,
	}
}

// Register mounts the task routes on an authenticated router
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/patients/{id}/tasks", h.createTask).Methods("POST")
	api.HandleFunc("/patients/{id}/tasks", h.getTasks).Methods("GET")
	api.HandleFunc("/patients/{id}/tasks/defaults", h.seedDailyTasks).Methods("POST")
	api.HandleFunc("/tasks/{taskId}/complete", h.setCompleted).Methods("PUT")
	api.HandleFunc("/tasks/{taskId}", h.deleteTask).Methods("DELETE")
	api.HandleFunc("/tasks/daily-reset", h.dailyReset).Methods("POST")
}

type createTaskRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// createTask adds a custom task to a patient's checklist
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Title == "" {
		h.writeError(w, http.StatusBadRequest, "Task title is required", nil)
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}

	task := &types.Task{
		ID:        uuid.New().String(),
		PatientID: mux.Vars(r)["id"],
		Title:     req.Title,
		Category:  req.Category,
	}

	if err := h.repository.CreateTask(task); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, task)
}

// taskView decorates a task with its checklist bucket
type taskView struct {
	*types.Task
	TimeOfDay string `json:"timeOfDay"`
}

// getTasks returns a patient's checklist, each task tagged with its
// morning/evening/anytime bucket
func (h *Handler) getTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.repository.GetTasksByPatient(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskView{Task: task, TimeOfDay: TimeOfDayFor(task.Title)})
	}

	h.writeJSON(w, http.StatusOK, views)
}

// seedDailyTasks creates the standard daily checklist for a patient,
// typically at admission
func (h *Handler) seedDailyTasks(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["id"]

	existing, err := h.repository.GetTasksByPatient(patientID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	have := make(map[string]bool, len(existing))
	for _, task := range existing {
		have[task.Title] = true
	}

	created := 0
	for _, def := range append(append([]Definition{}, MorningTasks...), EveningTasks...) {
		if have[def.Title] {
			continue
		}
		task := &types.Task{
			ID:        uuid.New().String(),
			PatientID: patientID,
			Title:     def.Title,
			Category:  def.Category,
		}
		if err := h.repository.CreateTask(task); err != nil {
			h.writeError(w, http.StatusInternalServerError, "Failed to seed daily tasks", err)
			return
		}
		created++
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

type setCompletedRequest struct {
	Completed bool `json:"completed"`
}

// setCompleted toggles a task's checkbox
func (h *Handler) setCompleted(w http.ResponseWriter, r *http.Request) {
	var req setCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	taskID := mux.Vars(r)["taskId"]
	var completedAt *time.Time
	if req.Completed {
		now := time.Now().UTC()
		completedAt = &now
	}

	if err := h.repository.SetTaskCompleted(taskID, req.Completed, completedAt); err != nil {
		status := http.StatusInternalServerError
		if vetErr, ok := err.(*types.VetError); ok && vetErr.Type == types.ErrorTypeNotFound {
			status = http.StatusNotFound
		}
		h.writeError(w, status, "Failed to update task", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"taskId":    taskID,
		"completed": req.Completed,
	})
}

// deleteTask removes a task
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]
	if err := h.repository.DeleteTask(taskID); err != nil {
		status := http.StatusInternalServerError
		if vetErr, ok := err.(*types.VetError); ok && vetErr.Type == types.ErrorTypeNotFound {
			status = http.StatusNotFound
		}
		h.writeError(w, status, "Failed to delete task", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

// dailyReset unchecks every daily recurring task, run once each morning
func (h *Handler) dailyReset(w http.ResponseWriter, r *http.Request) {
	reset, err := h.repository.ResetDailyTasks()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to reset daily tasks", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int64{"reset": reset})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	h.logger.Errorf("%s: %v", message, err)

	response := map[string]interface{}{
		"error":  message,
		"status": statusCode,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	h.writeJSON(w, statusCode, response)
}
