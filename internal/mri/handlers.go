package mri

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Handler serves the MRI anesthesia planning endpoints
type Handler struct {
	logger *logger.Logger
}

// NewHandler creates a new MRI handler
func NewHandler(log *logger.Logger) *Handler {
	return &Handler{logger: log}
}

// Register mounts the MRI routes on an authenticated router
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/mri/doses", h.calculateDoses).Methods("POST")
	api.HandleFunc("/mri/npo", h.npoStart).Methods("POST")
}

type dosesRequest struct {
	Weight   string `json:"weight"`
	ScanType string `json:"scanType"`
}

// calculateDoses computes the anesthesia plan for a study
func (h *Handler) calculateDoses(w http.ResponseWriter, r *http.Request) {
	var req dosesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	doses, err := CalculateDosesFromWeight(req.Weight, req.ScanType)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to calculate doses", err)
		return
	}

	h.writeJSON(w, http.StatusOK, doses)
}

type npoRequest struct {
	ScheduledAt time.Time `json:"scheduledAt"`
}

// npoStart returns the fasting start time for a scheduled study
func (h *Handler) npoStart(w http.ResponseWriter, r *http.Request) {
	var req npoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.ScheduledAt.IsZero() {
		h.writeError(w, http.StatusBadRequest, "Scheduled time is required",
			types.NewValidationError(types.ErrCodeInvalidInput, "scheduledAt is required", nil))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]time.Time{
		"npoStart": NPOStart(req.ScheduledAt),
	})
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
