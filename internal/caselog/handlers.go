package caselog

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/auth"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Handler serves the residency case log endpoints
type Handler struct {
	repository interfaces.CaseLogRepository
	logger     *logger.Logger
}

// NewHandler creates a new case log handler
func NewHandler(repo interfaces.CaseLogRepository, log *logger.Logger) *Handler {
	return &Handler{
		repository: repo,
		logger:     log,
	}
}

// Register mounts the case log routes on an authenticated router
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/caselog", h.createEntry).Methods("POST")
	api.HandleFunc("/caselog", h.getEntries).Methods("GET")
	api.HandleFunc("/caselog/stats", h.getStats).Methods("GET")
	api.HandleFunc("/caselog/procedures", h.getProcedures).Methods("GET")
}

type createEntryRequest struct {
	Kind          string `json:"kind"`
	Procedure     string `json:"procedure,omitempty"`
	Participation string `json:"participation,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// createEntry logs a case for the authenticated resident
func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !IsValidKind(req.Kind) {
		h.writeError(w, http.StatusBadRequest, "Unknown case kind", nil)
		return
	}
	if !IsValidParticipation(req.Participation) {
		h.writeError(w, http.StatusBadRequest, "Unknown participation level", nil)
		return
	}

	entry := &types.CaseLogEntry{
		ID:            uuid.New().String(),
		ResidentID:    claims.UserID,
		Kind:          req.Kind,
		Procedure:     req.Procedure,
		Participation: req.Participation,
		Notes:         req.Notes,
		LoggedAt:      time.Now().UTC(),
	}

	if err := h.repository.CreateEntry(entry); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to log case", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, entry)
}

// getEntries lists the resident's logged cases, optionally by kind
func (h *Handler) getEntries(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" && !IsValidKind(kind) {
		h.writeError(w, http.StatusBadRequest, "Unknown case kind", nil)
		return
	}

	entries, err := h.repository.GetEntries(claims.UserID, kind)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list case log", err)
		return
	}

	if entries == nil {
		entries = []*types.CaseLogEntry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// getStats summarizes the resident's progress toward each milestone. The
// "case" kind counts every entry regardless of kind.
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	counts, err := h.repository.CountByKind(claims.UserID)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load case log stats", err)
		return
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	stats := []types.CaseLogStats{
		StatsFor(types.CaseKindMRI, counts[types.CaseKindMRI]),
		StatsFor(types.CaseKindAppointment, counts[types.CaseKindAppointment]),
		StatsFor(types.CaseKindSurgery, counts[types.CaseKindSurgery]),
		StatsFor(types.CaseKindCase, total),
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// getProcedures returns the surgery quick-pick lists
func (h *Handler) getProcedures(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"procedures":    commonProcedures,
		"participation": participationLevels,
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
