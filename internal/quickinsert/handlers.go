package quickinsert

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Handler serves the quick-insert option endpoints
type Handler struct {
	store  *Store
	logger *logger.Logger
}

// NewHandler creates a new quick-insert handler
func NewHandler(store *Store, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log,
	}
}

// Register mounts the quick-insert routes on an authenticated router
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/quickinsert/top", h.topUsed).Methods("GET")
	api.HandleFunc("/quickinsert/{field}", h.getOptions).Methods("GET")
	api.HandleFunc("/quickinsert/{field}", h.addOption).Methods("POST")
	api.HandleFunc("/quickinsert/items/{itemId}/use", h.recordUse).Methods("POST")
}

// getOptions returns the quick-insert library for one rounding field
func (h *Handler) getOptions(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.Options(r.Context(), mux.Vars(r)["field"])
	if err != nil {
		h.writeError(w, statusFor(err), "Failed to load quick-insert options", err)
		return
	}

	h.writeJSON(w, http.StatusOK, items)
}

type addOptionRequest struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// addOption appends a custom button to a field's library
func (h *Handler) addOption(w http.ResponseWriter, r *http.Request) {
	var req addOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Label == "" || req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "Label and text are required", nil)
		return
	}
	if req.Category == "" {
		req.Category = "other"
	}

	item := Item{
		ID:       uuid.New().String(),
		Label:    req.Label,
		Text:     req.Text,
		Category: req.Category,
		Field:    mux.Vars(r)["field"],
	}

	if err := h.store.AddOption(r.Context(), item); err != nil {
		h.writeError(w, statusFor(err), "Failed to add quick-insert option", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

// recordUse bumps an item's usage counter
func (h *Handler) recordUse(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	if err := h.store.RecordUse(r.Context(), itemID); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to record use", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"itemId": itemID})
}

// topUsed returns the most frequently used item IDs
func (h *Handler) topUsed(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ids, err := h.store.TopUsed(r.Context(), limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load usage stats", err)
		return
	}

	h.writeJSON(w, http.StatusOK, ids)
}

func statusFor(err error) int {
	if vetErr, ok := err.(*types.VetError); ok {
		switch vetErr.Type {
		case types.ErrorTypeValidation:
			return http.StatusBadRequest
		case types.ErrorTypeNotFound:
			return http.StatusNotFound
		case types.ErrorTypeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
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
