package labs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
)

// Handler serves the bloodwork scanning endpoint
type Handler struct {
	logger *logger.Logger
}

// NewHandler creates a new labs handler
func NewHandler(log *logger.Logger) *Handler {
	return &Handler{logger: log}
}

// Register mounts the labs routes on an authenticated router
func (h *Handler) Register(api *mux.Router) {
	api.HandleFunc("/labs/bloodwork/scan", h.scanBloodwork).Methods("POST")
}

type scanRequest struct {
	BloodWorkText string `json:"bloodWorkText"`
}

// scanBloodwork flags out-of-range values in pasted analyzer output
func (h *Handler) scanBloodwork(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := ScanBloodwork(req.BloodWorkText)
	h.logger.WithComponent("labs").Infof("Bloodwork scan found %d abnormal values", len(result.AbnormalValues))

	h.writeJSON(w, http.StatusOK, result)
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
