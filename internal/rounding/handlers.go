package rounding

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/auth"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// setupRoutes configures HTTP routes for the rounding service
func (s *Service) setupRoutes(router *mux.Router) {
	router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1/rounding").Subrouter()
	api.Use(s.metrics.HTTPMiddleware)
	api.Use(auth.Middleware(auth.NewTokenValidator(s.config.JWT.SecretKey), s.logger))

	// Session lifecycle
	api.HandleFunc("/sessions", s.createSessionHandler).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.getSessionHandler).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.closeSessionHandler).Methods("DELETE")

	// Draft editing and saving
	api.HandleFunc("/sessions/{id}/patients/{patientId}", s.getDraftHandler).Methods("GET")
	api.HandleFunc("/sessions/{id}/patients/{patientId}/fields/{field}", s.setFieldHandler).Methods("PUT")
	api.HandleFunc("/sessions/{id}/patients/{patientId}/save", s.savePatientHandler).Methods("POST")
	api.HandleFunc("/sessions/{id}/save-all", s.saveAllHandler).Methods("POST")

	// Sheet export
	api.HandleFunc("/sessions/{id}/export", s.exportHandler).Methods("GET")

	// Field schema for sheet rendering
	api.HandleFunc("/fields", s.fieldsHandler).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("Rounding service routes configured")
}

// createSessionHandler seeds a new rounding session from the active patient list
func (s *Service) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, store, err := s.CreateSession(r.Context())
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadGateway, "Failed to create rounding session", err)
		return
	}

	patients := store.Patients()
	drafts := make([]*types.PatientDraft, 0, len(patients))
	for _, p := range patients {
		draft, err := store.Draft(p.ID)
		if err != nil {
			continue
		}
		drafts = append(drafts, draft)
	}

	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"sessionId": sessionID,
		"patients":  patients,
		"drafts":    drafts,
	})
}

// getSessionHandler returns the session's pending state and status badges
func (s *Service) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"pendingCount": store.PendingCount(),
		"hasChanges":   store.HasAnyChanges(),
		"statuses":     store.Statuses(),
	})
}

// closeSessionHandler discards the session and any unsaved drafts
func (s *Service) closeSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if !s.CloseSession(sessionID) {
		s.writeErrorResponse(w, http.StatusNotFound, "Session not found", nil)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Session closed"})
}

// getDraftHandler returns one patient's resolved draft
func (s *Service) getDraftHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	draft, err := store.Draft(mux.Vars(r)["patientId"])
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Patient not found in session", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, draft)
}

type setFieldRequest struct {
	Value string `json:"value"`
}

// setFieldHandler writes one field into the session's local edit layer.
// Values for enumerated fields are resolved to the closest legal option.
func (s *Service) setFieldHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	patientID := vars["patientId"]
	field := vars["field"]

	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	value := req.Value
	if IsSelectField(field) {
		value = MatchSelectValue(value, OptionsFor(field))
	}

	if err := store.SetFieldValue(patientID, field, value); err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to update field", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"patientId": patientID,
		"field":     field,
		"value":     value,
	})
}

// savePatientHandler persists one patient's merged draft
func (s *Service) savePatientHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	patientID := mux.Vars(r)["patientId"]
	if err := store.SavePatient(r.Context(), patientID); err != nil {
		s.metrics.RecordRoundingSave("error")
		s.writeErrorResponse(w, statusForError(err), "Failed to save rounding record", err)
		return
	}
	s.metrics.RecordRoundingSave("saved")

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"patientId": patientID,
		"status":    store.Status(patientID),
	})
}

// saveAllHandler persists every pending draft; per-patient outcomes are
// independent and reported individually
func (s *Service) saveAllHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	results := store.SaveAll(r.Context())

	failures := make(map[string]string)
	saved := 0
	for patientID, err := range results {
		if err != nil {
			s.metrics.RecordRoundingSave("error")
			failures[patientID] = err.Error()
		} else {
			s.metrics.RecordRoundingSave("saved")
			saved++
		}
	}

	status := http.StatusOK
	if len(failures) > 0 {
		status = http.StatusMultiStatus
	}

	s.writeJSONResponse(w, status, map[string]interface{}{
		"saved":    saved,
		"failures": failures,
	})
}

// exportHandler streams the session's rounding sheet as an XLSX workbook
func (s *Service) exportHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	workbook, err := store.ExportXLSX()
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to export rounding sheet", err)
		return
	}

	filename := fmt.Sprintf("rounding-sheet-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		s.logger.WithError(err).Error("Failed to stream workbook")
	}
}

// fieldsHandler returns the sheet field schema
func (s *Service) fieldsHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, Fields)
}

// healthCheckHandler reports service health
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "rounding",
		"timestamp": time.Now().UTC(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// Helper methods

// sessionFromRequest resolves the session referenced by the request path,
// writing a 404 if it does not exist
func (s *Service) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*DraftStore, bool) {
	sessionID := mux.Vars(r)["id"]
	store, ok := s.Session(sessionID)
	if !ok {
		s.writeErrorResponse(w, http.StatusNotFound, "Session not found",
			errors.New("unknown session: "+sessionID))
		return nil, false
	}
	return store, true
}

// writeJSONResponse writes a JSON response
func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	s.logger.Errorf("%s: %v", message, err)

	response := map[string]interface{}{
		"error":  message,
		"status": statusCode,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	s.writeJSONResponse(w, statusCode, response)
}
