package patients

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

type createPatientRequest struct {
	Demographics types.Demographics `json:"demographics"`
	CurrentStay  *types.CurrentStay `json:"currentStay,omitempty"`
}

// createPatientHandler admits a new patient. New patients start Active with
// an empty rounding record.
func (s *Service) createPatientHandler(w http.ResponseWriter, r *http.Request) {
	var req createPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Demographics.Name == "" {
		s.writeErrorResponse(w, http.StatusBadRequest, "Patient name is required", nil)
		return
	}

	patient := &types.Patient{
		ID:           uuid.New().String(),
		Status:       types.PatientStatusActive,
		Demographics: req.Demographics,
		CurrentStay:  req.CurrentStay,
	}

	if err := s.repository.CreatePatient(patient); err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to create patient", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, patient)
}

// getPatientsHandler lists patients. The rounding service reads the active
// census through ?status=Active.
func (s *Service) getPatientsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "active" {
		status = types.PatientStatusActive
	}

	patients, err := s.repository.GetPatients(status)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to list patients", err)
		return
	}

	if patients == nil {
		patients = []*types.Patient{}
	}
	s.writeJSONResponse(w, http.StatusOK, patients)
}

// getPatientHandler returns one patient record
func (s *Service) getPatientHandler(w http.ResponseWriter, r *http.Request) {
	patient, err := s.repository.GetPatientByID(mux.Vars(r)["id"])
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to get patient", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, patient)
}

// updatePatientHandler applies partial updates to a patient record
func (s *Service) updatePatientHandler(w http.ResponseWriter, r *http.Request) {
	var updates types.PatientUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if updates.Status != nil &&
		*updates.Status != types.PatientStatusActive &&
		*updates.Status != types.PatientStatusDischarged {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid patient status", nil)
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.repository.UpdatePatient(id, &updates); err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to update patient", err)
		return
	}

	patient, err := s.repository.GetPatientByID(id)
	if err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to get patient", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, patient)
}

// dischargePatientHandler marks a patient discharged. Discharged patients
// drop out of new rounding sessions but keep their record history.
func (s *Service) dischargePatientHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	discharged := types.PatientStatusDischarged

	if err := s.repository.UpdatePatient(id, &types.PatientUpdates{Status: &discharged}); err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to discharge patient", err)
		return
	}

	s.logger.WithPatientID(id).Info("Patient discharged")
	s.writeJSONResponse(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": discharged,
	})
}

// deletePatientHandler removes a patient and their tasks
func (s *Service) deletePatientHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repository.DeletePatient(id); err != nil {
		s.writeErrorResponse(w, statusForError(err), "Failed to delete patient", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Patient deleted"})
}

// healthCheckHandler reports service health including storage reachability
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "patients",
		"timestamp": time.Now().UTC(),
	}

	if err := s.db.HealthCheck(); err != nil {
		response["status"] = "degraded"
		response["database"] = err.Error()
	}
	s.metrics.RecordDBConnections(s.config.Database.Name, s.db.Stats().OpenConnections)

	s.writeJSONResponse(w, http.StatusOK, response)
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
