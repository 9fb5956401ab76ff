package rounding

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// UpstreamAdapter is the persistence adapter for clinics whose patient
// records live in an upstream EMR rather than the local database. It speaks
// the same contract as Repository: read the patient list, replace one
// patient's rounding record wholesale.
type UpstreamAdapter struct {
	client *resty.Client
	logger *logger.Logger
}

// NewUpstreamAdapter creates a persistence adapter against a remote EMR API
func NewUpstreamAdapter(cfg *config.UpstreamConfig, log *logger.Logger) *UpstreamAdapter {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond).
		SetRetryCount(cfg.Retries).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("X-Api-Key", cfg.APIKey)
	}

	return &UpstreamAdapter{
		client: client,
		logger: log,
	}
}

// ActivePatients fetches the non-discharged patient list from the upstream EMR
func (a *UpstreamAdapter) ActivePatients(ctx context.Context) ([]*types.Patient, error) {
	var patients []*types.Patient

	// ForceContentType: resty only unmarshals SetResult for JSON content
	// types, so an EMR that omits the header would otherwise yield a silent
	// empty census
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("status", "active").
		SetResult(&patients).
		ForceContentType("application/json").
		Get("/api/v1/patients")
	if err != nil {
		a.logger.WithError(err).Error("Upstream patient list request failed")
		return nil, types.NewExternalError(types.ErrCodeExternalError, "upstream patient list failed", err)
	}
	if resp.IsError() {
		return nil, types.NewExternalError(types.ErrCodeExternalError,
			fmt.Sprintf("upstream patient list returned %d", resp.StatusCode()), nil)
	}

	return patients, nil
}

// UpdatePatientRoundingData replaces one patient's rounding record upstream
func (a *UpstreamAdapter) UpdatePatientRoundingData(ctx context.Context, patientID string, record *types.RoundingRecord) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]*types.RoundingRecord{"roundingData": record}).
		Put(fmt.Sprintf("/api/v1/patients/%s/rounding", patientID))
	if err != nil {
		a.logger.WithPatientID(patientID).WithError(err).Error("Upstream rounding write failed")
		return types.NewExternalError(types.ErrCodeExternalError, "upstream rounding write failed", err)
	}

	switch {
	case resp.StatusCode() == 404:
		return types.NewNotFoundError(types.ErrCodeNotFound,
			fmt.Sprintf("patient not found upstream: %s", patientID))
	case resp.IsError():
		return types.NewExternalError(types.ErrCodeExternalError,
			fmt.Sprintf("upstream rounding write returned %d", resp.StatusCode()), nil)
	}

	return nil
}
