package rounding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUpstream(t *testing.T, handler http.HandlerFunc) *UpstreamAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewUpstreamAdapter(&config.UpstreamConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		TimeoutMs: 2000,
	}, logger.New("error"))
}

func TestUpstreamAdapter_ActivePatients(t *testing.T) {
	adapter := newTestUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/patients", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]*types.Patient{
			{ID: "p1", Status: types.PatientStatusActive},
		})
	})

	patients, err := adapter.ActivePatients(context.Background())

	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p1", patients[0].ID)
}

func TestUpstreamAdapter_ActivePatients_MissingContentType(t *testing.T) {
	// EMRs that omit the Content-Type header must not produce a silent
	// empty census: the body is still decoded as JSON
	adapter := newTestUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*types.Patient{
			{ID: "p1", Status: types.PatientStatusActive},
			{ID: "p2", Status: types.PatientStatusActive},
		})
	})

	patients, err := adapter.ActivePatients(context.Background())

	require.NoError(t, err)
	require.Len(t, patients, 2)
}

func TestUpstreamAdapter_UpdatePatientRoundingData(t *testing.T) {
	adapter := newTestUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/patients/p1/rounding", r.URL.Path)

		var body map[string]*types.RoundingRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Day 3 IVDD", body["roundingData"].Problems)

		w.WriteHeader(http.StatusOK)
	})

	err := adapter.UpdatePatientRoundingData(context.Background(), "p1",
		&types.RoundingRecord{Problems: "Day 3 IVDD"})

	require.NoError(t, err)
}

func TestUpstreamAdapter_UpdateNotFound(t *testing.T) {
	adapter := newTestUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := adapter.UpdatePatientRoundingData(context.Background(), "ghost", &types.RoundingRecord{})

	require.Error(t, err)
	vetErr, ok := err.(*types.VetError)
	require.True(t, ok)
	assert.Equal(t, types.ErrorTypeNotFound, vetErr.Type)
}

func TestUpstreamAdapter_UpdateServerError(t *testing.T) {
	adapter := newTestUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := adapter.UpdatePatientRoundingData(context.Background(), "p1", &types.RoundingRecord{})

	require.Error(t, err)
	vetErr, ok := err.(*types.VetError)
	require.True(t, ok)
	assert.Equal(t, types.ErrorTypeExternal, vetErr.Type)
}
