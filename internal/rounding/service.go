package rounding

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/monitoring"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Service implements the rounding sheet service: session seeding, draft
// editing, saving, and export
type Service struct {
	config  *config.Config
	logger  *logger.Logger
	adapter interfaces.RoundingPersistence
	metrics *monitoring.MetricsCollector
	server  *http.Server

	mu       sync.Mutex
	sessions map[string]*DraftStore
}

// New creates a new rounding service. The persistence adapter is the local
// patient database unless an upstream EMR is configured.
func New(cfg *config.Config, log *logger.Logger) interfaces.RoundingService {
	var adapter interfaces.RoundingPersistence

	if cfg.Upstream.Enabled {
		adapter = NewUpstreamAdapter(&cfg.Upstream, log)
		log.WithComponent("rounding").Info("Using upstream EMR persistence adapter")
	} else {
		db, err := database.NewConnection(&cfg.Database, log)
		if err != nil {
			log.WithError(err).Error("Failed to connect to database")
			panic(err)
		}
		adapter = NewRepository(db, log)
	}

	return NewWithAdapter(cfg, adapter, log)
}

// NewWithAdapter creates a rounding service over an explicit adapter
func NewWithAdapter(cfg *config.Config, adapter interfaces.RoundingPersistence, log *logger.Logger) *Service {
	return &Service{
		config:   cfg,
		logger:   log,
		adapter:  adapter,
		metrics:  monitoring.NewMetricsCollector("rounding-service"),
		sessions: make(map[string]*DraftStore),
	}
}

// CreateSession loads the active patient list, seeds a draft store with
// carry-forward and auto-fill, and registers it under a fresh session ID
func (s *Service) CreateSession(ctx context.Context) (string, *DraftStore, error) {
	patients, err := s.adapter.ActivePatients(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load patients for session: %w", err)
	}

	store := NewDraftStore(s.config.Drafts, s.adapter, s.logger)
	store.Seed(patients)

	sessionID := uuid.New().String()

	s.mu.Lock()
	s.sessions[sessionID] = store
	s.metrics.RecordActiveSessions(len(s.sessions))
	s.mu.Unlock()

	s.logger.WithSessionID(sessionID).Infof("Rounding session created with %d patients", len(store.Patients()))
	return sessionID, store, nil
}

// Session returns the draft store for a session ID
func (s *Service) Session(sessionID string) (*DraftStore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.sessions[sessionID]
	return store, ok
}

// CloseSession discards a session and its unsaved drafts
func (s *Service) CloseSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.sessions[sessionID]
	if !ok {
		return false
	}

	store.Close()
	delete(s.sessions, sessionID)
	s.metrics.RecordActiveSessions(len(s.sessions))
	s.logger.WithSessionID(sessionID).Info("Rounding session closed")
	return true
}

// Start starts the rounding service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}

	s.logger.Infof("Starting Rounding Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the rounding service and discards open sessions
func (s *Service) Stop() error {
	s.mu.Lock()
	for id, store := range s.sessions {
		store.Close()
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if s.server != nil {
		s.logger.Info("Stopping Rounding Service")
		return s.server.Close()
	}
	return nil
}

// statusForError maps structured error types to HTTP status codes
func statusForError(err error) int {
	if vetErr, ok := err.(*types.VetError); ok {
		switch vetErr.Type {
		case types.ErrorTypeValidation:
			return http.StatusBadRequest
		case types.ErrorTypeNotFound:
			return http.StatusNotFound
		case types.ErrorTypeAuthentication:
			return http.StatusUnauthorized
		case types.ErrorTypeConflict:
			return http.StatusConflict
		case types.ErrorTypeTimeout:
			return http.StatusGatewayTimeout
		case types.ErrorTypeExternal:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}
