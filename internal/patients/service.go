package patients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"github.com/laurenj3250-debug/vethub2.0-sub004/internal/caselog"
	"github.com/laurenj3250-debug/vethub2.0-sub004/internal/labs"
	"github.com/laurenj3250-debug/vethub2.0-sub004/internal/mri"
	"github.com/laurenj3250-debug/vethub2.0-sub004/internal/quickinsert"
	"github.com/laurenj3250-debug/vethub2.0-sub004/internal/tasks"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/auth"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/config"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/database"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/interfaces"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/monitoring"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Service implements the patient service: patient records, daily task
// checklists, the residency case log, bloodwork scanning, MRI dose
// calculation, and quick-insert options
type Service struct {
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	redis   *redis.Client
	metrics *monitoring.MetricsCollector
	server  *http.Server

	repository  interfaces.PatientRepository
	taskHandler *tasks.Handler
	caseHandler *caselog.Handler
	labsHandler *labs.Handler
	mriHandler  *mri.Handler
	quickInsert *quickinsert.Handler
}

// New creates a new patient service and initializes its storage backends
func New(cfg *config.Config, log *logger.Logger) interfaces.PatientService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		panic(err)
	}

	if err := db.InitSchema(); err != nil {
		log.WithError(err).Error("Failed to initialize database schema")
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	quickStore := quickinsert.NewStore(redisClient, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := quickStore.Migrate(ctx); err != nil {
		log.WithError(err).Error("Failed to seed quick-insert options")
		panic(err)
	}

	return &Service{
		config:      cfg,
		logger:      log,
		db:          db,
		redis:       redisClient,
		metrics:     monitoring.NewMetricsCollector("patient-service"),
		repository:  NewRepository(db, log),
		taskHandler: tasks.NewHandler(tasks.NewRepository(db, log), log),
		caseHandler: caselog.NewHandler(caselog.NewRepository(db, log), log),
		labsHandler: labs.NewHandler(log),
		mriHandler:  mri.NewHandler(log),
		quickInsert: quickinsert.NewHandler(quickStore, log),
	}
}

// Start starts the patient service HTTP server
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

	s.logger.Infof("Starting Patient Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the patient service and releases its storage connections
func (s *Service) Stop() error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Redis connection")
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close database connection")
		}
	}

	if s.server != nil {
		s.logger.Info("Stopping Patient Service")
		return s.server.Close()
	}
	return nil
}

// setupRoutes configures HTTP routes for the patient service
func (s *Service) setupRoutes(router *mux.Router) {
	router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.metrics.HTTPMiddleware)
	api.Use(auth.Middleware(auth.NewTokenValidator(s.config.JWT.SecretKey), s.logger))

	// Patient records
	api.HandleFunc("/patients", s.createPatientHandler).Methods("POST")
	api.HandleFunc("/patients", s.getPatientsHandler).Methods("GET")
	api.HandleFunc("/patients/{id}", s.getPatientHandler).Methods("GET")
	api.HandleFunc("/patients/{id}", s.updatePatientHandler).Methods("PATCH")
	api.HandleFunc("/patients/{id}", s.deletePatientHandler).Methods("DELETE")
	api.HandleFunc("/patients/{id}/discharge", s.dischargePatientHandler).Methods("POST")

	s.taskHandler.Register(api)
	s.caseHandler.Register(api)
	s.labsHandler.Register(api)
	s.mriHandler.Register(api)
	s.quickInsert.Register(api)

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("Patient service routes configured")
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
		}
	}
	return http.StatusInternalServerError
}
