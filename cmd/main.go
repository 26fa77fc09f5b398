package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_booking"
	decideAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/decide_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getSettingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_settings"
	listAppointmentsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_appointments"
	listAuditLogHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_audit_log"
	purgeAuditLogHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/purge_audit_log"
	updateSettingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/kvstore"
	memoryKV "github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/memory"
	postgresKV "github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/postgres"
	redisKV "github.com/m04kA/SMC-ReservationService/internal/infra/kvstore/redis"
	appointmentRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/appointment"
	auditRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/audit"
	ratelimitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ratelimit"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	slotledgerRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slotledger"
	notifyServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/notifyservice"
	appointmentsService "github.com/m04kA/SMC-ReservationService/internal/service/appointments"
	auditlogService "github.com/m04kA/SMC-ReservationService/internal/service/auditlog"
	ratelimiterService "github.com/m04kA/SMC-ReservationService/internal/service/ratelimiter"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/kvmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем KV-хранилище согласно драйверу из конфигурации
	ctx := context.Background()
	var store kvstore.Store

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = memoryKV.New()
		log.Info("Using in-memory KV store")

	case config.StorageDriverRedis:
		redisStore := redisKV.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatal("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		defer redisStore.Close()
		store = redisStore
		log.Info("Connected to Redis at %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}

		pgStore := postgresKV.New(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure database schema: %v", err)
		}
		store = pgStore
		log.Info("Connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	default:
		log.Fatal("Unknown storage driver: %s", cfg.Storage.Driver)
	}

	// Оборачиваем хранилище сбором метрик операций
	if cfg.Metrics.Enabled {
		store = kvmetrics.Wrap(store, metricsCollector)
		log.Info("KV store metrics collection enabled")
	}

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	if cfg.NotifyService.URL != "" {
		log.Info("NotifyService client initialized (url=%s, timeout=%ds)",
			cfg.NotifyService.URL, cfg.NotifyService.Timeout)
	} else {
		log.Info("NotifyService client disabled (empty url)")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(store)
	slotLedgerRepository := slotledgerRepo.NewRepository(store)
	rateLimitRepository := ratelimitRepo.NewRepository(store)
	auditRepository := auditRepo.NewRepository(store)
	settingsRepository := settingsRepo.NewRepository(store)

	// Инициализируем сервисы
	auditSvc := auditlogService.NewService(auditRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, auditSvc, log)
	rateLimiterSvc := ratelimiterService.NewService(rateLimitRepository, settingsSvc, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		slotLedgerRepository,
		auditSvc,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		slotLedgerRepository,
		settingsSvc,
		rateLimiterSvc,
		auditSvc,
		notifyClient,
		metricsCollector,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		slotLedgerRepository,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	decideAppointment := decideAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listAuditLog := listAuditLogHandler.NewHandler(auditSvc, log)
	purgeAuditLog := purgeAuditLogHandler.NewHandler(auditSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание записи (rate limiting внутри use case)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Доступность слотов на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/decide", decideAppointment.Handle).Methods(http.MethodPatch)

	// --- Настройки ---
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// --- Журнал аудита ---
	admin.HandleFunc("/audit", listAuditLog.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/audit", purgeAuditLog.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
