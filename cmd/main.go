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

	cancelReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/cancel_reservation"
	cancelWaitlistEntryHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/cancel_waitlist_entry"
	checkInReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/check_in_reservation"
	checkWaitlistEligibilityHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/check_waitlist_eligibility"
	completeReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/create_reservation"
	getAvailableSlipsHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/get_available_slips"
	getReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/get_user_reservations"
	getUserWaitlistHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/get_user_waitlist"
	getWaitlistQueueHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/get_waitlist_queue"
	joinWaitlistHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/join_waitlist"
	recordPaymentHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/record_payment"
	sweepPastDueHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/sweep_past_due"
	updateReservationHandler "github.com/m04kA/Marina-SlipService/internal/api/handlers/update_reservation"
	"github.com/m04kA/Marina-SlipService/internal/api/middleware"
	"github.com/m04kA/Marina-SlipService/internal/config"
	boatRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/boat"
	paymentRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/reservation"
	slipRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/slip"
	waitlistRepo "github.com/m04kA/Marina-SlipService/internal/infra/storage/waitlist"
	identityServiceClient "github.com/m04kA/Marina-SlipService/internal/integrations/identityservice"
	reservationsService "github.com/m04kA/Marina-SlipService/internal/service/reservations"
	waitlistService "github.com/m04kA/Marina-SlipService/internal/service/waitlist"
	createReservationUC "github.com/m04kA/Marina-SlipService/internal/usecase/create_reservation"
	findAvailableSlipsUC "github.com/m04kA/Marina-SlipService/internal/usecase/find_available_slips"
	updateReservationUC "github.com/m04kA/Marina-SlipService/internal/usecase/update_reservation"
	"github.com/m04kA/Marina-SlipService/pkg/dbmetrics"
	"github.com/m04kA/Marina-SlipService/pkg/logger"
	"github.com/m04kA/Marina-SlipService/pkg/metrics"
	"github.com/m04kA/Marina-SlipService/pkg/simpletxmanager"
	"github.com/m04kA/Marina-SlipService/pkg/txmanager"
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

	log.Info("Starting Marina-SlipService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент IdentityService
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (IdentityService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slipRepository        *slipRepo.Repository
		boatRepository        *boatRepo.Repository
		reservationRepository *reservationRepo.Repository
		waitlistRepository    *waitlistRepo.Repository
		paymentRepository     *paymentRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slipRepository = slipRepo.NewRepository(wrappedDB)
		boatRepository = boatRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slipRepository = slipRepo.NewRepository(db)
		boatRepository = boatRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		paymentRepository,
		identityClient,
		txMgr,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		slipRepository,
		boatRepository,
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	findAvailableSlipsUseCase := findAvailableSlipsUC.NewUseCase(
		slipRepository,
		boatRepository,
		reservationRepository,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		slipRepository,
		boatRepository,
		reservationRepository,
		txMgr,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		slipRepository,
		boatRepository,
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlips := getAvailableSlipsHandler.NewHandler(findAvailableSlipsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	checkInReservation := checkInReservationHandler.NewHandler(reservationsSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(reservationsSvc, log)
	sweepPastDue := sweepPastDueHandler.NewHandler(reservationsSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	cancelWaitlistEntry := cancelWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	getUserWaitlist := getUserWaitlistHandler.NewHandler(waitlistSvc, log)
	getWaitlistQueue := getWaitlistQueueHandler.NewHandler(waitlistSvc, log)
	checkWaitlistEligibility := checkWaitlistEligibilityHandler.NewHandler(waitlistSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все операции требуют личность инициатора (X-User-ID от шлюза)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность слипов ---
	protected.HandleFunc("/slips/available", getAvailableSlips.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/check-in", checkInReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/payments", recordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist", getWaitlistQueue.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/waitlist/{entryId}/cancel", cancelWaitlistEntry.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/waitlist/{entryId}/eligibility", checkWaitlistEligibility.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/waitlist", getUserWaitlist.Handle).Methods(http.MethodGet)

	// --- Служебные операции ---
	protected.HandleFunc("/maintenance/complete-past-due", sweepPastDue.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
