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

	cancelBookingHandler "github.com/m04kA/GymClassService/internal/api/handlers/cancel_booking"
	checkInBookingHandler "github.com/m04kA/GymClassService/internal/api/handlers/check_in_booking"
	createBookingHandler "github.com/m04kA/GymClassService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/GymClassService/internal/api/handlers/get_booking"
	getSessionWaitlistHandler "github.com/m04kA/GymClassService/internal/api/handlers/get_session_waitlist"
	markNoShowHandler "github.com/m04kA/GymClassService/internal/api/handlers/mark_no_show"
	"github.com/m04kA/GymClassService/internal/api/middleware"
	"github.com/m04kA/GymClassService/internal/config"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
	gymclassRepo "github.com/m04kA/GymClassService/internal/infra/storage/gymclass"
	memberRepo "github.com/m04kA/GymClassService/internal/infra/storage/member"
	sessionRepo "github.com/m04kA/GymClassService/internal/infra/storage/session"
	subscriptionRepo "github.com/m04kA/GymClassService/internal/infra/storage/subscription"
	notificationClient "github.com/m04kA/GymClassService/internal/integrations/notification"
	permissionsClient "github.com/m04kA/GymClassService/internal/integrations/permissions"
	webhookPublisher "github.com/m04kA/GymClassService/internal/integrations/webhook"
	bookingsService "github.com/m04kA/GymClassService/internal/service/bookings"
	validationService "github.com/m04kA/GymClassService/internal/service/validation"
	waitlistService "github.com/m04kA/GymClassService/internal/service/waitlist"
	cancelBookingUC "github.com/m04kA/GymClassService/internal/usecase/cancel_booking"
	checkInBookingUC "github.com/m04kA/GymClassService/internal/usecase/check_in_booking"
	createBookingUC "github.com/m04kA/GymClassService/internal/usecase/create_booking"
	"github.com/m04kA/GymClassService/pkg/dbmetrics"
	"github.com/m04kA/GymClassService/pkg/logger"
	"github.com/m04kA/GymClassService/pkg/metrics"
	"github.com/m04kA/GymClassService/pkg/simpletxmanager"
	"github.com/m04kA/GymClassService/pkg/txmanager"
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

	log.Info("Starting GymClassService...")
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

	// Инициализируем интеграционных клиентов
	notifications := notificationClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	webhooks := webhookPublisher.NewPublisher(
		cfg.WebhookDispatcher.URL,
		time.Duration(cfg.WebhookDispatcher.Timeout)*time.Second,
		log,
	)
	permissions := permissionsClient.NewClient(
		cfg.PermissionsService.URL,
		time.Duration(cfg.PermissionsService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Notifications=%s, Webhooks=%s, Permissions=%s)",
		cfg.NotificationService.URL, cfg.WebhookDispatcher.URL, cfg.PermissionsService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		sessionRepository      *sessionRepo.Repository
		gymClassRepository     *gymclassRepo.Repository
		memberRepository       *memberRepo.Repository
		subscriptionRepository *subscriptionRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		gymClassRepository = gymclassRepo.NewRepository(wrappedDB)
		memberRepository = memberRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		gymClassRepository = gymclassRepo.NewRepository(db)
		memberRepository = memberRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	validationSvc := validationService.NewService(
		bookingRepository,
		subscriptionRepository,
		log,
	)
	waitlistSvc := waitlistService.NewService(
		bookingRepository,
		sessionRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		webhooks,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		gymClassRepository,
		memberRepository,
		validationSvc,
		notifications,
		webhooks,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		gymClassRepository,
		subscriptionRepository,
		memberRepository,
		waitlistSvc,
		permissions,
		notifications,
		webhooks,
		txMgr,
		log,
	)
	checkInBookingUseCase := checkInBookingUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		gymClassRepository,
		subscriptionRepository,
		webhooks,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkInBooking := checkInBookingHandler.NewHandler(checkInBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getSessionWaitlist := getSessionWaitlistHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Лист ожидания занятия
	api.HandleFunc("/sessions/{sessionId}/waitlist",
		getSessionWaitlist.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (подтвержденного или в лист ожидания)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Посещаемость (для персонала) ---
	// Чек-ин участника на занятие
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkInBooking.Handle).Methods(http.MethodPost)

	// Отметка неявки
	protected.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

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
