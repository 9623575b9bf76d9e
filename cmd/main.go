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

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/get_appointment"
	getAppointmentDatesHandler "github.com/apptbook/appointment-service/internal/api/handlers/get_appointment_dates"
	getRecentCustomersHandler "github.com/apptbook/appointment-service/internal/api/handlers/get_recent_customers"
	listAppointmentsHandler "github.com/apptbook/appointment-service/internal/api/handlers/list_appointments"
	notificationsHandler "github.com/apptbook/appointment-service/internal/api/handlers/notifications"
	previewSlotHandler "github.com/apptbook/appointment-service/internal/api/handlers/preview_slot"
	removeServiceLinkHandler "github.com/apptbook/appointment-service/internal/api/handlers/remove_service_link"
	rescheduleAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/reschedule_appointment"
	resizeAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/resize_appointment"
	servicesHandler "github.com/apptbook/appointment-service/internal/api/handlers/services"
	staffHandler "github.com/apptbook/appointment-service/internal/api/handlers/staff"
	updateAppointmentHandler "github.com/apptbook/appointment-service/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/apptbook/appointment-service/internal/api/handlers/update_appointment_status"
	workingHoursHandler "github.com/apptbook/appointment-service/internal/api/handlers/working_hours"
	"github.com/apptbook/appointment-service/internal/api/middleware"
	"github.com/apptbook/appointment-service/internal/config"
	"github.com/apptbook/appointment-service/internal/infra/cache"
	appointmentRepo "github.com/apptbook/appointment-service/internal/infra/storage/appointment"
	catalogRepo "github.com/apptbook/appointment-service/internal/infra/storage/catalog"
	notificationSettingsRepo "github.com/apptbook/appointment-service/internal/infra/storage/notificationsettings"
	staffRepo "github.com/apptbook/appointment-service/internal/infra/storage/staff"
	workingHoursRepo "github.com/apptbook/appointment-service/internal/infra/storage/workinghours"
	appointmentsService "github.com/apptbook/appointment-service/internal/service/appointments"
	catalogService "github.com/apptbook/appointment-service/internal/service/catalog"
	notificationsService "github.com/apptbook/appointment-service/internal/service/notifications"
	staffService "github.com/apptbook/appointment-service/internal/service/staff"
	workingHoursService "github.com/apptbook/appointment-service/internal/service/workinghours"
	createAppointmentUC "github.com/apptbook/appointment-service/internal/usecase/create_appointment"
	previewSlotUC "github.com/apptbook/appointment-service/internal/usecase/preview_slot"
	rescheduleAppointmentUC "github.com/apptbook/appointment-service/internal/usecase/reschedule_appointment"
	resizeAppointmentUC "github.com/apptbook/appointment-service/internal/usecase/resize_appointment"
	updateAppointmentUC "github.com/apptbook/appointment-service/internal/usecase/update_appointment"
	"github.com/apptbook/appointment-service/pkg/dbmetrics"
	"github.com/apptbook/appointment-service/pkg/logger"
	"github.com/apptbook/appointment-service/pkg/metrics"
	"github.com/apptbook/appointment-service/pkg/simpletxmanager"
	"github.com/apptbook/appointment-service/pkg/txmanager"
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

	log.Info("Starting appointment-service...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository          *appointmentRepo.Repository
		catalogRepository              *catalogRepo.Repository
		workingHoursRepository         *workingHoursRepo.Repository
		staffRepository                *staffRepo.Repository
		notificationSettingsRepository *notificationSettingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		workingHoursRepository = workingHoursRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		notificationSettingsRepository = notificationSettingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		workingHoursRepository = workingHoursRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		notificationSettingsRepository = notificationSettingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш дневных расписаний (если включен redis)
	// Потребители принимают nil, когда кеширование отключено
	var (
		redisClient       *redis.Client
		svcCache          appointmentsService.ScheduleCache
		createUCCache     createAppointmentUC.ScheduleCache
		rescheduleUCCache rescheduleAppointmentUC.ScheduleCache
		resizeUCCache     resizeAppointmentUC.ScheduleCache
		updateUCCache     updateAppointmentUC.ScheduleCache
	)

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()
		defer redisClient.Close()

		dayCache := cache.NewScheduleCache(redisClient, time.Duration(cfg.Redis.DayScheduleTTL)*time.Second)
		svcCache = dayCache
		createUCCache = dayCache
		rescheduleUCCache = dayCache
		resizeUCCache = dayCache
		updateUCCache = dayCache

		log.Info("Schedule cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.DayScheduleTTL)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, svcCache, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	workingHoursSvc := workingHoursService.NewService(workingHoursRepository, txMgr, log)
	staffSvc := staffService.NewService(staffRepository, log)
	notificationsSvc := notificationsService.NewService(notificationSettingsRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		workingHoursSvc,
		createUCCache,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		workingHoursSvc,
		rescheduleUCCache,
		txMgr,
		log,
	)
	resizeAppointmentUseCase := resizeAppointmentUC.NewUseCase(
		appointmentRepository,
		workingHoursSvc,
		resizeUCCache,
		txMgr,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		workingHoursSvc,
		updateUCCache,
		txMgr,
		log,
	)
	previewSlotUseCase := previewSlotUC.NewUseCase(
		appointmentRepository,
		workingHoursSvc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	resizeAppointment := resizeAppointmentHandler.NewHandler(resizeAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	removeServiceLink := removeServiceLinkHandler.NewHandler(appointmentsSvc, log)
	previewSlot := previewSlotHandler.NewHandler(previewSlotUseCase, log)
	getRecentCustomers := getRecentCustomersHandler.NewHandler(appointmentsSvc, log)
	getAppointmentDates := getAppointmentDatesHandler.NewHandler(appointmentsSvc, log)
	workingHours := workingHoursHandler.NewHandler(workingHoursSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	staffMembers := staffHandler.NewHandler(staffSvc, log)
	notifications := notificationsHandler.NewHandler(notificationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

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

	// API prefix; все маршруты требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Записи календаря ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/dates", getAppointmentDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/recent-customers", getRecentCustomers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/preview", previewSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/services/{linkId}", removeServiceLink.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/resize", resizeAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Каталог услуг для формы записи ---
	api.HandleFunc("/services", services.HandleListActive).Methods(http.MethodGet)

	// --- Настройки аккаунта ---
	api.HandleFunc("/settings/working-hours", workingHours.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/settings/working-hours", workingHours.HandlePut).Methods(http.MethodPut)
	api.HandleFunc("/settings/working-hours", workingHours.HandleSeedDefaults).Methods(http.MethodPost)

	api.HandleFunc("/settings/services", services.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/settings/services", services.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/settings/services/{serviceId}", services.HandleUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/settings/services/{serviceId}", services.HandleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/settings/staff", staffMembers.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/settings/staff", staffMembers.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/settings/staff/{staffId}", staffMembers.HandleUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/settings/staff/{staffId}", staffMembers.HandleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/settings/notifications", notifications.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/settings/notifications", notifications.HandlePut).Methods(http.MethodPut)

	// CORS для браузерного календаря
	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-User-ID", "X-Request-ID"}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
