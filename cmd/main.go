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

	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	decideRescheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/decide_reschedule"
	deleteBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getOccupancyDetailHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_occupancy_detail"
	listBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_bookings"
	markRescheduleSeenHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_reschedule_seen"
	markViewedHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/mark_viewed"
	requestRescheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/request_reschedule"
	saveAdminBlocksHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/save_admin_blocks"
	updateBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	occupancyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/occupancy"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	occupancyService "github.com/m04kA/SMC-AppointmentService/internal/service/occupancy"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	decideRescheduleUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/decide_reschedule"
	getAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	requestRescheduleUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/request_reschedule"
	saveAdminBlocksUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/save_admin_blocks"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
		bookingRepository   *bookingRepo.Repository
		occupancyRepository *occupancyRepo.Repository
		txMgr               TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		occupancyRepository = occupancyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		occupancyRepository = occupancyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		occupancyRepository,
		txMgr,
		log,
	)
	occupancySvc := occupancyService.NewService(occupancyRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		occupancyRepository,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(occupancyRepository, log)
	saveAdminBlocksUseCase := saveAdminBlocksUC.NewUseCase(
		occupancyRepository,
		txMgr,
		log,
	)
	requestRescheduleUseCase := requestRescheduleUC.NewUseCase(
		bookingRepository,
		occupancyRepository,
		log,
	)
	decideRescheduleUseCase := decideRescheduleUC.NewUseCase(
		bookingRepository,
		occupancyRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	requestReschedule := requestRescheduleHandler.NewHandler(requestRescheduleUseCase, log)
	getOccupancyDetail := getOccupancyDetailHandler.NewHandler(occupancySvc, log)
	saveAdminBlocks := saveAdminBlocksHandler.NewHandler(saveAdminBlocksUseCase, log)
	decideReschedule := decideRescheduleHandler.NewHandler(decideRescheduleUseCase, log)
	markRescheduleSeen := markRescheduleSeenHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	markViewed := markViewedHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов за период
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание заявки на запись
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Клиентский запрос на перенос (авторизуется manage-токеном заявки)
	api.HandleFunc("/bookings/{bookingId}/reschedule", requestReschedule.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID и роль staff)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.StaffOnly)

	// --- Занятость и блокировки ---
	// Детализация занятости с привязкой к заявкам
	admin.HandleFunc("/occupancy", getOccupancyDetail.Handle).Methods(http.MethodGet)

	// Пакетное редактирование административных блокировок
	admin.HandleFunc("/blocks", saveAdminBlocks.Handle).Methods(http.MethodPost)

	// --- Заявки ---
	// Список заявок с фильтрацией
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Заявка по ID
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса жизненного цикла
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отметка "просмотрено администратором"
	admin.HandleFunc("/bookings/{bookingId}/viewed", markViewed.Handle).Methods(http.MethodPatch)

	// Удаление завершённой заявки
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Переносы ---
	// Решение по запросу на перенос (approve / deny)
	admin.HandleFunc("/bookings/{bookingId}/reschedule-decision", decideReschedule.Handle).Methods(http.MethodPost)

	// Отметка "запрос увиден" (без решения)
	admin.HandleFunc("/bookings/{bookingId}/reschedule-seen", markRescheduleSeen.Handle).Methods(http.MethodPost)

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
