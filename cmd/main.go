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

	createBookingHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/create_booking"
	createUnavailabilityHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/create_unavailability"
	deleteBookingHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/delete_booking"
	deleteUnavailabilityHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/delete_unavailability"
	getBookingHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/get_branch_bookings"
	getDayScheduleHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/get_day_schedule"
	getUnavailabilityHandler "github.com/tawanchai/BYD-TestDriveService/internal/api/handlers/get_unavailability"
	"github.com/tawanchai/BYD-TestDriveService/internal/api/middleware"
	"github.com/tawanchai/BYD-TestDriveService/internal/config"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	bookingRepo "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/booking"
	unavailabilityRepo "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/unavailability"
	staffDirectoryClient "github.com/tawanchai/BYD-TestDriveService/internal/integrations/staffdirectory"
	scheduleService "github.com/tawanchai/BYD-TestDriveService/internal/service/schedule"
	createBookingUC "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_booking"
	createUnavailabilityUC "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_unavailability"
	getDayScheduleUC "github.com/tawanchai/BYD-TestDriveService/internal/usecase/get_day_schedule"
	"github.com/tawanchai/BYD-TestDriveService/pkg/dbmetrics"
	"github.com/tawanchai/BYD-TestDriveService/pkg/logger"
	"github.com/tawanchai/BYD-TestDriveService/pkg/metrics"
	"github.com/tawanchai/BYD-TestDriveService/pkg/simpletxmanager"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnlySnapshot(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting BYD-TestDriveService...")
	log.Info("Configuration loaded from config.toml")

	// Строим сетку слотов из рабочих часов
	grid, err := domain.NewGrid(businessHours(cfg))
	if err != nil {
		log.Fatal("Invalid business hours configuration: %v", err)
	}
	log.Info("Slot grid built: %d slots per day (%s-%s, %d min each)",
		len(grid.AllSlots()), cfg.Business.OpenTime, cfg.Business.CloseTime, cfg.Business.SlotDurationMinutes)

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

	// Резолвер имен продавцов: внешний справочник либо логин как есть
	var staffDir createBookingUC.StaffDirectory
	if cfg.StaffDirectory.Enabled {
		staffDir = staffDirectoryClient.NewClient(
			cfg.StaffDirectory.URL,
			time.Duration(cfg.StaffDirectory.Timeout)*time.Second,
			log,
		)
		log.Info("Staff directory client initialized (url=%s timeout=%ds)",
			cfg.StaffDirectory.URL, cfg.StaffDirectory.Timeout)
	} else {
		staffDir = staffDirectoryClient.NewNoopResolver()
		log.Info("Staff directory disabled, using logins as display names")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		blockRepository   *unavailabilityRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockRepository = unavailabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB).WithRetryObserver(metricsCollector)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		blockRepository = unavailabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(bookingRepository, blockRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockRepository,
		staffDir,
		txMgr,
		grid,
		log,
	)
	createUnavailabilityUseCase := createUnavailabilityUC.NewUseCase(
		bookingRepository,
		blockRepository,
		txMgr,
		grid,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		blockRepository,
		txMgr,
		grid,
		log,
	)

	if cfg.Metrics.Enabled {
		createBookingUseCase = createBookingUseCase.WithConflictObserver(metricsCollector)
		createUnavailabilityUseCase = createUnavailabilityUseCase.WithConflictObserver(metricsCollector)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(scheduleSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(scheduleSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(scheduleSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	createUnavailability := createUnavailabilityHandler.NewHandler(createUnavailabilityUseCase, log)
	getUnavailability := getUnavailabilityHandler.NewHandler(scheduleSvc, log)
	deleteUnavailability := deleteUnavailabilityHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание дня филиала: занятые, заблокированные и свободные модели
	api.HandleFunc("/branches/{branch}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-Login header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.StaffAuth(log))

	// --- Бронирования тест-драйвов ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/branches/{branch}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// --- Блокировки автомобилей ---
	protected.HandleFunc("/unavailability", createUnavailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branch}/unavailability", getUnavailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/unavailability/{blockId}", deleteUnavailability.Handle).Methods(http.MethodDelete)

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

// businessHours собирает рабочие часы из конфига, пустые поля
// добиваются значениями по умолчанию
func businessHours(cfg *config.Config) domain.Hours {
	hours := domain.DefaultHours()

	if cfg.Business.OpenTime != "" {
		hours.Open = types.TimeString(cfg.Business.OpenTime)
	}
	if cfg.Business.MiddayTime != "" {
		hours.Midday = types.TimeString(cfg.Business.MiddayTime)
	}
	if cfg.Business.CloseTime != "" {
		hours.Close = types.TimeString(cfg.Business.CloseTime)
	}
	if cfg.Business.SlotDurationMinutes > 0 {
		hours.SlotDurationMinutes = cfg.Business.SlotDurationMinutes
	}

	return hours
}
