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

	createTileHandler "github.com/rckarchitects/crashboard/internal/api/handlers/create_tile"
	deleteTileHandler "github.com/rckarchitects/crashboard/internal/api/handlers/delete_tile"
	getAvailabilityHandler "github.com/rckarchitects/crashboard/internal/api/handlers/get_availability"
	getTilesHandler "github.com/rckarchitects/crashboard/internal/api/handlers/get_tiles"
	updateTileLayoutHandler "github.com/rckarchitects/crashboard/internal/api/handlers/update_tile_layout"
	"github.com/rckarchitects/crashboard/internal/api/middleware"
	"github.com/rckarchitects/crashboard/internal/config"
	"github.com/rckarchitects/crashboard/internal/infra/cache"
	tileRepo "github.com/rckarchitects/crashboard/internal/infra/storage/tiles"
	icalFeedClient "github.com/rckarchitects/crashboard/internal/integrations/icalfeed"
	msGraphClient "github.com/rckarchitects/crashboard/internal/integrations/msgraph"
	"github.com/rckarchitects/crashboard/internal/scheduler"
	tilesService "github.com/rckarchitects/crashboard/internal/service/tiles"
	getAvailabilityUC "github.com/rckarchitects/crashboard/internal/usecase/get_availability"
	"github.com/rckarchitects/crashboard/pkg/dbmetrics"
	"github.com/rckarchitects/crashboard/pkg/logger"
	"github.com/rckarchitects/crashboard/pkg/metrics"
	"github.com/rckarchitects/crashboard/pkg/simpletxmanager"
	"github.com/rckarchitects/crashboard/pkg/txmanager"
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

	log.Info("Starting CrashBoard...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона расчёта доступности
	location, err := time.LoadLocation(cfg.Availability.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Availability.Timezone, err)
	}

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

	// Инициализируем источник календаря
	calendarTimeout := time.Duration(cfg.Calendar.Timeout) * time.Second
	var calendarSource getAvailabilityUC.CalendarSource

	switch cfg.Calendar.Source {
	case config.CalendarSourceMSGraph:
		calendarSource = msGraphClient.NewClient(
			cfg.Calendar.MSGraph.BaseURL,
			cfg.Calendar.MSGraph.AccessToken,
			calendarTimeout,
			log,
		)
	case config.CalendarSourceICalFeed:
		calendarSource = icalFeedClient.NewClient(
			cfg.Calendar.ICalFeed.URL,
			calendarTimeout,
			log,
		)
	default:
		log.Fatal("Unknown calendar source: %s", cfg.Calendar.Source)
	}
	log.Info("Calendar source initialized (source=%s, timeout=%ds)", cfg.Calendar.Source, cfg.Calendar.Timeout)

	// Кэш результатов доступности
	availabilityCache := cache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.MaxEntries,
		metricsCollector,
	)
	log.Info("Availability cache initialized (ttl=%ds, max_entries=%d)",
		cfg.Cache.TTLSeconds, cfg.Cache.MaxEntries)

	// Инициализируем репозитории (с метриками или без)
	var tileRepository *tileRepo.Repository

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		tileRepository = tileRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		tileRepository = tileRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	tilesSvc := tilesService.NewService(
		tileRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		calendarSource,
		availabilityCache,
		cfg.Availability.Policy(),
		location,
		log,
	)

	// Фоновый прогрев кэша доступности
	var warmUpScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		warmUpScheduler = scheduler.New(getAvailabilityUseCase, cfg.Scheduler.UserIDs, log)
		if err := warmUpScheduler.Start(cfg.Scheduler.Spec); err != nil {
			log.Fatal("Failed to start scheduler: %v", err)
		}
	}

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, location, log)
	getTiles := getTilesHandler.NewHandler(tilesSvc, log)
	createTile := createTileHandler.NewHandler(tilesSvc, log)
	deleteTile := deleteTileHandler.NewHandler(tilesSvc, log)
	updateTileLayout := updateTileLayoutHandler.NewHandler(tilesSvc, log)

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

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность ---
	// Свободные окна для встреч
	protected.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Тайлы дашборда ---
	// Доска пользователя
	protected.HandleFunc("/tiles", getTiles.Handle).Methods(http.MethodGet)

	// Добавление тайла
	protected.HandleFunc("/tiles", createTile.Handle).Methods(http.MethodPost)

	// Перестановка тайлов
	protected.HandleFunc("/tiles/layout", updateTileLayout.Handle).Methods(http.MethodPut)

	// Удаление тайла
	protected.HandleFunc("/tiles/{tileId}", deleteTile.Handle).Methods(http.MethodDelete)

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

	// Останавливаем планировщик прогрева
	if warmUpScheduler != nil {
		warmUpScheduler.Stop()
	}

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
