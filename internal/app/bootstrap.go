package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/wb_taskflow/config"
	cachemem "github.com/Gunvolt24/wb_taskflow/internal/cache/memory"
	"github.com/Gunvolt24/wb_taskflow/internal/dispatch"
	"github.com/Gunvolt24/wb_taskflow/internal/health"
	"github.com/Gunvolt24/wb_taskflow/internal/kafka"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/internal/repo/postgres"
	rest "github.com/Gunvolt24/wb_taskflow/internal/transport/http"
	"github.com/Gunvolt24/wb_taskflow/internal/usecase"
	"github.com/Gunvolt24/wb_taskflow/pkg/logger"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
	"github.com/Gunvolt24/wb_taskflow/pkg/telemetry"
	"github.com/Gunvolt24/wb_taskflow/pkg/validate"
	"github.com/gin-gonic/gin"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, консьюмеры, монитор).
type App struct {
	Logger          ports.Logger        // логгер
	HTTPServer      *http.Server        // HTTP-сервер
	Registry        *kafka.Registry     // реестр консьюмеров (по одному на топик)
	Dispatcher      *dispatch.Dispatcher // пул воркеров обработки
	Monitor         *health.Monitor     // circuit breaker над Postgres
	gracefulTimeout time.Duration       // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	taskCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	taskRepo := postgres.NewTaskRepository(pool)
	taskValidator := validate.NewTaskValidator()
	taskService := usecase.NewTaskService(taskRepo, taskCache, logg, taskValidator)
	failureRepo := postgres.NewFailureRepository(pool)

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := taskService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Конвейер обработки: коммиттер + репортер → маршрутизатор → диспетчер.
	committer := dispatch.NewCommitter(logg)
	reporter := dispatch.NewReporter(failureRepo, logg)
	router := dispatch.NewRouter(committer, reporter, logg, cfg.Kafka.CommitOnFailure)
	dispatcher := dispatch.NewDispatcher(dispatch.Config{
		Workers:        cfg.Dispatcher.Workers,
		QueueSize:      cfg.Dispatcher.QueueSize,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
	}, taskService, router, logg)

	// Регистрация консьюмеров: по одному на топик, отказ фатален.
	registry, err := kafka.RegisterConsumers(&kafka.RegistrarConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topics:       cfg.Kafka.Topics,
		GroupPrefix:  cfg.Kafka.GroupPrefix,
		StartOffset:  cfg.Kafka.StartOffset,
		RetryInitial: cfg.Kafka.RetryInitial,
		RetryMax:     cfg.Kafka.RetryMax,
	}, dispatcher, logg)
	if err != nil {
		pool.Close()
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Монитор здоровья БД: пауза/резюм всех консьюмеров.
	probe := postgres.NewProbe(pool, cfg.Health.ProbeTimeout)
	monitor := health.NewMonitor(probe, registry, logg, health.Config{
		PollInterval:      cfg.Health.PollInterval,
		FailureThreshold:  cfg.Health.FailureThreshold,
		DowntimeThreshold: cfg.Health.DowntimeThreshold,
		RecoveryThreshold: cfg.Health.RecoveryThreshold,
	})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(taskService, monitor, failureRepo, logg, cfg.HTTP.HandlerTimeout)
	ginRouter := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           ginRouter,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Registry:        registry,
		Dispatcher:      dispatcher,
		Monitor:         monitor,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		for _, c := range registry.Consumers() {
			if cErr := c.Close(); cErr != nil {
				logg.Warnf(ctx, "kafka consumer close error topic=%s: %v", c.Topic(), cErr)
			}
		}
		dispatcher.Close()

		pool.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает конвейер (воркеры, консьюмеры, монитор) и HTTP-сервер;
// ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	consumers := a.Registry.Consumers()
	errCh := make(chan error, len(consumers)+2)

	// Пул воркеров обработки.
	a.Dispatcher.Start(ctx)

	// Запуск консьюмеров (по одному на топик).
	for _, c := range consumers {
		c := c
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting topic=%s", c.Topic())
			if err := c.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Монитор здоровья БД.
	go func() {
		if err := a.Monitor.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка консьюмеров, затем диспетчера (дочитает очередь).
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error topic=%s: %v", c.Topic(), err)
		}
	}
	a.Dispatcher.Close()

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
