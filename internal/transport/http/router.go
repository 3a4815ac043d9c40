package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/health"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// HealthReader — срез состояния монитора здоровья для операционки.
type HealthReader interface {
	Snapshot() health.Snapshot
}

// FailureLister — чтение последних записей об ошибках обработки.
type FailureLister interface {
	RecentFailures(ctx context.Context, n int) ([]*domain.FailureRecord, error)
}

type Handler struct {
	service        ports.TaskReadService
	healthReader   HealthReader
	failures       FailureLister
	log            ports.Logger
	handlerTimeout time.Duration
}

// NewHandler — конструктор. timeout <= 0 — без принудительного таймаута.
func NewHandler(service ports.TaskReadService, healthReader HealthReader, failures FailureLister, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{
		service:        service,
		healthReader:   healthReader,
		failures:       failures,
		log:            log,
		handlerTimeout: timeout,
	}
}

// NewRouter — роутер операционного HTTP API. Статических файлов нет:
// сервис обслуживают только машинные клиенты и операторы.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/task/:id", h.getTaskByID)
	r.GET("/assignee/:id/tasks", h.listTasksByAssignee)

	r.GET("/ingestion/health", h.getIngestionHealth)
	r.GET("/ingestion/failures", h.listRecentFailures)

	return r
}

// requestContext — контекст запроса с таймаутом хендлера (если задан).
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request.Context()
	if h.handlerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.handlerTimeout)
}
