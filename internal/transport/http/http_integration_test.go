//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cachemem "github.com/Gunvolt24/wb_taskflow/internal/cache/memory"
	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/stretchr/testify/require"

	pgrepo "github.com/Gunvolt24/wb_taskflow/internal/repo/postgres"
	"github.com/Gunvolt24/wb_taskflow/internal/testutil"
	rest "github.com/Gunvolt24/wb_taskflow/internal/transport/http"
	"github.com/Gunvolt24/wb_taskflow/internal/usecase"
	"github.com/Gunvolt24/wb_taskflow/pkg/logger"
	"github.com/Gunvolt24/wb_taskflow/pkg/validate"
)

// 1) GET /task/:id — 200 для сохранённой задачи
func TestHTTP_GetTask_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	repo := pgrepo.NewTaskRepository(pg.Pool)
	svc := usecase.NewTaskService(repo, cachemem.NewLRUCacheTTL(100, time.Minute), logg, validate.NewTaskValidator())

	// seed: уникальная задача
	task := testutil.MakeTask()
	require.NoError(t, repo.Save(ctx, &task))

	// http
	h := rest.NewHandler(svc, nil, pgrepo.NewFailureRepository(pg.Pool), logg, 2*time.Second)
	r := rest.NewRouter(h, "")
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/task/" + task.TaskUID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.TaskUpdate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, task.TaskUID, got.TaskUID)
}

// 2) GET /task/:id — 404 когда задачи нет
func TestHTTP_GetTask_NotFound_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	repo := pgrepo.NewTaskRepository(pg.Pool)
	svc := usecase.NewTaskService(repo, cachemem.NewLRUCacheTTL(100, time.Minute), logg, validate.NewTaskValidator())

	h := rest.NewHandler(svc, nil, nil, logg, 2*time.Second)
	r := rest.NewRouter(h, "")
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/task/no-such-task")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// 3) GET /ingestion/failures — отдаёт записи из стока ошибок
func TestHTTP_IngestionFailures_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	repo := pgrepo.NewTaskRepository(pg.Pool)
	failures := pgrepo.NewFailureRepository(pg.Pool)
	svc := usecase.NewTaskService(repo, cachemem.NewLRUCacheTTL(100, time.Minute), logg, validate.NewTaskValidator())

	require.NoError(t, failures.Persist(ctx, &domain.FailureRecord{
		Source:     domain.FailureSourceIngestion,
		ErrorType:  "invalid_task",
		Message:    "title обязателен",
		Payload:    `{"task_uid":"x"}`,
		Topic:      "tasks.created",
		Partition:  0,
		Offset:     7,
		OccurredAt: time.Now().UTC(),
		Status:     domain.FailureStatusError,
	}))

	h := rest.NewHandler(svc, nil, failures, logg, 2*time.Second)
	r := rest.NewRouter(h, "")
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ingestion/failures")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []*domain.FailureRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotEmpty(t, got)
	require.Equal(t, "invalid_task", got[0].ErrorType)
}
