//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_taskflow/internal/cache/memory"
	"github.com/Gunvolt24/wb_taskflow/internal/dispatch"
	ikafka "github.com/Gunvolt24/wb_taskflow/internal/kafka"
	pgrepo "github.com/Gunvolt24/wb_taskflow/internal/repo/postgres"
	"github.com/Gunvolt24/wb_taskflow/internal/testutil"
	"github.com/Gunvolt24/wb_taskflow/internal/usecase"
	"github.com/Gunvolt24/wb_taskflow/pkg/logger"
	"github.com/Gunvolt24/wb_taskflow/pkg/validate"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

type pipeline struct {
	pool     *pgxpool.Pool
	repo     *pgrepo.TaskRepository
	failures *pgrepo.FailureRepository
	consumer *ikafka.Consumer
	disp     *dispatch.Dispatcher
}

// собирает полный конвейер потребления над контейнерами: consumer →
// dispatcher → service → router (committer + reporter).
func newPipeline(t *testing.T, ctx context.Context, dsn string, brokers []string, topic, group string) *pipeline {
	t.Helper()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	repo := pgrepo.NewTaskRepository(pool)
	failures := pgrepo.NewFailureRepository(pool)
	svc := usecase.NewTaskService(repo, cachemem.NewLRUCacheTTL(100, time.Minute), logg, validate.NewTaskValidator())

	committer := dispatch.NewCommitter(logg)
	reporter := dispatch.NewReporter(failures, logg)
	router := dispatch.NewRouter(committer, reporter, logg, true)
	disp := dispatch.NewDispatcher(dispatch.Config{
		Workers:        2,
		QueueSize:      8,
		ProcessTimeout: 5 * time.Second,
	}, svc, router, logg)
	disp.Start(ctx)
	t.Cleanup(disp.Close)

	consumer := ikafka.NewConsumer(&ikafka.ConsumerConfig{
		Brokers:      brokers,
		Topic:        topic,
		GroupID:      group,
		StartOffset:  "first",
		RetryInitial: 200 * time.Millisecond,
		RetryMax:     2 * time.Second,
	}, disp, logg)
	t.Cleanup(func() { _ = consumer.Close() })

	return &pipeline{pool: pool, repo: repo, failures: failures, consumer: consumer, disp: disp}
}

func writeMsg(t *testing.T, ctx context.Context, brokers []string, topic string, value []byte) {
	t.Helper()
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
	}
	defer w.Close()
	require.NoError(t, w.WriteMessages(ctx, kafka.Message{Value: value}))
}

// 1) Валидное обновление проходит конвейер и оказывается в БД
func TestKafka_Valid_Saved_TC(t *testing.T) {
	// длинный контекст только на старт контейнеров
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "tasks-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	// короткий контекст на сам тест
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	p := newPipeline(t, ctx, pg.DSN, kf.Brokers, topic, group)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = p.consumer.Run(runCtx) }()

	// даём консьюмеру присоединиться к группе/получить assignment
	time.Sleep(1500 * time.Millisecond)

	task := testutil.MakeTask()
	require.NoError(t, validate.NewTaskValidator().Validate(context.Background(), &task))

	raw, _ := json.Marshal(task)
	writeMsg(t, ctx, kf.Brokers, topic, raw)

	// ждём появления в БД
	deadline := time.Now().Add(20 * time.Second)
	for {
		got, err := p.repo.GetByUID(ctx, task.TaskUID)
		require.NoError(t, err)
		if got != nil {
			require.Equal(t, task.TaskUID, got.TaskUID)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("task %s not saved in time", task.TaskUID)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// 2) Невалидное сообщение даёт запись в стоке ошибок, валидное после него сохраняется
func TestKafka_Invalid_ReportedAndSkipped_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "tasks-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-invalid-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	p := newPipeline(t, ctx, pg.DSN, kf.Brokers, topic, group)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() { _ = p.consumer.Run(runCtx) }()

	time.Sleep(1500 * time.Millisecond)

	// 1) Мусор — не JSON вовсе
	writeMsg(t, ctx, kf.Brokers, topic, []byte("not-a-json"))

	// 2) Задача без title — валидация свалится
	bad := testutil.MakeTask()
	bad.Title = ""
	braw, _ := json.Marshal(bad)
	writeMsg(t, ctx, kf.Brokers, topic, braw)

	// 3) Следом валидная
	good := testutil.MakeTask()
	graw, _ := json.Marshal(good)
	writeMsg(t, ctx, kf.Brokers, topic, graw)

	// валидная сохраняется
	deadline := time.Now().Add(20 * time.Second)
	for {
		got, err := p.repo.GetByUID(ctx, good.TaskUID)
		require.NoError(t, err)
		if got != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("task %s not saved in time", good.TaskUID)
		}
		time.Sleep(200 * time.Millisecond)
	}

	// невалидная не попала в tasks, но попала в сток ошибок
	gotBad, err := p.repo.GetByUID(ctx, bad.TaskUID)
	require.NoError(t, err)
	require.Nil(t, gotBad)

	recs, err := p.failures.RecentFailures(ctx, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(recs), 2) // мусор + невалидная задача

	types := make(map[string]bool, len(recs))
	for _, r := range recs {
		types[r.ErrorType] = true
		require.Equal(t, topic, r.Topic)
	}
	require.True(t, types["invalid_task"], "validation failure must be classified, got %v", types)
}
