package kafka

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет портам приложения.
var (
	_ ports.MessageConsumer = (*Consumer)(nil)
	_ ports.ConsumerControl = (*Consumer)(nil)
)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// dispatcher — асинхронный приёмник записей. Dispatch блокируется при
// насыщении пула воркеров (backpressure) и возвращает ошибку только
// при отмене контекста.
type dispatcher interface {
	Dispatch(ctx context.Context, env *Envelope) error
}

// Consumer — обёртка над kafka.Reader для одного топика: цикл доставки
// один-поточный, обработка уходит в dispatcher. Pause/Resume управляют
// только доставкой новых записей; уже отправленная работа не отменяется.
type Consumer struct {
	reader       reader
	dispatcher   dispatcher
	log          ports.Logger
	topic        string
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
	closeOnce    sync.Once

	// Ворота паузы: канал resumeCh закрыт, пока консьюмер работает.
	mu       sync.Mutex
	paused   bool
	resumeCh chan struct{}
}

// NewConsumer — конструктор. readerConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, d dispatcher, log ports.Logger) *Consumer {
	reader := kafka.NewReader(cfg.readerConfig())

	// Параметры по умолчанию (если не заданы в конфиге)
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:       reader,
		dispatcher:   d,
		log:          log,
		topic:        cfg.Topic,
		retryInitial: rInit,
		retryMax:     rMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) ждём, если консьюмер поставлен на паузу монитором здоровья;
// 2) читаем сообщение без авто-коммита;
// 3) заворачиваем в Envelope c capability коммита и кладём диагностический
//    контекст (correlation_id, topic/partition/offset) в ctx;
// 4) отдаём диспетчеру; при насыщении пула Dispatch блокирует этот цикл —
//    это единственная точка backpressure на стороне доставки.
// Коммит оффсета происходит после обработки, на стороне маршрутизатора
// результатов (см. internal/dispatch).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		// Пауза: монитор здоровья остановил доставку до восстановления БД.
		if err := c.waitWhilePaused(ctx); err != nil {
			return err
		}

		// Читаем сообщение (без автокоммита)
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			// Если контекст отменен -> выходим
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Иначе - временная ошибка брокера/сети. Ожидаем и повторяем
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
			retry = c.nextBackoff(retry)
			continue
		}

		// Успешный FetchMessage -> сбрасываем интервал ожидания и инкрементим метрики
		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		env := newEnvelope(&msg, c.commitFunc(msg))
		msgCtx := ctxmeta.WithMeta(ctx, ctxmeta.Meta{
			CorrelationID: uuid.New().String(),
			Component:     "kafka-consumer",
			Operation:     "consume",
			Tags: map[string]string{
				"topic":     msg.Topic,
				"partition": strconv.Itoa(msg.Partition),
				"offset":    strconv.FormatInt(msg.Offset, 10),
			},
		})

		if err := c.dispatcher.Dispatch(msgCtx, env); err != nil {
			// Dispatch возвращает ошибку только по отмене контекста.
			return err
		}
	}
}

// Topic — имя топика этого консьюмера.
func (c *Consumer) Topic() string { return c.topic }

// Pause — остановить доставку новых записей. Идемпотентно.
func (c *Consumer) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.resumeCh = make(chan struct{})
}

// Resume — возобновить доставку. Идемпотентно.
func (c *Consumer) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	close(c.resumeCh)
}

// IsRunning — false, пока консьюмер на паузе.
func (c *Consumer) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.paused
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
