package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/kafka"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
)

// processor — зависимость на бизнес-логику (маппер + процессор),
// которая парсит/валидирует/сохраняет сообщение.
type processor interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// outcomeRouter — шаг маршрутизации результата; вызывается ровно один
// раз на каждый принятый конверт.
type outcomeRouter interface {
	Route(ctx context.Context, out Outcome)
}

// Config — размеры пула. Workers и QueueSize не зависят от числа партиций.
type Config struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

type job struct {
	env  *kafka.Envelope
	meta ctxmeta.Meta
}

// Dispatcher — отвязывает приём записи (быстрый, чтобы не блокировать
// цикл доставки) от медленной бизнес-обработки. Пул воркеров ограничен:
// при насыщении Dispatch блокирует вызывающего (bounded queue + blocking
// submit) — работа не теряется и очередь не растёт бесконечно. Паузами
// при деградации БД занимается монитор здоровья, не диспетчер.
type Dispatcher struct {
	proc           processor
	router         outcomeRouter
	log            ports.Logger
	processTimeout time.Duration
	workers        int

	queue     chan job
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
}

// NewDispatcher — конструктор. Нулевые значения конфига заменяются дефолтами.
func NewDispatcher(cfg Config, proc processor, router outcomeRouter, log ports.Logger) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = workers * 2
	}
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}

	return &Dispatcher{
		proc:           proc,
		router:         router,
		log:            log,
		processTimeout: pt,
		workers:        workers,
		queue:          make(chan job, queueSize),
	}
}

// Start — запускает воркеров. ctx — родительский контекст обработки;
// воркеры завершаются после Close (дочитав очередь).
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.worker(ctx)
		}
	})
}

// Dispatch — принять конверт в обработку. Снимает диагностический
// контекст (Capture) до пересечения асинхронной границы и блокируется,
// если очередь заполнена. Ошибка возможна только по отмене контекста —
// в этом случае конверт не принят и останется незакоммиченным.
func (d *Dispatcher) Dispatch(ctx context.Context, env *kafka.Envelope) error {
	j := job{env: env, meta: ctxmeta.Capture(ctx)}

	select {
	case d.queue <- j:
		metrics.DispatcherQueueDepth.Set(float64(len(d.queue)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close — закрывает очередь и дожидается, пока воркеры дочитают её.
// Вызывается после остановки консьюмеров.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for j := range d.queue {
		metrics.DispatcherQueueDepth.Set(float64(len(d.queue)))
		d.process(ctx, j)
	}
}

// process — обработка одного конверта внутри воркера:
// восстановить диагностический контекст, вызвать процессор с таймаутом,
// любой сбой (включая панику) превратить в Outcome и ровно один раз
// передать результат маршрутизатору. Наружу из воркера ничего не летит.
func (d *Dispatcher) process(parent context.Context, j job) {
	metrics.DispatcherInFlight.Inc()
	defer metrics.DispatcherInFlight.Dec()

	ctx := j.meta.Inject(parent)
	out := Outcome{Envelope: j.env}

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				out.Err = fmt.Errorf("panic: %v", rec)
				out.Stack = debug.Stack()
			}
		}()

		ctxTimeout, cancel := context.WithTimeout(ctx, d.processTimeout)
		defer cancel()

		if err := d.proc.SaveFromMessage(ctxTimeout, j.env.Value); err != nil {
			out.Err = err
			out.Stack = debug.Stack()
		}
	}()

	if out.Failed() {
		metrics.KafkaMessagesFailed.WithLabelValues(j.env.Topic).Inc()
	} else {
		metrics.KafkaMessagesProcessed.WithLabelValues(j.env.Topic).Inc()
	}

	// Завершение может произойти не в той горутине, где работал процессор —
	// восстанавливаем контекст второй раз перед маршрутизацией результата.
	routeCtx := j.meta.Inject(parent)
	d.router.Route(routeCtx, out)
}
