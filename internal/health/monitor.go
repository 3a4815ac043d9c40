package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
)

// registry — источник управляющих ручек консьюмеров. Заполняется на
// старте и дальше только читается (см. kafka.Registry).
type registry interface {
	Controls() []ports.ConsumerControl
}

// Config — настройки монитора. Все пороги задаются конфигурацией и
// регулируются независимо.
type Config struct {
	PollInterval      time.Duration // период опроса пробы
	FailureThreshold  int           // F: подряд неудачных проб до паузы
	DowntimeThreshold time.Duration // минимальное время без успеха до паузы
	RecoveryThreshold time.Duration // минимальное время без сбоев до резюма
}

func (c *Config) setDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 3
	}
	if c.DowntimeThreshold <= 0 {
		c.DowntimeThreshold = 10 * time.Second
	}
	if c.RecoveryThreshold <= 0 {
		c.RecoveryThreshold = 5 * time.Second
	}
}

// Monitor — трёхпозиционный circuit breaker над пробой живости БД.
// Один процесс — одно значение состояния; меняется только в Tick,
// который вызывается одно-поточным циклом Run (или тестами напрямую).
// Пауза/резюм всех консьюмеров защищены CAS-флагом paused: повторный
// вход в действие — no-op, а неудачный переход сбрасывает флаг, чтобы
// следующий тик повторил попытку.
type Monitor struct {
	probe ports.HealthProbe
	reg   registry
	log   ports.Logger
	cfg   Config

	// clock — подменяется в тестах.
	clock func() time.Time

	paused atomic.Bool

	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	lastSuccess         time.Time
	lastFailure         time.Time
}

// NewMonitor — конструктор. Старт считается моментом последнего успеха:
// порог downtime отсчитывается от запуска, а не от нулевого времени.
func NewMonitor(probe ports.HealthProbe, reg registry, log ports.Logger, cfg Config) *Monitor {
	cfg.setDefaults()
	m := &Monitor{
		probe: probe,
		reg:   reg,
		log:   log,
		cfg:   cfg,
		clock: time.Now,
	}
	m.lastSuccess = m.clock()
	return m
}

// Run — цикл опроса на явном тикере. Ошибки собственных действий
// монитора не покидают цикл: всё логируется, переходы ретраятся.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Infof(ctx, "health monitor started interval=%s threshold=%d downtime=%s recovery=%s",
		m.cfg.PollInterval, m.cfg.FailureThreshold, m.cfg.DowntimeThreshold, m.cfg.RecoveryThreshold)

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick — один шаг машины состояний: опросить пробу, обновить счётчики,
// при выполнении условий — запустить паузу или резюм.
func (m *Monitor) Tick(ctx context.Context) {
	probeErr := m.probe.Check(ctx)
	now := m.clock()

	if probeErr != nil {
		metrics.HealthProbeFailures.Inc()

		m.mu.Lock()
		m.consecutiveFailures++
		m.lastFailure = now
		if m.state == StateHealthy {
			m.setStateLocked(StateDegraded)
		}
		pauseNeeded := !m.paused.Load() &&
			m.consecutiveFailures >= m.cfg.FailureThreshold &&
			now.Sub(m.lastSuccess) >= m.cfg.DowntimeThreshold
		failures := m.consecutiveFailures
		m.mu.Unlock()

		m.log.Warnf(ctx, "health probe failed (consecutive=%d): %v", failures, probeErr)

		if pauseNeeded {
			m.pauseAll(ctx)
		}
		return
	}

	m.mu.Lock()
	m.consecutiveFailures = 0
	m.lastSuccess = now
	resumeNeeded := m.paused.Load() && now.Sub(m.lastFailure) >= m.cfg.RecoveryThreshold
	if !m.paused.Load() && m.state == StateDegraded {
		m.setStateLocked(StateHealthy)
	}
	m.mu.Unlock()

	if resumeNeeded {
		m.resumeAll(ctx)
	}
}

// Snapshot — read-only срез для операционного HTTP-эндпоинта.
func (m *Monitor) Snapshot() Snapshot {
	now := m.clock()

	m.mu.Lock()
	snap := Snapshot{
		State:                m.state,
		StateName:            m.state.String(),
		ConsecutiveFailures:  m.consecutiveFailures,
		LastSuccess:          m.lastSuccess,
		LastFailure:          m.lastFailure,
		TimeSinceLastSuccess: now.Sub(m.lastSuccess),
		Paused:               m.paused.Load(),
	}
	m.mu.Unlock()

	for _, c := range m.reg.Controls() {
		state := ConsumptionRunning
		if !c.IsRunning() {
			state = ConsumptionPaused
		}
		snap.Consumers = append(snap.Consumers, ConsumerSnapshot{Topic: c.Topic(), State: state})
	}
	return snap
}

// pauseAll — остановить доставку у всех работающих консьюмеров.
// Идемпотентно за счёт CAS; неудача сбрасывает флаг для ретрая.
func (m *Monitor) pauseAll(ctx context.Context) {
	if !m.paused.CompareAndSwap(false, true) {
		return
	}

	count, err := m.transition(func(c ports.ConsumerControl) bool {
		if c.IsRunning() {
			c.Pause()
			return true
		}
		return false
	})
	if err != nil {
		m.paused.Store(false)
		m.log.Errorf(ctx, "pause consumers failed (will retry next poll): %v", err)
		return
	}

	m.setState(StateDown)
	metrics.ConsumersPaused.Set(float64(count))
	m.log.Warnf(ctx, "dependency unhealthy: paused %d consumers", count)
}

// resumeAll — возобновить доставку у всех приостановленных консьюмеров.
func (m *Monitor) resumeAll(ctx context.Context) {
	if !m.paused.CompareAndSwap(true, false) {
		return
	}

	count, err := m.transition(func(c ports.ConsumerControl) bool {
		if !c.IsRunning() {
			c.Resume()
			return true
		}
		return false
	})
	if err != nil {
		m.paused.Store(true)
		m.log.Errorf(ctx, "resume consumers failed (will retry next poll): %v", err)
		return
	}

	m.setState(StateHealthy)
	metrics.ConsumersPaused.Set(0)
	m.log.Infof(ctx, "dependency recovered: resumed %d consumers", count)
}

// transition — применить действие ко всем консьюмерам; паника одного
// консьюмера не валит цикл монитора.
func (m *Monitor) transition(apply func(ports.ConsumerControl) bool) (count int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("consumer transition panic: %v", rec)
		}
	}()

	controls := m.reg.Controls()
	if len(controls) == 0 {
		return 0, errors.New("consumer registry is empty")
	}
	for _, c := range controls {
		if apply(c) {
			count++
		}
	}
	return count, nil
}

func (m *Monitor) setState(s State) {
	m.mu.Lock()
	m.setStateLocked(s)
	m.mu.Unlock()
}

func (m *Monitor) setStateLocked(s State) {
	m.state = s
	metrics.HealthState.Set(float64(s))
}
