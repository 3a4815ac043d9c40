package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/internal/ports/mocks"
	"github.com/golang/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fakeClock — управляемое время для проверок порогов downtime/recovery.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeRegistry struct {
	controls []ports.ConsumerControl
}

func (r *fakeRegistry) Controls() []ports.ConsumerControl { return r.controls }

func testConfig() Config {
	return Config{
		PollInterval:      time.Second,
		FailureThreshold:  3,
		DowntimeThreshold: 10 * time.Second,
		RecoveryThreshold: 5 * time.Second,
	}
}

func newTestMonitor(probe ports.HealthProbe, reg registry, clock *fakeClock) *Monitor {
	m := NewMonitor(probe, reg, nopLogger{}, testConfig())
	m.clock = clock.Now
	m.lastSuccess = clock.Now()
	return m
}

func (m *Monitor) currentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Одна неудачная проба — деградация без паузы.
func TestTick_SingleFailure_DegradesWithoutPause(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	// Pause не ожидается: контрол без зарегистрированных вызовов.
	control := mocks.NewMockConsumerControl(ctrl)
	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	probe.EXPECT().Check(gomock.Any()).Return(errors.New("conn refused"))
	clock.Advance(time.Second)
	m.Tick(context.Background())

	if got := m.currentState(); got != StateDegraded {
		t.Fatalf("state: want DEGRADED, got %s", got)
	}
	if m.paused.Load() {
		t.Fatal("must not pause below threshold")
	}
}

// Порог по счётчику и по времени достигнут — пауза всех консьюмеров.
func TestTick_PausesAfterThresholdAndDowntime(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	c1 := mocks.NewMockConsumerControl(ctrl)
	c2 := mocks.NewMockConsumerControl(ctrl)
	for _, c := range []*mocks.MockConsumerControl{c1, c2} {
		c.EXPECT().IsRunning().Return(true).AnyTimes()
		c.EXPECT().Pause().Times(1)
	}

	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{c1, c2}}, clock)

	probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(3)
	for i := 0; i < 3; i++ {
		clock.Advance(5 * time.Second)
		m.Tick(context.Background())
	}

	if got := m.currentState(); got != StateDown {
		t.Fatalf("state: want DOWN, got %s", got)
	}
	if !m.paused.Load() {
		t.Fatal("expected paused=true")
	}
}

// Порог по счётчику достигнут, но downtime ещё не накопился — паузы нет.
func TestTick_NoPauseBeforeDowntime(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	control := mocks.NewMockConsumerControl(ctrl)
	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(3)
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second) // суммарно 3s < downtime 10s
		m.Tick(context.Background())
	}

	if m.paused.Load() {
		t.Fatal("paused before downtime threshold")
	}
}

// Успешная проба сбрасывает счётчик: сбои без серии не приводят к паузе.
func TestTick_SuccessResetsCounter(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	control := mocks.NewMockConsumerControl(ctrl)
	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	gomock.InOrder(
		probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(2),
		probe.EXPECT().Check(gomock.Any()).Return(nil),
		probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(2),
	)

	for i := 0; i < 5; i++ {
		clock.Advance(5 * time.Second)
		m.Tick(context.Background())
	}

	if m.paused.Load() {
		t.Fatal("interrupted failure series must not pause")
	}
	if got := m.currentState(); got != StateDegraded {
		t.Fatalf("state: want DEGRADED, got %s", got)
	}
}

// После успеха DEGRADED возвращается в HEALTHY.
func TestTick_DegradedRecoversToHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	control := mocks.NewMockConsumerControl(ctrl)
	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	gomock.InOrder(
		probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")),
		probe.EXPECT().Check(gomock.Any()).Return(nil),
	)

	clock.Advance(time.Second)
	m.Tick(context.Background())
	clock.Advance(time.Second)
	m.Tick(context.Background())

	if got := m.currentState(); got != StateHealthy {
		t.Fatalf("state: want HEALTHY, got %s", got)
	}
}

// DOWN держится, пока после последнего сбоя не пройдёт recovery-порог.
func TestTick_ResumeOnlyAfterRecoveryThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	control := mocks.NewMockConsumerControl(ctrl)
	running := true
	control.EXPECT().IsRunning().DoAndReturn(func() bool { return running }).AnyTimes()
	control.EXPECT().Pause().Do(func() { running = false }).Times(1)
	control.EXPECT().Resume().Do(func() { running = true }).Times(1)

	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	// Серия сбоев до паузы.
	probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(3)
	for i := 0; i < 3; i++ {
		clock.Advance(5 * time.Second)
		m.Tick(context.Background())
	}
	if !m.paused.Load() {
		t.Fatal("expected pause after failure series")
	}

	// Первый успех сразу после сбоя: recovery ещё не накопился.
	probe.EXPECT().Check(gomock.Any()).Return(nil)
	clock.Advance(time.Second)
	m.Tick(context.Background())
	if !m.paused.Load() {
		t.Fatal("resumed too early")
	}

	// Успех после recovery-порога — резюм и HEALTHY.
	probe.EXPECT().Check(gomock.Any()).Return(nil)
	clock.Advance(10 * time.Second)
	m.Tick(context.Background())

	if m.paused.Load() {
		t.Fatal("expected resume after recovery threshold")
	}
	if got := m.currentState(); got != StateHealthy {
		t.Fatalf("state: want HEALTHY, got %s", got)
	}
}

// Пустой реестр: пауза не удалась, CAS-флаг сброшен — следующий тик повторит попытку.
func TestPauseAll_EmptyRegistry_GuardReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	m := newTestMonitor(probe, &fakeRegistry{}, clock)

	probe.EXPECT().Check(gomock.Any()).Return(errors.New("down")).Times(3)
	for i := 0; i < 3; i++ {
		clock.Advance(5 * time.Second)
		m.Tick(context.Background())
	}

	if m.paused.Load() {
		t.Fatal("guard must be reset after failed transition")
	}
}

// Повторный pauseAll — no-op (CAS-защита).
func TestPauseAll_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	control := mocks.NewMockConsumerControl(ctrl)
	control.EXPECT().IsRunning().Return(true).Times(1)
	control.EXPECT().Pause().Times(1)

	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{control}}, clock)

	m.pauseAll(context.Background())
	m.pauseAll(context.Background())

	if !m.paused.Load() {
		t.Fatal("expected paused=true")
	}
}

// Snapshot отражает состояние монитора и каждого консьюмера.
func TestSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockHealthProbe(ctrl)
	clock := newFakeClock()

	c1 := mocks.NewMockConsumerControl(ctrl)
	c1.EXPECT().IsRunning().Return(true).AnyTimes()
	c1.EXPECT().Topic().Return("tasks.created").AnyTimes()
	c2 := mocks.NewMockConsumerControl(ctrl)
	c2.EXPECT().IsRunning().Return(false).AnyTimes()
	c2.EXPECT().Topic().Return("tasks.updated").AnyTimes()

	m := newTestMonitor(probe, &fakeRegistry{controls: []ports.ConsumerControl{c1, c2}}, clock)

	probe.EXPECT().Check(gomock.Any()).Return(errors.New("down"))
	clock.Advance(time.Second)
	m.Tick(context.Background())

	snap := m.Snapshot()
	if snap.StateName != "DEGRADED" {
		t.Fatalf("state name: want DEGRADED, got %s", snap.StateName)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("consecutive failures: want 1, got %d", snap.ConsecutiveFailures)
	}
	if len(snap.Consumers) != 2 {
		t.Fatalf("want 2 consumer snapshots, got %d", len(snap.Consumers))
	}
	if snap.Consumers[0].State != ConsumptionRunning || snap.Consumers[1].State != ConsumptionPaused {
		t.Fatalf("unexpected consumer states: %+v", snap.Consumers)
	}
}
