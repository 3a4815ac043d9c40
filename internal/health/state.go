package health

import "time"

// State — состояние защищаемой зависимости. Владелец значения — монитор;
// переходы происходят только внутри его одно-поточного цикла опроса.
//
// Таблица переходов:
//
//	HEALTHY  --(ошибка пробы)-------------------------------> DEGRADED
//	DEGRADED --(failures >= F и now-lastSuccess >= downtime)-> DOWN (пауза консьюмеров)
//	DEGRADED --(успешная проба)------------------------------> HEALTHY
//	DOWN     --(успешная проба и now-lastFailure >= recovery)-> HEALTHY (резюм консьюмеров)
type State int32

const (
	StateHealthy State = iota
	StateDegraded
	StateDown
)

func (s State) String() string {
	switch s {
	case StateHealthy:
		return "HEALTHY"
	case StateDegraded:
		return "DEGRADED"
	case StateDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// ConsumptionState — состояние потребления одного консьюмера.
const (
	ConsumptionRunning = "RUNNING"
	ConsumptionPaused  = "PAUSED"
)

// ConsumerSnapshot — состояние одного консьюмера для операционных запросов.
type ConsumerSnapshot struct {
	Topic string `json:"topic"`
	State string `json:"state"`
}

// Snapshot — read-only срез состояния монитора для HTTP-слоя и тулинга.
type Snapshot struct {
	State                State              `json:"-"`
	StateName            string             `json:"state"`
	ConsecutiveFailures  int                `json:"consecutive_failures"`
	LastSuccess          time.Time          `json:"last_success"`
	LastFailure          time.Time          `json:"last_failure,omitempty"`
	TimeSinceLastSuccess time.Duration      `json:"time_since_last_success_ms"`
	Paused               bool               `json:"paused"`
	Consumers            []ConsumerSnapshot `json:"consumers"`
}
