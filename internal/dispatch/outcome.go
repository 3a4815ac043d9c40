package dispatch

import "github.com/Gunvolt24/wb_taskflow/internal/kafka"

// Outcome — результат обработки одной записи: либо успех (Err == nil),
// либо сбой с исходным конвертом и стеком воркера. Потребляется
// маршрутизатором результатов ровно один раз.
type Outcome struct {
	Envelope *kafka.Envelope
	Err      error
	// Stack — стек горутины воркера в момент превращения ошибки в Outcome
	// (для FailureRecord).
	Stack []byte
}

// Failed — true для исхода-сбоя.
func (o Outcome) Failed() bool { return o.Err != nil }
