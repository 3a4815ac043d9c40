package domain

import "time"

// FailureSource и FailureStatus — фиксированные значения для записей об ошибках.
const (
	FailureSourceIngestion = "INGESTION"
	FailureStatusError     = "ERROR"
)

// FailureRecord — долговременная запись об ошибке обработки одного сообщения.
// Создаётся один раз на сбой и после создания не изменяется.
type FailureRecord struct {
	ID         int64     `json:"id,omitempty"`
	Source     string    `json:"source"`
	ErrorType  string    `json:"error_type"`
	Message    string    `json:"message"`
	StackTrace string    `json:"stack_trace,omitempty"`
	// Payload — исходное сообщение как текст (для разбора инцидента вручную).
	Payload    string    `json:"payload"`
	Topic      string    `json:"topic"`
	Partition  int       `json:"partition"`
	Offset     int64     `json:"offset"`
	OccurredAt time.Time `json:"occurred_at"`
	Status     string    `json:"status"`
}
