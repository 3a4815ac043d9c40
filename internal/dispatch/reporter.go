package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
	"github.com/Gunvolt24/wb_taskflow/pkg/validate"
)

// Reporter — превращает исход-сбой в долговременную FailureRecord и
// отдаёт её в сток ошибок. Для конвейера это fire-and-forget: сбой
// самого стока логируется и не возвращается в путь потребления
// (сломанный сток не должен останавливать чтение из Kafka).
type Reporter struct {
	sink ports.FailureSink
	log  ports.Logger
	now  func() time.Time
}

// NewReporter — конструктор Reporter.
func NewReporter(sink ports.FailureSink, log ports.Logger) *Reporter {
	return &Reporter{sink: sink, log: log, now: time.Now}
}

// Report — собрать и сохранить запись об ошибке. Ровно один вызов на
// каждый исход-сбой.
func (r *Reporter) Report(ctx context.Context, out Outcome) {
	if !out.Failed() {
		return
	}

	env := out.Envelope
	rec := &domain.FailureRecord{
		Source:     domain.FailureSourceIngestion,
		ErrorType:  errorType(out.Err),
		Message:    out.Err.Error(),
		StackTrace: string(out.Stack),
		Payload:    string(env.Value),
		Topic:      env.Topic,
		Partition:  env.Partition,
		Offset:     env.Offset,
		OccurredAt: r.now().UTC(),
		Status:     domain.FailureStatusError,
	}

	if err := r.sink.Persist(ctx, rec); err != nil {
		r.log.Errorf(ctx, "failure sink error (record dropped) topic=%s offset=%d: %v",
			env.Topic, env.Offset, err)
		return
	}
	metrics.FailureRecordsPersisted.Inc()
}

// errorType — классификация ошибки для записи: ошибки валидации имеют
// стабильное имя, остальные — конкретный тип ошибки.
func errorType(err error) string {
	switch {
	case errors.Is(err, validate.ErrInvalidTask):
		return "invalid_task"
	case errors.Is(err, context.DeadlineExceeded):
		return "process_timeout"
	default:
		return fmt.Sprintf("%T", err)
	}
}
