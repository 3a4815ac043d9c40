package dispatch

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/kafka"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
)

// offsetCommitter и failureReporter — локальные контракты шага
// маршрутизации (подменяются моками в тестах).
type offsetCommitter interface {
	Commit(ctx context.Context, env *kafka.Envelope)
}

type failureReporter interface {
	Report(ctx context.Context, out Outcome)
}

// Router — шаг маршрутизации результата. Инвариант: на каждый конверт —
// ровно одно решение: либо коммит, либо явный отказ от коммита;
// репортер вызывается тогда и только тогда, когда исход — сбой.
//
// commitOnFailure — политика для сбойных записей (см. конфиг
// KAFKA_COMMIT_ON_FAILURE): true — «залогировать и идти дальше»,
// сообщение не будет доставлено повторно; false — оффсет не двигаем,
// запись придёт снова после рестарта/ребалансировки.
type Router struct {
	committer       offsetCommitter
	reporter        failureReporter
	log             ports.Logger
	commitOnFailure bool
}

// NewRouter — конструктор Router.
func NewRouter(committer offsetCommitter, reporter failureReporter, log ports.Logger, commitOnFailure bool) *Router {
	return &Router{
		committer:       committer,
		reporter:        reporter,
		log:             log,
		commitOnFailure: commitOnFailure,
	}
}

// Route — финализирует исход обработки одного конверта.
func (r *Router) Route(ctx context.Context, out Outcome) {
	if out.Failed() {
		r.reporter.Report(ctx, out)

		if !r.commitOnFailure {
			// Явное решение «без коммита» — единственная ветка, где
			// оффсет не продвигается.
			r.log.Warnf(ctx, "offset not committed (commit_on_failure=false) topic=%s partition=%d offset=%d",
				out.Envelope.Topic, out.Envelope.Partition, out.Envelope.Offset)
			return
		}
	}

	r.committer.Commit(ctx, out.Envelope)
}
