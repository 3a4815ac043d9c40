package dispatch

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/kafka"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
)

// Committer — фиксирует потреблённый оффсет через capability конверта.
// Коммиты идут в порядке завершения обработки, без сериализации по
// партиции: kafka-go фиксирует максимальный оффсет партиции, поэтому
// обгон ранней записи поздней означает at-least-once при рестарте —
// осознанный выбор в пользу простоты (обработка идемпотентна).
type Committer struct {
	log ports.Logger
}

// NewCommitter — конструктор Committer.
func NewCommitter(log ports.Logger) *Committer {
	return &Committer{log: log}
}

// Commit — ровно один вызов на конверт. Ошибка коммита (транспорт)
// логируется и глотается: коммит следующей записи той же партиции
// продвинет оффсет; ретраить в цикле нельзя — заблокируем доставку.
func (c *Committer) Commit(ctx context.Context, env *kafka.Envelope) {
	if err := env.Commit(ctx); err != nil {
		c.log.Warnf(ctx, "commit failed topic=%s partition=%d offset=%d: %v",
			env.Topic, env.Partition, env.Offset, err)
		return
	}
	metrics.KafkaOffsetsCommitted.WithLabelValues(env.Topic).Inc()
}
