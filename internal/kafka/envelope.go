package kafka

import (
	"context"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Envelope — неизменяемый носитель одной записи из топика плюс
// capability коммита. Создаётся консьюмером при доставке и живёт до
// финализации результата обработки. Сам коммит — единственная операция:
// вызов продвигает зафиксированный оффсет группы для этой партиции.
type Envelope struct {
	Topic     string
	Partition int
	Offset    int64
	Key       string
	Value     []byte

	commit     func(ctx context.Context) error
	commitOnce sync.Once
}

// newEnvelope — собирает конверт из kafka.Message; commit замыкает
// CommitMessages конкретного reader'а на этом сообщении.
func newEnvelope(msg *kafka.Message, commit func(ctx context.Context) error) *Envelope {
	return &Envelope{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       string(msg.Key),
		Value:     msg.Value,
		commit:    commit,
	}
}

// NewEnvelope — конструктор для вызывающих вне пакета (в т.ч. тестов
// диспетчера): произвольная commit-функция вместо реального reader'а.
func NewEnvelope(topic string, partition int, offset int64, key string, value []byte, commit func(ctx context.Context) error) *Envelope {
	return &Envelope{
		Topic:     topic,
		Partition: partition,
		Offset:    offset,
		Key:       key,
		Value:     value,
		commit:    commit,
	}
}

// Commit — продвигает оффсет группы за эту запись. Повторные вызовы —
// no-op: на один конверт приходится ровно одно решение о коммите.
func (e *Envelope) Commit(ctx context.Context) error {
	var err error
	e.commitOnce.Do(func() {
		if e.commit != nil {
			err = e.commit(ctx)
		}
	})
	return err
}
