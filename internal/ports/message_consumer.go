package ports

import "context"

// MessageConsumer — запускаемый консьюмер одного топика.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}

// ConsumerControl — управление потреблением одного консьюмера.
// Pause останавливает только доставку новых сообщений; уже отправленная
// в обработку работа не отменяется. Реализация обязана быть идемпотентной.
type ConsumerControl interface {
	Topic() string
	Pause()
	Resume()
	IsRunning() bool
}
