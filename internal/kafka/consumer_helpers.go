package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// commitFunc — capability коммита для Envelope: замыкает reader и
// конкретное сообщение. Вызывается маршрутизатором результатов после
// завершения обработки.
func (c *Consumer) commitFunc(msg kafka.Message) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return c.reader.CommitMessages(ctx, msg)
	}
}

// waitWhilePaused — блокирует цикл доставки, пока консьюмер на паузе.
func (c *Consumer) waitWhilePaused(ctx context.Context) error {
	c.mu.Lock()
	paused := c.paused
	ch := c.resumeCh
	c.mu.Unlock()

	if !paused {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная. Баланс между стабильностью и случайностью.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
