package postgres

import (
	"context"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что Probe удовлетворяет интерфейсу HealthProbe.
var _ ports.HealthProbe = (*Probe)(nil)

// Probe — дешёвая проверка живости Postgres: тривиальный запрос с
// коротким таймаутом, чтобы монитор не зависал на мёртвом соединении.
type Probe struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewProbe — конструктор Probe. timeout <= 0 — значение по умолчанию (1s).
func NewProbe(pool *pgxpool.Pool, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Probe{pool: pool, timeout: timeout}
}

// Check — выполняет SELECT 1; любая ошибка означает отказ зависимости.
func (p *Probe) Check(ctx context.Context) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var one int
	return p.pool.QueryRow(ctxTimeout, `SELECT 1`).Scan(&one)
}
