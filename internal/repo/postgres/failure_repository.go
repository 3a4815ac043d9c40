package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что FailureRepository удовлетворяет интерфейсу FailureSink.
var _ ports.FailureSink = (*FailureRepository)(nil)

// FailureRepository — сток ошибок обработки: пишет FailureRecord в Postgres.
// Запись делается одним INSERT вне транзакций конвейера — сбой здесь
// перехватывается репортером и не останавливает потребление.
type FailureRepository struct {
	pool *pgxpool.Pool
}

// NewFailureRepository — конструктор FailureRepository.
func NewFailureRepository(pool *pgxpool.Pool) *FailureRepository {
	return &FailureRepository{pool: pool}
}

// Persist — сохраняет запись об ошибке. Запись неизменяема после создания.
func (r *FailureRepository) Persist(ctx context.Context, rec *domain.FailureRecord) error {
	if rec == nil {
		return errors.New("failure record is nil")
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO ingestion_failures (
			source, error_type, message, stack_trace, payload,
			topic, partition, "offset", occurred_at, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, rec.Source, rec.ErrorType, rec.Message, rec.StackTrace, rec.Payload,
		rec.Topic, rec.Partition, rec.Offset, rec.OccurredAt, rec.Status,
	); err != nil {
		return fmt.Errorf("insert failure record: %w", err)
	}
	return nil
}

// RecentFailures — последние n записей (для операционного HTTP-эндпоинта).
func (r *FailureRepository) RecentFailures(ctx context.Context, n int) ([]*domain.FailureRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, source, error_type, message, stack_trace, payload,
		       topic, partition, "offset", occurred_at, status
		FROM ingestion_failures
		ORDER BY occurred_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent failures: %w", err)
	}
	defer rows.Close()

	var out []*domain.FailureRecord
	for rows.Next() {
		var rec domain.FailureRecord
		if err := rows.Scan(
			&rec.ID, &rec.Source, &rec.ErrorType, &rec.Message, &rec.StackTrace, &rec.Payload,
			&rec.Topic, &rec.Partition, &rec.Offset, &rec.OccurredAt, &rec.Status,
		); err != nil {
			return nil, fmt.Errorf("scan failure record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
