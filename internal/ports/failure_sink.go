package ports

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

// FailureSink — долговременное хранилище записей об ошибках обработки.
// Ошибка самого стока перехватывается вызывающей стороной и не должна
// останавливать потребление.
type FailureSink interface {
	Persist(ctx context.Context, rec *domain.FailureRecord) error
}
