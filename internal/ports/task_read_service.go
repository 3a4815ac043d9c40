package ports

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

// TaskReadService — сервис чтения задач для HTTP-слоя.
type TaskReadService interface {
	GetTask(ctx context.Context, taskUID string) (*domain.TaskUpdate, error)
	TasksByAssignee(ctx context.Context, assigneeID string, limit, offset int) ([]*domain.TaskUpdate, error)
}
