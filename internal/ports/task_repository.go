package ports

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

type TaskRepository interface {
	Save(ctx context.Context, task *domain.TaskUpdate) error
	GetByUID(ctx context.Context, taskUID string) (*domain.TaskUpdate, error)
	ListByAssignee(ctx context.Context, assigneeID string, limit, offset int) ([]*domain.TaskUpdate, error)
	LastN(ctx context.Context, n int) ([]*domain.TaskUpdate, error)
}
