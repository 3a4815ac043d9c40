package ports

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

type TaskValidator interface {
	Validate(ctx context.Context, task *domain.TaskUpdate) error
}
