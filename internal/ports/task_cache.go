package ports

import (
	"context"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

// TaskCache — интерфейс кэша задач.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type TaskCache interface {
	// Get — вернуть задачу по UID; (task, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, taskUID string) (*domain.TaskUpdate, bool)

	// Set — сохранить/обновить задачу в кэше.
	Set(ctx context.Context, task *domain.TaskUpdate) error

	// WarmUp — массовая загрузка кэша (например, при старте).
	// Реализация должна поддерживать отмену контекста.
	WarmUp(ctx context.Context, tasks []*domain.TaskUpdate) error
}
