package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что TaskRepository удовлетворяет интерфейсу TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository — реализация репозитория задач на Postgres (pgxpool).
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository - конструктор TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository { return &TaskRepository{pool: pool} }

// Save — транзакционно сохраняет обновление задачи (идемпотентный upsert).
// Upsert применяется только если пришедшее updated_at не старее сохранённого —
// повторная доставка старого сообщения не затирает свежие данные.
func (r *TaskRepository) Save(ctx context.Context, task *domain.TaskUpdate) error {
	if task == nil || task.TaskUID == "" {
		return errors.New("task is empty or task_uid is required")
	}
	if task.AssigneeID == "" {
		return errors.New("assignee_id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	// 1) assignees — upsert (чтобы не падать на FK).
	if _, err = transaction.Exec(ctx, `
		INSERT INTO assignees (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, task.AssigneeID); err != nil {
		return fmt.Errorf("insert assignee: %w", err)
	}

	// 2) tasks — upsert по task_uid с защитой от устаревших обновлений.
	if _, err = transaction.Exec(ctx, `
		INSERT INTO tasks (
			task_uid, title, description, status, priority,
			assignee_id, project_id, tags, due_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (task_uid) DO UPDATE SET
			title       = EXCLUDED.title,
			description = EXCLUDED.description,
			status      = EXCLUDED.status,
			priority    = EXCLUDED.priority,
			assignee_id = EXCLUDED.assignee_id,
			project_id  = EXCLUDED.project_id,
			tags        = EXCLUDED.tags,
			due_date    = EXCLUDED.due_date,
			updated_at  = EXCLUDED.updated_at
		WHERE tasks.updated_at <= EXCLUDED.updated_at
	`, task.TaskUID, task.Title, task.Description, task.Status, task.Priority,
		task.AssigneeID, task.ProjectID, task.Tags, nullableTime(task.DueDate), task.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}

	return transaction.Commit(ctx)
}

// GetByUID — вернуть задачу по UID; (nil, nil) если записи нет.
func (r *TaskRepository) GetByUID(ctx context.Context, taskUID string) (*domain.TaskUpdate, error) {
	row := r.pool.QueryRow(ctx, selectTask+` WHERE task_uid = $1`, taskUID)

	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// ListByAssignee — задачи исполнителя, свежие первыми.
func (r *TaskRepository) ListByAssignee(ctx context.Context, assigneeID string, limit, offset int) ([]*domain.TaskUpdate, error) {
	rows, err := r.pool.Query(ctx,
		selectTask+` WHERE assignee_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		assigneeID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// LastN — последние n задач по updated_at (для прогрева кэша).
func (r *TaskRepository) LastN(ctx context.Context, n int) ([]*domain.TaskUpdate, error) {
	rows, err := r.pool.Query(ctx, selectTask+` ORDER BY updated_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("last n tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}
