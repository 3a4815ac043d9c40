package postgres

import (
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/jackc/pgx/v5"
)

const selectTask = `
	SELECT task_uid, title, description, status, priority,
	       assignee_id, project_id, tags, due_date, updated_at
	FROM tasks`

// scanTask — читает одну строку в domain.TaskUpdate.
func scanTask(row pgx.Row) (*domain.TaskUpdate, error) {
	var (
		task    domain.TaskUpdate
		dueDate *time.Time
	)
	if err := row.Scan(
		&task.TaskUID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssigneeID, &task.ProjectID, &task.Tags, &dueDate, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if dueDate != nil {
		task.DueDate = *dueDate
	}
	return &task, nil
}

func scanTasks(rows pgx.Rows) ([]*domain.TaskUpdate, error) {
	var out []*domain.TaskUpdate
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// nullableTime — нулевое время хранится как NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
