package validate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
)

// Проверка, что TaskValidator удовлетворяет интерфейсу TaskValidator.
var _ ports.TaskValidator = (*TaskValidator)(nil)

// ErrInvalidTask — базовая (sentinel error) ошибка валидации.
var ErrInvalidTask = errors.New("task validation failed")

// TaskValidator — структура для валидации обновления задачи.
type TaskValidator struct{}

// NewTaskValidator — конструктор TaskValidator.
// Validate возвращает ErrInvalidTask (с обёрнутой причиной) при любой проблеме.
func NewTaskValidator() *TaskValidator { return &TaskValidator{} }

// Validate — проверяет корректность полей обновления задачи.
func (v *TaskValidator) Validate(_ context.Context, task *domain.TaskUpdate) error {
	if err := v.validateCore(task); err != nil {
		return err
	}
	return v.validateTimestamps(task)
}

// validateCore — валидация основных полей.
func (v *TaskValidator) validateCore(task *domain.TaskUpdate) error {
	if task == nil {
		return fmt.Errorf("%w: задача не может быть nil", ErrInvalidTask)
	}
	if task.TaskUID == "" {
		return fmt.Errorf("%w: task_uid обязателен", ErrInvalidTask)
	}
	if task.Title == "" {
		return fmt.Errorf("%w: title обязателен", ErrInvalidTask)
	}
	if !domain.KnownStatus(task.Status) {
		return fmt.Errorf("%w: status %q вне допустимого набора", ErrInvalidTask, task.Status)
	}
	if task.Priority < 0 || task.Priority > 5 {
		return fmt.Errorf("%w: priority должен быть в диапазоне 0..5", ErrInvalidTask)
	}
	if task.AssigneeID == "" {
		return fmt.Errorf("%w: assignee_id обязателен", ErrInvalidTask)
	}
	if task.ProjectID == "" {
		return fmt.Errorf("%w: project_id обязателен", ErrInvalidTask)
	}
	return nil
}

// Валидация временных меток
func (v *TaskValidator) validateTimestamps(task *domain.TaskUpdate) error {
	if task.UpdatedAt.IsZero() || task.UpdatedAt.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: updated_at некорректен", ErrInvalidTask)
	}
	if !task.DueDate.IsZero() && task.DueDate.Before(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("%w: due_date некорректен", ErrInvalidTask)
	}
	return nil
}
