package domain

import "time"

// TaskUpdate — одно обновление бизнес-задачи, пришедшее из Kafka.
// Это команда "привести задачу к такому состоянию", а не событие-дельта:
// повторная доставка того же сообщения безопасна (идемпотентный upsert).
type TaskUpdate struct {
	TaskUID     string    `json:"task_uid"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    int       `json:"priority"`
	AssigneeID  string    `json:"assignee_id"`
	ProjectID   string    `json:"project_id"`
	Tags        []string  `json:"tags,omitempty"`
	DueDate     time.Time `json:"due_date,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Допустимые статусы задачи.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// KnownStatus — входит ли статус в допустимый набор.
func KnownStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusDone, StatusCancelled:
		return true
	}
	return false
}
