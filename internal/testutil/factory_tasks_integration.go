//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного обновления задачи
func MakeTask(opts ...func(*domain.TaskUpdate)) domain.TaskUpdate {
	uid := "task-" + UniqSuffix()
	now := time.Now().UTC().Truncate(time.Second)

	t := domain.TaskUpdate{
		TaskUID:     uid,
		Title:       "Task " + UniqSuffix(),
		Description: "generated by integration factory",
		Status:      domain.StatusOpen,
		Priority:    2,
		AssigneeID:  "user-" + UniqSuffix(),
		ProjectID:   "proj-" + UniqSuffix(),
		Tags:        []string{"itest"},
		UpdatedAt:   now,
	}

	for _, fn := range opts {
		fn(&t)
	}
	return t
}

func WithAssignee(id string) func(*domain.TaskUpdate) {
	return func(t *domain.TaskUpdate) { t.AssigneeID = id }
}

func WithStatus(status string) func(*domain.TaskUpdate) {
	return func(t *domain.TaskUpdate) { t.Status = status }
}

func WithUpdatedAt(ts time.Time) func(*domain.TaskUpdate) {
	return func(t *domain.TaskUpdate) { t.UpdatedAt = ts }
}

func WithTaskUID(uid string) func(*domain.TaskUpdate) {
	return func(t *domain.TaskUpdate) { t.TaskUID = uid }
}
