package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
)

// ValidateTaskFromJSON — валидация обновления задачи из JSON.
func ValidateTaskFromJSON(ctx context.Context, validator ports.TaskValidator, raw []byte) (*domain.TaskUpdate, error) {
	var task domain.TaskUpdate
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&task); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных вне объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := validator.Validate(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
