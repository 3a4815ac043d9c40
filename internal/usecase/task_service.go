package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
)

// TaskService — прикладная логика работы с задачами (без знаний о транспорте).
// Для конвейера потребления это «маппер + процессор»: SaveFromMessage
// превращает сырое сообщение в команду и применяет её.
type TaskService struct {
	repo      ports.TaskRepository // прямой доступ к хранилищу
	cache     ports.TaskCache      // прямой доступ к кэшу
	log       ports.Logger         // прямой доступ к логгеру
	validator ports.TaskValidator  // прямой доступ к валидатору
}

// NewTaskService — DI-конструктор.
func NewTaskService(
	repo ports.TaskRepository,
	cache ports.TaskCache,
	log ports.Logger,
	validator ports.TaskValidator,
) *TaskService {
	return &TaskService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// GetTask — получить задачу по UID: сначала из кэша, при промахе — из БД с записью в кэш.
// Возвращает (*TaskUpdate, nil) или (nil, nil), если записи нет.
func (s *TaskService) GetTask(ctx context.Context, taskUID string) (*domain.TaskUpdate, error) {
	if task, found := s.cache.Get(ctx, taskUID); found {
		s.log.Infof(ctx, "cache hit for task=%s", taskUID)
		return task, nil
	}
	s.log.Infof(ctx, "cache miss for task=%s", taskUID)

	start := time.Now()
	task, err := s.repo.GetByUID(ctx, taskUID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByUID failed task_uid=%s err=%v", taskUID, err)
		return nil, err
	}

	if task != nil {
		// Кэшируем результат
		if setErr := s.cache.Set(ctx, task); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed task_uid=%s err=%v", taskUID, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch task_uid=%s took=%s", taskUID, time.Since(start))
	return task, nil
}

// TasksByAssignee — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *TaskService) TasksByAssignee(
	ctx context.Context,
	assigneeID string,
	limit, offset int,
) ([]*domain.TaskUpdate, error) {
	return s.repo.ListByAssignee(ctx, assigneeID, limit, offset)
}

// SaveFromMessage — применить обновление задачи, пришедшее из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields) —> отлавливаем незадокументированные поля;
//  2. доменная валидация (вернёт validate.ErrInvalidTask при проблемах);
//  3. транзакционное сохранение в БД (идемпотентный upsert);
//  4. положить запись в кэш.
func (s *TaskService) SaveFromMessage(ctx context.Context, raw []byte) error {
	// Строгое декодирование: запрещаем неизвестные поля.
	var task domain.TaskUpdate
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&task); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("invalid json: %w", err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("invalid json: trailing data")
	}

	// Доменная валидация (обязательные поля, статус, приоритет и т.д.).
	if err := s.validator.Validate(ctx, &task); err != nil {
		s.log.Warnf(ctx, "validation failed task_uid=%s err=%v", task.TaskUID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	// Сохранение в БД в транзакции.
	if err := s.repo.Save(ctx, &task); err != nil {
		s.log.Errorf(ctx, "repo.Save failed task_uid=%s err=%v", task.TaskUID, err)
		return fmt.Errorf("failed to save task: %w", err)
	}

	// Обновление кэша.
	if err := s.cache.Set(ctx, &task); err != nil {
		s.log.Warnf(ctx, "cache.Set failed task_uid=%s err=%v", task.TaskUID, err)
	}

	s.log.Infof(ctx, "task saved uid=%s status=%s", task.TaskUID, task.Status)
	return nil
}

// WarmUpCache — прогрев кэша последними N задачами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *TaskService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d tasks in %s", len(list), time.Since(start))
	return nil
}
