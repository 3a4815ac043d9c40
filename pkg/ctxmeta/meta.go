package ctxmeta

import (
	"context"
	"maps"
)

const keyIngestMeta ctxKey = "ingest_meta"

// Meta — диагностический контекст одной единицы работы конвейера:
// корреляционный идентификатор, компонент, операция и произвольные теги.
// Значение живёт в context.Context явно (никакого ambient/thread-local
// состояния): перед асинхронной границей его снимают Capture,
// внутри воркера восстанавливают Inject.
type Meta struct {
	CorrelationID string
	Component     string
	Operation     string
	Tags          map[string]string
}

// WithMeta кладёт метаданные в контекст (копия — исходный Meta можно менять).
func WithMeta(ctx context.Context, m Meta) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, keyIngestMeta, m.clone())
}

// Capture снимает метаданные перед асинхронной границей.
// Если в контексте их нет — возвращает нулевой Meta (это не ошибка).
func Capture(ctx context.Context) Meta {
	if ctx == nil {
		return Meta{}
	}
	if m, ok := ctx.Value(keyIngestMeta).(Meta); ok {
		return m.clone()
	}
	return Meta{}
}

// Inject восстанавливает снятые метаданные в новом контексте (обычно —
// в горутине воркера, которая не наследует контекст доставки).
func (m Meta) Inject(ctx context.Context) context.Context {
	return WithMeta(ctx, m)
}

// Tag возвращает значение тега.
func (m Meta) Tag(key string) (string, bool) {
	v, ok := m.Tags[key]
	return v, ok
}

func (m Meta) clone() Meta {
	out := m
	if m.Tags != nil {
		out.Tags = maps.Clone(m.Tags)
	}
	return out
}
