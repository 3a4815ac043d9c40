package kafka

import (
	"context"
	"errors"
	"testing"
)

// Повторный Commit — no-op: решение о коммите принимается один раз.
func TestEnvelope_CommitOnce(t *testing.T) {
	calls := 0
	env := NewEnvelope("tasks", 0, 10, "k", []byte("v"), func(context.Context) error {
		calls++
		return nil
	})

	if err := env.Commit(context.Background()); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if err := env.Commit(context.Background()); err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("commit called %d times, want 1", calls)
	}
}

// Ошибка коммита возвращается вызывающему, но повтор всё равно no-op.
func TestEnvelope_CommitError(t *testing.T) {
	wantErr := errors.New("broker down")
	calls := 0
	env := NewEnvelope("tasks", 0, 10, "", nil, func(context.Context) error {
		calls++
		return wantErr
	})

	if err := env.Commit(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("want %v, got %v", wantErr, err)
	}
	if err := env.Commit(context.Background()); err != nil {
		t.Fatalf("second commit should be no-op, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("commit called %d times, want 1", calls)
	}
}

func TestEnvelope_NilCommit(t *testing.T) {
	env := NewEnvelope("tasks", 0, 10, "", nil, nil)
	if err := env.Commit(context.Background()); err != nil {
		t.Fatalf("nil commit: %v", err)
	}
}
