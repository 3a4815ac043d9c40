package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
)

func newTask(id string) *domain.TaskUpdate {
	return &domain.TaskUpdate{
		TaskUID: id,
		Tags:    []string{"backend"},
	}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewLRUCacheTTL(2, 5*time.Minute)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, "id-1"); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	_ = c.Set(ctx, newTask("id-1"))
	got, ok := c.Get(ctx, "id-1")
	if !ok || got.TaskUID != "id-1" {
		t.Fatalf("expected hit for id-1")
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewLRUCacheTTL(2, 100*time.Millisecond)
	ctx := context.Background()

	_ = c.Set(ctx, newTask("ttl"))
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	time.Sleep(150 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCacheTTL(2, 0) // 0 = без TTL
	ctx := context.Background()

	_ = c.Set(ctx, newTask("A"))
	_ = c.Set(ctx, newTask("B"))
	// A сделать «свежим»
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// Добавляем C — вытеснит B (самый старый)
	_ = c.Set(ctx, newTask("C"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.ll.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewLRUCacheTTL(1, 0)
	ctx := context.Background()
	orig := newTask("Z")
	_ = c.Set(ctx, orig)

	// меняем то, что вернул Get — не должно влиять на кэш
	t1, _ := c.Get(ctx, "Z")
	t1.Tags[0] = "changed"

	t2, _ := c.Get(ctx, "Z")
	if t2.Tags[0] == "changed" {
		t.Fatalf("cache should return clones, not pointers to internal value")
	}
}

func TestWarmUp_RespectsContext(t *testing.T) {
	c := NewLRUCacheTTL(10, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.WarmUp(ctx, []*domain.TaskUpdate{newTask("A"), newTask("B")})
	if err == nil {
		t.Fatalf("warm-up with cancelled ctx must return error")
	}
}
