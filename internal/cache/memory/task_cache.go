package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_taskflow/internal/domain"
	"github.com/Gunvolt24/wb_taskflow/internal/ports"
	"github.com/Gunvolt24/wb_taskflow/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу TaskCache.
var _ ports.TaskCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        string
	task      *domain.TaskUpdate
	expiresAt time.Time
}

type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id string) (*domain.TaskUpdate, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneTask(ent.task), true
}

func (c *LRUCacheTTL) Set(_ context.Context, task *domain.TaskUpdate) error {
	if task == nil || task.TaskUID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[task.TaskUID]; ok {
		ent := elem.Value.(*entry)
		ent.task = cloneTask(task)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        task.TaskUID,
		task:      cloneTask(task),
		expiresAt: c.expiryFrom(now),
	})
	c.index[task.TaskUID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *LRUCacheTTL) WarmUp(ctx context.Context, tasks []*domain.TaskUpdate) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, task); err != nil {
			return err
		}
	}
	return nil
}
