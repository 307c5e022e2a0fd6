package store

import (
	"sync"

	"github.com/cuongbtq/jobsearch/internal/domain"
)

// Record is implemented by every stored entity
type Record[T any] interface {
	GetID() int
	Clone() T
}

// AssignFunc returns item carrying the given id
type AssignFunc[T any] func(item T, id int) T

// MutateFunc runs under the collection write lock with the live backing slice
// and the index of the record the operation targets.
type MutateFunc[T any] func(items []T, idx int)

// Collection is a mutex guarded, insertion ordered set of records keyed by id.
// Records never leave the collection without being cloned.
type Collection[T Record[T]] struct {
	mu     sync.RWMutex
	entity string
	assign AssignFunc[T]
	items  []T
}

// NewCollection creates a collection seeded with copies of seed
func NewCollection[T Record[T]](entity string, assign AssignFunc[T], seed []T) *Collection[T] {
	items := make([]T, len(seed))
	for i, item := range seed {
		items[i] = item.Clone()
	}

	return &Collection[T]{
		entity: entity,
		assign: assign,
		items:  items,
	}
}

// Entity returns the entity name the collection stores
func (c *Collection[T]) Entity() string {
	return c.entity
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All returns a snapshot of every record in collection order
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns the record with the given id
func (c *Collection[T]) Get(id int) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, domain.NewRecordNotFoundError(c.entity, id)
	}
	return c.items[idx].Clone(), nil
}

// Insert assigns the next id to item, appends it and runs hooks against the new record.
// Any id already carried by item is overwritten.
func (c *Collection[T]) Insert(item T, hooks ...MutateFunc[T]) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	item = c.assign(item.Clone(), c.nextID())
	c.items = append(c.items, item)

	idx := len(c.items) - 1
	for _, hook := range hooks {
		hook(c.items, idx)
	}
	return c.items[idx].Clone()
}

// Update replaces the record with fn's result. The id is preserved.
func (c *Collection[T]) Update(id int, fn func(T) T) (T, error) {
	return c.Apply(id, func(items []T, idx int) {
		items[idx] = c.assign(fn(items[idx].Clone()), id)
	})
}

// Apply runs fn under the write lock against the record with the given id
// and returns a copy of that record afterwards.
func (c *Collection[T]) Apply(id int, fn MutateFunc[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, domain.NewRecordNotFoundError(c.entity, id)
	}

	fn(c.items, idx)
	return c.items[idx].Clone(), nil
}

// Delete removes the record with the given id. Any failing check aborts the
// removal and its error is returned unchanged.
func (c *Collection[T]) Delete(id int, checks ...func(T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return domain.NewRecordNotFoundError(c.entity, id)
	}

	for _, check := range checks {
		if err := check(c.items[idx]); err != nil {
			return err
		}
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return nil
}

// nextID must be called with the write lock held
func (c *Collection[T]) nextID() int {
	maxID := 0
	for _, item := range c.items {
		if id := item.GetID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (c *Collection[T]) indexOf(id int) int {
	for i, item := range c.items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
