package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
)

// Entity is anything a collection store can hold.
type Entity interface {
	EntityID() string
}

// Flags describe the most recent request against a store. After a call
// settles Loading is false and at most one of Error and Success is set.
type Flags struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

type CollectionState[T Entity] struct {
	Items   []T  `json:"items"`
	Current *T   `json:"current"`
	Flags
}

// collection is the cache of one backend entity type. Network calls run
// without the lock; results are applied when they settle, so with two calls
// in flight the last one to settle wins.
type collection[T Entity] struct {
	mu      sync.Mutex
	name    string
	items   []T
	current *T
	flags   Flags
	log     zerolog.Logger

	// changed runs under mu after every change of items.
	changed func()
}

func newCollection[T Entity](name string, log zerolog.Logger) *collection[T] {
	return &collection[T]{
		name:  name,
		items: []T{},
		log:   log.With().Str("store", name).Logger(),
	}
}

func (c *collection[T]) snapshot() CollectionState[T] {
	items := make([]T, len(c.items))
	copy(items, c.items)

	var current *T
	if c.current != nil {
		cur := *c.current
		current = &cur
	}
	return CollectionState[T]{Items: items, Current: current, Flags: c.flags}
}

func (c *collection[T]) itemsChanged() {
	if c.changed != nil {
		c.changed()
	}
}

func (c *collection[T]) beginFetch() {
	c.mu.Lock()
	c.flags.Loading = true
	c.flags.Error = ""
	c.mu.Unlock()
}

func (c *collection[T]) beginMutation() {
	c.mu.Lock()
	c.flags = Flags{Loading: true}
	c.mu.Unlock()
}

func (c *collection[T]) failFetch(op string, err error, fallback string) {
	msg := apiclient.Message(err, fallback)
	c.mu.Lock()
	c.flags.Loading = false
	c.flags.Error = msg
	c.mu.Unlock()
	c.log.Warn().Err(err).Str("op", op).Msg(msg)
}

func (c *collection[T]) failMutation(op string, err error, fallback string) {
	msg := apiclient.Message(err, fallback)
	c.mu.Lock()
	c.flags = Flags{Error: msg}
	c.mu.Unlock()
	c.log.Warn().Err(err).Str("op", op).Msg(msg)
}

// fetchAll replaces items wholesale; on failure items keep their value.
func (c *collection[T]) fetchAll(ctx context.Context, fallback string, call func(context.Context) ([]T, error)) error {
	c.beginFetch()
	items, err := call(ctx)
	if err != nil {
		c.failFetch("fetch_all", err, fallback)
		return err
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	c.items = items
	c.flags.Loading = false
	c.flags.Error = ""
	c.itemsChanged()
	c.mu.Unlock()
	return nil
}

// fetchOne loads a single entity into current.
func (c *collection[T]) fetchOne(ctx context.Context, fallback string, call func(context.Context) (T, error)) error {
	c.beginFetch()
	item, err := call(ctx)
	if err != nil {
		c.failFetch("fetch_one", err, fallback)
		return err
	}

	c.mu.Lock()
	c.current = &item
	c.flags.Loading = false
	c.flags.Error = ""
	c.mu.Unlock()
	return nil
}

func (c *collection[T]) create(ctx context.Context, fallback string, call func(context.Context) (T, error)) (T, error) {
	c.beginMutation()
	item, err := call(ctx)
	if err != nil {
		c.failMutation("create", err, fallback)
		return item, err
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.flags = Flags{Success: true}
	c.itemsChanged()
	c.mu.Unlock()
	return item, nil
}

// update swaps in the entity the backend returned, matched by the returned
// id. An id that is no longer cached leaves items as they are.
func (c *collection[T]) update(ctx context.Context, fallback string, clearCurrent bool, call func(context.Context) (T, error)) (T, error) {
	c.beginMutation()
	item, err := call(ctx)
	if err != nil {
		c.failMutation("update", err, fallback)
		return item, err
	}

	c.mu.Lock()
	if !c.replace(item) {
		c.log.Debug().Str("id", item.EntityID()).Msg("updated entity not cached")
	}
	if clearCurrent {
		c.current = nil
	} else if c.current != nil && (*c.current).EntityID() == item.EntityID() {
		c.current = &item
	}
	c.flags = Flags{Success: true}
	c.itemsChanged()
	c.mu.Unlock()
	return item, nil
}

// remove drops id after the backend confirmed the delete.
func (c *collection[T]) remove(ctx context.Context, id string, fallback string, call func(context.Context) error) error {
	c.beginMutation()
	if err := call(ctx); err != nil {
		c.failMutation("remove", err, fallback)
		return err
	}

	c.mu.Lock()
	kept := c.items[:0:0]
	for _, it := range c.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.flags = Flags{Success: true}
	c.itemsChanged()
	c.mu.Unlock()
	return nil
}

func (c *collection[T]) replace(item T) bool {
	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			c.items[i] = item
			return true
		}
	}
	return false
}

func (c *collection[T]) setCurrent(item T) {
	c.mu.Lock()
	c.current = &item
	c.mu.Unlock()
}

func (c *collection[T]) clearCurrent() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

func (c *collection[T]) currentItem() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cur := *c.current
	return &cur
}

func (c *collection[T]) clearError() {
	c.mu.Lock()
	c.flags.Error = ""
	c.mu.Unlock()
}

func (c *collection[T]) clearSuccess() {
	c.mu.Lock()
	c.flags.Success = false
	c.mu.Unlock()
}
