package ecs

// Commands buffers store mutations so they can be queued while an iterator
// is in progress and applied afterwards, when no pass is live. Queue
// methods never touch the store; Flush applies everything in a fixed
// order. This is the sanctioned way to combine iteration with structural
// changes to the same pool.
type Commands struct {
	entityRemoves []EntityKey
	compRemoves   []func(*Store)
	inserts       []func(*Store)
	defers        []func()
}

// NewCommands creates an empty command buffer. A buffer is reusable:
// Flush resets it.
func NewCommands() *Commands {
	return &Commands{}
}

// RemoveEntity queues an entity removal.
func (c *Commands) RemoveEntity(e EntityKey) {
	c.entityRemoves = append(c.entityRemoves, e)
}

// Defer queues an arbitrary function, run after all queued mutations.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// QueueInsert queues a component insertion. The insertion is dropped
// silently if the entity is gone by flush time.
func QueueInsert[T any](c *Commands, entity EntityKey, value T) {
	c.inserts = append(c.inserts, func(s *Store) {
		_, _ = InsertComponent(s, entity, value)
	})
}

// QueueRemove queues a component removal. The removal is dropped silently
// if the key is already dead by flush time, including when its owner was
// removed earlier in the same flush.
func QueueRemove[T any](c *Commands, key ComponentKey) {
	c.compRemoves = append(c.compRemoves, func(s *Store) {
		_, _ = RemoveComponent[T](s, key)
	})
}

// Flush applies the queued operations against s: entity removals first,
// then component removals, then insertions, then deferred functions.
// Operations whose target died earlier in the same flush are no-ops. The
// buffer is reset for reuse.
func (c *Commands) Flush(s *Store) {
	for _, e := range c.entityRemoves {
		_ = s.RemoveEntity(e)
	}
	for _, op := range c.compRemoves {
		op(s)
	}
	for _, op := range c.inserts {
		op(s)
	}
	for _, fn := range c.defers {
		fn()
	}
	c.entityRemoves = c.entityRemoves[:0]
	c.compRemoves = c.compRemoves[:0]
	c.inserts = c.inserts[:0]
	c.defers = c.defers[:0]
}
