package ecs

import (
	"iter"
	"reflect"
)

// Store associates arbitrary typed component values with entity handles.
// Each distinct component type gets its own pool, created lazily on first
// insertion and kept for the store's lifetime. Component operations are
// package-level generic functions (Go's way of putting a typed surface
// over type-erased pools); entity operations are methods.
//
// A Store is not internally synchronized. It is meant to be owned by one
// logical owner at a time; share it across goroutines only behind external
// synchronization. No structural mutation (insert, remove, clear) may
// happen while an iterator over the same pool is in progress — queue such
// changes on a Commands buffer and flush after the pass.
type Store struct {
	entities slotTable[struct{}]
	pools    map[reflect.Type]iPool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		pools: make(map[reflect.Type]iPool),
	}
}

// InsertEntity allocates a new entity and returns its key. It cannot fail.
func (s *Store) InsertEntity() EntityKey {
	return EntityKey(s.entities.insert(struct{}{}))
}

// RemoveEntity removes the entity and cascades over every pool, removing
// each component the entity owns, then frees the entity slot. Returns
// ErrUnknownEntity and changes nothing if the key is not live.
func (s *Store) RemoveEntity(e EntityKey) error {
	if _, ok := s.entities.get(handle(e)); !ok {
		return ErrUnknownEntity
	}
	for _, p := range s.pools {
		p.dropEntity(e)
	}
	s.entities.remove(handle(e))
	return nil
}

// ContainsEntity reports whether e names a live entity.
func (s *Store) ContainsEntity(e EntityKey) bool {
	_, ok := s.entities.get(handle(e))
	return ok
}

// Entities yields every live entity key in slot index order. The sequence
// is lazy and restartable.
func (s *Store) Entities() iter.Seq[EntityKey] {
	return func(yield func(EntityKey) bool) {
		for h := range s.entities.all() {
			if !yield(EntityKey(h)) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return s.entities.len()
}

// ComponentEntity returns the entity that owns the component named by key.
// The association is non-owning: the result is a key for lookup, nothing
// more. Returns ErrUnknownComponent if the key is not live.
func (s *Store) ComponentEntity(key ComponentKey) (EntityKey, error) {
	p, ok := s.pools[key.typ]
	if !ok {
		return 0, ErrUnknownComponent
	}
	owner, ok := p.ownerOf(key.h)
	if !ok {
		return 0, ErrUnknownComponent
	}
	return owner, nil
}

// Clear removes every entity and component. Pools survive, so a type seen
// before the clear still iterates as a valid empty sequence rather than
// ErrUnknownType, and keys issued before the clear stay stale rather than
// aliasing later occupants of their slots.
func (s *Store) Clear() {
	s.entities.clear()
	for _, p := range s.pools {
		p.clear()
	}
}

// poolOf returns T's pool, creating it when create is set.
func poolOf[T any](s *Store, create bool) (*pool[T], bool) {
	t := reflect.TypeFor[T]()
	ip, ok := s.pools[t]
	if !ok {
		if !create {
			return nil, false
		}
		p := newPool[T]()
		s.pools[t] = p
		return p, true
	}
	return ip.(*pool[T]), true
}

// keyPool returns T's pool iff key was issued for T.
func keyPool[T any](s *Store, key ComponentKey) (*pool[T], bool) {
	if key.typ != reflect.TypeFor[T]() {
		return nil, false
	}
	return poolOf[T](s, false)
}

// InsertComponent attaches value to entity and returns the new component's
// key. The pool for T is created on first use. There is no uniqueness
// constraint: an entity may hold any number of components of the same
// type. Returns ErrUnknownEntity if entity is not live.
func InsertComponent[T any](s *Store, entity EntityKey, value T) (ComponentKey, error) {
	if !s.ContainsEntity(entity) {
		return ComponentKey{}, ErrUnknownEntity
	}
	p, _ := poolOf[T](s, true)
	h := p.insert(entity, value)
	return ComponentKey{typ: reflect.TypeFor[T](), h: h}, nil
}

// RemoveComponent detaches the component named by key from its owner and
// returns the removed value. The owner keeps its other components and
// stays live even if this was its last one. Returns ErrUnknownComponent
// and changes nothing if the key is stale, absent, or was issued for a
// type other than T.
func RemoveComponent[T any](s *Store, key ComponentKey) (T, error) {
	var zero T
	p, ok := keyPool[T](s, key)
	if !ok {
		return zero, ErrUnknownComponent
	}
	v, _, ok := p.remove(key.h)
	if !ok {
		return zero, ErrUnknownComponent
	}
	return v, nil
}

// GetComponent returns a pointer to the live component named by key.
// Writes through the pointer are visible to later reads and iterations.
func GetComponent[T any](s *Store, key ComponentKey) (*T, error) {
	p, ok := keyPool[T](s, key)
	if !ok {
		return nil, ErrUnknownComponent
	}
	e, ok := p.get(key.h)
	if !ok {
		return nil, ErrUnknownComponent
	}
	return &e.value, nil
}

// Components yields a pointer to every live component of type T in pool
// index order. The pointers are live, so iterating is also the sanctioned
// way to bulk-update one type. Returns ErrUnknownType if no component of
// type T was ever inserted; a pool that exists but is empty yields a valid
// empty sequence.
func Components[T any](s *Store) (iter.Seq[*T], error) {
	p, ok := poolOf[T](s, false)
	if !ok {
		return nil, ErrUnknownType
	}
	return p.values(), nil
}

// ComponentsByEntity yields the components of type T owned by entity, in
// membership order (insertion order until a membership slot is recycled).
// Returns ErrUnknownEntity if entity is not live, then ErrUnknownType if T
// has no pool. A live entity with no components of type T yields a valid
// empty sequence.
func ComponentsByEntity[T any](s *Store, entity EntityKey) (iter.Seq[*T], error) {
	if !s.ContainsEntity(entity) {
		return nil, ErrUnknownEntity
	}
	p, ok := poolOf[T](s, false)
	if !ok {
		return nil, ErrUnknownType
	}
	return p.valuesOf(entity), nil
}
