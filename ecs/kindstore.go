package ecs

import "iter"

// KindStore is the discriminant-keyed variant of Store, for components
// modeled as a closed tagged union: a single Go type C carries every
// variant, and pools are selected by the runtime discriminant K instead of
// by static type. Operation for operation, the contracts match Store.
//
// Like Store, a KindStore is single-owner and not internally synchronized,
// and pools persist once created.
type KindStore[C any, K comparable] struct {
	entities slotTable[struct{}]
	kindOf   func(C) K
	pools    map[K]*pool[C]
}

// NewKindStore creates an empty store whose pools are keyed by the
// discriminant kindOf extracts from a component value. kindOf must be
// pure: the discriminant of a stored value never changes.
func NewKindStore[C any, K comparable](kindOf func(C) K) *KindStore[C, K] {
	return &KindStore[C, K]{
		kindOf: kindOf,
		pools:  make(map[K]*pool[C]),
	}
}

// InsertEntity allocates a new entity and returns its key. It cannot fail.
func (s *KindStore[C, K]) InsertEntity() EntityKey {
	return EntityKey(s.entities.insert(struct{}{}))
}

// RemoveEntity removes the entity and every component it owns across all
// kinds, then frees the entity slot. Returns ErrUnknownEntity and changes
// nothing if the key is not live.
func (s *KindStore[C, K]) RemoveEntity(e EntityKey) error {
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
func (s *KindStore[C, K]) ContainsEntity(e EntityKey) bool {
	_, ok := s.entities.get(handle(e))
	return ok
}

// Entities yields every live entity key in slot index order.
func (s *KindStore[C, K]) Entities() iter.Seq[EntityKey] {
	return func(yield func(EntityKey) bool) {
		for h := range s.entities.all() {
			if !yield(EntityKey(h)) {
				return
			}
		}
	}
}

// Len returns the number of live entities.
func (s *KindStore[C, K]) Len() int {
	return s.entities.len()
}

// InsertComp attaches comp to entity under the kind extracted from its
// value, creating the kind's pool on first use, and returns the new
// component's key. Returns ErrUnknownEntity if entity is not live.
func (s *KindStore[C, K]) InsertComp(entity EntityKey, comp C) (CompKey[K], error) {
	if !s.ContainsEntity(entity) {
		return CompKey[K]{}, ErrUnknownEntity
	}
	kind := s.kindOf(comp)
	p, ok := s.pools[kind]
	if !ok {
		p = newPool[C]()
		s.pools[kind] = p
	}
	h := p.insert(entity, comp)
	return CompKey[K]{kind: kind, h: h}, nil
}

// RemoveComp detaches the component named by key from its owner and
// returns the removed value. Returns ErrUnknownComponent and changes
// nothing if the key is stale or absent.
func (s *KindStore[C, K]) RemoveComp(key CompKey[K]) (C, error) {
	var zero C
	p, ok := s.pools[key.kind]
	if !ok {
		return zero, ErrUnknownComponent
	}
	v, _, ok := p.remove(key.h)
	if !ok {
		return zero, ErrUnknownComponent
	}
	return v, nil
}

// Comp returns a pointer to the live component named by key. Writes
// through the pointer are visible to later reads and iterations.
func (s *KindStore[C, K]) Comp(key CompKey[K]) (*C, error) {
	p, ok := s.pools[key.kind]
	if !ok {
		return nil, ErrUnknownComponent
	}
	e, ok := p.get(key.h)
	if !ok {
		return nil, ErrUnknownComponent
	}
	return &e.value, nil
}

// CompEntity returns the entity that owns the component named by key.
func (s *KindStore[C, K]) CompEntity(key CompKey[K]) (EntityKey, error) {
	p, ok := s.pools[key.kind]
	if !ok {
		return 0, ErrUnknownComponent
	}
	owner, ok := p.ownerOf(key.h)
	if !ok {
		return 0, ErrUnknownComponent
	}
	return owner, nil
}

// Comps yields a pointer to every live component of the given kind in pool
// index order. Returns ErrUnknownType if no component of that kind was
// ever inserted; an existing but empty pool yields a valid empty sequence.
func (s *KindStore[C, K]) Comps(kind K) (iter.Seq[*C], error) {
	p, ok := s.pools[kind]
	if !ok {
		return nil, ErrUnknownType
	}
	return p.values(), nil
}

// CompsByEntity yields the components of the given kind owned by entity,
// in membership order. Returns ErrUnknownEntity if entity is not live,
// then ErrUnknownType if the kind has no pool.
func (s *KindStore[C, K]) CompsByEntity(entity EntityKey, kind K) (iter.Seq[*C], error) {
	if !s.ContainsEntity(entity) {
		return nil, ErrUnknownEntity
	}
	p, ok := s.pools[kind]
	if !ok {
		return nil, ErrUnknownType
	}
	return p.valuesOf(entity), nil
}

// Clear removes every entity and component while keeping created pools and
// the staleness of previously issued keys, exactly like Store.Clear.
func (s *KindStore[C, K]) Clear() {
	s.entities.clear()
	for _, p := range s.pools {
		p.clear()
	}
}
