package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// iPool is the type-erased view of a pool. Store uses it for the
// operations that do not know the component type: owner lookup, entity
// cascade, stats, and clearing.
type iPool interface {
	ownerOf(h handle) (EntityKey, bool)
	dropEntity(owner EntityKey)
	live() int
	capacity() int
	freeSlots() int
	clear()
}

// entry is one stored component: the value plus the back-references needed
// to unlink it. owner is a non-owning association kept for lookup only;
// member is the handle of this component's record in the owner's
// membership table.
type entry[T any] struct {
	value  T
	owner  EntityKey
	member handle
}

// pool holds every component of one type (or one kind) in a generational
// slot table, plus a per-entity membership index over it. It is the single
// pool implementation shared by Store and KindStore.
type pool[T any] struct {
	slots    slotTable[entry[T]]
	byEntity *intmap.Map[EntityKey, *slotTable[handle]]
}

func newPool[T any]() *pool[T] {
	return &pool[T]{
		byEntity: intmap.New[EntityKey, *slotTable[handle]](16),
	}
}

// insert stores value for owner and links it into the owner's membership
// table.
func (p *pool[T]) insert(owner EntityKey, value T) handle {
	members, ok := p.byEntity.Get(owner)
	if !ok {
		members = &slotTable[handle]{}
		p.byEntity.Put(owner, members)
	}
	h := p.slots.insert(entry[T]{value: value, owner: owner})
	m := members.insert(h)
	e, _ := p.slots.get(h)
	e.member = m
	return h
}

// remove frees the component at h and unlinks it from its owner's
// membership table. Returns the removed value and the owner.
func (p *pool[T]) remove(h handle) (T, EntityKey, bool) {
	e, ok := p.slots.remove(h)
	if !ok {
		var zero T
		return zero, 0, false
	}
	p.unlink(e.owner, e.member)
	return e.value, e.owner, true
}

func (p *pool[T]) unlink(owner EntityKey, member handle) {
	members, ok := p.byEntity.Get(owner)
	if !ok {
		panic("ecs: component owner has no membership table")
	}
	if _, ok := members.remove(member); !ok {
		panic("ecs: component missing from its membership table")
	}
	// Empty tables are dropped so a cleared entity costs nothing.
	if members.len() == 0 {
		p.byEntity.Del(owner)
	}
}

func (p *pool[T]) get(h handle) (*entry[T], bool) {
	return p.slots.get(h)
}

func (p *pool[T]) ownerOf(h handle) (EntityKey, bool) {
	e, ok := p.slots.get(h)
	if !ok {
		return 0, false
	}
	return e.owner, true
}

// dropEntity removes every component owned by owner in one pass. The
// per-component unlink is skipped: the whole membership table goes with
// the entity.
func (p *pool[T]) dropEntity(owner EntityKey) {
	members, ok := p.byEntity.Get(owner)
	if !ok {
		return
	}
	for _, ch := range members.all() {
		if _, ok := p.slots.remove(*ch); !ok {
			panic("ecs: membership table names a dead component")
		}
	}
	p.byEntity.Del(owner)
}

// values yields every live component in pool index order.
func (p *pool[T]) values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, e := range p.slots.all() {
			if !yield(&e.value) {
				return
			}
		}
	}
}

// valuesOf yields the components owned by owner in membership order. An
// entity with no components in this pool yields an empty sequence.
func (p *pool[T]) valuesOf(owner EntityKey) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		members, ok := p.byEntity.Get(owner)
		if !ok {
			return
		}
		for _, ch := range members.all() {
			e, ok := p.slots.get(*ch)
			if !ok {
				panic("ecs: membership table names a dead component")
			}
			if !yield(&e.value) {
				return
			}
		}
	}
}

func (p *pool[T]) live() int {
	return p.slots.len()
}

func (p *pool[T]) capacity() int {
	return p.slots.cap()
}

func (p *pool[T]) freeSlots() int {
	return len(p.slots.free)
}

func (p *pool[T]) clear() {
	p.slots.clear()
	p.byEntity = intmap.New[EntityKey, *slotTable[handle]](16)
}
