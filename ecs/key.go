package ecs

import (
	"fmt"
	"reflect"
)

// handle packs a slot index (lower 32 bits) and a generation (upper 32
// bits). Generations start at 1, so the zero handle never names a live
// slot.
type handle uint64

func newHandle(index, generation uint32) handle {
	return handle(uint64(generation)<<32 | uint64(index))
}

func (h handle) index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

func (h handle) generation() uint32 {
	return uint32(h >> 32)
}

// EntityKey identifies a live entity. A key goes stale when its entity is
// removed: every later operation on it reports ErrUnknownEntity, even after
// the underlying slot has been reused for another entity.
type EntityKey uint64

// Index returns the slot index half of the key.
func (e EntityKey) Index() uint32 {
	return handle(e).index()
}

// Generation returns the generation half of the key.
func (e EntityKey) Generation() uint32 {
	return handle(e).generation()
}

// IsZero reports whether e is the zero key. The zero key never names a
// live entity.
func (e EntityKey) IsZero() bool {
	return e == 0
}

func (e EntityKey) String() string {
	return fmt.Sprintf("entity(%d@%d)", e.Index(), e.Generation())
}

// ComponentKey identifies one component stored in a Store. Keys are scoped
// to the component type they were created with; presenting a key to an
// operation instantiated with a different type reports ErrUnknownComponent.
type ComponentKey struct {
	typ reflect.Type
	h   handle
}

// Type returns the component type the key was issued for, or nil for the
// zero key.
func (c ComponentKey) Type() reflect.Type {
	return c.typ
}

// Index returns the slot index half of the key within its type's pool.
func (c ComponentKey) Index() uint32 {
	return c.h.index()
}

// Generation returns the generation half of the key.
func (c ComponentKey) Generation() uint32 {
	return c.h.generation()
}

// IsZero reports whether c is the zero key. The zero key never names a
// live component.
func (c ComponentKey) IsZero() bool {
	return c == ComponentKey{}
}

func (c ComponentKey) String() string {
	if c.typ == nil {
		return "component(zero)"
	}
	return fmt.Sprintf("component(%s %d@%d)", c.typ, c.h.index(), c.h.generation())
}

// CompKey identifies one component stored in a KindStore. Keys are scoped
// to their discriminant: two keys of different kinds may share the same raw
// index without ever naming the same component.
type CompKey[K comparable] struct {
	kind K
	h    handle
}

// Kind returns the discriminant the key was issued for.
func (c CompKey[K]) Kind() K {
	return c.kind
}

// Index returns the slot index half of the key within its kind's pool.
func (c CompKey[K]) Index() uint32 {
	return c.h.index()
}

// Generation returns the generation half of the key.
func (c CompKey[K]) Generation() uint32 {
	return c.h.generation()
}
