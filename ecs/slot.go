package ecs

import "iter"

// slot is one reusable storage cell. While occupied it holds a value at the
// generation recorded in gen; while free, gen already carries the bumped
// generation the next occupant will be issued under.
type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// slotTable is a generational arena: a flat slice of slots with LIFO index
// reuse through a free-list stack. Freeing a slot bumps its generation, so
// a handle taken before the free never matches the slot again, no matter
// how often it is reused.
type slotTable[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// insert stores v in a recycled slot if one is available, otherwise in a
// freshly appended slot, and returns its handle.
func (t *slotTable[T]) insert(v T) handle {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx]
		s.value = v
		s.occupied = true
		t.count++
		return newHandle(idx, s.gen)
	}
	idx := uint32(len(t.slots))
	t.slots = append(t.slots, slot[T]{value: v, gen: 1, occupied: true})
	t.count++
	return newHandle(idx, 1)
}

// get returns a pointer to the value at h, or false if the slot is free,
// out of range, or occupied under a different generation.
func (t *slotTable[T]) get(h handle) (*T, bool) {
	idx := h.index()
	if int(idx) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[idx]
	if !s.occupied || s.gen != h.generation() {
		return nil, false
	}
	return &s.value, true
}

// remove validates h exactly as get, then frees the slot, bumps its
// generation, and returns the removed value. A failed validation mutates
// nothing.
func (t *slotTable[T]) remove(h handle) (T, bool) {
	var zero T
	idx := h.index()
	if int(idx) >= len(t.slots) {
		return zero, false
	}
	s := &t.slots[idx]
	if !s.occupied || s.gen != h.generation() {
		return zero, false
	}
	v := s.value
	s.value = zero // drop references held by the value
	s.occupied = false
	s.gen++
	t.free = append(t.free, idx)
	t.count--
	return v, true
}

func (t *slotTable[T]) len() int {
	return t.count
}

func (t *slotTable[T]) cap() int {
	return len(t.slots)
}

// all yields every occupied slot in index order. The sequence is lazy and
// restartable; the table must not be structurally mutated during a pass.
func (t *slotTable[T]) all() iter.Seq2[handle, *T] {
	return func(yield func(handle, *T) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(newHandle(uint32(i), s.gen), &s.value) {
				return
			}
		}
	}
}

// clear frees every occupied slot. Slots are freed rather than truncated so
// that generations survive and keys issued before the clear stay stale
// instead of aliasing later occupants. Indices are pushed in descending
// order, so reuse after a clear starts from index 0 again.
func (t *slotTable[T]) clear() {
	var zero T
	for i := len(t.slots) - 1; i >= 0; i-- {
		s := &t.slots[i]
		if !s.occupied {
			continue
		}
		s.value = zero
		s.occupied = false
		s.gen++
		t.free = append(t.free, uint32(i))
	}
	t.count = 0
}
