package ecs_test

import (
	"iter"

	"github.com/plus3/tinyecs/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

// Marker is a payload-free component, the Go rendering of a unit variant.
type Marker struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// comp is a closed tagged union for the KindStore tests: one carrier type,
// every variant behind an explicit discriminant.
type compKind uint8

const (
	kindI32 compKind = iota
	kindUnit
)

func (k compKind) String() string {
	switch k {
	case kindI32:
		return "i32"
	case kindUnit:
		return "unit"
	}
	return "unknown"
}

type comp struct {
	kind compKind
	i32  int32
}

func compI32(v int32) comp {
	return comp{kind: kindI32, i32: v}
}

func compUnit() comp {
	return comp{kind: kindUnit}
}

func kindOf(c comp) compKind {
	return c.kind
}

func newKindStore() *ecs.KindStore[comp, compKind] {
	return ecs.NewKindStore(kindOf)
}

// collect drains a sequence of component pointers into a value slice.
func collect[T any](seq iter.Seq[*T]) []T {
	var out []T
	for p := range seq {
		out = append(out, *p)
	}
	return out
}
