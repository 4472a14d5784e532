package ecs_test

import (
	"fmt"

	"github.com/plus3/tinyecs/ecs"
)

// KindStore selects pools by a runtime discriminant instead of a static
// type, for components modeled as one closed tagged union.
func ExampleKindStore() {
	store := ecs.NewKindStore(kindOf)

	e0 := store.InsertEntity()
	e1 := store.InsertEntity()
	store.InsertComp(e0, compI32(42))
	store.InsertComp(e0, compI32(63))
	store.InsertComp(e1, compI32(42))
	store.InsertComp(e1, compUnit())

	comps, _ := store.Comps(kindI32)
	for c := range comps {
		c.i32++
	}

	mine, _ := store.CompsByEntity(e0, kindI32)
	for c := range mine {
		fmt.Println(c.i32)
	}
	// Output:
	// 43
	// 64
}
