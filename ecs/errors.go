package ecs

import "errors"

// Sentinel errors for ordinary misuse. All are recoverable and leave the
// store unmodified; match with errors.Is. Internal invariant violations
// panic instead, since they indicate a defect in the store itself.
var (
	// ErrUnknownEntity reports an entity key that is not live: never
	// issued, already removed, or stale after its slot was reused.
	ErrUnknownEntity = errors.New("ecs: unknown entity")

	// ErrUnknownComponent reports a component key that is not live in the
	// pool of the requested type or kind. A key presented under a type
	// other than the one it was issued for is reported the same way.
	ErrUnknownComponent = errors.New("ecs: unknown component")

	// ErrUnknownType reports a component type or kind for which no pool has
	// ever been created. This is distinct from a pool that exists but is
	// currently empty, which iterates as a valid empty sequence.
	ErrUnknownType = errors.New("ecs: unknown component type")
)
