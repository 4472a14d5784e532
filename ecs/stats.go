package ecs

import (
	"fmt"
	"slices"
	"strings"
)

// StoreStats is a point-in-time snapshot of store occupancy, for test
// harnesses and the stress tool.
type StoreStats struct {
	Entities   int         // live entities
	Components int         // live components across all pools
	Pools      []PoolStats // per-pool breakdown, sorted by label
}

// PoolStats describes one component pool.
type PoolStats struct {
	Type     string // component type (or kind) label
	Live     int    // occupied slots
	Capacity int    // slots ever allocated
	Free     int    // reusable slots on the free list
}

// Stats snapshots the store. Pools are reported even when empty, since
// they persist for the store's lifetime.
func (s *Store) Stats() StoreStats {
	st := StoreStats{Entities: s.entities.len()}
	for t, p := range s.pools {
		ps := PoolStats{
			Type:     t.String(),
			Live:     p.live(),
			Capacity: p.capacity(),
			Free:     p.freeSlots(),
		}
		st.Components += ps.Live
		st.Pools = append(st.Pools, ps)
	}
	sortPools(st.Pools)
	return st
}

// Stats snapshots the store, labeling pools with the fmt representation of
// their kind.
func (s *KindStore[C, K]) Stats() StoreStats {
	st := StoreStats{Entities: s.entities.len()}
	for kind, p := range s.pools {
		ps := PoolStats{
			Type:     fmt.Sprint(kind),
			Live:     p.live(),
			Capacity: p.capacity(),
			Free:     p.freeSlots(),
		}
		st.Components += ps.Live
		st.Pools = append(st.Pools, ps)
	}
	sortPools(st.Pools)
	return st
}

func sortPools(pools []PoolStats) {
	slices.SortFunc(pools, func(a, b PoolStats) int {
		return strings.Compare(a.Type, b.Type)
	})
}
