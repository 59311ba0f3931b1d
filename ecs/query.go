package ecs

import "github.com/milk9111/evermaze/ecs/component"

// IntersectEntities returns entities present in both sets.
func IntersectEntities(a, b *SparseSet) []Entity {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]Entity, 0, len(a.denseEntities))
	for _, e := range a.denseEntities {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Query returns the entities that carry every kind, in the dense order of
// the first kind's store.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	first := w.stores[kinds[0].ID()]
	if first == nil {
		return nil
	}
	out := make([]Entity, 0, first.Len())
	for _, e := range first.denseEntities {
		ok := true
		for _, k := range kinds[1:] {
			if !w.stores[k.ID()].Has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
