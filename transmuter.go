package manifest

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

type transmuteOp int

const (
	transmuteAdd transmuteOp = iota
	transmuteRemove
)

// transmuter is a precompiled structural mutation: one component either added
// to or removed from whatever archetype an entity currently occupies. The
// destination archetype for each origin mask is resolved once and memoized,
// so repeat applications cost a map hit and a row transfer.
type transmuter struct {
	w            *world
	op           transmuteOp
	comp         Component
	bit          uint32
	destinations map[mask.Mask]archetype
	applied      uint64
}

func newTransmuter(w *world, comp Component, bit uint32, op transmuteOp) *transmuter {
	return &transmuter{
		w:            w,
		op:           op,
		comp:         comp,
		bit:          bit,
		destinations: make(map[mask.Mask]archetype),
	}
}

// apply runs the mutation against the flyweight's current entity. Entities
// already in the target state are left untouched, which is what makes the
// mapper's create and remove idempotent.
func (t *transmuter) apply(f *flyweight) error {
	entry, err := f.live()
	if err != nil {
		return err
	}
	origin := entry.Table()
	present := origin.Contains(t.comp)
	if t.op == transmuteAdd && present {
		return nil
	}
	if t.op == transmuteRemove && !present {
		return nil
	}
	if t.w.Locked() {
		return LockedWorldError{}
	}

	originMask := origin.(mask.Maskable).Mask()
	dest, memoized := t.destinations[originMask]
	if !memoized {
		destMask := originMask
		var components []Component
		if t.op == transmuteAdd {
			destMask.Mark(t.bit)
			components = componentsWith(origin, t.comp)
		} else {
			destMask.Unmark(t.bit)
			components = componentsWithout(origin, t.comp)
			if len(components) == 0 {
				return fmt.Errorf("cannot remove final component: entities need at least one component")
			}
		}
		found, err := t.w.archetypeFor(destMask, components...)
		if err != nil {
			return fmt.Errorf("failed to get/create archetype: %w", err)
		}
		dest = found
		t.destinations[originMask] = dest
	}

	if err := origin.TransferEntries(dest.table, entry.Index()); err != nil {
		return fmt.Errorf("failed to transfer entity: %w", err)
	}
	t.applied++
	return nil
}
