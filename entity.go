package manifest

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Entity = &entity{}

type entity struct {
	w *world
	table.Entry
}

func (e *entity) AddComponent(c Component) error {
	if e.w.Locked() {
		return LockedWorldError{}
	}
	originTable := e.Table()
	if originTable.Contains(c) {
		return ComponentExistsError{Component: c}
	}
	e.w.schema.Register(c)

	destMask := originTable.(mask.Maskable).Mask()
	destMask.Mark(e.w.schema.RowIndexFor(c))
	return e.w.moveEntity(e.Entry, destMask, componentsWith(originTable, c)...)
}

func (e *entity) RemoveComponent(c Component) error {
	if e.w.Locked() {
		return LockedWorldError{}
	}
	originTable := e.Table()
	if !originTable.Contains(c) {
		return ComponentNotFoundError{Component: c}
	}
	remaining := componentsWithout(originTable, c)
	if len(remaining) == 0 {
		return fmt.Errorf("cannot remove final component: entities need at least one component")
	}

	destMask := originTable.(mask.Maskable).Mask()
	destMask.Unmark(e.w.schema.RowIndexFor(c))
	return e.w.moveEntity(e.Entry, destMask, remaining...)
}

func (e *entity) EnqueueAddComponent(c Component) error {
	if !e.w.Locked() {
		return e.AddComponent(c)
	}
	e.w.opQueue.EnqueueComponentOp(opAddComponent, int(e.ID()), c)
	return nil
}

func (e *entity) EnqueueRemoveComponent(c Component) error {
	if !e.w.Locked() {
		return e.RemoveComponent(c)
	}
	e.w.opQueue.EnqueueComponentOp(opRemoveComponent, int(e.ID()), c)
	return nil
}

// Components reports the entity's current component set.
func (e *entity) Components() []Component {
	elementTypes := iter_util.Collect(e.Table().ElementTypes())
	components := make([]Component, len(elementTypes))
	for i, elementType := range elementTypes {
		components[i] = elementType
	}
	return components
}

// componentsWith collects the table's component set plus one addition.
func componentsWith(origin table.Table, added Component) []Component {
	existing := iter_util.Collect(origin.ElementTypes())
	combined := make([]Component, len(existing)+1)
	for i, comp := range existing {
		combined[i] = comp
	}
	combined[len(combined)-1] = added
	return combined
}

// componentsWithout collects the table's component set minus one removal.
func componentsWithout(origin table.Table, removed Component) []Component {
	existing := iter_util.Collect(origin.ElementTypes())
	remaining := make([]Component, 0, len(existing))
	for _, comp := range existing {
		if comp != removed {
			remaining = append(remaining, comp)
		}
	}
	return remaining
}
