package manifest

import (
	"fmt"
)

type operation struct {
	typ    operationType
	amount int
	comps  []Component
	ids    []int
}

type operationType int

const (
	opCancelled operationType = iota - 1
	opCreate
	opDestroy
	opAddComponent
	opRemoveComponent
)

// opQueue buffers structural operations made while the world is locked.
// Each entity holds at most one pending component operation (the last one
// enqueued wins), and a pending destroy cancels its component operation.
type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[int]struct{}
	pendingMods    map[int]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[int]struct{}),
		pendingMods:    make(map[int]int),
	}
}

// processOperationQueue drains in fixed order: creates, component
// modifications, destroys. Entities that died while the queue was pending are
// skipped.
func (w *world) processOperationQueue() error {
	q := &w.opQueue
	if len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0 {
		return nil
	}

	for _, op := range q.createOps {
		if _, err := w.NewEntities(op.amount, op.comps...); err != nil {
			return fmt.Errorf("failed to process queued entity creation: %w", err)
		}
	}

	for _, op := range q.componentOps {
		if op.typ == opCancelled {
			continue
		}
		target, err := w.Entity(op.ids[0])
		if err != nil {
			continue
		}
		switch op.typ {
		case opAddComponent:
			if err := target.AddComponent(op.comps[0]); err != nil {
				return fmt.Errorf("failed to add queued component: %w", err)
			}
		case opRemoveComponent:
			if err := target.RemoveComponent(op.comps[0]); err != nil {
				return fmt.Errorf("failed to remove queued component: %w", err)
			}
		}
	}

	for _, op := range q.destroyOps {
		var targets []Entity
		for _, id := range op.ids {
			target, err := w.Entity(id)
			if err != nil {
				continue
			}
			targets = append(targets, target)
		}
		if len(targets) > 0 {
			if err := w.DestroyEntities(targets...); err != nil {
				return fmt.Errorf("failed to delete queued entries: %w", err)
			}
		}
	}

	q.createOps = q.createOps[:0]
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
	return nil
}

func (q *opQueue) EnqueueDestroy(entities []Entity) {
	var ids []int
	for _, en := range entities {
		if en == nil || en.ID() == 0 {
			continue
		}
		id := int(en.ID())
		if _, exists := q.pendingDestroy[id]; exists {
			continue
		}
		q.pendingDestroy[id] = struct{}{}
		ids = append(ids, id)

		// A destroy cancels any pending component operation for the entity.
		if idx, hasMods := q.pendingMods[id]; hasMods {
			q.componentOps[idx].typ = opCancelled
			delete(q.pendingMods, id)
		}
	}
	if len(ids) > 0 {
		q.destroyOps = append(q.destroyOps, operation{
			typ: opDestroy,
			ids: ids,
		})
	}
}

func (q *opQueue) EnqueueComponentOp(typ operationType, id int, comp Component) {
	// Component operations for entities pending destroy are dropped.
	if _, isDestroyed := q.pendingDestroy[id]; isDestroyed {
		return
	}

	if existingIdx, exists := q.pendingMods[id]; exists {
		existing := &q.componentOps[existingIdx]
		existing.comps = []Component{comp}
		existing.typ = typ
		return
	}

	q.pendingMods[id] = len(q.componentOps)
	q.componentOps = append(q.componentOps, operation{
		typ:   typ,
		ids:   []int{id},
		comps: []Component{comp},
	})
}
