package manifest

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

var _ World = &world{}

type world struct {
	locked     int
	schema     table.Schema
	entryIndex table.EntryIndex
	registry   componentRegistry
	archetypes *archetypes
	opQueue    opQueue
	entities   []entity
}

type archetypes struct {
	nextID           archetypeID
	asSlice          []archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func newWorld(schema table.Schema) *world {
	archetypes := &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
	}
	return &world{
		archetypes: archetypes,
		schema:     schema,
		entryIndex: table.Factory.NewEntryIndex(),
		registry:   newComponentRegistry(),
		opQueue:    newOpQueue(),
		entities:   make([]entity, 0, Config.initialEntityCapacity),
	}
}

// Entity resolves an id to its live handle. Ids outside the slot range report
// OutOfRangeError; slots whose entity was destroyed report StaleEntityError.
func (w *world) Entity(id int) (Entity, error) {
	if err := w.checkRange(id); err != nil {
		return nil, err
	}
	if w.slotEntry(id) == nil {
		return nil, StaleEntityError{ID: id}
	}
	return &w.entities[id-1], nil
}

func (w *world) checkRange(id int) error {
	if id < 1 || id > len(w.entities) {
		return OutOfRangeError{ID: id, Size: len(w.entities)}
	}
	return nil
}

// slotEntry returns the live entry for an in-range id, or nil when the slot is
// empty or its entry was recycled. Callers must checkRange first.
func (w *world) slotEntry(id int) table.Entry {
	en := &w.entities[id-1]
	if en.Entry == nil || en.ID() == 0 {
		return nil
	}
	return en.Entry
}

// liveEntry combines the range and liveness checks for mutation paths.
func (w *world) liveEntry(id int) (table.Entry, error) {
	if err := w.checkRange(id); err != nil {
		return nil, err
	}
	entry := w.slotEntry(id)
	if entry == nil {
		return nil, StaleEntityError{ID: id}
	}
	return entry, nil
}

func (w *world) NewEntities(n int, components ...Component) ([]Entity, error) {
	if w.Locked() {
		return nil, LockedWorldError{}
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("cannot create entities without at least one component")
	}
	var entityMask mask.Mask
	for _, component := range components {
		w.schema.Register(component)
		entityMask.Mark(w.schema.RowIndexFor(component))
	}
	arch, err := w.archetypeFor(entityMask, components...)
	if err != nil {
		return nil, err
	}
	entries, err := arch.table.NewEntries(n)
	if err != nil {
		return nil, err
	}
	created := make([]Entity, len(entries))
	for i, entry := range entries {
		// Slots are indexed by entry id so recycled ids land back in their
		// original slot.
		id := int(entry.ID())
		w.growTo(id)
		slot := &w.entities[id-1]
		*slot = entity{w: w, Entry: entry}
		created[i] = slot
	}
	return created, nil
}

func (w *world) growTo(size int) {
	if size <= len(w.entities) {
		return
	}
	if cap(w.entities) < size {
		// Grow by doubling or to the needed size, whichever is larger
		newCap := max(size, 2*cap(w.entities))
		grown := make([]entity, len(w.entities), newCap)
		copy(grown, w.entities)
		w.entities = grown
	}
	w.entities = w.entities[:size]
}

// archetypeByMask looks up an existing archetype without creating one.
func (w *world) archetypeByMask(m mask.Mask) (archetype, bool) {
	id, found := w.archetypes.idsGroupedByMask[m]
	if !found {
		return archetype{}, false
	}
	return w.archetypes.asSlice[id-1], true
}

func (w *world) createArchetype(m mask.Mask, components ...Component) (archetype, error) {
	created, err := newArchetype(w.schema, w.entryIndex, w.archetypes.nextID, components...)
	if err != nil {
		return archetype{}, err
	}
	w.archetypes.asSlice = append(w.archetypes.asSlice, created)
	w.archetypes.idsGroupedByMask[m] = w.archetypes.nextID
	w.archetypes.nextID++
	return created, nil
}

func (w *world) archetypeFor(m mask.Mask, components ...Component) (archetype, error) {
	if arch, found := w.archetypeByMask(m); found {
		return arch, nil
	}
	return w.createArchetype(m, components...)
}

// moveEntity transfers an entry into the archetype identified by destMask,
// creating it from components on first use.
func (w *world) moveEntity(entry table.Entry, destMask mask.Mask, components ...Component) error {
	dest, err := w.archetypeFor(destMask, components...)
	if err != nil {
		return fmt.Errorf("failed to get/create archetype: %w", err)
	}
	if err := entry.Table().TransferEntries(dest.table, entry.Index()); err != nil {
		return fmt.Errorf("failed to transfer entity: %w", err)
	}
	return nil
}

func (w *world) RowIndexFor(c Component) uint32 {
	return w.schema.RowIndexFor(c)
}

// EntityCount reports the number of live entities across all archetypes.
func (w *world) EntityCount() int {
	total := 0
	for _, arch := range w.archetypes.asSlice {
		total += arch.table.Length()
	}
	return total
}

func (w *world) Locked() bool {
	return w.locked > 0
}

// Lock and Unlock nest. The operation queue drains when the last lock
// releases; a queued operation that fails at that point panics, since Unlock
// has no way to report it.
func (w *world) Lock() {
	w.locked++
}

func (w *world) Unlock() {
	if w.locked == 0 {
		return
	}
	w.locked--
	if w.locked > 0 {
		return
	}
	if err := w.processOperationQueue(); err != nil {
		panic(err)
	}
}

func (w *world) EnqueueNewEntities(amount int, components ...Component) error {
	if !w.Locked() {
		_, err := w.NewEntities(amount, components...)
		if err != nil {
			return fmt.Errorf("failed to create entities directly: %w", err)
		}
		return nil
	}
	w.opQueue.createOps = append(w.opQueue.createOps, operation{
		typ:    opCreate,
		amount: amount,
		comps:  components,
	})
	return nil
}

func (w *world) DestroyEntities(entities ...Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	tableGroups := make(map[table.Table][]int)
	var ids []int
	for _, en := range entities {
		if en == nil || en.ID() == 0 {
			continue
		}
		id := int(en.ID())
		tableGroups[en.Table()] = append(tableGroups[en.Table()], id)
		ids = append(ids, id)
	}
	for tbl, group := range tableGroups {
		if _, err := tbl.DeleteEntries(group...); err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
	}
	// Ids were captured before deletion; the table may have already recycled
	// the entries in place.
	for _, id := range ids {
		if id <= len(w.entities) {
			w.entities[id-1] = entity{}
		}
	}
	return nil
}

func (w *world) EnqueueDestroyEntities(entities ...Entity) error {
	if !w.Locked() {
		return w.DestroyEntities(entities...)
	}
	w.opQueue.EnqueueDestroy(entities)
	return nil
}
