package manifest

import (
	"reflect"
)

// Mapper provides typed, id-addressed access to a single component type
// within one world: reads, presence checks, and idempotent create/remove
// built on precompiled mutation programs.
//
// Mappers are interned per world and type; NewMapper returns the same
// instance for repeat calls. A mapper is not safe for concurrent use, since
// its flyweight handle is shared across calls.
//
// Component pointers returned by a mapper point into archetype storage and
// stay valid only until the next structural change.
type Mapper[T any] struct {
	w             *world
	comp          TypedComponent[T]
	createProgram *transmuter
	removeProgram *transmuter
	fly           flyweight
	mergeable     bool
	typeName      string
}

// NewMapper returns the world's mapper for component type T, creating and
// caching it on first use. The component identity is interned alongside via
// ComponentFor.
func NewMapper[T any](w World) *Mapper[T] {
	wld := w.(*world)
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := wld.registry.mappers[key]; ok {
		return cached.(*Mapper[T])
	}
	comp := ComponentFor[T](w)
	bit := wld.schema.RowIndexFor(comp)
	_, mergeable := any((*T)(nil)).(Mergeable[T])
	m := &Mapper[T]{
		w:             wld,
		comp:          comp,
		createProgram: newTransmuter(wld, comp, bit, transmuteAdd),
		removeProgram: newTransmuter(wld, comp, bit, transmuteRemove),
		fly:           flyweight{w: wld},
		mergeable:     mergeable,
		typeName:      key.String(),
	}
	wld.registry.mappers[key] = m
	return m
}

// Component returns the world's interned component identity backing this
// mapper, for use with NewEntities and filters.
func (m *Mapper[T]) Component() TypedComponent[T] {
	return m.comp
}

// asFlyweight points the mapper's reusable handle at an id.
func (m *Mapper[T]) asFlyweight(id int) *flyweight {
	m.fly.id = id
	return &m.fly
}

// Get returns the component for the entity id, or nil when the entity lacks
// it. Ids outside the world's slot range report OutOfRangeError; destroyed
// entities read as absent.
func (m *Mapper[T]) Get(id int) (*T, error) {
	if err := m.w.checkRange(id); err != nil {
		return nil, err
	}
	entry := m.w.slotEntry(id)
	if entry == nil || !m.comp.Accessor.Check(entry.Table()) {
		return nil, nil
	}
	return m.comp.Get(entry.Index(), entry.Table()), nil
}

// GetSafe returns the component and a presence flag. It never fails: any id
// that cannot be resolved simply reads as absent.
func (m *Mapper[T]) GetSafe(id int) (*T, bool) {
	if m.w.checkRange(id) != nil {
		return nil, false
	}
	entry := m.w.slotEntry(id)
	if entry == nil || !m.comp.Accessor.Check(entry.Table()) {
		return nil, false
	}
	return m.comp.Get(entry.Index(), entry.Table()), true
}

// GetOr returns the component when present, otherwise the given fallback.
func (m *Mapper[T]) GetOr(id int, fallback *T) *T {
	if component, ok := m.GetSafe(id); ok {
		return component
	}
	return fallback
}

// Has reports whether the entity currently carries the component. Like
// GetSafe it never fails; out-of-range and destroyed ids report false.
func (m *Mapper[T]) Has(id int) bool {
	if m.w.checkRange(id) != nil {
		return false
	}
	entry := m.w.slotEntry(id)
	return entry != nil && m.comp.Accessor.Check(entry.Table())
}

// Create ensures the entity carries the component and returns it. When the
// component is already present it is returned untouched; the ADD program runs
// only for absent components, so calling Create repeatedly moves the entity
// at most once.
func (m *Mapper[T]) Create(id int) (*T, error) {
	if component, ok := m.GetSafe(id); ok {
		return component, nil
	}
	if err := m.createProgram.apply(m.asFlyweight(id)); err != nil {
		return nil, err
	}
	component, _ := m.GetSafe(id)
	return component, nil
}

// Remove takes the component off the entity. Removing an absent component is
// a no-op, including for destroyed and out-of-range ids.
func (m *Mapper[T]) Remove(id int) error {
	if !m.Has(id) {
		return nil
	}
	return m.removeProgram.apply(m.asFlyweight(id))
}

// Set makes the component's presence match the flag, returning the component
// when ensuring presence.
func (m *Mapper[T]) Set(id int, present bool) (*T, error) {
	if present {
		return m.Create(id)
	}
	if err := m.Remove(id); err != nil {
		return nil, err
	}
	return nil, nil
}

// Mirror copies the component's presence and state from the source entity to
// the target: a present source merges into the target's component (creating
// it first when needed), an absent or unresolvable source removes the
// target's. Only component types implementing Mergeable can mirror; all
// others report NotMergeableError.
func (m *Mapper[T]) Mirror(targetID, sourceID int) (*T, error) {
	if !m.mergeable {
		return nil, NotMergeableError{TypeName: m.typeName}
	}
	if !m.Has(sourceID) {
		if err := m.Remove(targetID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	target, err := m.Create(targetID)
	if err != nil {
		return nil, err
	}
	// The source pointer is resolved after Create; moving the target between
	// archetypes can shuffle rows within a shared origin table.
	source, _ := m.GetSafe(sourceID)
	any(target).(Mergeable[T]).MergeFrom(source)
	return target, nil
}

// GetFromEntity is Get addressed by entity handle.
func (m *Mapper[T]) GetFromEntity(e Entity) (*T, error) {
	return m.Get(int(e.ID()))
}

// GetSafeFromEntity is GetSafe addressed by entity handle.
func (m *Mapper[T]) GetSafeFromEntity(e Entity) (*T, bool) {
	return m.GetSafe(int(e.ID()))
}

// GetOrFromEntity is GetOr addressed by entity handle.
func (m *Mapper[T]) GetOrFromEntity(e Entity, fallback *T) *T {
	return m.GetOr(int(e.ID()), fallback)
}

// HasEntity is Has addressed by entity handle.
func (m *Mapper[T]) HasEntity(e Entity) bool {
	return m.Has(int(e.ID()))
}

// CreateForEntity is Create addressed by entity handle.
func (m *Mapper[T]) CreateForEntity(e Entity) (*T, error) {
	return m.Create(int(e.ID()))
}

// RemoveFromEntity is Remove addressed by entity handle.
func (m *Mapper[T]) RemoveFromEntity(e Entity) error {
	return m.Remove(int(e.ID()))
}

// SetForEntity is Set addressed by entity handle.
func (m *Mapper[T]) SetForEntity(e Entity, present bool) (*T, error) {
	return m.Set(int(e.ID()), present)
}

// MirrorEntities is Mirror addressed by entity handles.
func (m *Mapper[T]) MirrorEntities(target, source Entity) (*T, error) {
	return m.Mirror(int(target.ID()), int(source.ID()))
}
