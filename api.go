package manifest

import (
	"github.com/TheBitDrifter/table"
)

// World owns entity slots, archetypes, and the component registry.
// Structural changes (creating and destroying entities, moving them between
// archetypes) are rejected while the world is locked for iteration; the
// Enqueue variants defer them until the lock releases.
type World interface {
	Entity(id int) (Entity, error)
	NewEntities(int, ...Component) ([]Entity, error)
	EnqueueNewEntities(int, ...Component) error
	DestroyEntities(...Entity) error
	EnqueueDestroyEntities(...Entity) error
	RowIndexFor(Component) uint32
	EntityCount() int
	Locked() bool
	Lock()
	Unlock()
}

// Entity is a live handle into the world. Handles stay valid across archetype
// moves; after the entity is destroyed, ID reports zero.
type Entity interface {
	table.Entry
	AddComponent(Component) error
	RemoveComponent(Component) error
	EnqueueAddComponent(Component) error
	EnqueueRemoveComponent(Component) error
	Components() []Component
}

// Mergeable is implemented by component pointer types that can fold another
// instance's state into their own. How much state moves is up to the
// implementation; mirroring relies on this rather than overwriting wholesale.
type Mergeable[T any] interface {
	MergeFrom(other *T)
}
