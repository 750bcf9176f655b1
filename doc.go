/*
Package manifest provides typed component mapping over an archetype-based
entity store.

Manifest keeps entities with the same component types together for optimal
cache utilization and layers id-addressed, type-safe accessors (mappers) on
top. Mappers precompile their structural mutations, so ensuring or removing a
component is idempotent and allocation-free on the hot path.

Core Concepts:

  - Entity: A unique identifier that represents an object in the world.
  - Component: A data container that defines entity attributes.
  - Mapper: Typed access to one component type; get, create, remove, mirror.
  - Filter: A way to find entities with specific component combinations.

Basic Usage:

	// Create a world with a schema
	schema := table.Factory.NewSchema()
	world := manifest.Factory.NewWorld(schema)

	// Define components
	position := manifest.ComponentFor[Position](world)
	velocity := manifest.ComponentFor[Velocity](world)

	// Create entities
	entities, _ := world.NewEntities(100, position, velocity)

	// Typed access by entity id
	positions := manifest.NewMapper[Position](world)
	pos, _ := positions.Create(int(entities[0].ID()))
	pos.X += 2

	// Iterate entities with specific components
	cursor := manifest.Factory.NewCursor(manifest.NewFilter(position, velocity), world)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}
*/
package manifest
