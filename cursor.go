package manifest

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

// Cursor iterates entities across every archetype matched by a filter. The
// world is locked from the first advance until iteration finishes or Reset
// runs, so structural changes made mid-iteration must use the Enqueue
// variants. A Next loop abandoned early must call Reset to release the lock;
// ranging over Entities handles this automatically.
type Cursor struct {
	filter Filter
	world  *world

	// Current iteration state
	currentArchetype archetype
	archetypeIndex   int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized bool
	matched     []archetype
}

func newCursor(filter Filter, w World) *Cursor {
	return &Cursor{
		filter: filter,
		world:  w.(*world),
	}
}

func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.archetypeIndex < len(c.matched) {
		c.currentArchetype = c.matched[c.archetypeIndex]
		c.remaining = c.currentArchetype.table.Length()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.archetypeIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities yields each matched entity's position and backing table.
func (c *Cursor) Entities() iter.Seq2[int, table.Table] {
	return func(yield func(int, table.Table) bool) {
		if !c.initialized {
			c.initialize()
		}
		for c.archetypeIndex < len(c.matched) {
			c.currentArchetype = c.matched[c.archetypeIndex]
			c.remaining = c.currentArchetype.table.Length()

			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentArchetype.table) {
					c.Reset()
					return
				}
				c.entityIndex++
			}
			c.entityIndex = 0
			c.archetypeIndex++
		}
		c.Reset()
	}
}

// initialize snapshots the matching archetypes and takes the world lock for
// the duration of the iteration.
func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.world.Lock()
	c.matched = make([]archetype, 0)

	for _, arch := range c.world.archetypes.asSlice {
		if c.filter.match(arch, c.world) {
			c.matched = append(c.matched, arch)
		}
	}
	if len(c.matched) > 0 {
		c.archetypeIndex = 0
		c.currentArchetype = c.matched[0]
		c.remaining = c.currentArchetype.table.Length()
	}
	c.initialized = true
}

// Reset clears iteration state and releases the world lock. Resetting a
// cursor that never initialized leaves the lock count untouched.
func (c *Cursor) Reset() {
	wasInitialized := c.initialized
	c.archetypeIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matched = nil
	c.initialized = false
	if wasInitialized {
		c.world.Unlock()
	}
}

// CurrentEntity reports the cursor's position and its backing table.
func (c *Cursor) CurrentEntity() (int, table.Table) {
	return c.entityIndex, c.currentArchetype.table
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched counts the entities the filter currently matches. It inspects
// the world directly without starting an iteration, so it neither locks nor
// disturbs cursor state.
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, arch := range c.world.archetypes.asSlice {
		if c.filter.match(arch, c.world) {
			total += arch.table.Length()
		}
	}
	return total
}
