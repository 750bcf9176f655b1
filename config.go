package manifest

import "github.com/TheBitDrifter/table"

// Config holds global configuration for the table system
var Config config = config{}

type config struct {
	tableEvents           table.TableEvents
	initialEntityCapacity int
}

// SetTableEvents configures the table event callbacks
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetInitialEntityCapacity preallocates id slots in worlds created afterwards,
// so early entity creation skips slot growth.
func (c *config) SetInitialEntityCapacity(n int) {
	c.initialEntityCapacity = n
}
