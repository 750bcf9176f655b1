package manifest

import "github.com/TheBitDrifter/table"

// flyweight is a reusable entity handle: a bare id resolved against the world
// at use time. Each mapper owns exactly one and overwrites its id before every
// program application, so addressing an entity never allocates. The id is only
// meaningful for the duration of a single call.
type flyweight struct {
	w  *world
	id int
}

// live resolves the current id to its table entry.
func (f *flyweight) live() (table.Entry, error) {
	return f.w.liveEntry(f.id)
}
