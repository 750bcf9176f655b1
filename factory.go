package manifest

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewWorld(schema table.Schema) World {
	return newWorld(schema)
}

func (f factory) NewCursor(filter Filter, w World) *Cursor {
	return newCursor(filter, w)
}
