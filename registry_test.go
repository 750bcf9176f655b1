package manifest

import (
	"testing"

	"github.com/TheBitDrifter/table"
)

// TestComponentInterning tests per-world component identity caching
func TestComponentInterning(t *testing.T) {
	w := newWorld(table.Factory.NewSchema())

	first := ComponentFor[Position](w)
	second := ComponentFor[Position](w)
	if first != second {
		t.Errorf("ComponentFor returned distinct identities for one type")
	}
	if got := len(w.registry.components); got != 1 {
		t.Errorf("Registry holds %d components, want 1", got)
	}
	if w.RowIndexFor(first) != w.RowIndexFor(second) {
		t.Errorf("Interned identities occupy different schema rows")
	}

	ComponentFor[Velocity](w)
	if got := len(w.registry.components); got != 2 {
		t.Errorf("Registry holds %d components, want 2", got)
	}

	// Registration order is per world, so row indices are too
	other := newWorld(table.Factory.NewSchema())
	otherVel := ComponentFor[Velocity](other)
	otherPos := ComponentFor[Position](other)
	if got := other.RowIndexFor(otherVel); got != 0 {
		t.Errorf("First registered row = %d, want 0", got)
	}
	if got := other.RowIndexFor(otherPos); got != 1 {
		t.Errorf("Second registered row = %d, want 1", got)
	}
}

// TestMapperInterning tests per-world mapper caching
func TestMapperInterning(t *testing.T) {
	w := newWorld(table.Factory.NewSchema())

	first := NewMapper[Position](w)
	second := NewMapper[Position](w)
	if first != second {
		t.Errorf("NewMapper returned distinct mappers for one type")
	}

	NewMapper[Velocity](w)
	if got := len(w.registry.mappers); got != 2 {
		t.Errorf("Registry holds %d mappers, want 2", got)
	}

	// The mapper's component identity is the interned one
	posComp := ComponentFor[Position](w)
	if first.Component() != posComp {
		t.Errorf("Mapper component identity differs from ComponentFor")
	}
}
