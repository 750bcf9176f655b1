package manifest

import (
	"github.com/TheBitDrifter/mask"
)

// Filter matches archetypes by component presence: every include component is
// required and no exclude component may be present. The zero filter matches
// everything.
type Filter struct {
	include []Component
	exclude []Component
}

func NewFilter(components ...Component) Filter {
	return Filter{include: components}
}

// Without returns a copy of the filter that also rejects archetypes carrying
// any of the given components.
func (f Filter) Without(components ...Component) Filter {
	excluded := make([]Component, 0, len(f.exclude)+len(components))
	excluded = append(excluded, f.exclude...)
	excluded = append(excluded, components...)
	return Filter{include: f.include, exclude: excluded}
}

func (f Filter) match(arch archetype, w *world) bool {
	// Build masks at evaluation time
	archeMask := arch.table.(mask.Maskable).Mask()

	var required mask.Mask
	for _, comp := range f.include {
		bit := w.schema.RowIndexFor(comp)
		required.Mark(bit)
	}
	if !archeMask.ContainsAll(required) {
		return false
	}

	if len(f.exclude) > 0 {
		var rejected mask.Mask
		for _, comp := range f.exclude {
			bit := w.schema.RowIndexFor(comp)
			rejected.Mark(bit)
		}
		if archeMask.ContainsAny(rejected) {
			return false
		}
	}
	return true
}
