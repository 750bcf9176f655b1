package manifest

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// componentRegistry interns one component identity and one mapper per Go type
// within a world. Interning keeps identity comparisons valid: a component
// created twice would occupy two schema rows and break presence checks.
type componentRegistry struct {
	components map[reflect.Type]any
	mappers    map[reflect.Type]any
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{
		components: make(map[reflect.Type]any),
		mappers:    make(map[reflect.Type]any),
	}
}

// ComponentFor returns the world's component identity for T, creating and
// registering it on first use. Subsequent calls return the cached identity.
func ComponentFor[T any](w World) TypedComponent[T] {
	wld := w.(*world)
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := wld.registry.components[key]; ok {
		return cached.(TypedComponent[T])
	}
	iden := table.FactoryNewElementType[T]()
	typed := TypedComponent[T]{
		Component: iden,
		Accessor:  table.FactoryNewAccessor[T](iden),
	}
	wld.schema.Register(typed)
	wld.registry.components[key] = typed
	return typed
}
