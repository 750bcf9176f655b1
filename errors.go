package manifest

import "fmt"

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

type OutOfRangeError struct {
	ID   int
	Size int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("entity id %d is out of range (world holds %d slots)", e.ID, e.Size)
}

type StaleEntityError struct {
	ID int
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("entity id %d is not alive", e.ID)
}

type NotMergeableError struct {
	TypeName string
}

func (e NotMergeableError) Error() string {
	return fmt.Sprintf("component type %s does not support merging", e.TypeName)
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %T", e.Component)
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %T", e.Component)
}
