package domain

import "fmt"

// CapacityError reports a push that would exceed a buffer's capacity. Under a
// correctly sized request builder this cannot happen; callers treat it as an
// invariant breach, not a recoverable condition.
type CapacityError struct {
	Buffer   string
	Capacity int
	Count    int
	Pushed   int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("buffer %s: push of %d exceeds capacity %d (holding %d)",
		e.Buffer, e.Pushed, e.Capacity, e.Count)
}

// InventoryError reports a pop of more assemblies than a buffer holds.
type InventoryError struct {
	Buffer string
	Count  int
	Popped int
}

func (e InventoryError) Error() string {
	return fmt.Sprintf("buffer %s: pop of %d exceeds inventory %d", e.Buffer, e.Popped, e.Count)
}

// NotIndexedError reports a metadata lookup for an identity absent from the
// assembly index. It indicates a unit moved between buffers without being
// indexed and is fatal to the simulation run.
type NotIndexedError struct {
	ID string
}

func (e NotIndexedError) Error() string {
	return fmt.Sprintf("assembly %s has no metadata record", e.ID)
}
