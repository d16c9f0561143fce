package core

import "reactorcore/pkg/domain"

// Buffer is an ordered, capacity-bounded collection of assemblies. Pushes
// append, pops remove from the front, so release order is always oldest
// first. A capacity of zero or less means unbounded.
//
// Buffer mutation is the only path by which assemblies change custody: an
// assembly popped from one buffer exists nowhere until it is pushed into
// another or leaves the system.
type Buffer struct {
	name     string
	capacity int
	items    []Assembly
}

// NewBuffer constructs an empty buffer.
func NewBuffer(name string, capacity int) *Buffer {
	return &Buffer{name: name, capacity: capacity}
}

// Name returns the buffer's name as used in errors and invariant reports.
func (b *Buffer) Name() string { return b.name }

// Capacity returns the configured capacity; zero or less means unbounded.
func (b *Buffer) Capacity() int { return b.capacity }

// Count returns the number of assemblies held. O(1).
func (b *Buffer) Count() int { return len(b.items) }

// Space returns the remaining room, or a negative value for unbounded
// buffers, which always have room.
func (b *Buffer) Space() int {
	if b.capacity <= 0 {
		return -1
	}
	return b.capacity - len(b.items)
}

// Has reports whether at least n more assemblies fit.
func (b *Buffer) Has(n int) bool {
	return b.capacity <= 0 || len(b.items)+n <= b.capacity
}

// Push appends assemblies preserving their order. The push is all-or-nothing:
// on a capacity breach nothing is added.
func (b *Buffer) Push(assems ...Assembly) error {
	if !b.Has(len(assems)) {
		return domain.CapacityError{
			Buffer:   b.name,
			Capacity: b.capacity,
			Count:    len(b.items),
			Pushed:   len(assems),
		}
	}
	b.items = append(b.items, assems...)
	return nil
}

// PopN removes and returns the n oldest assemblies.
func (b *Buffer) PopN(n int) ([]Assembly, error) {
	if n < 0 || n > len(b.items) {
		return nil, domain.InventoryError{Buffer: b.name, Count: len(b.items), Popped: n}
	}
	out := make([]Assembly, n)
	copy(out, b.items[:n])
	b.items = append(b.items[:0], b.items[n:]...)
	return out, nil
}

// Peek returns a copy of the buffer contents, oldest first, without moving
// custody.
func (b *Buffer) Peek() []Assembly {
	out := make([]Assembly, len(b.items))
	copy(out, b.items)
	return out
}
