package core

import (
	"fmt"

	"reactorcore/pkg/domain"
)

// CheckInvariants evaluates the facility's structural invariants and returns
// every violation found. The invariants hold by construction; any blocking
// violation means the engine itself is broken, and callers should halt the
// run rather than continue on corrupted state.
func (f *Facility) CheckInvariants() []Violation {
	var viols []Violation
	block := func(rule, format string, args ...any) {
		viols = append(viols, Violation{
			Rule:     rule,
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, b := range []*Buffer{f.fresh, f.core, f.spent} {
		if b.Capacity() > 0 && b.Count() > b.Capacity() {
			block("buffer_capacity", "buffer %s holds %d, capacity %d", b.Name(), b.Count(), b.Capacity())
		}
	}

	// Exclusive custody: an identity appears in at most one buffer, once.
	seen := make(map[string]string)
	for _, b := range []*Buffer{f.fresh, f.core, f.spent} {
		for _, m := range b.Peek() {
			if prev, dup := seen[m.ID]; dup {
				block("exclusive_custody", "assembly %s present in %s and %s", m.ID, prev, b.Name())
			}
			seen[m.ID] = b.Name()
		}
	}

	// Every resident assembly has exactly one metadata record.
	for id, name := range seen {
		if _, err := f.index.Lookup(id); err != nil {
			block("index_coverage", "assembly %s in buffer %s has no metadata record", id, name)
		}
	}
	// Records without a resident assembly are garbage awaiting a leak.
	for id := range f.index.Export() {
		if _, ok := seen[id]; !ok {
			viols = append(viols, Violation{
				Rule:     "index_garbage",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("metadata record for %s has no resident assembly", id),
			})
		}
	}

	return viols
}
