package core

import "reactorcore/pkg/domain"

// AssemblyIndex is the authoritative mapping from assembly identity to the
// fuel pairing metadata recorded at acceptance. Records never change while a
// unit is resident; they are erased when the unit permanently leaves the
// system.
type AssemblyIndex struct {
	recs map[string]FuelSpec
}

// NewAssemblyIndex constructs an empty index.
func NewAssemblyIndex() *AssemblyIndex {
	return &AssemblyIndex{recs: make(map[string]FuelSpec)}
}

// Record inserts or overwrites the metadata for an identity.
func (ix *AssemblyIndex) Record(id string, spec FuelSpec) {
	ix.recs[id] = spec
}

// Lookup returns the metadata recorded for an identity.
func (ix *AssemblyIndex) Lookup(id string) (FuelSpec, error) {
	spec, ok := ix.recs[id]
	if !ok {
		return FuelSpec{}, domain.NotIndexedError{ID: id}
	}
	return spec, nil
}

// Erase removes the record for an identity. Erasing an absent identity is a
// no-op.
func (ix *AssemblyIndex) Erase(id string) {
	delete(ix.recs, id)
}

// Len returns the number of recorded identities.
func (ix *AssemblyIndex) Len() int { return len(ix.recs) }

// Export returns a copy of all records, keyed by identity.
func (ix *AssemblyIndex) Export() map[string]FuelSpec {
	out := make(map[string]FuelSpec, len(ix.recs))
	for id, spec := range ix.recs {
		out[id] = spec
	}
	return out
}

// Import replaces the index contents with the supplied records.
func (ix *AssemblyIndex) Import(recs map[string]FuelSpec) {
	ix.recs = make(map[string]FuelSpec, len(recs))
	for id, spec := range recs {
		ix.recs[id] = spec
	}
}
