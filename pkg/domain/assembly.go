// Package domain defines the value types, collaborator contracts, and error
// taxonomy shared by the reactorcore facility engine and its adapters.
package domain

import "github.com/google/uuid"

// Assembly is a discrete, uniquely identified unit of fuel material of
// nominally fixed size. Assemblies move whole between buffers; the core never
// splits or duplicates one.
type Assembly struct {
	ID          string  `json:"id"`
	Quantity    float64 `json:"quantity"`
	Composition string  `json:"composition"`
}

// NewAssemblyID returns a fresh globally unique assembly identity.
func NewAssemblyID() string {
	return uuid.NewString()
}

// Transmute replaces the assembly's composition tag. Target compositions are
// always resolved by the external Composer; the core only decides when and on
// which assemblies transmutation happens.
func (a *Assembly) Transmute(composition string) {
	a.Composition = composition
}

// FuelSpec captures the commodity/recipe pairing and preference an assembly
// carried at the moment it was accepted. Records are immutable for the unit's
// entire residency.
type FuelSpec struct {
	InCommodity  string  `json:"in_commodity"`
	OutCommodity string  `json:"out_commodity"`
	InRecipe     string  `json:"in_recipe"`
	OutRecipe    string  `json:"out_recipe"`
	Preference   float64 `json:"preference"`
}
