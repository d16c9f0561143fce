package domain

import (
	"fmt"
	"strings"
)

// DefaultPowerName is the output-signal name used when a config omits one.
const DefaultPowerName = "power"

// Config is the full facility-scoped configuration surface. Fuel pairings and
// scheduled changes are parallel lists, index-aligned the way the input format
// delivers them; Validate rejects unequal lengths before any list is consumed.
type Config struct {
	// Facility names the facility instance for events and signals.
	Facility string `json:"facility" yaml:"facility"`

	// AssemSize is the nominal quantity of a single assembly.
	AssemSize float64 `json:"assem_size" yaml:"assem_size"`

	// NAssemBatch is the number of assemblies moved together during
	// transmutation, discharge, and reload.
	NAssemBatch int `json:"n_assem_batch" yaml:"n_assem_batch"`
	// NAssemCore is the capacity of the core buffer in assemblies.
	NAssemCore int `json:"n_assem_core" yaml:"n_assem_core"`
	// NAssemFresh is the target size of the fresh (pre-core staging) buffer.
	NAssemFresh int `json:"n_assem_fresh" yaml:"n_assem_fresh"`
	// NAssemSpent is the capacity of the spent buffer. Zero or negative means
	// unbounded.
	NAssemSpent int `json:"n_assem_spent" yaml:"n_assem_spent"`

	// CycleTime is the number of steps of active processing per cycle.
	CycleTime int `json:"cycle_time" yaml:"cycle_time"`
	// RefuelTime is the duration of the reload window in steps.
	RefuelTime int `json:"refuel_time" yaml:"refuel_time"`

	// Fuel pairings, index-aligned across the four lists. FuelPrefs may be
	// omitted entirely; it then defaults to zero for every pairing.
	FuelInCommods  []string  `json:"fuel_incommods" yaml:"fuel_incommods"`
	FuelInRecipes  []string  `json:"fuel_inrecipes" yaml:"fuel_inrecipes"`
	FuelOutCommods []string  `json:"fuel_outcommods" yaml:"fuel_outcommods"`
	FuelOutRecipes []string  `json:"fuel_outrecipes" yaml:"fuel_outrecipes"`
	FuelPrefs      []float64 `json:"fuel_prefs" yaml:"fuel_prefs"`

	// PowerCap is the output-signal magnitude emitted while the full core is
	// cycling. PowerName defaults to DefaultPowerName.
	PowerCap  float64 `json:"power_cap" yaml:"power_cap"`
	PowerName string  `json:"power_name" yaml:"power_name"`

	// Scheduled preference changes, index-aligned columns.
	PrefChangeTimes   []int     `json:"pref_change_times" yaml:"pref_change_times"`
	PrefChangeCommods []string  `json:"pref_change_commods" yaml:"pref_change_commods"`
	PrefChangeValues  []float64 `json:"pref_change_values" yaml:"pref_change_values"`

	// Scheduled recipe-pair changes, index-aligned columns.
	RecipeChangeTimes   []int    `json:"recipe_change_times" yaml:"recipe_change_times"`
	RecipeChangeCommods []string `json:"recipe_change_commods" yaml:"recipe_change_commods"`
	RecipeChangeIn      []string `json:"recipe_change_in" yaml:"recipe_change_in"`
	RecipeChangeOut     []string `json:"recipe_change_out" yaml:"recipe_change_out"`
}

// ConfigError aggregates every parallel-list mismatch found during setup.
// Configuration errors are fatal to the facility and are never silently
// truncated away.
type ConfigError struct {
	Facility string
	Issues   []string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("facility %q configuration invalid:\n%s", e.Facility, strings.Join(e.Issues, "\n"))
}

// Validate checks structural consistency. It reports all issues at once so a
// bad input file surfaces every mismatch in a single pass.
func (c Config) Validate() error {
	var issues []string
	mismatch := func(name string, got, want int) {
		issues = append(issues, fmt.Sprintf("has %d %s vals, expected %d", got, name, want))
	}

	n := len(c.FuelInCommods)
	if n == 0 {
		issues = append(issues, "has no fuel_incommods")
	}
	if len(c.FuelInRecipes) != n {
		mismatch("fuel_inrecipes", len(c.FuelInRecipes), n)
	}
	if len(c.FuelOutCommods) != n {
		mismatch("fuel_outcommods", len(c.FuelOutCommods), n)
	}
	if len(c.FuelOutRecipes) != n {
		mismatch("fuel_outrecipes", len(c.FuelOutRecipes), n)
	}
	if len(c.FuelPrefs) != 0 && len(c.FuelPrefs) != n {
		mismatch("fuel_prefs", len(c.FuelPrefs), n)
	}

	n = len(c.PrefChangeTimes)
	if len(c.PrefChangeCommods) != n {
		mismatch("pref_change_commods", len(c.PrefChangeCommods), n)
	}
	if len(c.PrefChangeValues) != n {
		mismatch("pref_change_values", len(c.PrefChangeValues), n)
	}

	n = len(c.RecipeChangeTimes)
	if len(c.RecipeChangeCommods) != n {
		mismatch("recipe_change_commods", len(c.RecipeChangeCommods), n)
	}
	if len(c.RecipeChangeIn) != n {
		mismatch("recipe_change_in", len(c.RecipeChangeIn), n)
	}
	if len(c.RecipeChangeOut) != n {
		mismatch("recipe_change_out", len(c.RecipeChangeOut), n)
	}

	if c.AssemSize <= 0 {
		issues = append(issues, "assem_size must be positive")
	}
	if c.NAssemBatch <= 0 {
		issues = append(issues, "n_assem_batch must be positive")
	}
	if c.NAssemCore < c.NAssemBatch {
		issues = append(issues, "n_assem_core must be at least n_assem_batch")
	}
	if c.CycleTime <= 0 {
		issues = append(issues, "cycle_time must be positive")
	}
	if c.RefuelTime < 0 {
		issues = append(issues, "refuel_time must not be negative")
	}

	if len(issues) > 0 {
		return ConfigError{Facility: c.Facility, Issues: issues}
	}
	return nil
}

// Normalized returns a copy with defaults applied: zero preferences for every
// pairing when fuel_prefs was omitted, and the default output-signal name.
func (c Config) Normalized() Config {
	out := c
	if len(out.FuelPrefs) == 0 {
		out.FuelPrefs = make([]float64, len(out.FuelInCommods))
	}
	if out.PowerName == "" {
		out.PowerName = DefaultPowerName
	}
	return out
}

// SpentUnbounded reports whether the spent buffer has no capacity limit.
func (c Config) SpentUnbounded() bool {
	return c.NAssemSpent <= 0
}
