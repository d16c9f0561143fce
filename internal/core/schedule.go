package core

// ApplyChanges applies every scheduled preference and recipe change whose
// time equals the current step, in list order. A change targets the position
// of its commodity in the input-commodity list; changes never remove or
// reorder commodities, and prior values are not recoverable once overwritten.
// Exact time matching makes each entry fire at most once per run.
func (f *Facility) ApplyChanges(t int) {
	for i, changeT := range f.cfg.PrefChangeTimes {
		if changeT != t {
			continue
		}
		if j := f.commodIndex(f.cfg.PrefChangeCommods[i]); j >= 0 {
			f.prefs[j] = f.cfg.PrefChangeValues[i]
			f.logger.Info("preference change applied",
				"facility", f.cfg.Facility, "time", t,
				"commodity", f.cfg.PrefChangeCommods[i], "value", f.cfg.PrefChangeValues[i])
		}
	}

	for i, changeT := range f.cfg.RecipeChangeTimes {
		if changeT != t {
			continue
		}
		if j := f.commodIndex(f.cfg.RecipeChangeCommods[i]); j >= 0 {
			f.inRecipes[j] = f.cfg.RecipeChangeIn[i]
			f.outRecipes[j] = f.cfg.RecipeChangeOut[i]
			f.logger.Info("recipe change applied",
				"facility", f.cfg.Facility, "time", t,
				"commodity", f.cfg.RecipeChangeCommods[i],
				"in", f.cfg.RecipeChangeIn[i], "out", f.cfg.RecipeChangeOut[i])
		}
	}
}

// commodIndex returns the position of commodity in the input-commodity list,
// or -1 when the commodity is not configured.
func (f *Facility) commodIndex(commodity string) int {
	for j, c := range f.cfg.FuelInCommods {
		if c == commodity {
			return j
		}
	}
	return -1
}
