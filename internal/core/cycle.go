package core

import (
	"context"
	"fmt"
)

// BeginStep runs the front half of the per-step algorithm, before the
// exchange phase: transmutation at end of cycle, then the discharge attempt,
// then reload from fresh. A step with a non-full core does nothing here but
// accumulate. Returned errors are invariant breaches and halt the run;
// discharge failure from a full spent buffer is not an error.
//
// Re-running BeginStep for the same step cannot double-discharge: the
// discharged latch blocks the second attempt, and cycleStep only advances in
// EndStep, so transmutation re-targets the same cohort with the same recipe.
func (f *Facility) BeginStep(ctx context.Context, t int) error {
	if f.cycleStep == f.cfg.CycleTime {
		if err := f.transmute(ctx, t); err != nil {
			return f.stepError(t, err)
		}
	}
	if f.cycleStep >= f.cfg.CycleTime && !f.discharged {
		ok, err := f.discharge(ctx, t)
		if err != nil {
			return f.stepError(t, err)
		}
		f.discharged = ok
	}
	if f.cycleStep >= f.cfg.CycleTime {
		if err := f.load(ctx, t); err != nil {
			return f.stepError(t, err)
		}
	}
	if f.cycleStep == f.cfg.CycleTime {
		f.record(ctx, t, EventCycleEnd, "")
	}
	return nil
}

// EndStep runs the back half of the per-step algorithm, after trade
// settlement: cycle reset once the core is full again past the refuel window,
// the cycle-start event, the output signal for this step, and the counter
// advance. The counter does not advance while a freshly deployed facility
// waits for its first full core.
func (f *Facility) EndStep(ctx context.Context, t int) {
	if f.cycleStep >= f.cfg.CycleTime+f.cfg.RefuelTime && f.coreFull() {
		f.discharged = false
		f.cycleStep = 0
	}

	if f.cycleStep == 0 && f.coreFull() {
		f.record(ctx, t, EventCycleStart, "")
	}

	if f.cycleStep >= 0 && f.cycleStep < f.cfg.CycleTime && f.coreFull() {
		f.signal(ctx, t, f.cfg.PowerCap)
	} else {
		f.signal(ctx, t, 0)
	}

	if f.cycleStep > 0 || f.coreFull() {
		f.cycleStep++
	}
}

// transmute invokes composition transformation on the oldest batch in core.
// Safe to assume a full core: transmutation only fires at cycle end, and the
// cycle only starts on a full core.
func (f *Facility) transmute(ctx context.Context, t int) error {
	old, err := f.core.PopN(f.cfg.NAssemBatch)
	if err != nil {
		return err
	}
	tail, err := f.core.PopN(f.core.Count())
	if err != nil {
		return err
	}

	for i := range old {
		spec, err := f.index.Lookup(old[i].ID)
		if err != nil {
			return err
		}
		comp, err := f.composer.Composition(spec.OutRecipe)
		if err != nil {
			return fmt.Errorf("resolve recipe %q: %w", spec.OutRecipe, err)
		}
		old[i].Transmute(comp)
	}

	if err := f.core.Push(old...); err != nil {
		return err
	}
	if err := f.core.Push(tail...); err != nil {
		return err
	}

	f.record(ctx, t, EventTransmute, fmt.Sprintf("%d assemblies", len(old)))
	return nil
}

// discharge moves up to one batch from core into spent. A spent buffer
// without room for a full batch is a soft failure: recorded, retried next
// step, never surfaced to the caller.
func (f *Facility) discharge(ctx context.Context, t int) (bool, error) {
	if !f.spent.Has(f.cfg.NAssemBatch) {
		f.record(ctx, t, EventDischarge, DischargeFailed)
		return false, nil
	}

	npop := min(f.cfg.NAssemBatch, f.core.Count())
	batch, err := f.core.PopN(npop)
	if err != nil {
		return false, err
	}
	if err := f.spent.Push(batch...); err != nil {
		return false, err
	}

	f.record(ctx, t, EventDischarge, fmt.Sprintf("%d assemblies", npop))
	return true, nil
}

// load moves as many fresh assemblies into core as fit. Partial reloads are
// normal when fresh inventory is scarce.
func (f *Facility) load(ctx context.Context, t int) error {
	n := min(f.cfg.NAssemCore-f.core.Count(), f.fresh.Count())
	if n == 0 {
		return nil
	}

	batch, err := f.fresh.PopN(n)
	if err != nil {
		return err
	}
	if err := f.core.Push(batch...); err != nil {
		return err
	}

	f.record(ctx, t, EventLoad, fmt.Sprintf("%d assemblies", n))
	return nil
}
