package core

import (
	"context"
	"fmt"

	"reactorcore/pkg/domain"
)

// Facility is the batch-cycle engine of one simulated production facility.
// It owns three assembly buffers, the metadata index, and the cycle counters,
// and advances them step-synchronously: the driver calls, in order per step,
// ApplyChanges, BeginStep, Requests, AcceptTrades/SupplyTrades (after the
// exchange phase), Bids, and EndStep. Nothing inside blocks or suspends.
type Facility struct {
	cfg domain.Config

	fresh *Buffer
	core  *Buffer
	spent *Buffer
	index *AssemblyIndex

	// Working copies of the scheduled-change targets. The originals in cfg
	// stay untouched so snapshots can distinguish configured from current.
	prefs      []float64
	inRecipes  []string
	outRecipes []string

	cycleStep  int
	discharged bool

	composer domain.Composer
	recorder domain.Recorder
	logger   Logger
}

// Option configures a Facility at construction.
type Option func(*Facility)

// WithRecorder installs the audit/recording sink.
func WithRecorder(r domain.Recorder) Option {
	return func(f *Facility) { f.recorder = r }
}

// WithComposer installs the recipe resolver. The default resolver returns the
// recipe name itself as the composition tag.
func WithComposer(c domain.Composer) Option {
	return func(f *Facility) { f.composer = c }
}

// WithLogger installs a diagnostic logger.
func WithLogger(l Logger) Option {
	return func(f *Facility) { f.logger = l }
}

// WithSnapshot seeds buffer, index, and cycle state from a snapshot. Test
// fixtures and restarts both use this instead of reaching into the buffers.
func WithSnapshot(snap domain.Snapshot) Option {
	return func(f *Facility) { f.Restore(snap) }
}

// New validates the configuration and constructs a facility. A configuration
// error aborts the facility's participation in the simulation.
func New(cfg domain.Config, opts ...Option) (*Facility, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()

	f := &Facility{
		cfg:        cfg,
		fresh:      NewBuffer("fresh", cfg.NAssemFresh),
		core:       NewBuffer("core", cfg.NAssemCore),
		spent:      NewBuffer("spent", cfg.NAssemSpent),
		index:      NewAssemblyIndex(),
		prefs:      append([]float64(nil), cfg.FuelPrefs...),
		inRecipes:  append([]string(nil), cfg.FuelInRecipes...),
		outRecipes: append([]string(nil), cfg.FuelOutRecipes...),
		composer:   domain.ComposerFunc(func(recipe string) (string, error) { return recipe, nil }),
		logger:     noopLogger{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name returns the facility's configured name.
func (f *Facility) Name() string { return f.cfg.Facility }

// Config returns the facility configuration as validated at construction.
func (f *Facility) Config() domain.Config { return f.cfg }

// PowerName returns the configured output-signal name.
func (f *Facility) PowerName() string { return f.cfg.PowerName }

// PowerCap returns the configured full-capacity output magnitude.
func (f *Facility) PowerCap() float64 { return f.cfg.PowerCap }

// CycleStep returns the counter of steps since the last reload completed.
func (f *Facility) CycleStep() int { return f.cycleStep }

// Discharged reports whether the current cycle's batch has been discharged.
func (f *Facility) Discharged() bool { return f.discharged }

// FreshCount returns the fresh buffer inventory.
func (f *Facility) FreshCount() int { return f.fresh.Count() }

// CoreCount returns the core buffer inventory.
func (f *Facility) CoreCount() int { return f.core.Count() }

// SpentCount returns the spent buffer inventory.
func (f *Facility) SpentCount() int { return f.spent.Count() }

// Lookup returns the metadata recorded for a resident assembly.
func (f *Facility) Lookup(id string) (FuelSpec, error) {
	return f.index.Lookup(id)
}

func (f *Facility) coreFull() bool {
	return f.core.Count() == f.cfg.NAssemCore
}

// fuelSpecFor resolves the current fuel pairing for an input commodity. The
// result is frozen into the index when a unit is accepted.
func (f *Facility) fuelSpecFor(commodity string) (FuelSpec, error) {
	for j, c := range f.cfg.FuelInCommods {
		if c == commodity {
			return FuelSpec{
				InCommodity:  c,
				OutCommodity: f.cfg.FuelOutCommods[j],
				InRecipe:     f.inRecipes[j],
				OutRecipe:    f.outRecipes[j],
				Preference:   f.prefs[j],
			}, nil
		}
	}
	return FuelSpec{}, fmt.Errorf("facility %q: received unsupported commodity %q", f.cfg.Facility, commodity)
}

func (f *Facility) record(ctx context.Context, t int, name, value string) {
	f.logger.Debug("facility event",
		"facility", f.cfg.Facility, "time", t, "event", name, "value", value)
	if f.recorder != nil {
		f.recorder.Event(ctx, Event{Facility: f.cfg.Facility, Time: t, Name: name, Value: value})
	}
}

func (f *Facility) signal(ctx context.Context, t int, value float64) {
	if f.recorder != nil {
		f.recorder.Signal(ctx, Signal{
			Facility: f.cfg.Facility, Time: t, Name: f.cfg.PowerName, Value: value,
		})
	}
}

// stepError wraps an invariant breach with full facility context so the run
// can halt with enough information to diagnose it.
func (f *Facility) stepError(t int, err error) error {
	return fmt.Errorf("facility %q step %d (fresh=%d core=%d spent=%d cycle_step=%d): %w",
		f.cfg.Facility, t, f.fresh.Count(), f.core.Count(), f.spent.Count(), f.cycleStep, err)
}

// Snapshot captures the facility's complete persistable state.
func (f *Facility) Snapshot(t int) Snapshot {
	return Snapshot{
		Facility:   f.cfg.Facility,
		Time:       t,
		CycleStep:  f.cycleStep,
		Discharged: f.discharged,
		Fresh:      f.fresh.Peek(),
		Core:       f.core.Peek(),
		Spent:      f.spent.Peek(),
		Index:      f.index.Export(),
		Prefs:      append([]float64(nil), f.prefs...),
		InRecipes:  append([]string(nil), f.inRecipes...),
		OutRecipes: append([]string(nil), f.outRecipes...),
	}
}

// Restore replaces buffer inventories, metadata, working arrays, and cycle
// counters with the snapshot's contents.
func (f *Facility) Restore(snap Snapshot) {
	f.fresh = NewBuffer("fresh", f.cfg.NAssemFresh)
	f.core = NewBuffer("core", f.cfg.NAssemCore)
	f.spent = NewBuffer("spent", f.cfg.NAssemSpent)
	f.fresh.items = append(f.fresh.items, snap.Fresh...)
	f.core.items = append(f.core.items, snap.Core...)
	f.spent.items = append(f.spent.items, snap.Spent...)
	f.index.Import(snap.Index)
	if len(snap.Prefs) == len(f.prefs) {
		f.prefs = append([]float64(nil), snap.Prefs...)
	}
	if len(snap.InRecipes) == len(f.inRecipes) {
		f.inRecipes = append([]string(nil), snap.InRecipes...)
	}
	if len(snap.OutRecipes) == len(f.outRecipes) {
		f.outRecipes = append([]string(nil), snap.OutRecipes...)
	}
	f.cycleStep = snap.CycleStep
	f.discharged = snap.Discharged
}
