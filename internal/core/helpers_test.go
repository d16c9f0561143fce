package core

import (
	"context"
	"fmt"
	"testing"

	recmemory "reactorcore/internal/infra/recording/memory"
	"reactorcore/pkg/domain"
)

// testConfig is a small single-pairing facility: three-assembly core, one
// assembly per batch, two steps of cycling and one refuel step.
func testConfig() domain.Config {
	return domain.Config{
		Facility:       "unit1",
		AssemSize:      10,
		NAssemBatch:    1,
		NAssemCore:     3,
		NAssemFresh:    2,
		NAssemSpent:    10,
		CycleTime:      2,
		RefuelTime:     1,
		FuelInCommods:  []string{"uox"},
		FuelInRecipes:  []string{"fresh_uox"},
		FuelOutCommods: []string{"waste"},
		FuelOutRecipes: []string{"spent_uox"},
		FuelPrefs:      []float64{1},
		PowerCap:       100,
	}
}

func newTestFacility(t *testing.T, cfg domain.Config, opts ...Option) (*Facility, *recmemory.Recorder) {
	t.Helper()
	rec := recmemory.New()
	f, err := New(cfg, append([]Option{WithRecorder(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, rec
}

// deliveries fabricates n incoming units of one commodity with predictable
// identities commod-0..commod-n-1.
func deliveries(commod string, n int) []Delivery {
	out := make([]Delivery, n)
	for i := range out {
		out[i] = Delivery{
			Commodity: commod,
			Assembly:  Assembly{ID: fmt.Sprintf("%s-%d", commod, i), Quantity: 10, Composition: "fresh_uox"},
		}
	}
	return out
}

func mustAccept(t *testing.T, f *Facility, tm int, ds []Delivery) {
	t.Helper()
	if err := f.AcceptTrades(context.Background(), tm, ds); err != nil {
		t.Fatalf("AcceptTrades step %d: %v", tm, err)
	}
}

func mustBegin(t *testing.T, f *Facility, tm int) {
	t.Helper()
	if err := f.BeginStep(context.Background(), tm); err != nil {
		t.Fatalf("BeginStep step %d: %v", tm, err)
	}
}

// spentSnapshot builds a restore image whose spent buffer holds the given
// identities oldest first, each indexed under the test config's single fuel
// pairing.
func spentSnapshot(ids ...string) domain.Snapshot {
	snap := domain.Snapshot{Index: make(map[string]domain.FuelSpec)}
	for _, id := range ids {
		snap.Spent = append(snap.Spent, domain.Assembly{ID: id, Quantity: 10, Composition: "spent_uox"})
		snap.Index[id] = domain.FuelSpec{
			InCommodity: "uox", OutCommodity: "waste",
			InRecipe: "fresh_uox", OutRecipe: "spent_uox", Preference: 1,
		}
	}
	return snap
}

func spentIDs(f *Facility) []string {
	var ids []string
	for _, m := range f.Snapshot(0).Spent {
		ids = append(ids, m.ID)
	}
	return ids
}

func eventNames(events []domain.Event) []string {
	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
