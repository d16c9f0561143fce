package core

import (
	"testing"

	"reactorcore/pkg/domain"
)

func violationRules(viols []Violation) []string {
	var rules []string
	for _, v := range viols {
		rules = append(rules, v.Rule)
	}
	return rules
}

func TestInvariantsHoldThroughNormalOperation(t *testing.T) {
	f, _ := newTestFacility(t, testConfig())
	mustAccept(t, f, 0, deliveries("uox", 5))

	if viols := f.CheckInvariants(); len(viols) != 0 {
		t.Fatalf("unexpected violations: %v", viols)
	}
}

func TestInvariantsDetectDuplicateCustody(t *testing.T) {
	dup := domain.Assembly{ID: "dup", Quantity: 10}
	snap := domain.Snapshot{
		Fresh: []domain.Assembly{dup},
		Core:  []domain.Assembly{dup},
		Index: map[string]domain.FuelSpec{"dup": {OutCommodity: "waste"}},
	}
	f, _ := newTestFacility(t, testConfig(), WithSnapshot(snap))

	viols := f.CheckInvariants()
	if got := violationRules(viols); !equalStrings(got, []string{"exclusive_custody"}) {
		t.Fatalf("violations = %v", viols)
	}
	if viols[0].Severity != domain.SeverityBlock {
		t.Fatalf("duplicate custody must block, got %v", viols[0].Severity)
	}
}

func TestInvariantsDetectMissingRecord(t *testing.T) {
	snap := domain.Snapshot{
		Core: []domain.Assembly{{ID: "ghost", Quantity: 10}},
	}
	f, _ := newTestFacility(t, testConfig(), WithSnapshot(snap))

	viols := f.CheckInvariants()
	if got := violationRules(viols); !equalStrings(got, []string{"index_coverage"}) {
		t.Fatalf("violations = %v", viols)
	}
}

func TestInvariantsWarnOnGarbageRecord(t *testing.T) {
	snap := domain.Snapshot{
		Index: map[string]domain.FuelSpec{"departed": {OutCommodity: "waste"}},
	}
	f, _ := newTestFacility(t, testConfig(), WithSnapshot(snap))

	viols := f.CheckInvariants()
	if len(viols) != 1 || viols[0].Rule != "index_garbage" {
		t.Fatalf("violations = %v", viols)
	}
	if viols[0].Severity != domain.SeverityWarn {
		t.Fatalf("garbage record should warn, not block: %v", viols[0])
	}
}

func TestInvariantsDetectOverfilledBuffer(t *testing.T) {
	cfg := testConfig()
	snap := spentSnapshot("a", "b", "c", "d")
	cfg.NAssemSpent = 2 // snapshot restore bypasses push checks
	f, _ := newTestFacility(t, cfg, WithSnapshot(snap))

	viols := f.CheckInvariants()
	if got := violationRules(viols); !equalStrings(got, []string{"buffer_capacity"}) {
		t.Fatalf("violations = %v", viols)
	}
}
