package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reactorcore/pkg/domain"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	snap := domain.Snapshot{
		Facility:  "unit1",
		Time:      3,
		CycleStep: 1,
		Core:      []domain.Assembly{{ID: "a", Quantity: 10, Composition: "fresh_uox"}},
		Index:     map[string]domain.FuelSpec{"a": {OutCommodity: "waste"}},
		Prefs:     []float64{1},
	}
	if err := s.Save(ctx, "unit1/step-000003", snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "unit1/step-000003")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Core[0].ID != "a" || got.Index["a"].OutCommodity != "waste" || got.Prefs[0] != 1 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestListWalksSubdirectories(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	for _, key := range []string{"unit1/step-000001", "unit1/step-000002", "unit2/step-000001"} {
		if err := s.Save(ctx, key, domain.Snapshot{}); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}

	keys, err := s.List(ctx, "unit1/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "unit1/step-000001" || keys[1] != "unit1/step-000002" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestKeySanitization(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "  ", "../escape", "/abs/path", "a/../../b"} {
		if err := s.Save(ctx, key, domain.Snapshot{}); err == nil {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}

func TestSaveIsAtomic(t *testing.T) {
	s := newTempStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "k", domain.Snapshot{Time: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "k", domain.Snapshot{Time: 2}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Time != 2 {
		t.Fatalf("time = %d, want 2", got.Time)
	}
	// No temp files left behind.
	entries, err := os.ReadDir(s.root)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Fatalf("stale temp file %s", e.Name())
		}
	}
}

func TestDefaultRootCreated(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	s, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Driver() != "fs" {
		t.Fatal("driver name mismatch")
	}
	if _, err := os.Stat("snapdata"); err != nil {
		t.Fatalf("default root missing: %v", err)
	}
}
