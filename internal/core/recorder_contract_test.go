package core

import (
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"
)

// loadInterface resolves a named interface from the domain package using the
// go/packages type information for the whole module.
func loadInterface(t *testing.T, name string) (*types.Interface, []*packages.Package) {
	t.Helper()
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedTypes, Tests: true}
	pkgs, err := packages.Load(cfg, "reactorcore/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	for _, p := range pkgs {
		if p.PkgPath != "reactorcore/pkg/domain" {
			continue
		}
		obj := p.Types.Scope().Lookup(name)
		if obj == nil {
			t.Fatalf("domain.%s not found", name)
		}
		iface, ok := obj.Type().Underlying().(*types.Interface)
		if !ok {
			t.Fatalf("domain.%s is not an interface", name)
		}
		return iface, pkgs
	}
	t.Fatalf("domain package not loaded")
	return nil, nil
}

func implementationsOutside(pkgs []*packages.Package, iface *types.Interface, allowed map[string]struct{}) []string {
	var unexpected []string
	for _, p := range pkgs {
		if p.Types == nil || p.Types.Scope() == nil {
			continue
		}
		if _, ok := allowed[p.PkgPath]; ok {
			continue
		}
		for _, name := range p.Types.Scope().Names() {
			obj := p.Types.Scope().Lookup(name)
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Interface); ok {
				continue
			}
			if types.Implements(types.NewPointer(named), iface) {
				unexpected = append(unexpected, p.PkgPath+"."+name)
			}
		}
	}
	return unexpected
}

// Only the vetted sink packages may implement the Recorder contract; a new
// backend requires a deliberate update here.
func TestRecorderImplementationsHardening(t *testing.T) {
	iface, pkgs := loadInterface(t, "Recorder")
	allowed := map[string]struct{}{
		"reactorcore/internal/infra/recording/memory":   {},
		"reactorcore/internal/infra/recording/sqlite":   {},
		"reactorcore/internal/infra/recording/postgres": {},
		"reactorcore/internal/core":                     {}, // observability exporters
	}
	if unexpected := implementationsOutside(pkgs, iface, allowed); len(unexpected) > 0 {
		t.Fatalf("unexpected Recorder implementations (update allowed list intentionally if adding a new sink):\n%v", unexpected)
	}
}

// Same hardening for snapshot backends.
func TestSnapshotStoreImplementationsHardening(t *testing.T) {
	iface, pkgs := loadInterface(t, "SnapshotStore")
	allowed := map[string]struct{}{
		"reactorcore/internal/infra/snapshot/memory": {},
		"reactorcore/internal/infra/snapshot/fs":     {},
		"reactorcore/internal/infra/snapshot/s3":     {},
	}
	if unexpected := implementationsOutside(pkgs, iface, allowed); len(unexpected) > 0 {
		t.Fatalf("unexpected SnapshotStore implementations (update allowed list intentionally if adding a new backend):\n%v", unexpected)
	}
}
