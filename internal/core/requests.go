package core

import (
	"fmt"

	"reactorcore/pkg/domain"
)

// Requests builds the request groups for every missing assembly. The order
// count blends the core deficit with the fresh-buffer deficit; incoming
// trades fill core first and overflow into fresh. Each group requests one
// nominal-size assembly under every configured input pairing and is marked
// mutually exclusive, so the exchange satisfies exactly one pairing per
// missing unit and the facility never over-requests.
//
// Request target compositions are resolved through the Composer at
// construction time, never cached, so a recipe change is visible to the very
// next request batch.
func (f *Facility) Requests() ([]RequestGroup, error) {
	order := f.cfg.NAssemCore - f.core.Count() + f.cfg.NAssemFresh - f.fresh.Count()
	if order <= 0 {
		return nil, nil
	}

	groups := make([]RequestGroup, 0, order)
	for i := 0; i < order; i++ {
		reqs := make([]Request, 0, len(f.cfg.FuelInCommods))
		for j, commod := range f.cfg.FuelInCommods {
			comp, err := f.composer.Composition(f.inRecipes[j])
			if err != nil {
				return nil, fmt.Errorf("facility %q: resolve recipe %q: %w", f.cfg.Facility, f.inRecipes[j], err)
			}
			reqs = append(reqs, Request{
				Commodity:   commod,
				Recipe:      f.inRecipes[j],
				Composition: comp,
				Quantity:    f.cfg.AssemSize,
				Preference:  f.prefs[j],
			})
		}
		groups = append(groups, domain.RequestGroup{Requests: reqs, Mutual: true})
	}
	return groups, nil
}
