// Package exchange provides a deliberately naive request/bid matcher for the
// simulation driver and end-to-end tests. It settles each mutual request
// group with at most one delivery and fills demand greedily in bid order; the
// production clearing algorithm lives outside this module.
package exchange

import "reactorcore/pkg/domain"

// Supplier models an unconstrained upstream source. It ships any commodity
// present in Compositions, with the mapped composition tag (falling back to
// the request's resolved composition when the mapping is empty).
type Supplier struct {
	Compositions map[string]string
}

// Fill satisfies request groups. A mutual group yields at most one delivery,
// for the highest-preference request the supplier can ship; a non-mutual
// group yields one delivery per shippable request.
func (s Supplier) Fill(groups []domain.RequestGroup) []domain.Delivery {
	var out []domain.Delivery
	for _, g := range groups {
		if !g.Mutual {
			for _, r := range g.Requests {
				if _, ok := s.Compositions[r.Commodity]; ok {
					out = append(out, s.ship(r))
				}
			}
			continue
		}
		var best *domain.Request
		for i := range g.Requests {
			r := &g.Requests[i]
			if _, ok := s.Compositions[r.Commodity]; !ok {
				continue
			}
			if best == nil || r.Preference > best.Preference {
				best = r
			}
		}
		if best != nil {
			out = append(out, s.ship(*best))
		}
	}
	return out
}

func (s Supplier) ship(r domain.Request) domain.Delivery {
	comp := s.Compositions[r.Commodity]
	if comp == "" {
		comp = r.Composition
	}
	return domain.Delivery{
		Commodity: r.Commodity,
		Assembly: domain.Assembly{
			ID:          domain.NewAssemblyID(),
			Quantity:    r.Quantity,
			Composition: comp,
		},
	}
}

type orderKey struct {
	requester string
	commodity string
}

// Match settles bid groups greedily: bids are taken in offer order until each
// order's quantity is met, every assembly trades at most once, and a group
// never trades past its aggregate capacity constraint.
func Match(groups []domain.BidGroup) []domain.Trade {
	var trades []domain.Trade
	for _, g := range groups {
		used := make(map[string]bool)
		filled := make(map[orderKey]float64)
		capacity := g.Capacity
		for _, b := range g.Bids {
			key := orderKey{b.Order.Requester, b.Order.Commodity}
			if filled[key] >= b.Order.Quantity {
				continue
			}
			if used[b.Assembly.ID] {
				continue
			}
			if b.Assembly.Quantity > capacity {
				continue
			}
			used[b.Assembly.ID] = true
			filled[key] += b.Assembly.Quantity
			capacity -= b.Assembly.Quantity
			trades = append(trades, domain.Trade{
				Requester:  b.Order.Requester,
				Commodity:  g.Commodity,
				AssemblyID: b.Assembly.ID,
			})
		}
	}
	return trades
}
