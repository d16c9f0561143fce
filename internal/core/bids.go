package core

import "sort"

// Bids builds one bid group per configured output commodity with outstanding
// demand and matching spent inventory. Units are offered oldest first; for
// each order, offers stop as soon as cumulative offered quantity meets the
// order's target (greedy, no attempt at optimal packing). The group's
// capacity constraint is the total spent quantity available for the
// commodity. Commodities with demand but no matching inventory produce no
// group.
func (f *Facility) Bids(demand map[string][]Order) ([]BidGroup, error) {
	var groups []BidGroup
	var all map[string][]Assembly

	for _, commod := range f.cfg.FuelOutCommods {
		orders := demand[commod]
		if len(orders) == 0 {
			continue
		}
		if all == nil {
			var err error
			all, err = f.peekSpent()
			if err != nil {
				return nil, err
			}
		}
		mats := all[commod]
		if len(mats) == 0 {
			continue
		}

		group := BidGroup{Commodity: commod}
		for _, ord := range orders {
			tot := 0.0
			for _, m := range mats {
				tot += m.Quantity
				group.Bids = append(group.Bids, Bid{Order: ord, Assembly: m})
				if tot >= ord.Quantity {
					break
				}
			}
		}

		for _, m := range mats {
			group.Capacity += m.Quantity
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// peekSpent groups the spent inventory by output commodity without moving
// custody, oldest first within each commodity.
func (f *Facility) peekSpent() (map[string][]Assembly, error) {
	mapped := make(map[string][]Assembly)
	for _, m := range f.spent.Peek() {
		spec, err := f.index.Lookup(m.ID)
		if err != nil {
			return nil, err
		}
		mapped[spec.OutCommodity] = append(mapped[spec.OutCommodity], m)
	}
	return mapped, nil
}

// popSpent drains the spent buffer grouped by output commodity, each group
// reversed so the oldest assembly sits at the end and comes out first during
// settlement. pushSpent undoes the reversal.
func (f *Facility) popSpent() (map[string][]Assembly, error) {
	mats, err := f.spent.PopN(f.spent.Count())
	if err != nil {
		return nil, err
	}
	mapped := make(map[string][]Assembly)
	for _, m := range mats {
		spec, err := f.index.Lookup(m.ID)
		if err != nil {
			// Custody already moved; restore before reporting the breach.
			_ = f.spent.Push(mats...)
			return nil, err
		}
		mapped[spec.OutCommodity] = append(mapped[spec.OutCommodity], m)
	}
	for commod := range mapped {
		reverse(mapped[commod])
	}
	return mapped, nil
}

// pushSpent returns untraded assemblies to the spent buffer, restoring each
// commodity group's original relative order. Groups are pushed in sorted
// commodity order so settlement leaves a deterministic buffer.
func (f *Facility) pushSpent(leftover map[string][]Assembly) error {
	commods := make([]string, 0, len(leftover))
	for commod := range leftover {
		commods = append(commods, commod)
	}
	sort.Strings(commods)
	for _, commod := range commods {
		group := leftover[commod]
		reverse(group)
		if err := f.spent.Push(group...); err != nil {
			return err
		}
	}
	return nil
}

func reverse(assems []Assembly) {
	for i, j := 0, len(assems)-1; i < j; i, j = i+1, j-1 {
		assems[i], assems[j] = assems[j], assems[i]
	}
}
