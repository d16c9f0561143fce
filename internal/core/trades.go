package core

import (
	"context"
	"fmt"
)

// AcceptTrades settles incoming input trades. Each accepted assembly is
// indexed under the fuel pairing current at acceptance, then pushed into core
// while core has room and into fresh beyond that. Deliveries beyond the
// combined room of both buffers breach the request builder's sizing contract
// and surface as a capacity error.
func (f *Facility) AcceptTrades(ctx context.Context, t int, deliveries []Delivery) error {
	nload := min(len(deliveries), f.cfg.NAssemCore-f.core.Count())
	if nload > 0 {
		f.record(ctx, t, EventLoad, fmt.Sprintf("%d assemblies", nload))
	}

	for _, d := range deliveries {
		spec, err := f.fuelSpecFor(d.Commodity)
		if err != nil {
			return f.stepError(t, err)
		}
		f.index.Record(d.Assembly.ID, spec)

		var dst *Buffer
		if f.core.Count() < f.cfg.NAssemCore {
			dst = f.core
		} else {
			dst = f.fresh
		}
		if err := dst.Push(d.Assembly); err != nil {
			f.index.Erase(d.Assembly.ID)
			return f.stepError(t, err)
		}
	}
	return nil
}

// SupplyTrades settles outgoing output trades. Each trade withdraws one
// assembly from the spent buffer: the concrete unit the trade names, or the
// oldest of its commodity when it names none. Withdrawn units lose their
// metadata record; everything untraded returns to spent in its original
// relative order.
func (f *Facility) SupplyTrades(ctx context.Context, t int, trades []Trade) ([]Assembly, error) {
	mats, err := f.popSpent()
	if err != nil {
		return nil, f.stepError(t, err)
	}

	// Withdrawals are tentative until every trade resolves: on any failure the
	// already-picked units rejoin their groups before custody returns to
	// spent, and no metadata record is erased.
	shipped := make([]string, 0, len(trades))
	restore := func(out []Assembly) error {
		for i := len(out) - 1; i >= 0; i-- {
			commod := shipped[i]
			mats[commod] = append(mats[commod], out[i])
		}
		return f.pushSpent(mats)
	}

	out := make([]Assembly, 0, len(trades))
	for _, tr := range trades {
		vec := mats[tr.Commodity]
		if len(vec) == 0 {
			// The exchange matched more than this facility offered.
			if pushErr := restore(out); pushErr != nil {
				return nil, f.stepError(t, pushErr)
			}
			return nil, f.stepError(t, fmt.Errorf("no spent inventory for traded commodity %q", tr.Commodity))
		}

		// Oldest sits at the end of the reversed group.
		pick := len(vec) - 1
		if tr.AssemblyID != "" {
			pick = -1
			for i := range vec {
				if vec[i].ID == tr.AssemblyID {
					pick = i
					break
				}
			}
			if pick < 0 {
				if pushErr := restore(out); pushErr != nil {
					return nil, f.stepError(t, pushErr)
				}
				return nil, f.stepError(t, fmt.Errorf("traded assembly %s not in spent inventory", tr.AssemblyID))
			}
		}

		m := vec[pick]
		mats[tr.Commodity] = append(vec[:pick], vec[pick+1:]...)
		shipped = append(shipped, tr.Commodity)
		out = append(out, m)
	}

	if err := f.pushSpent(mats); err != nil {
		return nil, f.stepError(t, err)
	}
	for _, m := range out {
		f.index.Erase(m.ID)
	}
	f.logger.Debug("supplied output trades",
		"facility", f.cfg.Facility, "time", t, "count", len(out))
	return out, nil
}
