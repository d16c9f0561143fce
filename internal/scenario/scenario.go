// Package scenario loads simulation scenarios from YAML. A scenario bundles
// the facility configuration with the upstream supply, the downstream demand
// schedule, and run-level knobs for the simulation driver.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"reactorcore/pkg/domain"
)

// Demand is one standing order placed against the facility's output every
// step from From (inclusive) until Until (exclusive; 0 means forever).
type Demand struct {
	Requester string  `yaml:"requester"`
	Commodity string  `yaml:"commodity"`
	Quantity  float64 `yaml:"quantity"`
	From      int     `yaml:"from"`
	Until     int     `yaml:"until"`
}

// Scenario is a complete driver input.
type Scenario struct {
	Duration      int               `yaml:"duration"`
	SnapshotEvery int               `yaml:"snapshot_every"`
	Facility      domain.Config     `yaml:"facility"`
	Supply        map[string]string `yaml:"supply"` // commodity -> shipped composition
	Demand        []Demand          `yaml:"demand"`
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied scenario path
	if err != nil {
		return Scenario{}, err
	}
	return Parse(data)
}

// Parse decodes scenario YAML. Unknown fields are rejected so typos in
// scenario files fail loudly instead of silently defaulting.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks run-level fields and delegates facility checks to the
// domain config.
func (s Scenario) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("scenario duration must be positive, got %d", s.Duration)
	}
	if s.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot_every must be >= 0, got %d", s.SnapshotEvery)
	}
	if err := s.Facility.Validate(); err != nil {
		return err
	}
	for i, d := range s.Demand {
		if d.Requester == "" || d.Commodity == "" {
			return fmt.Errorf("demand[%d]: requester and commodity required", i)
		}
		if d.Quantity <= 0 {
			return fmt.Errorf("demand[%d]: quantity must be positive", i)
		}
		if d.Until != 0 && d.Until <= d.From {
			return fmt.Errorf("demand[%d]: until %d must exceed from %d", i, d.Until, d.From)
		}
	}
	return nil
}

// OrdersAt returns the demand orders active at step t, in declaration order.
func (s Scenario) OrdersAt(t int) []domain.Order {
	var out []domain.Order
	for _, d := range s.Demand {
		if t < d.From {
			continue
		}
		if d.Until != 0 && t >= d.Until {
			continue
		}
		out = append(out, domain.Order{
			Requester: d.Requester,
			Commodity: d.Commodity,
			Quantity:  d.Quantity,
		})
	}
	return out
}
