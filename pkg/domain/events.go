package domain

import "context"

// Audit event names recorded by the facility. The set is fixed at compile
// time and treated as read-only configuration.
const (
	EventTransmute  = "TRANSMUTE"
	EventDischarge  = "DISCHARGE"
	EventLoad       = "LOAD"
	EventCycleStart = "CYCLE_START"
	EventCycleEnd   = "CYCLE_END"
)

// DischargeFailed is the event value recorded when a discharge attempt finds
// no room in the spent buffer. The attempt is retried on the next step.
const DischargeFailed = "failed"

// Event is a timestamped named audit event with a free-text value.
type Event struct {
	Facility string `json:"facility"`
	Time     int    `json:"time"`
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
}

// Signal is one point of the facility's per-step output time series.
type Signal struct {
	Facility string  `json:"facility"`
	Time     int     `json:"time"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

// Recorder is the audit/recording collaborator. It is a write-only sink: the
// core never reads back what it records, and recording never fails the step.
type Recorder interface {
	Event(ctx context.Context, e Event)
	Signal(ctx context.Context, s Signal)
}

// Composer resolves a recipe name to a concrete material composition. The
// simulation context owns recipe definitions; the core resolves them at use
// time and never caches the result.
type Composer interface {
	Composition(recipe string) (string, error)
}

// ComposerFunc adapts a plain function to the Composer interface.
type ComposerFunc func(recipe string) (string, error)

// Composition implements Composer.
func (f ComposerFunc) Composition(recipe string) (string, error) {
	return f(recipe)
}
