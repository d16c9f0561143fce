// Package memory provides an in-memory audit sink used for tests and
// ephemeral simulation runs.
package memory

import (
	"context"
	"sync"

	"reactorcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Recorder = (*Recorder)(nil)

// Recorder retains every event and signal in arrival order.
type Recorder struct {
	mu      sync.RWMutex
	events  []domain.Event
	signals []domain.Signal
}

// New constructs an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

// Event implements domain.Recorder.
func (r *Recorder) Event(_ context.Context, e domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Signal implements domain.Recorder.
func (r *Recorder) Signal(_ context.Context, s domain.Signal) {
	r.mu.Lock()
	r.signals = append(r.signals, s)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events in arrival order.
func (r *Recorder) Events() []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Signals returns a copy of all recorded signals in arrival order.
func (r *Recorder) Signals() []domain.Signal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Named returns the recorded events carrying the given name for a facility,
// in arrival order.
func (r *Recorder) Named(facility, name string) []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Event
	for _, e := range r.events {
		if e.Facility == facility && e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Series returns the signal time series recorded for a facility and signal
// name, in arrival order.
func (r *Recorder) Series(facility, name string) []domain.Signal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Signal
	for _, s := range r.signals {
		if s.Facility == facility && s.Name == name {
			out = append(out, s)
		}
	}
	return out
}
