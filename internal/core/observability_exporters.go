package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	_ Recorder = (*ExpvarRecorder)(nil)
	_ Recorder = (*JSONRecorder)(nil)
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = (MultiRecorder)(nil)
)

var expvarSeq uint64

// ExpvarRecorder publishes aggregate event counts and the latest signal
// values via expvar. It fulfills the Recorder contract for deployments that
// prefer process-local metrics without external scrape infrastructure.
type ExpvarRecorder struct {
	name    string
	mu      sync.Mutex
	events  map[string]map[string]int64
	signals map[string]map[string]float64
}

// ExpvarSnapshot captures a read-only view of the recorded aggregates.
type ExpvarSnapshot struct {
	Events     map[string]map[string]int64   `json:"events_total"`
	Signals    map[string]map[string]float64 `json:"signals_last"`
	RecordedAt time.Time                     `json:"recorded_at"`
}

// NewExpvarRecorder constructs an expvar-backed recorder and publishes it
// under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarRecorder(name string) *ExpvarRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("facility_recorder_%d", id)
	}
	rec := &ExpvarRecorder{
		name:    name,
		events:  make(map[string]map[string]int64),
		signals: make(map[string]map[string]float64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarRecorder) Name() string { return r.name }

// Snapshot returns an immutable copy of the aggregates.
func (r *ExpvarRecorder) Snapshot() ExpvarSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make(map[string]map[string]int64, len(r.events))
	for fac, byName := range r.events {
		cpy := make(map[string]int64, len(byName))
		for name, count := range byName {
			cpy[name] = count
		}
		events[fac] = cpy
	}
	signals := make(map[string]map[string]float64, len(r.signals))
	for fac, byName := range r.signals {
		cpy := make(map[string]float64, len(byName))
		for name, v := range byName {
			cpy[name] = v
		}
		signals[fac] = cpy
	}

	return ExpvarSnapshot{Events: events, Signals: signals, RecordedAt: time.Now().UTC()}
}

// Event implements Recorder.
func (r *ExpvarRecorder) Event(_ context.Context, e Event) {
	r.mu.Lock()
	if _, ok := r.events[e.Facility]; !ok {
		r.events[e.Facility] = make(map[string]int64)
	}
	r.events[e.Facility][e.Name]++
	r.mu.Unlock()
}

// Signal implements Recorder.
func (r *ExpvarRecorder) Signal(_ context.Context, s Signal) {
	r.mu.Lock()
	if _, ok := r.signals[s.Facility]; !ok {
		r.signals[s.Facility] = make(map[string]float64)
	}
	r.signals[s.Facility][s.Name] = s.Value
	r.mu.Unlock()
}

// JSONEntry is one serialized line emitted by JSONRecorder.
type JSONEntry struct {
	Kind     string  `json:"kind"`
	Facility string  `json:"facility"`
	Time     int     `json:"time"`
	Name     string  `json:"name"`
	Value    string  `json:"value,omitempty"`
	Signal   float64 `json:"signal,omitempty"`
}

// JSONRecorder serializes events and signals as JSON lines and retains them
// for inspection.
type JSONRecorder struct {
	mu      sync.Mutex
	entries []JSONEntry
	enc     *json.Encoder
}

// NewJSONRecorder constructs a recorder writing JSON lines to w. A nil writer
// retains entries without emitting them.
func NewJSONRecorder(w io.Writer) *JSONRecorder {
	var enc *json.Encoder
	if w != nil {
		enc = json.NewEncoder(w)
	}
	return &JSONRecorder{enc: enc}
}

// Entries returns a copy of all recorded entries.
func (r *JSONRecorder) Entries() []JSONEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]JSONEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *JSONRecorder) append(entry JSONEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	if r.enc != nil {
		_ = r.enc.Encode(entry)
	}
	r.mu.Unlock()
}

// Event implements Recorder.
func (r *JSONRecorder) Event(_ context.Context, e Event) {
	r.append(JSONEntry{Kind: "event", Facility: e.Facility, Time: e.Time, Name: e.Name, Value: e.Value})
}

// Signal implements Recorder.
func (r *JSONRecorder) Signal(_ context.Context, s Signal) {
	r.append(JSONEntry{Kind: "signal", Facility: s.Facility, Time: s.Time, Name: s.Name, Signal: s.Value})
}

// PrometheusRecorder exports facility events as a counter vector and the
// output signal as a gauge vector.
type PrometheusRecorder struct {
	events *prometheus.CounterVec
	signal *prometheus.GaugeVec
}

// NewPrometheusRecorder constructs a recorder and registers its collectors
// with the supplied registerer. A nil registerer uses the default registry.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	rec := &PrometheusRecorder{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facility_events_total",
			Help: "Count of facility audit events by name.",
		}, []string{"facility", "event"}),
		signal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "facility_output_signal",
			Help: "Latest per-step facility output signal value.",
		}, []string{"facility", "signal"}),
	}
	if err := reg.Register(rec.events); err != nil {
		return nil, fmt.Errorf("register event counter: %w", err)
	}
	if err := reg.Register(rec.signal); err != nil {
		return nil, fmt.Errorf("register signal gauge: %w", err)
	}
	return rec, nil
}

// Event implements Recorder.
func (r *PrometheusRecorder) Event(_ context.Context, e Event) {
	r.events.WithLabelValues(e.Facility, e.Name).Inc()
}

// Signal implements Recorder.
func (r *PrometheusRecorder) Signal(_ context.Context, s Signal) {
	r.signal.WithLabelValues(s.Facility, s.Name).Set(s.Value)
}

// MultiRecorder fans every event and signal out to each recorder in order.
type MultiRecorder []Recorder

// Event implements Recorder.
func (m MultiRecorder) Event(ctx context.Context, e Event) {
	for _, r := range m {
		r.Event(ctx, e)
	}
}

// Signal implements Recorder.
func (m MultiRecorder) Signal(ctx context.Context, s Signal) {
	for _, r := range m {
		r.Signal(ctx, s)
	}
}
