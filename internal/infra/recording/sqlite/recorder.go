// Package sqlite provides an embedded SQLite audit sink recording facility
// events and the output-signal time series.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"reactorcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ domain.Recorder = (*Recorder)(nil)

// Recorder appends events and signals to two append-only tables. It is a
// write-only sink: the simulation never reads the tables back; they exist for
// post-run analysis.
type Recorder struct {
	db   *sql.DB
	path string

	mu  sync.Mutex
	err error
}

// New opens (or creates) the database at path and ensures the event and
// signal tables exist.
func New(path string) (*Recorder, error) {
	if path == "" {
		path = "reactorcore.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS facility_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		facility TEXT NOT NULL,
		time INTEGER NOT NULL,
		event TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		return nil, fmt.Errorf("create facility_events: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS facility_signals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		facility TEXT NOT NULL,
		time INTEGER NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create facility_signals: %w", err)
	}
	return &Recorder{db: db, path: path}, nil
}

// Event implements domain.Recorder. Insert failures are retained and exposed
// via Err rather than interrupting the step that recorded the event.
func (r *Recorder) Event(ctx context.Context, e domain.Event) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facility_events(facility,time,event,value) VALUES(?,?,?,?)`,
		e.Facility, e.Time, e.Name, e.Value)
	r.note(err)
}

// Signal implements domain.Recorder.
func (r *Recorder) Signal(ctx context.Context, s domain.Signal) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facility_signals(facility,time,name,value) VALUES(?,?,?,?)`,
		s.Facility, s.Time, s.Name, s.Value)
	r.note(err)
}

func (r *Recorder) note(err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

// Err returns the first insert failure observed, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close releases the database handle.
func (r *Recorder) Close() error { return r.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (r *Recorder) DB() *sql.DB { return r.db }

// Path returns the configured database path.
func (r *Recorder) Path() string { return r.path }
