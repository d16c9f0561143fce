// Package postgres provides a Postgres-backed audit sink mirroring the
// sqlite recorder's tables for multi-run deployments.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"reactorcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ domain.Recorder = (*Recorder)(nil)

const (
	defaultDriver = "pgx"
	// Default DSN keeps parity with OpenRecorder defaults while allowing
	// overrides via env.
	defaultDSN = "postgres://localhost/reactorcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Recorder appends events and signals to append-only Postgres tables.
type Recorder struct {
	db *sql.DB

	mu  sync.Mutex
	err error
}

// New opens a Postgres-backed recorder using the provided DSN (falls back to
// defaultDSN), pings the server, and ensures both tables exist.
func New(dsn string) (*Recorder, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS facility_events (
			id BIGSERIAL PRIMARY KEY,
			facility TEXT NOT NULL,
			time BIGINT NOT NULL,
			event TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS facility_signals (
			id BIGSERIAL PRIMARY KEY,
			facility TEXT NOT NULL,
			time BIGINT NOT NULL,
			name TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("execute ddl: %w", err)
		}
	}
	return &Recorder{db: db}, nil
}

// Event implements domain.Recorder.
func (r *Recorder) Event(ctx context.Context, e domain.Event) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facility_events(facility,time,event,value) VALUES($1,$2,$3,$4)`,
		e.Facility, e.Time, e.Name, e.Value)
	r.note(err)
}

// Signal implements domain.Recorder.
func (r *Recorder) Signal(ctx context.Context, s domain.Signal) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facility_signals(facility,time,name,value) VALUES($1,$2,$3,$4)`,
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
