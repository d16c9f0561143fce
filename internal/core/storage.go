package core

import (
	"context"
	"fmt"
	"os"

	recmemory "reactorcore/internal/infra/recording/memory"
	recpostgres "reactorcore/internal/infra/recording/postgres"
	recsqlite "reactorcore/internal/infra/recording/sqlite"
	snapfs "reactorcore/internal/infra/snapshot/fs"
	snapmemory "reactorcore/internal/infra/snapshot/memory"
	snaps3 "reactorcore/internal/infra/snapshot/s3"
	"reactorcore/pkg/domain"
)

// RecorderDriver identifies a concrete audit sink implementation.
type RecorderDriver string

const (
	RecorderMemory   RecorderDriver = "memory"   // in-memory only (tests / ephemeral)
	RecorderSQLite   RecorderDriver = "sqlite"   // embedded sqlite file
	RecorderPostgres RecorderDriver = "postgres" // PostgreSQL server
)

// OpenRecorder selects an audit sink using environment variables. Defaults to
// sqlite when unset. Callers that need teardown should type-assert io.Closer.
//
//	REACTORCORE_RECORDER_DRIVER: memory|sqlite|postgres (default sqlite)
//	REACTORCORE_SQLITE_PATH: path to sqlite file (default ./reactorcore.db)
//	REACTORCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenRecorder() (domain.Recorder, error) {
	driver := os.Getenv("REACTORCORE_RECORDER_DRIVER")
	if driver == "" {
		driver = string(RecorderSQLite)
	}
	switch RecorderDriver(driver) {
	case RecorderMemory:
		return recmemory.New(), nil
	case RecorderSQLite:
		return recsqlite.New(os.Getenv("REACTORCORE_SQLITE_PATH"))
	case RecorderPostgres:
		return recpostgres.New(os.Getenv("REACTORCORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown recorder driver %s", driver)
	}
}

// SnapshotDriver identifies a concrete snapshot store implementation.
type SnapshotDriver string

const (
	SnapshotMemory SnapshotDriver = "memory"
	SnapshotFS     SnapshotDriver = "fs"
	SnapshotS3     SnapshotDriver = "s3"
)

// OpenSnapshotStore selects a snapshot backend using environment variables.
// Defaults to the filesystem store when unset.
//
//	REACTORCORE_SNAPSHOT_DRIVER: memory|fs|s3 (default fs)
//	REACTORCORE_SNAPSHOT_FS_ROOT: root directory for driver=fs
//	REACTORCORE_SNAPSHOT_S3_BUCKET (and friends): see the s3 package
func OpenSnapshotStore(ctx context.Context) (domain.SnapshotStore, error) {
	driver := os.Getenv("REACTORCORE_SNAPSHOT_DRIVER")
	if driver == "" {
		driver = string(SnapshotFS)
	}
	switch SnapshotDriver(driver) {
	case SnapshotMemory:
		return snapmemory.New(), nil
	case SnapshotFS:
		return snapfs.New(os.Getenv("REACTORCORE_SNAPSHOT_FS_ROOT"))
	case SnapshotS3:
		return snaps3.OpenFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown snapshot driver %s", driver)
	}
}
