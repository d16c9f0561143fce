package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	recmemory "reactorcore/internal/infra/recording/memory"
	recsqlite "reactorcore/internal/infra/recording/sqlite"
	snapfs "reactorcore/internal/infra/snapshot/fs"
	snapmemory "reactorcore/internal/infra/snapshot/memory"
)

func TestOpenRecorderMemoryDriver(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "memory")
	rec, err := OpenRecorder()
	if err != nil {
		t.Fatalf("OpenRecorder: %v", err)
	}
	if _, ok := rec.(*recmemory.Recorder); !ok {
		t.Fatalf("driver = %T, want memory recorder", rec)
	}
}

func TestOpenRecorderSQLiteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "")
	t.Setenv("REACTORCORE_SQLITE_PATH", path)

	rec, err := OpenRecorder()
	if err != nil {
		t.Fatalf("OpenRecorder: %v", err)
	}
	sq, ok := rec.(*recsqlite.Recorder)
	if !ok {
		t.Fatalf("driver = %T, want sqlite recorder", rec)
	}
	defer func() { _ = sq.Close() }()

	sq.Event(context.Background(), Event{Facility: "unit1", Time: 0, Name: EventLoad, Value: "1 assemblies"})
	if err := sq.Err(); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestOpenRecorderUnknownDriver(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "cassandra")
	if _, err := OpenRecorder(); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

func TestOpenSnapshotStoreDrivers(t *testing.T) {
	ctx := context.Background()

	t.Setenv("REACTORCORE_SNAPSHOT_DRIVER", "memory")
	store, err := OpenSnapshotStore(ctx)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := store.(*snapmemory.Store); !ok {
		t.Fatalf("driver = %T, want memory store", store)
	}

	t.Setenv("REACTORCORE_SNAPSHOT_DRIVER", "fs")
	t.Setenv("REACTORCORE_SNAPSHOT_FS_ROOT", t.TempDir())
	store, err = OpenSnapshotStore(ctx)
	if err != nil {
		t.Fatalf("fs: %v", err)
	}
	if _, ok := store.(*snapfs.Store); !ok {
		t.Fatalf("driver = %T, want fs store", store)
	}

	t.Setenv("REACTORCORE_SNAPSHOT_DRIVER", "s3")
	t.Setenv("REACTORCORE_SNAPSHOT_S3_BUCKET", "")
	if _, err := OpenSnapshotStore(ctx); err == nil {
		t.Fatal("s3 without a bucket must fail")
	}

	t.Setenv("REACTORCORE_SNAPSHOT_DRIVER", "tape")
	if _, err := OpenSnapshotStore(ctx); err == nil {
		t.Fatal("expected unknown driver error")
	}
}
