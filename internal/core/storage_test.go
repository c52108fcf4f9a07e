package core

import (
	"context"
	"path/filepath"
	"testing"

	"lodgecore/internal/infra/persistence/sqlite"
)

func TestOpenPersistentStoreMemory(t *testing.T) {
	t.Setenv(EnvStorageDriver, "memory")

	store, err := OpenPersistentStore(NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("OpenPersistentStore: %v", err)
	}
	if got := len(store.ListFloors()); got != 2 {
		t.Fatalf("memory store not seeded: %d floors", got)
	}
}

func TestOpenPersistentStoreSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	t.Setenv(EnvStorageDriver, "sqlite")
	t.Setenv(EnvSQLitePath, path)

	store, err := OpenPersistentStore(NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("OpenPersistentStore: %v", err)
	}
	sqliteStore, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("unexpected store type %T", store)
	}
	defer sqliteStore.Close()

	if sqliteStore.Path() != path {
		t.Fatalf("sqlite path = %q, want %q", sqliteStore.Path(), path)
	}
	if got := len(store.ListRooms()); got != 4 {
		t.Fatalf("sqlite store not seeded: %d rooms", got)
	}
}

func TestOpenPersistentStoreDefaultsToSQLite(t *testing.T) {
	t.Setenv(EnvStorageDriver, "")
	t.Setenv(EnvSQLitePath, filepath.Join(t.TempDir(), "default.db"))

	store, err := OpenPersistentStore(NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("OpenPersistentStore: %v", err)
	}
	sqliteStore, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	sqliteStore.Close()
}

func TestOpenPersistentStoreRejectsUnknownDriver(t *testing.T) {
	t.Setenv(EnvStorageDriver, "etcd")

	if _, err := OpenPersistentStore(NewDefaultRulesEngine()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestSQLiteStoreRoundTripThroughService(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "svc.db")

	store, err := NewSQLiteStore(path, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	svc := NewService(store)
	floor, _, err := svc.AddFloor(ctx, "Annex")
	if err != nil {
		t.Fatalf("AddFloor: %v", err)
	}
	if err := store.(*sqlite.Store).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(path, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.(*sqlite.Store).Close()

	if _, ok := reopened.GetFloor(floor.ID); !ok {
		t.Fatalf("floor %s lost across reopen", floor.ID)
	}
}
