package core

import (
	"fmt"
	"os"
	"strings"

	"lodgecore/internal/infra/persistence/memory"
	"lodgecore/internal/infra/persistence/postgres"
	"lodgecore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a persistence backend.
type StorageDriver string

const (
	// StorageDriverMemory keeps the aggregate purely in process memory.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverSQLite persists the aggregate to a local SQLite file.
	StorageDriverSQLite StorageDriver = "sqlite"
	// StorageDriverPostgres persists the aggregate to PostgreSQL.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Environment variables consulted by OpenPersistentStore.
const (
	EnvStorageDriver = "LODGECORE_STORAGE_DRIVER"
	EnvSQLitePath    = "LODGECORE_SQLITE_PATH"
	EnvPostgresDSN   = "LODGECORE_POSTGRES_DSN"
)

// OpenPersistentStore selects and opens a persistence backend from the
// environment. When LODGECORE_STORAGE_DRIVER is unset the SQLite driver is
// used. The memory driver starts from the seeded default aggregate.
func OpenPersistentStore(engine *RulesEngine, opts ...memory.Option) (PersistentStore, error) {
	driver := StorageDriver(strings.ToLower(strings.TrimSpace(os.Getenv(EnvStorageDriver))))
	if driver == "" {
		driver = StorageDriverSQLite
	}
	switch driver {
	case StorageDriverMemory:
		store := memory.NewStore(engine, opts...)
		store.ImportState(memory.DefaultSnapshot())
		return store, nil
	case StorageDriverSQLite:
		return NewSQLiteStore(os.Getenv(EnvSQLitePath), engine, opts...)
	case StorageDriverPostgres:
		return NewPostgresStore(os.Getenv(EnvPostgresDSN), engine, opts...)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}

// NewSQLiteStore opens the SQLite-backed persistent store. An empty path
// selects the driver's default database file.
func NewSQLiteStore(path string, engine *RulesEngine, opts ...memory.Option) (PersistentStore, error) {
	return sqlite.NewStore(path, engine, opts...)
}

// NewPostgresStore opens the PostgreSQL-backed persistent store. An empty DSN
// selects the driver's default connection string.
func NewPostgresStore(dsn string, engine *RulesEngine, opts ...memory.Option) (PersistentStore, error) {
	return postgres.NewStore(dsn, engine, opts...)
}
