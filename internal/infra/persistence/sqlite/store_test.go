package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"lodgecore/internal/infra/persistence/memory"
	"lodgecore/pkg/domain"
	"lodgecore/pkg/ident"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := NewStore(path, nil, memory.WithIDGenerator(&ident.Sequence{Prefix: "id"}))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFirstRunSeedsDefaultAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	store := openTestStore(t, path)

	if got := len(store.ListFloors()); got != 2 {
		t.Fatalf("floor count %d, want 2", got)
	}
	if got := len(store.ListRooms()); got != 4 {
		t.Fatalf("room count %d, want 4", got)
	}
	if got := len(store.ListTenants()); got != 0 {
		t.Fatalf("tenant count %d, want 0", got)
	}

	// The seed must be durable immediately, not only after the first mutation.
	var payload []byte
	if err := store.DB().QueryRow(`SELECT payload FROM state WHERE key = ?`, stateKey).Scan(&payload); err != nil {
		t.Fatalf("seeded record missing: %v", err)
	}
}

func TestMutationsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	store := openTestStore(t, path)

	var tenant domain.Tenant
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		tenant, err = tx.CreateTenant(domain.Tenant{Name: "Asha", Mobile: "9876543210", Rent: 6500, RoomID: "r2"})
		return err
	}); err != nil {
		t.Fatalf("assign tenant: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	got, ok := reopened.GetTenant(tenant.ID)
	if !ok {
		t.Fatal("tenant lost across reopen")
	}
	if got.Name != "Asha" || got.Rent != 6500 {
		t.Fatalf("tenant fields lost: %+v", got)
	}
	room, _ := reopened.GetRoom("r2")
	if len(room.TenantIDs) != 1 || room.TenantIDs[0] != tenant.ID {
		t.Fatalf("room tenant list lost: %v", room.TenantIDs)
	}
}

func TestCorruptPayloadFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	store := openTestStore(t, path)
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateFloor(domain.Floor{Name: "Third Floor"})
		return err
	}); err != nil {
		t.Fatalf("seed floor: %v", err)
	}
	if _, err := store.DB().Exec(`UPDATE state SET payload = ? WHERE key = ?`, []byte("{not json"), stateKey); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	if got := len(reopened.ListFloors()); got != 2 {
		t.Fatalf("expected default aggregate after corruption, got %d floors", got)
	}
}

func TestLegacyPayloadWithoutSettingsGainsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lodge.db")
	store := openTestStore(t, path)

	snapshot := store.ExportState()
	snapshot.Settings = nil
	legacy, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("encode legacy payload: %v", err)
	}
	if _, err := store.DB().Exec(`UPDATE state SET payload = ? WHERE key = ?`, legacy, stateKey); err != nil {
		t.Fatalf("write legacy payload: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	if got := reopened.Settings(); got != memory.DefaultSettings() {
		t.Fatalf("settings not defaulted: %+v", got)
	}
	// Entity collections are untouched by the settings migration.
	if got := len(reopened.ListRooms()); got != 4 {
		t.Fatalf("room count %d, want 4", got)
	}
}
