package memory

import (
	"time"

	"lodgecore/pkg/domain"
)

// DefaultSettings returns the facility settings used when no persisted
// settings exist. Receipts render with these until the operator updates them.
func DefaultSettings() Settings {
	return Settings{
		HostelName:    "Hari PG Hostel",
		Address:       "123 Main Street, Bengaluru",
		ContactNumber: "9876543210",
		UPIID:         "haripg@upi",
	}
}

// DefaultSnapshot returns the aggregate seeded on first run: two floors with
// four rooms and no tenants.
func DefaultSnapshot() Snapshot {
	seeded := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: seeded, UpdatedAt: seeded}
	}
	settings := DefaultSettings()
	return migrateSnapshot(Snapshot{
		Floors: map[string]Floor{
			"f1": {Base: base("f1"), Name: "First Floor"},
			"f2": {Base: base("f2"), Name: "Second Floor"},
		},
		Rooms: map[string]Room{
			"r1": {Base: base("r1"), Number: "101", FloorID: "f1", Capacity: 2},
			"r2": {Base: base("r2"), Number: "102", FloorID: "f1", Capacity: 3},
			"r3": {Base: base("r3"), Number: "201", FloorID: "f2", Capacity: 2},
			"r4": {Base: base("r4"), Number: "202", FloorID: "f2", Capacity: 1},
		},
		Tenants:     map[string]Tenant{},
		FloorOrder:  []string{"f1", "f2"},
		RoomOrder:   []string{"r1", "r2", "r3", "r4"},
		TenantOrder: []string{},
		Settings:    &settings,
	})
}
