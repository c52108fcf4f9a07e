package domain

import "context"

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateFloor(Floor) (Floor, error)
	UpdateFloor(id string, mutator func(*Floor) error) (Floor, error)
	DeleteFloor(id string) error
	CreateRoom(Room) (Room, error)
	UpdateRoom(id string, mutator func(*Room) error) (Room, error)
	DeleteRoom(id string) error
	CreateTenant(Tenant) (Tenant, error)
	UpdateTenant(id string, mutator func(*Tenant) error) (Tenant, error)
	DeleteTenant(id string) error
	PutSettings(Settings) (Settings, error)
	FindFloor(id string) (Floor, bool)
	FindRoom(id string) (Room, bool)
	FindTenant(id string) (Tenant, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// derived projections.
type TransactionView interface {
	ListFloors() []Floor
	ListRooms() []Room
	ListTenants() []Tenant
	FindFloor(id string) (Floor, bool)
	FindRoom(id string) (Room, bool)
	FindTenant(id string) (Tenant, bool)
	Settings() Settings
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetFloor(id string) (Floor, bool)
	ListFloors() []Floor
	GetRoom(id string) (Room, bool)
	ListRooms() []Room
	GetTenant(id string) (Tenant, bool)
	ListTenants() []Tenant
	Settings() Settings
}
