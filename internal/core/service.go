package core

import (
	"context"
	"time"

	"lodgecore/internal/infra/persistence/memory"
	"lodgecore/pkg/domain"
)

// Service exposes the transactional operations of the lodging core. Every
// mutation runs inside a store transaction and is reported to the configured
// audit, metrics, and tracing sinks.
type Service struct {
	store   PersistentStore
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	nowFn   func() time.Time
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithAuditRecorder attaches an audit sink receiving an entry per operation.
func WithAuditRecorder(recorder AuditRecorder) ServiceOption {
	return func(s *Service) { s.audit = recorder }
}

// WithMetricsRecorder attaches a metrics sink observing operation outcomes.
func WithMetricsRecorder(recorder MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = recorder }
}

// WithTracer attaches a tracer wrapping each operation in a span.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tracer }
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store seeded
// with the default aggregate.
func NewInMemoryService(engine *RulesEngine, opts ...ServiceOption) *Service {
	store := memory.NewStore(engine)
	store.ImportState(memory.DefaultSnapshot())
	return NewService(store, opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// run executes fn in a transaction and reports the outcome to the observers.
// entityID is read after fn completes so create operations can surface the
// generated identifier.
func (s *Service) run(ctx context.Context, op string, entity EntityType, entityID *string, fn func(Transaction) error) (Result, error) {
	start := s.nowFn()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, op)
	}
	res, err := s.store.RunInTransaction(ctx, fn)
	duration := time.Since(start)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, op, err == nil, duration)
	}
	if s.audit != nil {
		entry := AuditEntry{
			Operation:  op,
			Status:     AuditStatusSuccess,
			Entity:     entity,
			Violations: res.Violations,
			Duration:   duration,
			At:         start,
		}
		if entityID != nil {
			entry.EntityID = *entityID
		}
		if err != nil {
			entry.Status = AuditStatusError
			entry.Error = err.Error()
		}
		s.audit.Record(ctx, entry)
	}
	return res, err
}

// AddFloor creates a floor with the given display name.
func (s *Service) AddFloor(ctx context.Context, name string) (Floor, Result, error) {
	var created Floor
	var id string
	res, err := s.run(ctx, "add_floor", EntityFloor, &id, func(tx Transaction) error {
		var err error
		created, err = tx.CreateFloor(Floor{Name: name})
		id = created.ID
		return err
	})
	return created, res, err
}

// RenameFloor updates a floor's display name.
func (s *Service) RenameFloor(ctx context.Context, id, name string) (Floor, Result, error) {
	var updated Floor
	res, err := s.run(ctx, "rename_floor", EntityFloor, &id, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateFloor(id, func(f *Floor) error {
			f.Name = name
			return nil
		})
		return err
	})
	return updated, res, err
}

// DeleteFloor removes a floor, cascading to its rooms and their tenants.
func (s *Service) DeleteFloor(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_floor", EntityFloor, &id, func(tx Transaction) error {
		return tx.DeleteFloor(id)
	})
}

// AddRoom creates a room on the given floor.
func (s *Service) AddRoom(ctx context.Context, floorID, number string, capacity int) (Room, Result, error) {
	var created Room
	var id string
	res, err := s.run(ctx, "add_room", EntityRoom, &id, func(tx Transaction) error {
		var err error
		created, err = tx.CreateRoom(Room{Number: number, FloorID: floorID, Capacity: capacity})
		id = created.ID
		return err
	})
	return created, res, err
}

// EditRoom updates a room's number and capacity. Occupancy above the new
// capacity is tolerated; the room only refuses further assignments.
func (s *Service) EditRoom(ctx context.Context, id, number string, capacity int) (Room, Result, error) {
	var updated Room
	res, err := s.run(ctx, "edit_room", EntityRoom, &id, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateRoom(id, func(r *Room) error {
			r.Number = number
			r.Capacity = capacity
			return nil
		})
		return err
	})
	return updated, res, err
}

// DeleteRoom removes a room, cascading to its tenants.
func (s *Service) DeleteRoom(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_room", EntityRoom, &id, func(tx Transaction) error {
		return tx.DeleteRoom(id)
	})
}

// AssignTenant places a new tenant into the given room.
func (s *Service) AssignTenant(ctx context.Context, roomID string, draft TenantDraft) (Tenant, Result, error) {
	var created Tenant
	var id string
	res, err := s.run(ctx, "assign_tenant", EntityTenant, &id, func(tx Transaction) error {
		var err error
		created, err = tx.CreateTenant(Tenant{
			Name:        draft.Name,
			Mobile:      draft.Mobile,
			Rent:        draft.Rent,
			JoiningDate: draft.JoiningDate,
			RoomID:      roomID,
		})
		id = created.ID
		return err
	})
	return created, res, err
}

// EditTenant updates a tenant's personal fields. The room reference is fixed
// at assignment and is not part of the draft.
func (s *Service) EditTenant(ctx context.Context, id string, draft TenantDraft) (Tenant, Result, error) {
	var updated Tenant
	res, err := s.run(ctx, "edit_tenant", EntityTenant, &id, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateTenant(id, func(t *Tenant) error {
			t.Name = draft.Name
			t.Mobile = draft.Mobile
			t.Rent = draft.Rent
			t.JoiningDate = draft.JoiningDate
			return nil
		})
		return err
	})
	return updated, res, err
}

// RemoveTenant removes a tenant, freeing a slot in its room.
func (s *Service) RemoveTenant(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "remove_tenant", EntityTenant, &id, func(tx Transaction) error {
		return tx.DeleteTenant(id)
	})
}

// UpdateSettings replaces the facility settings singleton.
func (s *Service) UpdateSettings(ctx context.Context, settings Settings) (Settings, Result, error) {
	var updated Settings
	res, err := s.run(ctx, "update_settings", EntitySettings, nil, func(tx Transaction) error {
		var err error
		updated, err = tx.PutSettings(settings)
		return err
	})
	return updated, res, err
}

// Floors lists all floors in insertion order.
func (s *Service) Floors() []Floor {
	return s.store.ListFloors()
}

// Rooms lists all rooms in insertion order.
func (s *Service) Rooms() []Room {
	return s.store.ListRooms()
}

// Tenants lists all tenants in insertion order.
func (s *Service) Tenants() []Tenant {
	return s.store.ListTenants()
}

// Floor fetches a floor by id.
func (s *Service) Floor(id string) (Floor, bool) {
	return s.store.GetFloor(id)
}

// Room fetches a room by id.
func (s *Service) Room(id string) (Room, bool) {
	return s.store.GetRoom(id)
}

// Tenant fetches a tenant by id.
func (s *Service) Tenant(id string) (Tenant, bool) {
	return s.store.GetTenant(id)
}

// Settings returns the facility settings singleton.
func (s *Service) Settings() Settings {
	return s.store.Settings()
}

// RoomsOnFloor lists the rooms of a floor in insertion order.
func (s *Service) RoomsOnFloor(ctx context.Context, floorID string) ([]Room, error) {
	var out []Room
	err := s.store.View(ctx, func(view TransactionView) error {
		floor, ok := view.FindFloor(floorID)
		if !ok {
			return domain.NotFoundError{Entity: EntityFloor, ID: floorID}
		}
		out = make([]Room, 0, len(floor.RoomIDs))
		for _, roomID := range floor.RoomIDs {
			if room, ok := view.FindRoom(roomID); ok {
				out = append(out, room)
			}
		}
		return nil
	})
	return out, err
}

// TenantsInRoom lists the occupants of a room in insertion order.
func (s *Service) TenantsInRoom(ctx context.Context, roomID string) ([]Tenant, error) {
	var out []Tenant
	err := s.store.View(ctx, func(view TransactionView) error {
		room, ok := view.FindRoom(roomID)
		if !ok {
			return domain.NotFoundError{Entity: EntityRoom, ID: roomID}
		}
		out = make([]Tenant, 0, len(room.TenantIDs))
		for _, tenantID := range room.TenantIDs {
			if tenant, ok := view.FindTenant(tenantID); ok {
				out = append(out, tenant)
			}
		}
		return nil
	})
	return out, err
}

// Stats computes the derived statistics over a consistent snapshot.
func (s *Service) Stats(ctx context.Context) (Statistics, error) {
	var stats Statistics
	err := s.store.View(ctx, func(view TransactionView) error {
		stats = ComputeStatistics(view)
		return nil
	})
	return stats, err
}
