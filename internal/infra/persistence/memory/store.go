// Package memory provides the in-memory transactional implementation of the
// core persistence store. Durable drivers embed it and persist its snapshots.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lodgecore/pkg/domain"
	"lodgecore/pkg/ident"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Floor aliases domain.Floor for in-memory persistence operations.
	Floor = domain.Floor
	// Room aliases domain.Room.
	Room = domain.Room
	// Tenant aliases domain.Tenant.
	Tenant = domain.Tenant
	// Settings aliases domain.Settings.
	Settings = domain.Settings
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

// memoryState holds the aggregate. The maps are authoritative for entity
// payloads; the order slices preserve insertion order for listings and for
// the derived forward-reference caches.
type memoryState struct {
	floors      map[string]Floor
	rooms       map[string]Room
	tenants     map[string]Tenant
	floorOrder  []string
	roomOrder   []string
	tenantOrder []string
	settings    Settings
}

// Snapshot captures a point-in-time clone of the store state. It is the JSON
// payload of the single durable record written by the sqlite and postgres
// drivers. Settings is a pointer so legacy payloads written before the
// settings singleton existed can be detected and defaulted on load.
type Snapshot struct {
	Floors      map[string]Floor  `json:"floors"`
	Rooms       map[string]Room   `json:"rooms"`
	Tenants     map[string]Tenant `json:"tenants"`
	FloorOrder  []string          `json:"floor_order"`
	RoomOrder   []string          `json:"room_order"`
	TenantOrder []string          `json:"tenant_order"`
	Settings    *Settings         `json:"settings,omitempty"`
}

func newMemoryState() memoryState {
	return memoryState{
		floors:   make(map[string]Floor),
		rooms:    make(map[string]Room),
		tenants:  make(map[string]Tenant),
		settings: DefaultSettings(),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Floors:      make(map[string]Floor, len(state.floors)),
		Rooms:       make(map[string]Room, len(state.rooms)),
		Tenants:     make(map[string]Tenant, len(state.tenants)),
		FloorOrder:  append([]string(nil), state.floorOrder...),
		RoomOrder:   append([]string(nil), state.roomOrder...),
		TenantOrder: append([]string(nil), state.tenantOrder...),
	}
	for k, v := range state.floors {
		s.Floors[k] = cloneFloor(v)
	}
	for k, v := range state.rooms {
		s.Rooms[k] = cloneRoom(v)
	}
	for k, v := range state.tenants {
		s.Tenants[k] = cloneTenant(v)
	}
	settings := state.settings
	s.Settings = &settings
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Floors {
		state.floors[k] = cloneFloor(v)
	}
	for k, v := range s.Rooms {
		state.rooms[k] = cloneRoom(v)
	}
	for k, v := range s.Tenants {
		state.tenants[k] = cloneTenant(v)
	}
	state.floorOrder = append([]string(nil), s.FloorOrder...)
	state.roomOrder = append([]string(nil), s.RoomOrder...)
	state.tenantOrder = append([]string(nil), s.TenantOrder...)
	if s.Settings != nil {
		state.settings = *s.Settings
	}
	return state
}

// migrateSnapshot repairs snapshots written by older schema revisions: nil
// collections become empty, a missing settings block gains the built-in
// defaults, orphaned rooms and tenants are dropped, non-positive capacities
// are coerced to one, and the order slices plus forward-reference caches are
// regenerated from the authoritative back-references.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Floors == nil {
		snapshot.Floors = map[string]Floor{}
	}
	if snapshot.Rooms == nil {
		snapshot.Rooms = map[string]Room{}
	}
	if snapshot.Tenants == nil {
		snapshot.Tenants = map[string]Tenant{}
	}
	if snapshot.Settings == nil {
		settings := DefaultSettings()
		snapshot.Settings = &settings
	}

	floorExists := func(id string) bool {
		_, ok := snapshot.Floors[id]
		return ok
	}
	roomExists := func(id string) bool {
		_, ok := snapshot.Rooms[id]
		return ok
	}
	tenantExists := func(id string) bool {
		_, ok := snapshot.Tenants[id]
		return ok
	}

	for id, room := range snapshot.Rooms {
		if room.FloorID == "" || !floorExists(room.FloorID) {
			delete(snapshot.Rooms, id)
			continue
		}
		if room.Capacity <= 0 {
			room.Capacity = 1
		}
		snapshot.Rooms[id] = room
	}

	for id, tenant := range snapshot.Tenants {
		if tenant.RoomID == "" || !roomExists(tenant.RoomID) {
			delete(snapshot.Tenants, id)
		}
	}

	snapshot.FloorOrder = repairOrder(snapshot.FloorOrder, floorExists, func() []string {
		return createdOrder(len(snapshot.Floors), func(yield func(id string, at time.Time)) {
			for id, f := range snapshot.Floors {
				yield(id, f.CreatedAt)
			}
		})
	})
	snapshot.RoomOrder = repairOrder(snapshot.RoomOrder, roomExists, func() []string {
		return createdOrder(len(snapshot.Rooms), func(yield func(id string, at time.Time)) {
			for id, r := range snapshot.Rooms {
				yield(id, r.CreatedAt)
			}
		})
	})
	snapshot.TenantOrder = repairOrder(snapshot.TenantOrder, tenantExists, func() []string {
		return createdOrder(len(snapshot.Tenants), func(yield func(id string, at time.Time)) {
			for id, t := range snapshot.Tenants {
				yield(id, t.CreatedAt)
			}
		})
	})

	for id, floor := range snapshot.Floors {
		var roomIDs []string
		for _, roomID := range snapshot.RoomOrder {
			if snapshot.Rooms[roomID].FloorID == id {
				roomIDs = append(roomIDs, roomID)
			}
		}
		floor.RoomIDs = roomIDs
		snapshot.Floors[id] = floor
	}

	for id, room := range snapshot.Rooms {
		var tenantIDs []string
		for _, tenantID := range snapshot.TenantOrder {
			if snapshot.Tenants[tenantID].RoomID == id {
				tenantIDs = append(tenantIDs, tenantID)
			}
		}
		room.TenantIDs = tenantIDs
		snapshot.Rooms[id] = room
	}

	return snapshot
}

// repairOrder drops unknown and duplicate ids from an order slice and appends
// any ids present in the collection but absent from the slice, oldest first.
func repairOrder(order []string, exists func(string) bool, rebuild func() []string) []string {
	filtered, _ := filterIDs(order, exists)
	seen := make(map[string]struct{}, len(filtered))
	for _, id := range filtered {
		seen[id] = struct{}{}
	}
	for _, id := range rebuild() {
		if _, ok := seen[id]; ok {
			continue
		}
		filtered = append(filtered, id)
	}
	return filtered
}

// createdOrder lists ids sorted by creation time, ID as tie-break.
func createdOrder(size int, each func(yield func(id string, at time.Time))) []string {
	type entry struct {
		id string
		at time.Time
	}
	entries := make([]entry, 0, size)
	each(func(id string, at time.Time) {
		entries = append(entries, entry{id: id, at: at})
	})
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].at.Equal(entries[j].at) {
			return entries[i].at.Before(entries[j].at)
		}
		return entries[i].id < entries[j].id
	})
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.floors {
		cloned.floors[k] = cloneFloor(v)
	}
	for k, v := range s.rooms {
		cloned.rooms[k] = cloneRoom(v)
	}
	for k, v := range s.tenants {
		cloned.tenants[k] = cloneTenant(v)
	}
	cloned.floorOrder = append([]string(nil), s.floorOrder...)
	cloned.roomOrder = append([]string(nil), s.roomOrder...)
	cloned.tenantOrder = append([]string(nil), s.tenantOrder...)
	cloned.settings = s.settings
	return cloned
}

func cloneFloor(f Floor) Floor {
	cp := f
	cp.RoomIDs = append([]string(nil), f.RoomIDs...)
	return cp
}

func cloneRoom(r Room) Room {
	cp := r
	cp.TenantIDs = append([]string(nil), r.TenantIDs...)
	return cp
}

func cloneTenant(t Tenant) Tenant { return t }

func containsString(values []string, id string) bool {
	for _, existing := range values {
		if existing == id {
			return true
		}
	}
	return false
}

func removeString(values []string, id string) []string {
	out := make([]string, 0, len(values))
	for _, existing := range values {
		if existing == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}

func filterIDs(values []string, exists func(string) bool) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	changed := false
	for _, v := range values {
		if _, ok := seen[v]; ok {
			changed = true
			continue
		}
		seen[v] = struct{}{}
		if !exists(v) {
			changed = true
			continue
		}
		out = append(out, v)
	}
	if !changed && len(out) == len(values) {
		return values, false
	}
	return out, true
}

// Store provides an in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	ids    ident.Generator
	nowFn  func() time.Time
}

// Option customizes store construction.
type Option func(*Store)

// WithIDGenerator overrides the identifier generator used for new records.
func WithIDGenerator(gen ident.Generator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithNow overrides the time provider, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		ids:    ident.UUID{},
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) newID() string {
	return s.ids.NewID()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot, applying
// schema migration first.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// transaction represents a mutation set applied to the store state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

// transactionView exposes a read-only snapshot of the transactional state.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListFloors returns all floors in insertion order.
func (v transactionView) ListFloors() []Floor {
	out := make([]Floor, 0, len(v.state.floorOrder))
	for _, id := range v.state.floorOrder {
		out = append(out, cloneFloor(v.state.floors[id]))
	}
	return out
}

// ListRooms returns all rooms in insertion order.
func (v transactionView) ListRooms() []Room {
	out := make([]Room, 0, len(v.state.roomOrder))
	for _, id := range v.state.roomOrder {
		out = append(out, cloneRoom(v.state.rooms[id]))
	}
	return out
}

// ListTenants returns all tenants in insertion order.
func (v transactionView) ListTenants() []Tenant {
	out := make([]Tenant, 0, len(v.state.tenantOrder))
	for _, id := range v.state.tenantOrder {
		out = append(out, cloneTenant(v.state.tenants[id]))
	}
	return out
}

// FindFloor retrieves a floor by ID from the snapshot.
func (v transactionView) FindFloor(id string) (Floor, bool) {
	f, ok := v.state.floors[id]
	if !ok {
		return Floor{}, false
	}
	return cloneFloor(f), true
}

// FindRoom retrieves a room by ID from the snapshot.
func (v transactionView) FindRoom(id string) (Room, bool) {
	r, ok := v.state.rooms[id]
	if !ok {
		return Room{}, false
	}
	return cloneRoom(r), true
}

// FindTenant retrieves a tenant by ID from the snapshot.
func (v transactionView) FindTenant(id string) (Tenant, bool) {
	t, ok := v.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// Settings returns the settings singleton from the snapshot.
func (v transactionView) Settings() Settings {
	return v.state.settings
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindFloor exposes floor lookup within the transaction scope.
func (tx *transaction) FindFloor(id string) (Floor, bool) {
	f, ok := tx.state.floors[id]
	if !ok {
		return Floor{}, false
	}
	return cloneFloor(f), true
}

// FindRoom exposes room lookup within the transaction scope.
func (tx *transaction) FindRoom(id string) (Room, bool) {
	r, ok := tx.state.rooms[id]
	if !ok {
		return Room{}, false
	}
	return cloneRoom(r), true
}

// FindTenant exposes tenant lookup within the transaction scope.
func (tx *transaction) FindTenant(id string) (Tenant, bool) {
	t, ok := tx.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// CreateFloor stores a new floor within the transaction.
func (tx *transaction) CreateFloor(f Floor) (Floor, error) {
	if f.ID == "" {
		f.ID = tx.store.newID()
	}
	if _, exists := tx.state.floors[f.ID]; exists {
		return Floor{}, fmt.Errorf("floor %q already exists", f.ID)
	}
	f.CreatedAt = tx.now
	f.UpdatedAt = tx.now
	f.RoomIDs = nil
	tx.state.floors[f.ID] = cloneFloor(f)
	tx.state.floorOrder = append(tx.state.floorOrder, f.ID)
	tx.recordChange(Change{Entity: domain.EntityFloor, Action: domain.ActionCreate, After: cloneFloor(f)})
	return cloneFloor(f), nil
}

// UpdateFloor mutates a floor using the provided mutator function. The room
// list is a derived cache and is restored after the mutator runs.
func (tx *transaction) UpdateFloor(id string, mutator func(*Floor) error) (Floor, error) {
	current, ok := tx.state.floors[id]
	if !ok {
		return Floor{}, domain.NotFoundError{Entity: domain.EntityFloor, ID: id}
	}
	before := cloneFloor(current)
	if err := mutator(&current); err != nil {
		return Floor{}, err
	}
	current.ID = id
	current.RoomIDs = before.RoomIDs
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.floors[id] = cloneFloor(current)
	tx.recordChange(Change{Entity: domain.EntityFloor, Action: domain.ActionUpdate, Before: before, After: cloneFloor(current)})
	return cloneFloor(current), nil
}

// DeleteFloor removes a floor together with its rooms and their tenants. The
// doomed room and tenant sets are computed from the transactional state
// before anything is removed, so a failure part-way cannot occur against a
// shifting view.
func (tx *transaction) DeleteFloor(id string) error {
	current, ok := tx.state.floors[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityFloor, ID: id}
	}
	doomedRooms := make([]string, 0, len(current.RoomIDs))
	for _, roomID := range tx.state.roomOrder {
		if tx.state.rooms[roomID].FloorID == id {
			doomedRooms = append(doomedRooms, roomID)
		}
	}
	doomedTenants := make([]string, 0)
	for _, tenantID := range tx.state.tenantOrder {
		if containsString(doomedRooms, tx.state.tenants[tenantID].RoomID) {
			doomedTenants = append(doomedTenants, tenantID)
		}
	}
	for _, tenantID := range doomedTenants {
		tenant := tx.state.tenants[tenantID]
		delete(tx.state.tenants, tenantID)
		tx.state.tenantOrder = removeString(tx.state.tenantOrder, tenantID)
		tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionDelete, Before: cloneTenant(tenant)})
	}
	for _, roomID := range doomedRooms {
		room := tx.state.rooms[roomID]
		delete(tx.state.rooms, roomID)
		tx.state.roomOrder = removeString(tx.state.roomOrder, roomID)
		tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionDelete, Before: cloneRoom(room)})
	}
	delete(tx.state.floors, id)
	tx.state.floorOrder = removeString(tx.state.floorOrder, id)
	tx.recordChange(Change{Entity: domain.EntityFloor, Action: domain.ActionDelete, Before: cloneFloor(current)})
	return nil
}

// CreateRoom stores a new room and registers it on its floor.
func (tx *transaction) CreateRoom(r Room) (Room, error) {
	if r.ID == "" {
		r.ID = tx.store.newID()
	}
	if _, exists := tx.state.rooms[r.ID]; exists {
		return Room{}, fmt.Errorf("room %q already exists", r.ID)
	}
	floor, ok := tx.state.floors[r.FloorID]
	if !ok {
		return Room{}, domain.NotFoundError{Entity: domain.EntityFloor, ID: r.FloorID}
	}
	if r.Capacity < 1 {
		return Room{}, domain.InvalidCapacityError{Capacity: r.Capacity}
	}
	r.CreatedAt = tx.now
	r.UpdatedAt = tx.now
	r.TenantIDs = nil
	tx.state.rooms[r.ID] = cloneRoom(r)
	tx.state.roomOrder = append(tx.state.roomOrder, r.ID)
	floor.RoomIDs = append(floor.RoomIDs, r.ID)
	floor.UpdatedAt = tx.now
	tx.state.floors[floor.ID] = cloneFloor(floor)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionCreate, After: cloneRoom(r)})
	return cloneRoom(r), nil
}

// UpdateRoom mutates a room using the provided mutator function. The floor
// reference and tenant list are fixed; capacity below one is rejected, but a
// capacity below current occupancy is allowed and keeps the occupants.
func (tx *transaction) UpdateRoom(id string, mutator func(*Room) error) (Room, error) {
	current, ok := tx.state.rooms[id]
	if !ok {
		return Room{}, domain.NotFoundError{Entity: domain.EntityRoom, ID: id}
	}
	before := cloneRoom(current)
	if err := mutator(&current); err != nil {
		return Room{}, err
	}
	if current.Capacity < 1 {
		return Room{}, domain.InvalidCapacityError{Capacity: current.Capacity}
	}
	current.ID = id
	current.FloorID = before.FloorID
	current.TenantIDs = before.TenantIDs
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.rooms[id] = cloneRoom(current)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionUpdate, Before: before, After: cloneRoom(current)})
	return cloneRoom(current), nil
}

// DeleteRoom removes a room together with its tenants and unregisters it from
// its floor.
func (tx *transaction) DeleteRoom(id string) error {
	current, ok := tx.state.rooms[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityRoom, ID: id}
	}
	doomedTenants := make([]string, 0, len(current.TenantIDs))
	for _, tenantID := range tx.state.tenantOrder {
		if tx.state.tenants[tenantID].RoomID == id {
			doomedTenants = append(doomedTenants, tenantID)
		}
	}
	for _, tenantID := range doomedTenants {
		tenant := tx.state.tenants[tenantID]
		delete(tx.state.tenants, tenantID)
		tx.state.tenantOrder = removeString(tx.state.tenantOrder, tenantID)
		tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionDelete, Before: cloneTenant(tenant)})
	}
	if floor, ok := tx.state.floors[current.FloorID]; ok {
		floor.RoomIDs = removeString(floor.RoomIDs, id)
		floor.UpdatedAt = tx.now
		tx.state.floors[floor.ID] = cloneFloor(floor)
	}
	delete(tx.state.rooms, id)
	tx.state.roomOrder = removeString(tx.state.roomOrder, id)
	tx.recordChange(Change{Entity: domain.EntityRoom, Action: domain.ActionDelete, Before: cloneRoom(current)})
	return nil
}

// CreateTenant stores a new tenant and registers it in its room. The room
// must exist and have a free slot; this is the only point where capacity
// blocks a mutation.
func (tx *transaction) CreateTenant(t Tenant) (Tenant, error) {
	if t.ID == "" {
		t.ID = tx.store.newID()
	}
	if _, exists := tx.state.tenants[t.ID]; exists {
		return Tenant{}, fmt.Errorf("tenant %q already exists", t.ID)
	}
	room, ok := tx.state.rooms[t.RoomID]
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: domain.EntityRoom, ID: t.RoomID}
	}
	if len(room.TenantIDs) >= room.Capacity {
		return Tenant{}, domain.RoomFullError{RoomID: room.ID, Capacity: room.Capacity}
	}
	t.CreatedAt = tx.now
	t.UpdatedAt = tx.now
	tx.state.tenants[t.ID] = cloneTenant(t)
	tx.state.tenantOrder = append(tx.state.tenantOrder, t.ID)
	room.TenantIDs = append(room.TenantIDs, t.ID)
	room.UpdatedAt = tx.now
	tx.state.rooms[room.ID] = cloneRoom(room)
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionCreate, After: cloneTenant(t)})
	return cloneTenant(t), nil
}

// UpdateTenant mutates a tenant using the provided mutator function. The room
// reference is fixed for the tenant's lifetime; capacity is not re-checked.
func (tx *transaction) UpdateTenant(id string, mutator func(*Tenant) error) (Tenant, error) {
	current, ok := tx.state.tenants[id]
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: domain.EntityTenant, ID: id}
	}
	before := cloneTenant(current)
	if err := mutator(&current); err != nil {
		return Tenant{}, err
	}
	current.ID = id
	current.RoomID = before.RoomID
	current.CreatedAt = before.CreatedAt
	current.UpdatedAt = tx.now
	tx.state.tenants[id] = cloneTenant(current)
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionUpdate, Before: before, After: cloneTenant(current)})
	return cloneTenant(current), nil
}

// DeleteTenant removes a tenant and unregisters it from its room.
func (tx *transaction) DeleteTenant(id string) error {
	current, ok := tx.state.tenants[id]
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityTenant, ID: id}
	}
	if room, ok := tx.state.rooms[current.RoomID]; ok {
		room.TenantIDs = removeString(room.TenantIDs, id)
		room.UpdatedAt = tx.now
		tx.state.rooms[room.ID] = cloneRoom(room)
	}
	delete(tx.state.tenants, id)
	tx.state.tenantOrder = removeString(tx.state.tenantOrder, id)
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionDelete, Before: cloneTenant(current)})
	return nil
}

// PutSettings replaces the settings singleton.
func (tx *transaction) PutSettings(s Settings) (Settings, error) {
	before := tx.state.settings
	tx.state.settings = s
	tx.recordChange(Change{Entity: domain.EntitySettings, Action: domain.ActionUpdate, Before: before, After: s})
	return s, nil
}

// GetFloor retrieves a floor by ID from the committed state.
func (s *Store) GetFloor(id string) (Floor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.state.floors[id]
	if !ok {
		return Floor{}, false
	}
	return cloneFloor(f), true
}

// ListFloors returns all floors in insertion order.
func (s *Store) ListFloors() []Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Floor, 0, len(s.state.floorOrder))
	for _, id := range s.state.floorOrder {
		out = append(out, cloneFloor(s.state.floors[id]))
	}
	return out
}

// GetRoom retrieves a room by ID from the committed state.
func (s *Store) GetRoom(id string) (Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.rooms[id]
	if !ok {
		return Room{}, false
	}
	return cloneRoom(r), true
}

// ListRooms returns all rooms in insertion order.
func (s *Store) ListRooms() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Room, 0, len(s.state.roomOrder))
	for _, id := range s.state.roomOrder {
		out = append(out, cloneRoom(s.state.rooms[id]))
	}
	return out
}

// GetTenant retrieves a tenant by ID from the committed state.
func (s *Store) GetTenant(id string) (Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.state.tenants[id]
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

// ListTenants returns all tenants in insertion order.
func (s *Store) ListTenants() []Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Tenant, 0, len(s.state.tenantOrder))
	for _, id := range s.state.tenantOrder {
		out = append(out, cloneTenant(s.state.tenants[id]))
	}
	return out
}

// Settings returns the committed settings singleton.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.settings
}
