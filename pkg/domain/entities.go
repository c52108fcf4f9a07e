// Package domain defines the core persistent entities, value types, and
// rule evaluation primitives used by lodgecore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and the persisted aggregate.
const (
	// EntityFloor identifies a floor record.
	EntityFloor EntityType = "floor"
	// EntityRoom identifies a room record.
	EntityRoom EntityType = "room"
	// EntityTenant identifies a tenant record.
	EntityTenant EntityType = "tenant"
	// EntitySettings identifies the facility settings singleton.
	EntitySettings EntityType = "settings"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Floor groups rooms under a display name. RoomIDs is a derived cache listing,
// in insertion order, the rooms whose FloorID points back at this floor; the
// back-reference on Room is authoritative.
type Floor struct {
	Base
	Name    string   `json:"name"`
	RoomIDs []string `json:"room_ids"`
}

// Room belongs to exactly one floor. TenantIDs mirrors the tenants whose
// RoomID points at this room, in insertion order. Capacity is checked only
// when a tenant is assigned; shrinking a room below its current occupancy
// keeps the occupants in place.
type Room struct {
	Base
	Number    string   `json:"number"`
	FloorID   string   `json:"floor_id"`
	Capacity  int      `json:"capacity"`
	TenantIDs []string `json:"tenant_ids"`
}

// Tenant occupies exactly one room for its whole lifetime. Rent is in whole
// currency units. JoiningDate is a calendar date in YYYY-MM-DD form.
type Tenant struct {
	Base
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Rent        int64  `json:"rent"`
	JoiningDate string `json:"joining_date"`
	RoomID      string `json:"room_id"`
}

// Settings is the facility-wide singleton consumed by receipts and the
// payment deep link. CustomQRImage, when set, is an opaque encoded image
// payload that takes precedence over any generated QR code.
type Settings struct {
	HostelName    string `json:"hostel_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	UPIID         string `json:"upi_id"`
	SignatureText string `json:"signature_text,omitempty"`
	CustomQRImage string `json:"custom_qr_image,omitempty"`
}

// TenantDraft carries the caller-supplied tenant fields for assignment and
// edits. The room reference is never part of a draft; assignment fixes it for
// the tenant's lifetime.
type TenantDraft struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Rent        int64  `json:"rent"`
	JoiningDate string `json:"joining_date"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
