package core

import (
	"context"
	"fmt"

	"lodgecore/pkg/domain"
)

// NewReferentialIntegrityRule returns the in-transaction rule blocking
// commits whose back-references and forward lists disagree: every room must
// point at an existing floor, every tenant at an existing room, and the
// cached forward lists must mirror the back-references exactly.
func NewReferentialIntegrityRule() domain.Rule {
	return referentialIntegrityRule{}
}

type referentialIntegrityRule struct{}

func (referentialIntegrityRule) Name() string { return "referential_integrity" }

func (referentialIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	blame := func(entity domain.EntityType, id, format string, args ...any) {
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "referential_integrity",
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf(format, args...),
			Entity:   entity,
			EntityID: id,
		})
	}

	rooms := view.ListRooms()
	tenants := view.ListTenants()

	roomFloor := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomFloor[room.ID] = room.FloorID
		if _, ok := view.FindFloor(room.FloorID); !ok {
			blame(domain.EntityRoom, room.ID, "room %s references missing floor %s", room.ID, room.FloorID)
		}
	}
	tenantRoom := make(map[string]string, len(tenants))
	for _, tenant := range tenants {
		tenantRoom[tenant.ID] = tenant.RoomID
		if _, ok := view.FindRoom(tenant.RoomID); !ok {
			blame(domain.EntityTenant, tenant.ID, "tenant %s references missing room %s", tenant.ID, tenant.RoomID)
		}
	}

	for _, floor := range view.ListFloors() {
		seen := make(map[string]struct{}, len(floor.RoomIDs))
		for _, roomID := range floor.RoomIDs {
			if _, dup := seen[roomID]; dup {
				blame(domain.EntityFloor, floor.ID, "floor %s lists room %s twice", floor.ID, roomID)
				continue
			}
			seen[roomID] = struct{}{}
			owner, ok := roomFloor[roomID]
			if !ok {
				blame(domain.EntityFloor, floor.ID, "floor %s lists missing room %s", floor.ID, roomID)
				continue
			}
			if owner != floor.ID {
				blame(domain.EntityFloor, floor.ID, "floor %s lists room %s owned by floor %s", floor.ID, roomID, owner)
			}
		}
		// Every back-reference must be mirrored.
		for _, room := range rooms {
			if room.FloorID != floor.ID {
				continue
			}
			if _, ok := seen[room.ID]; !ok {
				blame(domain.EntityFloor, floor.ID, "floor %s missing room %s from its list", floor.ID, room.ID)
			}
		}
	}

	for _, room := range rooms {
		seen := make(map[string]struct{}, len(room.TenantIDs))
		for _, tenantID := range room.TenantIDs {
			if _, dup := seen[tenantID]; dup {
				blame(domain.EntityRoom, room.ID, "room %s lists tenant %s twice", room.ID, tenantID)
				continue
			}
			seen[tenantID] = struct{}{}
			owner, ok := tenantRoom[tenantID]
			if !ok {
				blame(domain.EntityRoom, room.ID, "room %s lists missing tenant %s", room.ID, tenantID)
				continue
			}
			if owner != room.ID {
				blame(domain.EntityRoom, room.ID, "room %s lists tenant %s assigned to room %s", room.ID, tenantID, owner)
			}
		}
		for _, tenant := range tenants {
			if tenant.RoomID != room.ID {
				continue
			}
			if _, ok := seen[tenant.ID]; !ok {
				blame(domain.EntityRoom, room.ID, "room %s missing tenant %s from its list", room.ID, tenant.ID)
			}
		}
	}

	return res, nil
}
