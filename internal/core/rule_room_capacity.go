package core

import (
	"context"
	"fmt"

	"lodgecore/pkg/domain"
)

// NewRoomCapacityRule returns the in-transaction rule reporting rooms whose
// occupancy exceeds capacity. It warns rather than blocks: shrinking a room
// below its occupancy is an allowed edit, and assignment-time enforcement is
// handled by the store itself.
func NewRoomCapacityRule() domain.Rule {
	return roomCapacityRule{}
}

type roomCapacityRule struct{}

func (roomCapacityRule) Name() string { return "room_capacity" }

func (roomCapacityRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	occupancy := make(map[string]int)
	for _, tenant := range view.ListTenants() {
		occupancy[tenant.RoomID]++
	}

	res := domain.Result{}
	for _, room := range view.ListRooms() {
		count := occupancy[room.ID]
		if count > room.Capacity {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "room_capacity",
				Severity: domain.SeverityWarn,
				Message:  fmt.Sprintf("room %s (%s) over capacity: %d/%d occupants", room.Number, room.ID, count, room.Capacity),
				Entity:   domain.EntityRoom,
				EntityID: room.ID,
			})
		}
	}
	return res, nil
}
