package core

import (
	"context"
	"testing"
	"time"

	"lodgecore/pkg/domain"
)

type staticRuleView struct {
	floors  []Floor
	rooms   []Room
	tenants []Tenant
}

func (v staticRuleView) ListFloors() []Floor   { return v.floors }
func (v staticRuleView) ListRooms() []Room     { return v.rooms }
func (v staticRuleView) ListTenants() []Tenant { return v.tenants }

func (v staticRuleView) FindFloor(id string) (Floor, bool) {
	for _, f := range v.floors {
		if f.ID == id {
			return f, true
		}
	}
	return Floor{}, false
}

func (v staticRuleView) FindRoom(id string) (Room, bool) {
	for _, r := range v.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (v staticRuleView) FindTenant(id string) (Tenant, bool) {
	for _, t := range v.tenants {
		if t.ID == id {
			return t, true
		}
	}
	return Tenant{}, false
}

func baseAt(id string) Base {
	return Base{ID: id, CreatedAt: time.Unix(0, 0).UTC(), UpdatedAt: time.Unix(0, 0).UTC()}
}

func consistentView() staticRuleView {
	return staticRuleView{
		floors: []Floor{
			{Base: baseAt("f1"), Name: "F1", RoomIDs: []string{"r1"}},
		},
		rooms: []Room{
			{Base: baseAt("r1"), Number: "101", FloorID: "f1", Capacity: 2, TenantIDs: []string{"t1"}},
		},
		tenants: []Tenant{
			{Base: baseAt("t1"), Name: "A", RoomID: "r1"},
		},
	}
}

func violationsByRule(res domain.Result, rule string) []Violation {
	var out []Violation
	for _, v := range res.Violations {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

func TestReferentialIntegrityAcceptsConsistentView(t *testing.T) {
	rule := NewReferentialIntegrityRule()
	res, err := rule.Evaluate(context.Background(), consistentView(), nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", res.Violations)
	}
}

func TestReferentialIntegrityFlagsBrokenReferences(t *testing.T) {
	rule := NewReferentialIntegrityRule()

	cases := []struct {
		name   string
		mutate func(*staticRuleView)
	}{
		{
			name: "room references missing floor",
			mutate: func(v *staticRuleView) {
				v.rooms[0].FloorID = "ghost"
			},
		},
		{
			name: "tenant references missing room",
			mutate: func(v *staticRuleView) {
				v.tenants[0].RoomID = "ghost"
			},
		},
		{
			name: "floor lists room twice",
			mutate: func(v *staticRuleView) {
				v.floors[0].RoomIDs = []string{"r1", "r1"}
			},
		},
		{
			name: "floor forward list missing room",
			mutate: func(v *staticRuleView) {
				v.floors[0].RoomIDs = nil
			},
		},
		{
			name: "room forward list missing tenant",
			mutate: func(v *staticRuleView) {
				v.rooms[0].TenantIDs = nil
			},
		},
		{
			name: "room lists tenant assigned elsewhere",
			mutate: func(v *staticRuleView) {
				v.rooms = append(v.rooms, Room{
					Base: baseAt("r2"), Number: "102", FloorID: "f1", Capacity: 1,
					TenantIDs: []string{"t1"},
				})
				v.floors[0].RoomIDs = []string{"r1", "r2"}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := consistentView()
			tc.mutate(&view)
			res, err := rule.Evaluate(context.Background(), view, nil)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			found := violationsByRule(res, "referential_integrity")
			if len(found) == 0 {
				t.Fatalf("expected violations, got none")
			}
			for _, v := range found {
				if v.Severity != SeverityBlock {
					t.Fatalf("violation not blocking: %+v", v)
				}
			}
			if !res.HasBlocking() {
				t.Fatalf("result should block")
			}
		})
	}
}

func TestRoomCapacityWarnsOnOverOccupancy(t *testing.T) {
	rule := NewRoomCapacityRule()

	view := consistentView()
	view.rooms[0].Capacity = 1
	view.rooms[0].TenantIDs = []string{"t1", "t2"}
	view.tenants = append(view.tenants, Tenant{Base: baseAt("t2"), Name: "B", RoomID: "r1"})

	res, err := rule.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	found := violationsByRule(res, "room_capacity")
	if len(found) != 1 {
		t.Fatalf("expected one capacity violation, got %+v", res.Violations)
	}
	if found[0].Severity != SeverityWarn || found[0].EntityID != "r1" {
		t.Fatalf("unexpected violation: %+v", found[0])
	}
	if res.HasBlocking() {
		t.Fatalf("capacity warning must not block")
	}
}

func TestRoomCapacitySilentAtExactCapacity(t *testing.T) {
	rule := NewRoomCapacityRule()

	view := consistentView()
	view.rooms[0].Capacity = 1

	res, err := rule.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("unexpected violations at exact capacity: %+v", res.Violations)
	}
}

func TestDefaultRulesEngineRegistersPolicySet(t *testing.T) {
	engine := NewDefaultRulesEngine()

	view := consistentView()
	view.tenants[0].RoomID = "ghost"
	view.rooms[0].TenantIDs = nil

	res, err := engine.Evaluate(context.Background(), view, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.HasBlocking() {
		t.Fatalf("default engine should block broken references")
	}
}
