package core

// NewDefaultRulesEngine builds a rules engine with the built-in policy set:
// referential integrity blocks inconsistent commits, room capacity reports
// over-occupied rooms without blocking them.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewReferentialIntegrityRule())
	engine.Register(NewRoomCapacityRule())
	return engine
}
