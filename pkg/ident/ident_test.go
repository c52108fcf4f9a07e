package ident

import "testing"

func TestUUIDGeneratesUniqueIDs(t *testing.T) {
	gen := UUID{}
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		if len(id) != 36 {
			t.Fatalf("unexpected id shape %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	gen := &Sequence{Prefix: "r"}
	for i, want := range []string{"r1", "r2", "r3"} {
		if got := gen.NewID(); got != want {
			t.Fatalf("id %d: got %q want %q", i, got, want)
		}
	}
}
