package creature

import "testing"

func TestCapabilityQueries(t *testing.T) {
	sp := &Species{
		Attrs: Attributes(0).With(AttrAquatic).With(AttrGood),
		Move:  Movement(0).With(MoveSwims),
	}

	if !sp.IsAquatic() || !sp.Swims() {
		t.Error("Expected aquatic swimmer")
	}
	if sp.Walks() {
		t.Error("Swimmer should not walk")
	}
	if sp.LeavesChest() {
		t.Error("Aquatic creatures never leave a chest")
	}
	if !sp.IsGood() || sp.IsEvil() {
		t.Error("Expected good alignment")
	}
	if !sp.WillAttack() || !sp.IsAttackable() {
		t.Error("Default creature should attack and be attackable")
	}

	walker := &Species{}
	if !walker.Walks() || !walker.LeavesChest() || !walker.IsEvil() {
		t.Error("Zero species should be an evil walker that leaves a chest")
	}
}

func TestAttributesString(t *testing.T) {
	tests := []struct {
		attrs    Attributes
		expected string
	}{
		{0, "none"},
		{Attributes(AttrUndead), "undead"},
		{Attributes(AttrUndead).With(AttrGood), "undead|good"},
	}

	for _, tt := range tests {
		if got := tt.attrs.String(); got != tt.expected {
			t.Errorf("Attributes(%d).String() = %q, want %q", tt.attrs, got, tt.expected)
		}
	}

	if got := Movement(0).With(MoveFlies).With(MoveTeleports).String(); got != "flies|teleports" {
		t.Errorf("Movement.String() = %q", got)
	}
}

func TestResistances(t *testing.T) {
	r := ResistanceTo(EffectFire).With(EffectSleep)

	if !r.Has(EffectFire) || !r.Has(EffectSleep) {
		t.Error("Expected fire and sleep resistance")
	}
	if r.Has(EffectPoisonField) || r.Has(EffectNone) {
		t.Error("Unexpected resistance")
	}
}

func TestDeriveSlowed(t *testing.T) {
	tests := []struct {
		name     string
		species  Species
		expected SlowedType
	}{
		{"walker", Species{}, SlowedByTile},
		{"sailor", Species{Move: Movement(MoveSails)}, SlowedByWind},
		{"flier", Species{Move: Movement(MoveFlies)}, SlowedByNothing},
		{"ghost", Species{Attrs: Attributes(AttrIncorporeal)}, SlowedByNothing},
	}

	for _, tt := range tests {
		if got := tt.species.DeriveSlowed(); got != tt.expected {
			t.Errorf("%s: DeriveSlowed() = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
