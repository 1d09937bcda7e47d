package combat

import (
	"testing"

	"github.com/samdwyer/bestiary/internal/creature"
)

func TestSpecialAction(t *testing.T) {
	dragon := testSpecies(51, "dragon", 224)
	dragon.WorldRangedTile = "fire_blast"

	fx := newFixture(5, nil, nil)
	inst := fx.field.spawn(dragon, 5, 5)
	avatar := newFakeMember("avatar", 5, 7)
	avatar.hp = 1 << 20
	fx.field.add(avatar)

	fired := 0
	for i := 0; i < 200; i++ {
		res := fx.resolver.SpecialAction(inst, avatar)
		if res.Fired {
			fired++
			if res.Tile != "fire_blast" || !res.Hit {
				t.Fatalf("Unexpected shot %+v", res)
			}
		}
	}
	if fired < 60 || fired > 140 {
		t.Errorf("Dragon fired %d/200 times, want about half", fired)
	}

	avatar.pos.Y = 9
	for i := 0; i < 50; i++ {
		if fx.resolver.SpecialAction(inst, avatar).Fired {
			t.Fatal("Dragon fired from beyond range")
		}
	}

	orc := fx.field.spawn(testSpecies(37, "orc", 80), 1, 1)
	if fx.resolver.SpecialAction(orc, avatar).Fired {
		t.Error("Creatures without a world ranged attack never fire")
	}
}

func TestSpecialActionBroadside(t *testing.T) {
	ship := testSpecies(18, "pirate", 255)
	ship.WorldRangedTile = "cannon_ball"
	ship.Move = ship.Move.With(creature.MoveSails)

	fx := newFixture(5, nil, nil)
	inst := fx.field.spawn(ship, 5, 5)
	avatar := newFakeMember("avatar", 6, 6)
	avatar.hp = 1 << 20

	for i := 0; i < 50; i++ {
		if fx.resolver.SpecialAction(inst, avatar).Fired {
			t.Fatal("Ships only fire along a row or column")
		}
	}

	avatar.pos.X = 5
	fired := false
	for i := 0; i < 50 && !fired; i++ {
		fired = fx.resolver.SpecialAction(inst, avatar).Fired
	}
	if !fired {
		t.Error("Aligned ship never fired")
	}
}

func TestSpecialEffect(t *testing.T) {
	storm := testSpecies(24, "storm", 255)
	storm.Attrs = storm.Attrs.With(creature.AttrForceOfNature)

	fx := newFixture(5, nil, nil)
	inst := fx.field.spawn(storm, 5, 5)
	victim := fx.field.spawn(testSpecies(19, "nixie", 64), 5, 5)
	bystander := fx.field.spawn(testSpecies(20, "squid", 96), 6, 5)
	avatar := newFakeMember("avatar", 9, 9)

	res := fx.resolver.SpecialEffect(inst, avatar)
	if len(res.Destroyed) != 1 || res.Destroyed[0] != victim || res.AvatarHit {
		t.Fatalf("Expected the nixie to be destroyed, got %+v", res)
	}
	if fx.field.contains(victim) || !fx.field.contains(bystander) || !fx.field.contains(inst) {
		t.Error("Only the creature sharing the storm's tile should be removed")
	}
	if victim.IsAlive() {
		t.Error("Destroyed creature should be dead")
	}

	avatar.pos = inst.Pos
	res = fx.resolver.SpecialEffect(inst, avatar)
	if !res.AvatarHit || avatar.hp != 100-res.Damage.Damage {
		t.Errorf("Expected the storm to strike the avatar, got %+v", res)
	}
	if res.Damage.Damage > 75 {
		t.Errorf("Storm damage %d above 75", res.Damage.Damage)
	}

	if res := fx.resolver.SpecialEffect(bystander, avatar); res.AvatarHit || len(res.Destroyed) != 0 {
		t.Error("Ordinary creatures have no special effect")
	}
}
