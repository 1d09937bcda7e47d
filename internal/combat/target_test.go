package combat

import (
	"testing"

	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
)

func TestNearestOpponentEmpty(t *testing.T) {
	fx := newFixture(1, nil, nil)
	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)

	if c, d := fx.resolver.NearestOpponent(orc, false); c != nil || d != 0 {
		t.Errorf("Expected no opponent, got %v at %d", c, d)
	}
}

func TestNearestOpponentTieBreak(t *testing.T) {
	for _, order := range [][]string{{"north", "east"}, {"east", "north"}} {
		fx := newFixture(1, nil, nil)
		orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)
		members := map[string]*fakeMember{
			"north": newFakeMember("north", 5, 2),
			"east":  newFakeMember("east", 8, 5),
		}
		for _, name := range order {
			fx.field.add(members[name])
		}

		for i := 0; i < 3; i++ {
			c, d := fx.resolver.NearestOpponent(orc, false)
			if c == nil || c.Name() != order[0] || d != 3 {
				t.Fatalf("order %v: got %v at %d, want %s at 3", order, c, d, order[0])
			}
		}
	}
}

func TestNearestOpponentEligibility(t *testing.T) {
	fx := newFixture(1, nil, nil)
	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)

	dead := newFakeMember("dead", 5, 6)
	dead.hp = 0
	ghost := newFakeMember("ghost", 6, 5)
	ghost.ghostly = true
	far := newFakeMember("far", 5, 9)
	fx.field.add(dead, ghost, far)

	if c, d := fx.resolver.NearestOpponent(orc, false); c != Combatant(far) || d != 4 {
		t.Errorf("Melee search got %v at %d, want far at 4", c, d)
	}
	if c, _ := fx.resolver.NearestOpponent(orc, true); c != Combatant(ghost) {
		t.Errorf("Ranged search got %v, want ghost", c)
	}
}

func TestNearestOpponentMetrics(t *testing.T) {
	fx := newFixture(1, nil, nil)
	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)
	diagonal := newFakeMember("diagonal", 7, 7) // manhattan 4, chebyshev 2
	straight := newFakeMember("straight", 5, 8) // manhattan 3, chebyshev 3
	fx.field.add(diagonal, straight)

	if c, d := fx.resolver.NearestOpponent(orc, false); c != Combatant(straight) || d != 3 {
		t.Errorf("Manhattan melee search got %v at %d", c, d)
	}
	if c, d := fx.resolver.NearestOpponent(orc, true); c != Combatant(diagonal) || d != 2 {
		t.Errorf("Chebyshev ranged search got %v at %d", c, d)
	}

	cheb := newFixture(1, nil, func(c *config.CombatConfig) { c.MeleeMetric = config.MetricChebyshev })
	orc = cheb.field.spawn(testSpecies(37, "orc", 40), 5, 5)
	cheb.field.add(diagonal, straight)
	if c, _ := cheb.resolver.NearestOpponent(orc, false); c != Combatant(diagonal) {
		t.Errorf("Chebyshev melee search got %v", c)
	}
}

func TestNearestOpponentMaxDistance(t *testing.T) {
	fx := newFixture(1, nil, func(c *config.CombatConfig) { c.MaxTargetDistance = 3 })
	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)
	fx.field.add(newFakeMember("far", 5, 10))

	if c, _ := fx.resolver.NearestOpponent(orc, false); c != nil {
		t.Errorf("Opponent beyond max distance was chosen: %v", c)
	}
}

func TestNearestOpponentSides(t *testing.T) {
	fx := newFixture(1, nil, nil)
	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 5)
	rat := fx.field.spawn(testSpecies(25, "rat", 10), 5, 6)
	hero := newFakeMember("hero", 5, 9)
	fx.field.add(hero)

	if c, _ := fx.resolver.NearestOpponent(orc, false); c != Combatant(hero) {
		t.Errorf("Creature should target the party, got %v", c)
	}
	if c, _ := fx.resolver.NearestOpponent(hero, false); c != Combatant(rat) {
		t.Errorf("Party member should target the nearest creature, got %v", c)
	}

	fx.ctrl.aura = AuraJinx
	if c, _ := fx.resolver.NearestOpponent(orc, false); c != Combatant(rat) {
		t.Errorf("Jinxed creature should target the adjacent rat, got %v", c)
	}
	if c, _ := fx.resolver.NearestOpponent(hero, false); c != Combatant(rat) {
		t.Errorf("Jinx does not change party targeting, got %v", c)
	}

	shy := testSpecies(17, "lord", 255)
	shy.Attrs = shy.Attrs.With(creature.AttrNonAttackable)
	fx.ctrl.aura = AuraNone
	fx.field.Remove(rat)
	fx.field.Remove(orc)
	fx.field.spawn(shy, 5, 8)
	if c, _ := fx.resolver.NearestOpponent(hero, false); c != nil {
		t.Errorf("Unattackable creature was targeted: %v", c)
	}
}

func TestHideOrShow(t *testing.T) {
	mimic := testSpecies(32, "mimic", 100)
	mimic.Attrs = mimic.Attrs.With(creature.AttrCamouflage)

	fx := newFixture(1, nil, func(c *config.CombatConfig) { c.RevealOdds = 1 })
	inst := fx.field.spawn(mimic, 5, 5)
	if inst.Visible() {
		t.Fatal("Camouflaged creatures start hidden")
	}

	if fx.resolver.HideOrShow(inst) {
		t.Error("Nothing to react to without opponents")
	}

	hero := newFakeMember("hero", 5, 7)
	fx.field.add(hero)
	if !fx.resolver.HideOrShow(inst) || !inst.Visible() {
		t.Fatal("Expected the mimic to reveal itself at distance 2")
	}
	if fx.resolver.HideOrShow(inst) {
		t.Error("Staying visible is not a change")
	}

	hero.pos.Y = 11
	if !fx.resolver.HideOrShow(inst) || inst.Visible() {
		t.Error("Expected the mimic to hide once the party is 6 away")
	}

	orc := fx.field.spawn(testSpecies(37, "orc", 40), 5, 10)
	if fx.resolver.HideOrShow(orc) {
		t.Error("Ordinary creatures never change visibility")
	}
}
