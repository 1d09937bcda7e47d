package game

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"

	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/entity"
	"github.com/samdwyer/bestiary/internal/world"
)

type mapRoster map[creature.ID]*creature.Species

func (m mapRoster) GetByID(id creature.ID) *creature.Species { return m[id] }

func species(id creature.ID, name string, baseHP int) *creature.Species {
	sp := &creature.Species{
		ID:       id,
		Name:     name,
		Tile:     strings.ToLower(name),
		HitTile:  creature.DefaultHitTile,
		MissTile: creature.DefaultMissTile,
		BaseHP:   baseHP,
		XP:       5,
		Leader:   id,
	}
	sp.Slowed = sp.DeriveSlowed()
	return sp
}

// hero never misses and hits hard.
func hero(x, y int) *entity.Member {
	m := entity.NewMember("Avatar", entity.ClassFighter)
	m.Dex = 50
	m.Weapon.Damage = 200
	m.SetPosition(gruid.Point{X: x, Y: y})
	return m
}

// pacifist cannot hurt anything.
func pacifist(x, y int) *entity.Member {
	m := entity.NewMember("Shepherd", entity.ClassShepherd)
	m.Weapon.Damage = 0
	m.Str = 0
	m.SetPosition(gruid.Point{X: x, Y: y})
	return m
}

func newEncounter(t *testing.T, arena *world.Arena, roster mapRoster, tweak func(*config.CombatConfig), members ...*entity.Member) *Encounter {
	t.Helper()
	cfg := config.Default().Combat
	if tweak != nil {
		tweak(&cfg)
	}
	party := entity.NewParty(100, 100, members...)
	return NewEncounter(arena, party, roster, cfg, rand.New(rand.NewSource(42)))
}

func TestCombatPhaseString(t *testing.T) {
	tests := []struct {
		phase    CombatPhase
		expected string
	}{
		{PhasePartyTurn, "party_turn"},
		{PhaseCreatureTurn, "creature_turn"},
		{PhaseVictory, "victory"},
		{PhaseDefeat, "defeat"},
		{PhaseStalemate, "stalemate"},
		{CombatPhase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("CombatPhase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
	if PhaseCreatureTurn.Over() || !PhaseStalemate.Over() {
		t.Error("Over() misreports phases")
	}
}

func TestEncounterVictory(t *testing.T) {
	arena := world.NewArena(8, 8, world.TileGrass, rand.New(rand.NewSource(1)))
	rat := species(25, "Rat", 8)
	avatar := hero(1, 1)
	enc := newEncounter(t, arena, mapRoster{25: rat}, nil, avatar)

	if arena.Place(rat, gruid.Point{X: 6, Y: 6}) == nil {
		t.Fatal("Could not place rat")
	}

	if got := enc.Run(context.Background()); got != PhaseVictory {
		t.Fatalf("Run() = %v, want victory; log:\n%v", got, enc.Log)
	}
	if avatar.XP == 0 {
		t.Error("Expected experience for the kill")
	}
	if len(arena.Creatures()) != 0 {
		t.Error("Dead rat should be removed from the arena")
	}
	if len(enc.Log) == 0 {
		t.Error("Expected a combat log")
	}
}

func TestEncounterDefeat(t *testing.T) {
	arena := world.NewArena(6, 6, world.TileGrass, rand.New(rand.NewSource(1)))
	troll := species(30, "Troll", 96)
	victim := pacifist(0, 0)
	victim.HP = 1
	victim.Armour.Defense = 0
	enc := newEncounter(t, arena, mapRoster{30: troll}, nil, victim)
	arena.Place(troll, gruid.Point{X: 1, Y: 0})

	if got := enc.Run(context.Background()); got != PhaseDefeat {
		t.Fatalf("Run() = %v, want defeat", got)
	}
	if victim.IsAlive() {
		t.Error("Victim should be dead")
	}
}

func TestEncounterRoundLimit(t *testing.T) {
	arena := world.NewArena(6, 6, world.TileGrass, rand.New(rand.NewSource(1)))
	sheep := species(3, "Sheep", 20)
	sheep.Attrs = sheep.Attrs.With(creature.AttrNoAttack)
	enc := newEncounter(t, arena, mapRoster{3: sheep}, func(c *config.CombatConfig) { c.MaxRounds = 3 }, pacifist(0, 0))
	arena.Place(sheep, gruid.Point{X: 1, Y: 0})

	if got := enc.Run(context.Background()); got != PhaseStalemate {
		t.Fatalf("Run() = %v, want stalemate", got)
	}
	if enc.Round != 3 {
		t.Errorf("Round = %d, want 3", enc.Round)
	}

	// Further rounds are ignored once the encounter is over.
	enc.PlayRound(context.Background())
	if enc.Round != 3 {
		t.Error("PlayRound ran after the encounter ended")
	}
}

func TestAuraExpires(t *testing.T) {
	arena := world.NewArena(6, 6, world.TileGrass, rand.New(rand.NewSource(1)))
	sheep := species(3, "Sheep", 20)
	sheep.Attrs = sheep.Attrs.With(creature.AttrNoAttack)
	enc := newEncounter(t, arena, mapRoster{3: sheep}, nil, pacifist(0, 0))
	arena.Place(sheep, gruid.Point{X: 1, Y: 0})

	enc.SetAura(combat.AuraNegate)
	for i := 0; i < auraRounds-1; i++ {
		enc.PlayRound(context.Background())
	}
	if enc.Aura() != combat.AuraNegate {
		t.Fatalf("Aura expired early after %d rounds", enc.Round)
	}
	enc.PlayRound(context.Background())
	if enc.Aura() != combat.AuraNone {
		t.Errorf("Aura() = %v after %d rounds, want none", enc.Aura(), enc.Round)
	}
}

func TestPopulateRespectsCapAndLeaders(t *testing.T) {
	orc := species(37, "Orc", 48)
	orc.EncounterSize = 12
	orc.Leader = 38
	warlord := species(38, "Warlord", 64)
	warlord.Leader = 39
	king := species(39, "King", 128)
	roster := mapRoster{37: orc, 38: warlord, 39: king}

	for seed := int64(0); seed < 20; seed++ {
		arena := world.NewArena(10, 10, world.TileGrass, nil)
		enc := NewEncounter(arena, entity.NewParty(0, 0), roster, config.Default().Combat, rand.New(rand.NewSource(seed)))
		enc.cfg.MaxCreatures = 5

		placed := enc.Populate(orc)
		if len(placed) == 0 || len(placed) > 5 {
			t.Fatalf("seed %d: placed %d creatures", seed, len(placed))
		}
		for _, inst := range placed {
			if inst.Species != orc && inst.Species != warlord && inst.Species != king {
				t.Fatalf("seed %d: unexpected species %s", seed, inst.Name())
			}
			if inst.Tier() == creature.Fleeing {
				t.Fatalf("seed %d: fresh creature starts fleeing", seed)
			}
		}
		if last := placed[len(placed)-1]; last.Species != orc {
			t.Errorf("seed %d: last creature is %s, want the orc itself", seed, last.Name())
		}
	}

	arena := world.NewArena(1, 1, world.TileWall, nil)
	enc := NewEncounter(arena, entity.NewParty(0, 0), roster, config.Default().Combat, rand.New(rand.NewSource(1)))
	if got := enc.Populate(orc); len(got) != 0 {
		t.Errorf("Populate on a wall placed %d creatures", len(got))
	}
}

func TestOverworldShipFires(t *testing.T) {
	arena := world.NewArena(5, 1, world.TileOcean, rand.New(rand.NewSource(1)))
	arena.SetTile(gruid.Point{X: 0, Y: 0}, world.TileGrass)
	ship := species(18, "Pirate Ship", 64)
	ship.Move = ship.Move.With(creature.MoveSails)
	ship.Attrs = ship.Attrs.With(creature.AttrAquatic)
	ship.WorldRangedTile = "cannon_ball"
	ship.Slowed = ship.DeriveSlowed()

	party := entity.NewParty(0, 0, pacifist(0, 0))
	cfg := config.Default().Combat
	cfg.MaxRounds = 20
	enc := NewEncounter(arena, party, mapRoster{18: ship}, cfg, rand.New(rand.NewSource(3)), Overworld())
	if arena.Place(ship, gruid.Point{X: 3, Y: 0}) == nil {
		t.Fatal("Could not place ship on ocean")
	}

	enc.Run(context.Background())
	fired := false
	for _, ev := range enc.Log {
		if strings.Contains(ev.Text, "fires cannon_ball") {
			fired = true
		}
	}
	if !fired {
		t.Errorf("Ship never fired; log:\n%v", enc.Log)
	}
}

func TestDestroyedCreatureLosesItsTurn(t *testing.T) {
	arena := world.NewArena(7, 7, world.TileGrass, rand.New(rand.NewSource(1)))
	storm := species(24, "Storm", 255)
	storm.Move = storm.Move.With(creature.MoveStationary).With(creature.MoveOntoCreatures)
	storm.Attrs = storm.Attrs.With(creature.AttrForceOfNature).With(creature.AttrNoAttack).With(creature.AttrNonAttackable)
	orc := species(14, "Orc", 96)

	shepherd := pacifist(3, 1)
	startHP := shepherd.HP
	cfg := config.Default().Combat
	enc := NewEncounter(arena, entity.NewParty(0, 0, shepherd), mapRoster{24: storm, 14: orc}, cfg, rand.New(rand.NewSource(42)), Overworld())

	// The storm goes first and shares the orc's tile.
	stormInst := arena.Place(storm, gruid.Point{X: 3, Y: 4})
	orcInst := arena.Place(orc, gruid.Point{X: 3, Y: 2})
	if stormInst == nil || orcInst == nil {
		t.Fatal("Could not place creatures")
	}
	stormInst.Pos = orcInst.Pos

	enc.PlayRound(context.Background())

	if orcInst.IsAlive() {
		t.Error("Destroyed orc should be dead")
	}
	if arena.Contains(orcInst) {
		t.Error("Destroyed orc should be off the arena")
	}
	if shepherd.HP != startHP {
		t.Errorf("Shepherd HP = %d, want %d; log:\n%v", shepherd.HP, startHP, enc.Log)
	}
	destroyed := false
	for _, ev := range enc.Log {
		if strings.Contains(ev.Text, "destroys "+orcInst.Name()) {
			destroyed = true
			continue
		}
		if destroyed && ev.Actor == orcInst.Name() {
			t.Errorf("Orc acted after being destroyed: %v", ev)
		}
	}
	if !destroyed {
		t.Errorf("Expected the storm to destroy the orc; log:\n%v", enc.Log)
	}
}
