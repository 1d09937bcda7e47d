package combat

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
)

// fakeMember is a party member stand-in.
type fakeMember struct {
	name    string
	pos     gruid.Point
	hp      int
	asleep  bool
	bonus   int
	defense int
	armor   int
	resists creature.Resistances
	ghostly bool
	xp      int
}

func newFakeMember(name string, x, y int) *fakeMember {
	return &fakeMember{name: name, pos: gruid.Point{X: x, Y: y}, hp: 100, defense: -1}
}

func (m *fakeMember) Name() string                   { return m.name }
func (m *fakeMember) Position() gruid.Point          { return m.pos }
func (m *fakeMember) IsPartyMember() bool            { return true }
func (m *fakeMember) IsAlive() bool                  { return m.hp > 0 }
func (m *fakeMember) IsAttackable() bool             { return true }
func (m *fakeMember) IsIncorporeal() bool            { return m.ghostly }
func (m *fakeMember) AttackBonus() int               { return m.bonus }
func (m *fakeMember) Defense() int                   { return m.defense }
func (m *fakeMember) Armor() int                     { return m.armor }
func (m *fakeMember) Resists(e creature.Effect) bool { return m.resists.Has(e) }
func (m *fakeMember) PutToSleep()                    { m.asleep = true }
func (m *fakeMember) AddXP(points int)               { m.xp += points }

func (m *fakeMember) TakeDamage(amount int) bool {
	if m.hp <= 0 || amount <= 0 {
		return false
	}
	m.hp -= amount
	if m.hp < 0 {
		m.hp = 0
	}
	return m.hp == 0
}

// fakeField is a rectangular open battlefield.
type fakeField struct {
	width, height int
	combatants    []Combatant
	blocked       map[gruid.Point]bool
	rejectPlace   bool
}

func newFakeField(width, height int) *fakeField {
	return &fakeField{width: width, height: height, blocked: make(map[gruid.Point]bool)}
}

func (f *fakeField) add(cs ...Combatant) {
	f.combatants = append(f.combatants, cs...)
}

func (f *fakeField) spawn(sp *creature.Species, x, y int) *creature.Instance {
	inst := creature.NewInstance(sp, gruid.Point{X: x, Y: y})
	f.add(inst)
	return inst
}

func (f *fakeField) Combatants() []Combatant {
	out := make([]Combatant, len(f.combatants))
	copy(out, f.combatants)
	return out
}

func (f *fakeField) InBounds(p gruid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.width && p.Y < f.height
}

func (f *fakeField) open(p gruid.Point) bool {
	if !f.InBounds(p) || f.blocked[p] {
		return false
	}
	for _, c := range f.combatants {
		if c.IsAlive() && c.Position() == p {
			return false
		}
	}
	return true
}

// ValidMoves lets creatures that move onto others step onto occupied tiles,
// as the arena does.
func (f *fakeField) ValidMoves(from gruid.Point, sp *creature.Species) []gruid.Point {
	var nbs paths.Neighbors
	enter := func(p gruid.Point) bool {
		if f.open(p) {
			return true
		}
		return sp != nil && sp.CanMoveOntoCreatures() && f.InBounds(p) && !f.blocked[p]
	}
	return append([]gruid.Point(nil), nbs.All(from, enter)...)
}

func (f *fakeField) Place(sp *creature.Species, p gruid.Point) *creature.Instance {
	if f.rejectPlace || !f.open(p) {
		return nil
	}
	return f.spawn(sp, p.X, p.Y)
}

func (f *fakeField) Move(inst *creature.Instance, to gruid.Point) bool {
	if !f.open(to) {
		return false
	}
	inst.Pos = to
	return true
}

func (f *fakeField) Remove(inst *creature.Instance) {
	kept := f.combatants[:0]
	for _, c := range f.combatants {
		if c != Combatant(inst) {
			kept = append(kept, c)
		}
	}
	f.combatants = kept
}

func (f *fakeField) RandomOpenTile(sp *creature.Species, rng *rand.Rand) (gruid.Point, bool) {
	var free []gruid.Point
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if p := (gruid.Point{X: x, Y: y}); f.open(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return gruid.Point{}, false
	}
	return free[rng.Intn(len(free))], true
}

func (f *fakeField) contains(c Combatant) bool {
	for _, other := range f.combatants {
		if other == c {
			return true
		}
	}
	return false
}

type fakeParty struct {
	gold, food int
	karma      []KarmaAction
}

func (p *fakeParty) AdjustGold(delta int) int {
	before := p.gold
	p.gold = max(0, p.gold+delta)
	return p.gold - before
}

func (p *fakeParty) AdjustFood(delta int) int {
	before := p.food
	p.food = max(0, p.food+delta)
	return p.food - before
}

func (p *fakeParty) AdjustKarma(action KarmaAction) {
	p.karma = append(p.karma, action)
}

type fakeController struct {
	field *fakeField
	party *fakeParty
	aura  Aura
}

func (c *fakeController) Battlefield() Battlefield { return c.field }
func (c *fakeController) Party() Party             { return c.party }
func (c *fakeController) Aura() Aura               { return c.aura }
func (c *fakeController) SetAura(a Aura)           { c.aura = a }

type fakeRoster map[creature.ID]*creature.Species

func (r fakeRoster) GetByID(id creature.ID) *creature.Species { return r[id] }

// testSpecies returns a plain evil walker.
func testSpecies(id creature.ID, name string, baseHP int) *creature.Species {
	return &creature.Species{
		ID:       id,
		Name:     name,
		Tile:     name,
		HitTile:  creature.DefaultHitTile,
		MissTile: creature.DefaultMissTile,
		BaseHP:   baseHP,
		XP:       7,
		Leader:   id,
	}
}

type fixture struct {
	ctrl     *fakeController
	field    *fakeField
	party    *fakeParty
	resolver *Resolver
}

func newFixture(seed int64, roster fakeRoster, tweak func(*config.CombatConfig)) *fixture {
	cfg := config.Default().Combat
	if tweak != nil {
		tweak(&cfg)
	}
	field := newFakeField(20, 20)
	party := &fakeParty{gold: 100, food: 100}
	ctrl := &fakeController{field: field, party: party}
	return &fixture{
		ctrl:     ctrl,
		field:    field,
		party:    party,
		resolver: NewResolver(ctrl, roster, cfg, rand.New(rand.NewSource(seed)), nil),
	}
}
