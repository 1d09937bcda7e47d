// Package combat resolves creature turns, damage, reproduction and targeting.
package combat

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"

	"github.com/samdwyer/bestiary/internal/creature"
)

// Combatant is anything that can stand on a battlefield and be fought.
// Creature instances and party members both implement it.
type Combatant interface {
	Name() string
	Position() gruid.Point
	IsPartyMember() bool
	IsAlive() bool
	IsAttackable() bool
	IsIncorporeal() bool

	AttackBonus() int
	Defense() int
	Armor() int
	Resists(e creature.Effect) bool

	// TakeDamage lowers hit points and reports whether this call was fatal.
	TakeDamage(amount int) bool
	PutToSleep()
}

// Experienced is implemented by combatants that collect experience for kills.
type Experienced interface {
	AddXP(points int)
}

// Battlefield is the map a fight takes place on. It owns every creature
// instance and decides where creatures may stand.
type Battlefield interface {
	// Combatants returns everyone on the field in canonical scan order.
	Combatants() []Combatant
	InBounds(p gruid.Point) bool
	// ValidMoves lists the in-bounds neighbours of from a creature of
	// species sp could step onto.
	ValidMoves(from gruid.Point, sp *creature.Species) []gruid.Point
	// Place puts a new instance of sp at p, or returns nil when the tile
	// cannot take it.
	Place(sp *creature.Species, p gruid.Point) *creature.Instance
	Move(inst *creature.Instance, to gruid.Point) bool
	Remove(inst *creature.Instance)
	RandomOpenTile(sp *creature.Species, rng *rand.Rand) (gruid.Point, bool)
}

// KarmaAction is a virtue-affecting deed of the party.
type KarmaAction int

const (
	KarmaSparedGood KarmaAction = iota
)

// String returns the karma action name.
func (k KarmaAction) String() string {
	switch k {
	case KarmaSparedGood:
		return "spared_good"
	default:
		return "unknown"
	}
}

// Party holds the shared resources creatures can steal and the party's karma.
type Party interface {
	// AdjustGold changes gold by delta, never going below zero, and returns
	// the amount actually changed.
	AdjustGold(delta int) int
	AdjustFood(delta int) int
	AdjustKarma(action KarmaAction)
}

// Aura is a battlefield-wide magical condition.
type Aura int

const (
	AuraNone Aura = iota
	// AuraNegate blocks magic: sleep casting and magic flash attacks fail.
	AuraNegate
	// AuraJinx makes creatures attack each other.
	AuraJinx
)

// String returns the aura name.
func (a Aura) String() string {
	switch a {
	case AuraNone:
		return "none"
	case AuraNegate:
		return "negate"
	case AuraJinx:
		return "jinx"
	default:
		return "unknown"
	}
}

// Controller drives a fight and owns the state creatures act upon.
type Controller interface {
	Battlefield() Battlefield
	Party() Party
	Aura() Aura
	SetAura(a Aura)
}

// Roster resolves species ids, normally a *gamedata.CreatureRegistry.
type Roster interface {
	GetByID(id creature.ID) *creature.Species
}

// creaturesOn returns the creature instances among the field's combatants.
func creaturesOn(field Battlefield) []*creature.Instance {
	var out []*creature.Instance
	for _, c := range field.Combatants() {
		if inst, ok := c.(*creature.Instance); ok {
			out = append(out, inst)
		}
	}
	return out
}
