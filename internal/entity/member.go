// Package entity provides the party and its members.
package entity

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"

	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/gamedata"
)

const (
	maxXP     = 9999
	maxDamage = 255

	// A member this dexterous never misses.
	sureHitDex   = 40
	sureHitBonus = 255
)

// Class represents an adventurer's class.
type Class int

const (
	ClassMage Class = iota
	ClassBard
	ClassFighter
	ClassDruid
	ClassTinker
	ClassPaladin
	ClassRanger
	ClassShepherd
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassMage:
		return "Mage"
	case ClassBard:
		return "Bard"
	case ClassFighter:
		return "Fighter"
	case ClassDruid:
		return "Druid"
	case ClassTinker:
		return "Tinker"
	case ClassPaladin:
		return "Paladin"
	case ClassRanger:
		return "Ranger"
	case ClassShepherd:
		return "Shepherd"
	default:
		return "Unknown"
	}
}

// ID returns the class identifier for data lookup.
func (c Class) ID() string {
	switch c {
	case ClassMage:
		return "mage"
	case ClassBard:
		return "bard"
	case ClassFighter:
		return "fighter"
	case ClassDruid:
		return "druid"
	case ClassTinker:
		return "tinker"
	case ClassPaladin:
		return "paladin"
	case ClassRanger:
		return "ranger"
	case ClassShepherd:
		return "shepherd"
	default:
		return "unknown"
	}
}

// Member represents an individual party member.
type Member struct {
	name   string
	Class  Class
	Symbol rune
	Pos    gruid.Point

	HP, MaxHP int
	XP        int
	Str       int
	Dex       int
	Int       int
	Weapon    gamedata.WeaponDef
	Armour    gamedata.ArmorDef

	status creature.Status
}

// NewMember creates a new party member with the given name and class.
// Stats are set to default values; use InitFromClassDef to load from data.
func NewMember(name string, class Class) *Member {
	return &Member{
		name:   name,
		Class:  class,
		Symbol: '@',
		HP:     100,
		MaxHP:  100,
		Str:    15,
		Dex:    15,
		Int:    15,
		Weapon: gamedata.WeaponDef{Name: "Hands", Damage: 8},
		Armour: gamedata.ArmorDef{Name: "Skin", Defense: 96},
		status: creature.StatusGood,
	}
}

// InitFromClassDef initializes member stats from a class definition.
func (m *Member) InitFromClassDef(def *gamedata.ClassDef) {
	if def == nil {
		return
	}
	m.Symbol = def.SymbolRune()
	m.HP = def.HP
	m.MaxHP = def.HP
	m.Str = def.Str
	m.Dex = def.Dex
	m.Int = def.Int
	m.Weapon = def.Weapon
	m.Armour = def.Armor
}

// SetPosition updates the member's position.
func (m *Member) SetPosition(p gruid.Point) {
	m.Pos = p
}

// Status returns the member's status.
func (m *Member) Status() creature.Status {
	if m.HP <= 0 {
		return creature.StatusDead
	}
	return m.status
}

// IsAsleep reports whether the member is sleeping.
func (m *Member) IsAsleep() bool { return m.Status() == creature.StatusSleeping }

// WakeUp wakes a sleeping member.
func (m *Member) WakeUp() {
	if m.IsAsleep() {
		m.status = creature.StatusGood
	}
}

// HasRangedWeapon reports whether the member attacks from a distance.
func (m *Member) HasRangedWeapon() bool { return m.Weapon.Ranged }

// Damage rolls the damage of one blow: up to weapon damage plus strength.
func (m *Member) Damage(rng *rand.Rand) int {
	limit := min(m.Weapon.Damage+m.Str, maxDamage)
	if limit <= 0 {
		return 0
	}
	return rng.Intn(limit)
}

// Heal restores HP and returns actual amount healed.
func (m *Member) Heal(amount int) int {
	if amount <= 0 || !m.IsAlive() {
		return 0
	}
	actual := min(amount, m.MaxHP-m.HP)
	m.HP += actual
	return actual
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// Name returns the member's name.
func (m *Member) Name() string { return m.name }

// Position returns the member's battlefield coordinates.
func (m *Member) Position() gruid.Point { return m.Pos }

// IsPartyMember is always true.
func (m *Member) IsPartyMember() bool { return true }

// IsAlive returns true if the member has HP remaining.
func (m *Member) IsAlive() bool { return m.HP > 0 }

// IsAttackable is always true for members.
func (m *Member) IsAttackable() bool { return true }

// IsIncorporeal is always false for members.
func (m *Member) IsIncorporeal() bool { return false }

// AttackBonus returns the to-hit bonus, dexterity up to a sure hit.
func (m *Member) AttackBonus() int {
	if m.Dex >= sureHitDex {
		return sureHitBonus
	}
	return m.Dex
}

// Defense returns the armour's defense value.
func (m *Member) Defense() int { return m.Armour.Defense }

// Armor returns flat damage reduction. Members rely on Defense instead.
func (m *Member) Armor() int { return 0 }

// Resists reports no immunities; members have none.
func (m *Member) Resists(creature.Effect) bool { return false }

// TakeDamage reduces HP and reports whether the member died.
func (m *Member) TakeDamage(amount int) bool {
	if amount <= 0 || !m.IsAlive() {
		return false
	}
	m.HP = max(m.HP-amount, 0)
	return m.HP == 0
}

// PutToSleep makes a living member fall asleep.
func (m *Member) PutToSleep() {
	if m.IsAlive() {
		m.status = creature.StatusSleeping
	}
}

// AddXP awards experience, capped at 9999.
func (m *Member) AddXP(points int) {
	if points > 0 {
		m.XP = min(m.XP+points, maxXP)
	}
}

var (
	_ combat.Combatant   = (*Member)(nil)
	_ combat.Experienced = (*Member)(nil)
)
