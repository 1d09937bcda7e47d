// Package creature provides creature species definitions and live creature instances.
package creature

import "strings"

// Attribute is a behavioural capability bit. A species carries a set of them
// packed into an Attributes value.
type Attribute uint32

const (
	AttrStealFood Attribute = 1 << iota
	AttrStealGold
	AttrCastsSleep
	AttrUndead
	AttrGood
	AttrAquatic
	AttrNonAttackable
	AttrNegates
	AttrCamouflage
	AttrNoAttack
	AttrAmbushes
	AttrRandomRanged
	AttrIncorporeal
	AttrNoChest
	AttrDivides
	AttrSpawnsOnDeath
	AttrForceOfNature
)

var attributeNames = []struct {
	attr Attribute
	name string
}{
	{AttrStealFood, "stealFood"},
	{AttrStealGold, "stealGold"},
	{AttrCastsSleep, "castsSleep"},
	{AttrUndead, "undead"},
	{AttrGood, "good"},
	{AttrAquatic, "aquatic"},
	{AttrNonAttackable, "cantAttack"},
	{AttrNegates, "negates"},
	{AttrCamouflage, "camouflage"},
	{AttrNoAttack, "wontAttack"},
	{AttrAmbushes, "ambushes"},
	{AttrRandomRanged, "randomRanged"},
	{AttrIncorporeal, "incorporeal"},
	{AttrNoChest, "noChest"},
	{AttrDivides, "divides"},
	{AttrSpawnsOnDeath, "spawnsOnDeath"},
	{AttrForceOfNature, "forceOfNature"},
}

// Attributes is the set of behavioural attributes of a species.
type Attributes uint32

// Has reports whether every bit of a is set.
func (s Attributes) Has(a Attribute) bool {
	return uint32(s)&uint32(a) == uint32(a)
}

// With returns the set with a added.
func (s Attributes) With(a Attribute) Attributes {
	return Attributes(uint32(s) | uint32(a))
}

// String lists the set attributes, e.g. "undead|good".
func (s Attributes) String() string {
	var parts []string
	for _, n := range attributeNames {
		if s.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MoveAttribute is a movement capability bit.
type MoveAttribute uint8

const (
	MoveStationary MoveAttribute = 1 << iota
	MoveWanders
	MoveSwims
	MoveSails
	MoveFlies
	MoveTeleports
	MoveOntoCreatures
	MoveOntoAvatar
)

var moveNames = []struct {
	attr MoveAttribute
	name string
}{
	{MoveStationary, "stationary"},
	{MoveWanders, "wanders"},
	{MoveSwims, "swims"},
	{MoveSails, "sails"},
	{MoveFlies, "flies"},
	{MoveTeleports, "teleports"},
	{MoveOntoCreatures, "canMoveOntoCreatures"},
	{MoveOntoAvatar, "canMoveOntoAvatar"},
}

// Movement is the set of movement attributes of a species.
type Movement uint8

// Has reports whether every bit of m is set.
func (s Movement) Has(m MoveAttribute) bool {
	return uint8(s)&uint8(m) == uint8(m)
}

// With returns the set with m added.
func (s Movement) With(m MoveAttribute) Movement {
	return Movement(uint8(s) | uint8(m))
}

// String lists the set movement attributes.
func (s Movement) String() string {
	var parts []string
	for _, n := range moveNames {
		if s.Has(n.attr) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Effect is a tile or attack effect a creature may be subjected to.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectFire
	EffectLava
	EffectPoisonField
	EffectSleep
	EffectPoison
	EffectElectricity
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectFire:
		return "fire"
	case EffectLava:
		return "lava"
	case EffectPoisonField:
		return "poison_field"
	case EffectSleep:
		return "sleep"
	case EffectPoison:
		return "poison"
	case EffectElectricity:
		return "electricity"
	default:
		return "unknown"
	}
}

// Resistances is the set of effects a species is immune to.
type Resistances uint8

// ResistanceTo returns a set containing only e.
func ResistanceTo(e Effect) Resistances {
	if e == EffectNone {
		return 0
	}
	return Resistances(1 << (e - 1))
}

// Has reports whether the set contains e.
func (r Resistances) Has(e Effect) bool {
	if e == EffectNone {
		return false
	}
	return r&ResistanceTo(e) != 0
}

// With returns the set with e added.
func (r Resistances) With(e Effect) Resistances {
	return r | ResistanceTo(e)
}

// SlowedType selects which terrain rule slows a creature down.
type SlowedType int

const (
	SlowedByTile SlowedType = iota
	SlowedByWind
	SlowedByNothing
)

// String returns the slowed type name.
func (s SlowedType) String() string {
	switch s {
	case SlowedByTile:
		return "tile"
	case SlowedByWind:
		return "wind"
	case SlowedByNothing:
		return "nothing"
	default:
		return "unknown"
	}
}
