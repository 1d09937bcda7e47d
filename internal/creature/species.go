package creature

import (
	"github.com/gdamore/tcell/v2"
)

// ID identifies a species. Ids are assigned by the creature data file and are
// unique across the roster.
type ID uint16

// Default tiles used for ranged attack depictions.
const (
	DefaultHitTile  = "hit_flash"
	DefaultMissTile = "miss_flash"
	MagicFlashTile  = "magic_flash"
)

// Species is the immutable definition of a creature type (e.g. "Orc").
// It is owned by the registry; instances point back at it.
type Species struct {
	ID   ID
	Name string

	// Rendering hints, passed through to the renderer untouched.
	Tile            string
	Color           tcell.Color
	HitTile         string
	MissTile        string
	CamouflageTile  string
	WorldRangedTile string
	LeavesTile      bool

	Attrs Attributes
	Move  Movement

	BaseHP        int
	XP            int
	RangedChance  int // percent chance to prefer a ranged attack
	Armor         int
	Resists       Resistances
	EncounterSize int
	Leader        ID
	Spawn         ID // species produced on death; valid only with AttrSpawnsOnDeath
	Invulnerable  bool
	Slowed        SlowedType

	SpawnWeight int // relative frequency for random encounters, 0 = never
	Era         int // earliest overworld era this species appears in
}

func (s *Species) IsGood() bool          { return s.Attrs.Has(AttrGood) }
func (s *Species) IsEvil() bool          { return !s.IsGood() }
func (s *Species) IsUndead() bool        { return s.Attrs.Has(AttrUndead) }
func (s *Species) IsAquatic() bool       { return s.Attrs.Has(AttrAquatic) }
func (s *Species) Wanders() bool         { return s.Move.Has(MoveWanders) }
func (s *Species) IsStationary() bool    { return s.Move.Has(MoveStationary) }
func (s *Species) Flies() bool           { return s.Move.Has(MoveFlies) }
func (s *Species) Teleports() bool       { return s.Move.Has(MoveTeleports) }
func (s *Species) Swims() bool           { return s.Move.Has(MoveSwims) }
func (s *Species) Sails() bool           { return s.Move.Has(MoveSails) }
func (s *Species) Divides() bool         { return s.Attrs.Has(AttrDivides) }
func (s *Species) WillAttack() bool      { return !s.Attrs.Has(AttrNoAttack) }
func (s *Species) StealsGold() bool      { return s.Attrs.Has(AttrStealGold) }
func (s *Species) StealsFood() bool      { return s.Attrs.Has(AttrStealFood) }
func (s *Species) Negates() bool         { return s.Attrs.Has(AttrNegates) }
func (s *Species) Camouflages() bool     { return s.Attrs.Has(AttrCamouflage) }
func (s *Species) Ambushes() bool        { return s.Attrs.Has(AttrAmbushes) }
func (s *Species) IsIncorporeal() bool   { return s.Attrs.Has(AttrIncorporeal) }
func (s *Species) HasRandomRanged() bool { return s.Attrs.Has(AttrRandomRanged) }
func (s *Species) CastsSleep() bool      { return s.Attrs.Has(AttrCastsSleep) }
func (s *Species) IsForceOfNature() bool { return s.Attrs.Has(AttrForceOfNature) }

// Walks reports whether the species moves on foot, i.e. neither flies, swims nor sails.
func (s *Species) Walks() bool {
	return !(s.Flies() || s.Swims() || s.Sails())
}

// LeavesChest reports whether a slain creature of this species drops a chest.
func (s *Species) LeavesChest() bool {
	return !s.IsAquatic() && !s.Attrs.Has(AttrNoChest)
}

// SpawnsOnDeath reports whether the species is replaced by another on death.
func (s *Species) SpawnsOnDeath() bool {
	return s.Attrs.Has(AttrSpawnsOnDeath)
}

// CanMoveOntoCreatures reports whether the species may displace other creatures.
func (s *Species) CanMoveOntoCreatures() bool {
	return s.Move.Has(MoveOntoCreatures)
}

// CanMoveOntoPlayer reports whether the species may move onto the party.
func (s *Species) CanMoveOntoPlayer() bool {
	return s.Move.Has(MoveOntoAvatar)
}

// IsAttackable reports whether the party may attack this species at all.
func (s *Species) IsAttackable() bool {
	return !s.Attrs.Has(AttrNonAttackable)
}

// Resist reports whether the species is immune to e.
func (s *Species) Resist(e Effect) bool {
	return s.Resists.Has(e)
}

// IsRanged reports whether the species ever attacks at range.
func (s *Species) IsRanged() bool {
	return s.RangedChance > 0
}

// DeriveSlowed computes the slowed type from the movement attributes.
func (s *Species) DeriveSlowed() SlowedType {
	switch {
	case s.Sails():
		return SlowedByWind
	case s.Flies() || s.IsIncorporeal():
		return SlowedByNothing
	default:
		return SlowedByTile
	}
}

// TCellColor returns the render colour, white when none was configured.
func (s *Species) TCellColor() tcell.Color {
	if s.Color == tcell.ColorDefault {
		return tcell.ColorWhite
	}
	return s.Color
}
