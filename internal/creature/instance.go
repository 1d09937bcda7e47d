package creature

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"github.com/oklog/ulid/v2"
)

// RandomHP asks SetInitialHP to roll hit points from the species base value.
const RandomHP = -1

// Creatures never defend better than this unless a collaborator says so.
const baseDefense = 128

// randomRangedTiles are the field tiles a random-ranged creature cycles through.
var randomRangedTiles = []string{"poison_field", "energy_field", "fire_field", "sleep_field"}

// Instance is a live creature placed on a map. It is owned by the map
// collaborator and points back at its immutable Species.
// Accessed only from the game loop goroutine, no locks.
type Instance struct {
	ID      ulid.ULID
	Species *Species
	Pos     gruid.Point

	hp       int
	status   []Status // ascending severity, no duplicates
	visible  bool
	hitTile  string
	missTile string
}

// NewInstance creates a full-health instance of sp at pos.
// Camouflaged and ambushing creatures start hidden.
func NewInstance(sp *Species, pos gruid.Point) *Instance {
	return &Instance{
		ID:       ulid.Make(),
		Species:  sp,
		Pos:      pos,
		hp:       sp.BaseHP,
		status:   []Status{StatusGood},
		visible:  !(sp.Camouflages() || sp.Ambushes()),
		hitTile:  sp.HitTile,
		missTile: sp.MissTile,
	}
}

// Name returns the species display name.
func (c *Instance) Name() string { return c.Species.Name }

// HP returns current hit points.
func (c *Instance) HP() int { return c.hp }

// MaxHP returns the species base hit points.
func (c *Instance) MaxHP() int { return c.Species.BaseHP }

// SetHP assigns hit points, clamped to [0, BaseHP].
func (c *Instance) SetHP(points int) {
	c.hp = clamp(points, 0, c.Species.BaseHP)
}

// SetInitialHP assigns starting hit points for a freshly spawned instance and
// returns the value assigned. With points == RandomHP the value is rolled
// around the base; either way a new creature starts alive and never fleeing.
// Status and attribute bits are left untouched.
func (c *Instance) SetInitialHP(points int, rng *rand.Rand) int {
	base := c.Species.BaseHP
	if points < 0 {
		points = base / 2
		if base > 0 {
			points = rng.Intn(base) | base/2
		}
	}
	floor := max(1, FleeThreshold(base))
	if points < floor {
		points = floor
	}
	c.SetHP(points)
	return c.hp
}

// Tier derives the wound tier from current hit points. It is recomputed on
// every call and never stored.
func (c *Instance) Tier() WoundTier {
	return TierFor(c.hp, c.Species.BaseHP)
}

// Condition returns the tagged state {tier, asleep}.
func (c *Instance) Condition() Condition {
	tier := c.Tier()
	if tier == Dead {
		return Condition{Tier: Dead}
	}
	return Condition{Tier: tier, Asleep: c.IsAsleep()}
}

// IsAlive returns true if the creature has hit points remaining.
func (c *Instance) IsAlive() bool { return c.hp > 0 }

// IsDead returns true once hit points reach zero.
func (c *Instance) IsDead() bool { return c.hp <= 0 }

// Status returns the most severe explicit status, or StatusDead when the
// creature has no hit points left.
func (c *Instance) Status() Status {
	if c.IsDead() {
		return StatusDead
	}
	return c.status[len(c.status)-1]
}

// Statuses returns a copy of the explicit status set in severity order.
func (c *Instance) Statuses() []Status {
	out := make([]Status, len(c.status))
	copy(out, c.status)
	return out
}

// AddStatus adds s to the status set, keeping severity order.
func (c *Instance) AddStatus(s Status) {
	if s == StatusDead {
		return
	}
	for i, existing := range c.status {
		if existing == s {
			return
		}
		if existing > s {
			c.status = append(c.status[:i], append([]Status{s}, c.status[i:]...)...)
			return
		}
	}
	c.status = append(c.status, s)
}

// RemoveStatus removes s from the set. An emptied set falls back to good.
func (c *Instance) RemoveStatus(s Status) {
	kept := c.status[:0]
	for _, existing := range c.status {
		if existing != s {
			kept = append(kept, existing)
		}
	}
	c.status = kept
	if len(c.status) == 0 {
		c.status = append(c.status, StatusGood)
	}
}

// SetStatus replaces the whole status set with s.
func (c *Instance) SetStatus(s Status) {
	if s == StatusDead {
		s = StatusGood
	}
	c.status = []Status{s}
}

// IsAsleep reports whether the creature is sleeping.
func (c *Instance) IsAsleep() bool {
	if c.IsDead() {
		return false
	}
	for _, s := range c.status {
		if s == StatusSleeping {
			return true
		}
	}
	return false
}

// PutToSleep makes a living creature fall asleep.
func (c *Instance) PutToSleep() {
	if c.IsAlive() {
		c.AddStatus(StatusSleeping)
	}
}

// WakeUp wakes the creature. Waking an awake creature does nothing.
func (c *Instance) WakeUp() {
	if c.IsAsleep() {
		c.RemoveStatus(StatusSleeping)
	}
}

// TakeDamage lowers hit points by amount, never below zero, and reports
// whether this call killed the creature. Negative amounts count as zero and
// invulnerable species take no damage. A creature that is already dead
// cannot die again.
func (c *Instance) TakeDamage(amount int) bool {
	if c.IsDead() {
		return false
	}
	if amount <= 0 || c.Species.Invulnerable {
		return false
	}
	c.SetHP(c.hp - amount)
	return c.IsDead()
}

// Visible reports whether the creature is currently revealed.
func (c *Instance) Visible() bool { return c.visible }

// SetVisible shows or hides the creature.
func (c *Instance) SetVisible(v bool) { c.visible = v }

// HitTile returns the tile shown when this creature's ranged attack hits.
func (c *Instance) HitTile() string { return c.hitTile }

// MissTile returns the tile shown when this creature's ranged attack misses.
func (c *Instance) MissTile() string { return c.missTile }

// RerollRangedTile picks a new field tile for a random-ranged creature and
// returns it. Other creatures keep their configured tiles.
func (c *Instance) RerollRangedTile(rng *rand.Rand) string {
	if !c.Species.HasRandomRanged() {
		return c.hitTile
	}
	tile := randomRangedTiles[rng.Intn(len(randomRangedTiles))]
	c.hitTile, c.missTile = tile, tile
	return tile
}

// RangedEffect maps the current ranged hit tile to the effect it applies.
func (c *Instance) RangedEffect() Effect {
	return EffectForTile(c.hitTile)
}

// EffectForTile maps a field tile name to its effect.
func EffectForTile(tile string) Effect {
	switch tile {
	case "fire_field":
		return EffectFire
	case "poison_field":
		return EffectPoisonField
	case "sleep_field":
		return EffectSleep
	case "energy_field":
		return EffectElectricity
	case "lava":
		return EffectLava
	default:
		return EffectNone
	}
}

// =============================================================================
// Combatant implementation
// =============================================================================

// Position returns the instance's map coordinates.
func (c *Instance) Position() gruid.Point { return c.Pos }

// IsPartyMember is always false for creatures.
func (c *Instance) IsPartyMember() bool { return false }

// IsAttackable reports whether the species can be attacked.
func (c *Instance) IsAttackable() bool { return c.Species.IsAttackable() }

// IsIncorporeal reports whether the species is incorporeal.
func (c *Instance) IsIncorporeal() bool { return c.Species.IsIncorporeal() }

// AttackBonus returns the creature's to-hit bonus.
func (c *Instance) AttackBonus() int { return 0 }

// Defense returns the value an attack roll must beat.
func (c *Instance) Defense() int { return baseDefense }

// Armor returns flat damage reduction.
func (c *Instance) Armor() int { return c.Species.Armor }

// Resists reports whether the creature is immune to e.
func (c *Instance) Resists(e Effect) bool { return c.Species.Resist(e) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
