package combat

import (
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/creature"
)

const (
	// Creatures with a world ranged attack fire when this close to the avatar.
	specialRange = 3
	// A force of nature reaching the avatar deals up to this much damage.
	natureDamage = 75
)

// SpecialResult describes a world map special action or effect.
type SpecialResult struct {
	Fired     bool
	Tile      string
	Hit       bool
	AvatarHit bool
	Damage    DamageResult
	Destroyed []*creature.Instance
}

// SpecialAction lets a creature with a world ranged attack (breath, cannon,
// lava) fire at the avatar when close enough, half of the time. Ships only
// fire broadsides, along a row or column.
func (r *Resolver) SpecialAction(inst *creature.Instance, avatar Combatant) SpecialResult {
	var res SpecialResult
	if inst == nil || inst.IsDead() || avatar == nil || inst.Species.WorldRangedTile == "" {
		return res
	}
	sp := inst.Species
	to := avatar.Position()
	if r.rangedDistance(inst.Pos, to) > specialRange {
		return res
	}
	if sp.Sails() && inst.Pos.X != to.X && inst.Pos.Y != to.Y {
		return res
	}
	if r.rng.Intn(2) != 0 {
		return res
	}

	res.Fired = true
	res.Tile = sp.WorldRangedTile
	if r.AttackHit(inst, avatar) {
		res.Hit = true
		res.Damage = r.DealDamage(inst, avatar, r.Damage(sp), creature.EffectForTile(sp.WorldRangedTile))
	}
	return res
}

// SpecialEffect applies a force of nature's presence: on the avatar's tile
// it strikes the avatar, elsewhere it destroys any creature sharing its tile.
func (r *Resolver) SpecialEffect(inst *creature.Instance, avatar Combatant) SpecialResult {
	var res SpecialResult
	if inst == nil || inst.IsDead() || !inst.Species.IsForceOfNature() {
		return res
	}

	if avatar != nil && avatar.IsAlive() && inst.Pos == avatar.Position() {
		res.AvatarHit = true
		res.Damage = r.DealDamage(inst, avatar, r.rng.Intn(natureDamage+1), creature.EffectNone)
		return res
	}

	field := r.ctrl.Battlefield()
	for _, other := range creaturesOn(field) {
		if other == inst || other.IsDead() || other.Pos != inst.Pos {
			continue
		}
		other.SetHP(0)
		field.Remove(other)
		res.Destroyed = append(res.Destroyed, other)
		r.logger.Debug("force of nature destroyed creature",
			zap.String("force", inst.Name()),
			zap.String("victim", other.Name()),
		)
	}
	return res
}
