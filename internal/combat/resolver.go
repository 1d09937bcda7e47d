package combat

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
)

// Tile effect damage is rolled below this value.
const tileEffectDamage = 127

// DistanceFunc measures grid distance between two points.
type DistanceFunc func(p, q gruid.Point) int

// Metric returns the distance function for a configured metric name.
// Unknown names fall back to Manhattan distance.
func Metric(name string) DistanceFunc {
	if name == config.MetricChebyshev {
		return paths.DistanceChebyshev
	}
	return paths.DistanceManhattan
}

// DamageResult is the outcome of hurting a combatant.
type DamageResult struct {
	Damage int  // hit points actually dealt after mitigation
	Died   bool // true only for the call that killed the target
	XP     int  // experience earned, only for player kills

	Spawned *creature.Instance // creature left behind on death
	Divided *creature.Instance // copy split off a surviving divider
}

// EffectResult is the outcome of a tile effect on a creature.
type EffectResult struct {
	Effect   creature.Effect
	Resisted bool
	Slept    bool
	DamageResult
}

// Resolver applies combat rules to creature instances. It is not safe for
// concurrent use; one resolver serves one fight.
type Resolver struct {
	ctrl   Controller
	roster Roster
	cfg    config.CombatConfig
	rng    *rand.Rand
	logger *zap.Logger

	meleeDistance  DistanceFunc
	rangedDistance DistanceFunc
}

// NewResolver creates a resolver for the fight run by ctrl.
func NewResolver(ctrl Controller, roster Roster, cfg config.CombatConfig, rng *rand.Rand, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		ctrl:           ctrl,
		roster:         roster,
		cfg:            cfg,
		rng:            rng,
		logger:         logger,
		meleeDistance:  Metric(cfg.MeleeMetric),
		rangedDistance: Metric(cfg.RangedMetric),
	}
}

// ApplyDamage lowers inst's hit points. Only a call that reduces hit points
// to zero reports Died; the creature then leaves behind its spawn, if any,
// before being removed from the battlefield, and player kills earn its XP.
// A creature that survives may divide. Negative damage counts as zero.
func (r *Resolver) ApplyDamage(inst *creature.Instance, damage int, byPlayer bool) DamageResult {
	var res DamageResult
	if inst == nil || inst.IsDead() {
		return res
	}
	if damage < 0 {
		damage = 0
	}

	before := inst.HP()
	died := inst.TakeDamage(damage)
	res.Damage = before - inst.HP()

	if died {
		res.Died = true
		res.Spawned = r.SpawnOnDeath(inst)
		r.ctrl.Battlefield().Remove(inst)
		if byPlayer {
			res.XP = inst.Species.XP
		}
		r.logger.Debug("creature killed",
			zap.String("species", inst.Name()),
			zap.Stringer("id", inst.ID),
			zap.Bool("by_player", byPlayer),
		)
		return res
	}

	if inst.Species.Divides() && r.rng.Intn(r.cfg.DivideOdds) == 0 {
		res.Divided = r.Divide(inst)
	}
	return res
}

// DealDamage hurts target on behalf of attacker. A resisted effect cancels
// the damage and armor reduces it. Creature targets go through ApplyDamage;
// experience for a kill is handed to the attacker when it can take it.
func (r *Resolver) DealDamage(attacker, target Combatant, damage int, effect creature.Effect) DamageResult {
	if target == nil || !target.IsAlive() {
		return DamageResult{}
	}
	if effect != creature.EffectNone && target.Resists(effect) {
		damage = 0
	}
	damage -= target.Armor()
	if damage < 0 {
		damage = 0
	}
	byPlayer := attacker != nil && attacker.IsPartyMember()

	inst, ok := target.(*creature.Instance)
	if !ok {
		return DamageResult{Damage: damage, Died: target.TakeDamage(damage)}
	}

	res := r.ApplyDamage(inst, damage, byPlayer)
	if res.XP > 0 {
		if xp, ok := attacker.(Experienced); ok {
			xp.AddXP(res.XP)
		}
	}
	return res
}

// AttackHit rolls whether attacker's blow lands on defender.
func (r *Resolver) AttackHit(attacker, defender Combatant) bool {
	return r.rng.Intn(256)+attacker.AttackBonus() > defender.Defense()
}

// Damage rolls the damage a creature of species sp deals with one blow.
// The roll is read as two decimal digits, giving 0..99 for the largest
// creatures.
func (r *Resolver) Damage(sp *creature.Species) int {
	limit := sp.BaseHP >> 2
	if limit <= 0 {
		return 0
	}
	x := r.rng.Intn(limit)
	return (x>>4)*10 + x%10
}

// ApplyTileEffect subjects inst to the effect of the tile it stands on.
// Sleep fields put weaker creatures to sleep more often; fire, lava and
// poison fields deal random damage that never counts as a player kill.
func (r *Resolver) ApplyTileEffect(inst *creature.Instance, effect creature.Effect) EffectResult {
	res := EffectResult{Effect: effect}
	if inst == nil || inst.IsDead() || effect == creature.EffectNone {
		return res
	}
	if inst.Resists(effect) {
		res.Resisted = true
		return res
	}

	switch effect {
	case creature.EffectSleep:
		if r.rng.Intn(255) >= inst.HP() && !inst.IsAsleep() {
			inst.PutToSleep()
			res.Slept = true
		}
	case creature.EffectFire, creature.EffectLava, creature.EffectPoisonField:
		res.DamageResult = r.ApplyDamage(inst, r.rng.Intn(tileEffectDamage), false)
	}
	return res
}
