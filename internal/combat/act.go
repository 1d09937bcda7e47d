package combat

import (
	"codeberg.org/anaseto/gruid"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/creature"
)

// Food taken by a food-stealing creature's successful hit.
const stolenFood = 25

// Gold stolen per successful theft is rolled below this value.
const stolenGoldLimit = 0x3f

// Action is what a creature did with its turn.
type Action int

const (
	ActionNone Action = iota
	ActionSleep
	ActionHidden
	ActionFlee
	ActionFled
	ActionTeleport
	ActionRanged
	ActionCastSleep
	ActionAttack
	ActionAdvance
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSleep:
		return "sleep"
	case ActionHidden:
		return "hidden"
	case ActionFlee:
		return "flee"
	case ActionFled:
		return "fled"
	case ActionTeleport:
		return "teleport"
	case ActionRanged:
		return "ranged"
	case ActionCastSleep:
		return "cast_sleep"
	case ActionAttack:
		return "attack"
	case ActionAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

// ActionResult describes a creature's turn for the controller to present.
type ActionResult struct {
	Action   Action
	Woke     bool
	Target   Combatant
	Distance int

	Hit    bool
	Tile   string // ranged hit or miss tile
	Damage DamageResult
	Slept  []Combatant

	StolenGold int
	StolenFood int
	SparedGood bool

	From, To gruid.Point
}

// Act plays one turn for inst. Checks run in order and the first that
// applies decides the turn: dead creatures do nothing, sleepers may wake,
// hidden creatures stay hidden, the badly wounded flee, teleporters may
// blink away, ranged and sleep-casting creatures may use those, and
// everyone else attacks the nearest opponent or closes in on it.
// Impossible actions degrade to doing nothing.
func (r *Resolver) Act(inst *creature.Instance) ActionResult {
	var res ActionResult
	if inst == nil || inst.IsDead() {
		return res
	}
	sp := inst.Species

	if inst.IsAsleep() {
		if r.rng.Intn(r.cfg.WakeOdds) != 0 {
			res.Action = ActionSleep
			return res
		}
		inst.WakeUp()
		res.Woke = true
	}

	if sp.Negates() {
		r.ctrl.SetAura(AuraNegate)
	}

	if sp.Camouflages() || sp.Ambushes() {
		r.HideOrShow(inst)
		if !inst.Visible() {
			res.Action = ActionHidden
			return res
		}
	}

	if inst.Tier() == creature.Fleeing {
		return r.flee(inst, res)
	}

	if sp.Teleports() && r.rng.Intn(r.cfg.TeleportOdds) == 0 && r.teleport(inst, &res) {
		return res
	}

	negated := r.ctrl.Aura() == AuraNegate
	if sp.WillAttack() && sp.IsRanged() && r.rng.Intn(100) < sp.RangedChance && r.rangedAttack(inst, negated, &res) {
		return res
	}

	if sp.CastsSleep() && !negated && r.rng.Intn(r.cfg.SleepCastOdds) == 0 {
		r.castSleep(&res)
		return res
	}

	return r.meleeOrAdvance(inst, res)
}

func (r *Resolver) flee(inst *creature.Instance, res ActionResult) ActionResult {
	if inst.Species.IsStationary() {
		return res
	}
	field := r.ctrl.Battlefield()
	res.Action = ActionFlee
	res.From, res.To = inst.Pos, inst.Pos

	if onEdge(field, inst.Pos) {
		field.Remove(inst)
		res.Action = ActionFled
		if inst.Species.IsGood() {
			res.SparedGood = true
			if party := r.ctrl.Party(); party != nil {
				party.AdjustKarma(KarmaSparedGood)
			}
		}
		r.logger.Debug("creature fled",
			zap.String("species", inst.Name()),
			zap.Stringer("id", inst.ID),
		)
		return res
	}

	threat, d := r.NearestOpponent(inst, false)
	if threat == nil {
		return res
	}
	res.Target, res.Distance = threat, d

	best, bestDist := inst.Pos, d
	for _, p := range field.ValidMoves(inst.Pos, inst.Species) {
		if pd := r.meleeDistance(p, threat.Position()); pd > bestDist {
			best, bestDist = p, pd
		}
	}
	if best != inst.Pos && field.Move(inst, best) {
		res.To = best
	}
	return res
}

func (r *Resolver) teleport(inst *creature.Instance, res *ActionResult) bool {
	field := r.ctrl.Battlefield()
	to, ok := field.RandomOpenTile(inst.Species, r.rng)
	if !ok {
		return false
	}
	from := inst.Pos
	if !field.Move(inst, to) {
		return false
	}
	res.Action = ActionTeleport
	res.From, res.To = from, to
	return true
}

func (r *Resolver) rangedAttack(inst *creature.Instance, negated bool, res *ActionResult) bool {
	inst.RerollRangedTile(r.rng)
	if negated && inst.HitTile() == creature.MagicFlashTile {
		return false
	}
	target, d := r.NearestOpponent(inst, true)
	if target == nil || d > r.cfg.RangedReach {
		return false
	}

	res.Action = ActionRanged
	res.Target, res.Distance = target, d
	if !r.AttackHit(inst, target) {
		res.Tile = inst.MissTile()
		return true
	}

	res.Hit = true
	res.Tile = inst.HitTile()
	effect := inst.RangedEffect()
	if effect == creature.EffectSleep {
		if !target.Resists(effect) {
			target.PutToSleep()
			res.Slept = append(res.Slept, target)
		}
		return true
	}
	res.Damage = r.DealDamage(inst, target, r.Damage(inst.Species), effect)
	return true
}

// castSleep gives each conscious party member an even chance to fall asleep.
func (r *Resolver) castSleep(res *ActionResult) {
	res.Action = ActionCastSleep
	for _, c := range r.ctrl.Battlefield().Combatants() {
		if !c.IsPartyMember() || !c.IsAlive() {
			continue
		}
		if r.rng.Intn(2) == 0 && !c.Resists(creature.EffectSleep) {
			c.PutToSleep()
			res.Slept = append(res.Slept, c)
		}
	}
}

func (r *Resolver) meleeOrAdvance(inst *creature.Instance, res ActionResult) ActionResult {
	target, d := r.NearestOpponent(inst, false)
	if target == nil {
		return res
	}
	res.Target, res.Distance = target, d

	if d > 1 {
		return r.advance(inst, target, res)
	}
	if !inst.Species.WillAttack() {
		return res
	}

	res.Action = ActionAttack
	if !r.AttackHit(inst, target) {
		return res
	}
	res.Hit = true
	res.Damage = r.DealDamage(inst, target, r.Damage(inst.Species), creature.EffectNone)
	if target.IsPartyMember() {
		r.steal(inst, &res)
	}
	return res
}

func (r *Resolver) advance(inst *creature.Instance, target Combatant, res ActionResult) ActionResult {
	res.Action = ActionAdvance
	res.From, res.To = inst.Pos, inst.Pos
	if inst.Species.IsStationary() {
		return res
	}

	field := r.ctrl.Battlefield()
	best, bestDist := inst.Pos, res.Distance
	for _, p := range field.ValidMoves(inst.Pos, inst.Species) {
		if pd := r.meleeDistance(p, target.Position()); pd < bestDist {
			best, bestDist = p, pd
		}
	}
	if best != inst.Pos && field.Move(inst, best) {
		res.To = best
	}
	return res
}

func (r *Resolver) steal(inst *creature.Instance, res *ActionResult) {
	party := r.ctrl.Party()
	if party == nil {
		return
	}
	if inst.Species.StealsGold() && r.rng.Intn(r.cfg.StealGoldOdds) == 0 {
		res.StolenGold = -party.AdjustGold(-r.rng.Intn(stolenGoldLimit))
	}
	if inst.Species.StealsFood() {
		res.StolenFood = -party.AdjustFood(-stolenFood)
	}
}

var cardinals = []gruid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// onEdge reports whether one step from p leaves the battlefield.
func onEdge(field Battlefield, p gruid.Point) bool {
	for _, d := range cardinals {
		if !field.InBounds(p.Add(d)) {
			return true
		}
	}
	return false
}
