package combat

import (
	"github.com/samdwyer/bestiary/internal/creature"
)

// NearestOpponent returns the closest combatant self may fight and its
// distance. Party members look for creatures and creatures look for party
// members; under the jinx aura creatures fight anyone but themselves.
// Dead and unattackable combatants are never chosen, and incorporeal ones
// only by ranged searches. Ties go to the combatant scanned first. When
// nothing qualifies the result is nil.
func (r *Resolver) NearestOpponent(self Combatant, ranged bool) (Combatant, int) {
	if self == nil {
		return nil, 0
	}
	dist := r.meleeDistance
	if ranged {
		dist = r.rangedDistance
	}
	jinx := r.ctrl.Aura() == AuraJinx && !self.IsPartyMember()
	from := self.Position()

	var best Combatant
	bestDist := 0
	for _, c := range r.ctrl.Battlefield().Combatants() {
		if c == self || !c.IsAlive() || !c.IsAttackable() {
			continue
		}
		if !ranged && c.IsIncorporeal() {
			continue
		}
		if c.IsPartyMember() == self.IsPartyMember() && !jinx {
			continue
		}
		d := dist(from, c.Position())
		if r.cfg.MaxTargetDistance > 0 && d > r.cfg.MaxTargetDistance {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestDist
}

// HideOrShow lets a camouflaged or ambushing creature blink in and out of
// sight. Hidden creatures may reveal themselves once an opponent comes
// within reveal distance; visible ones hide again when everyone is at least
// that far away. Reports whether visibility changed.
func (r *Resolver) HideOrShow(inst *creature.Instance) bool {
	if inst == nil || inst.IsDead() {
		return false
	}
	if !inst.Species.Camouflages() && !inst.Species.Ambushes() {
		return false
	}
	target, d := r.NearestOpponent(inst, false)
	if target == nil {
		return false
	}

	before := inst.Visible()
	switch {
	case d < r.cfg.RevealDistance && !before:
		if r.rng.Intn(r.cfg.RevealOdds) == 0 {
			inst.SetVisible(true)
		}
	case d >= r.cfg.RevealDistance && before:
		inst.SetVisible(false)
	}
	return inst.Visible() != before
}
