package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/entity"
)

func (e *Encounter) record(actor, text string) {
	e.Log = append(e.Log, Event{Round: e.Round, Actor: actor, Text: text})
	e.logger.Debug(text, zap.Int("round", e.Round), zap.String("actor", actor))
}

func (e *Encounter) recordDamage(actor, target string, res combat.DamageResult) {
	switch {
	case res.Died:
		e.record(actor, fmt.Sprintf("kills %s (%d xp)", target, res.XP))
	default:
		e.record(actor, fmt.Sprintf("hits %s for %d", target, res.Damage))
	}
	if res.Spawned != nil {
		e.record(res.Spawned.Name(), "rises from the remains of "+target)
	}
	if res.Divided != nil {
		e.record(target, "divides")
	}
}

func (e *Encounter) recordAction(inst *creature.Instance, res combat.ActionResult) {
	name := inst.Name()
	if res.Woke {
		e.record(name, "wakes up")
	}

	switch res.Action {
	case combat.ActionFled:
		if res.SparedGood {
			e.record(name, "flees and is spared")
		} else {
			e.record(name, "flees the battle")
		}
	case combat.ActionFlee:
		e.record(name, "runs away")
	case combat.ActionTeleport:
		e.record(name, fmt.Sprintf("teleports to %d,%d", res.To.X, res.To.Y))
	case combat.ActionCastSleep:
		e.record(name, fmt.Sprintf("casts sleep, %d fall asleep", len(res.Slept)))
	case combat.ActionRanged, combat.ActionAttack:
		if res.Target == nil {
			return
		}
		if !res.Hit {
			e.record(name, "misses "+res.Target.Name())
			return
		}
		if len(res.Slept) > 0 {
			e.record(name, "puts "+res.Target.Name()+" to sleep")
		} else {
			e.recordDamage(name, res.Target.Name(), res.Damage)
		}
		if res.StolenGold > 0 {
			e.record(name, fmt.Sprintf("steals %d gold", res.StolenGold))
		}
		if res.StolenFood > 0 {
			e.record(name, fmt.Sprintf("steals %d food", res.StolenFood))
		}
	}
}

func (e *Encounter) recordSpecial(inst *creature.Instance, avatar *entity.Member, res combat.SpecialResult) {
	name := inst.Name()
	switch {
	case res.Fired && res.Hit:
		e.record(name, fmt.Sprintf("fires %s at %s for %d", res.Tile, avatar.Name(), res.Damage.Damage))
	case res.Fired:
		e.record(name, fmt.Sprintf("fires %s and misses", res.Tile))
	case res.AvatarHit:
		e.record(name, fmt.Sprintf("engulfs %s for %d", avatar.Name(), res.Damage.Damage))
	}
	for _, victim := range res.Destroyed {
		e.record(name, "destroys "+victim.Name())
	}
}

func (e *Encounter) recordEffect(inst *creature.Instance, res combat.EffectResult) {
	if res.Slept {
		e.record(inst.Name(), "falls asleep")
		return
	}
	e.record(inst.Name(), fmt.Sprintf("suffers %d from %s", res.Damage, res.Effect))
	if res.Died {
		e.record(inst.Name(), "perishes")
	}
}
