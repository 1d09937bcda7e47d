package combat

import (
	"codeberg.org/anaseto/gruid"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/creature"
)

// Divide splits a living divider in two: a copy is placed on a random free
// neighbouring tile and both halves share the hit points, rounded up.
// Returns the new instance, or nil when the species does not divide, the
// battlefield already holds MaxCreatures living creatures, or there is no
// room next to it.
func (r *Resolver) Divide(inst *creature.Instance) *creature.Instance {
	if inst == nil || inst.IsDead() || !inst.Species.Divides() {
		return nil
	}
	field := r.ctrl.Battlefield()
	if r.cfg.MaxCreatures > 0 && livingCreatures(field) >= r.cfg.MaxCreatures {
		return nil
	}

	var moves []gruid.Point
	for _, p := range field.ValidMoves(inst.Pos, inst.Species) {
		if !occupied(field, p) {
			moves = append(moves, p)
		}
	}
	if len(moves) == 0 {
		return nil
	}
	at := moves[r.rng.Intn(len(moves))]
	child := field.Place(inst.Species, at)
	if child == nil {
		return nil
	}

	hp := (inst.HP() + 1) / 2
	inst.SetHP(hp)
	child.SetHP(hp)

	r.logger.Debug("creature divided",
		zap.String("species", inst.Name()),
		zap.Stringer("parent", inst.ID),
		zap.Stringer("child", child.ID),
		zap.Int("hp", hp),
	)
	return child
}

// SpawnOnDeath places the species' configured spawn where inst stands.
// Returns nil when the species spawns nothing, the spawn id is unknown or
// the battlefield rejects the placement.
func (r *Resolver) SpawnOnDeath(inst *creature.Instance) *creature.Instance {
	if inst == nil || !inst.Species.SpawnsOnDeath() {
		return nil
	}
	sp := r.roster.GetByID(inst.Species.Spawn)
	if sp == nil {
		r.logger.Warn("spawn species not found",
			zap.String("species", inst.Name()),
			zap.Uint16("spawn", uint16(inst.Species.Spawn)),
		)
		return nil
	}

	child := r.ctrl.Battlefield().Place(sp, inst.Pos)
	if child == nil {
		return nil
	}
	child.SetInitialHP(creature.RandomHP, r.rng)

	r.logger.Debug("creature spawned on death",
		zap.String("species", inst.Name()),
		zap.String("spawn", sp.Name),
		zap.Int("hp", child.HP()),
	)
	return child
}

func livingCreatures(field Battlefield) int {
	n := 0
	for _, inst := range creaturesOn(field) {
		if inst.IsAlive() {
			n++
		}
	}
	return n
}

// occupied reports whether a living combatant stands at p.
func occupied(field Battlefield, p gruid.Point) bool {
	for _, c := range field.Combatants() {
		if c.IsAlive() && c.Position() == p {
			return true
		}
	}
	return false
}
