// Package game runs encounters between the party and creatures.
package game

import (
	"context"
	"fmt"
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/entity"
	"github.com/samdwyer/bestiary/internal/logging"
	"github.com/samdwyer/bestiary/internal/telemetry"
	"github.com/samdwyer/bestiary/internal/world"
)

// Auras cast by creatures last this many rounds unless recast.
const auraRounds = 10

// CombatPhase represents the current phase of an encounter.
type CombatPhase int

const (
	// PhasePartyTurn - party members are acting
	PhasePartyTurn CombatPhase = iota
	// PhaseCreatureTurn - creatures are taking their turns
	PhaseCreatureTurn
	// PhaseVictory - all creatures defeated or gone
	PhaseVictory
	// PhaseDefeat - all party members defeated
	PhaseDefeat
	// PhaseStalemate - the round limit ran out
	PhaseStalemate
)

// String returns a human-readable phase name.
func (p CombatPhase) String() string {
	switch p {
	case PhasePartyTurn:
		return "party_turn"
	case PhaseCreatureTurn:
		return "creature_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// Over reports whether the phase ends the encounter.
func (p CombatPhase) Over() bool {
	return p >= PhaseVictory
}

// Event is one line of the encounter log.
type Event struct {
	Round int
	Actor string
	Text  string
}

// String formats the event for display.
func (e Event) String() string {
	return fmt.Sprintf("[%d] %s %s", e.Round, e.Actor, e.Text)
}

// Option configures an Encounter.
type Option func(*Encounter)

// WithLogger sets the encounter logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Encounter) { e.logger = logger }
}

// WithPlacement sets where Populate puts new creatures. The default is any
// open tile on the arena.
func WithPlacement(place func(sp *creature.Species) (gruid.Point, bool)) Option {
	return func(e *Encounter) { e.place = place }
}

// Overworld makes creatures use their world map specials: ranged breath
// and cannon fire at the lead member, and forces of nature sweeping away
// whatever shares their tile.
func Overworld() Option {
	return func(e *Encounter) { e.overworld = true }
}

// Encounter is one fight between the party and the creatures on an arena.
// It implements combat.Controller.
type Encounter struct {
	Phase CombatPhase
	Round int
	Log   []Event

	arena     *world.Arena
	party     *entity.Party
	cfg       config.CombatConfig
	rng       *rand.Rand
	logger    *zap.Logger
	resolver  *combat.Resolver
	roster    combat.Roster
	aura      combat.Aura
	auraLeft  int
	overworld bool
	place     func(sp *creature.Species) (gruid.Point, bool)
	meleeDist combat.DistanceFunc
}

// NewEncounter sets up a fight on arena. Party members join at their
// current positions; those that cannot stand there sit the fight out.
func NewEncounter(arena *world.Arena, party *entity.Party, roster combat.Roster, cfg config.CombatConfig, rng *rand.Rand, opts ...Option) *Encounter {
	e := &Encounter{
		Phase:     PhasePartyTurn,
		arena:     arena,
		party:     party,
		cfg:       cfg,
		rng:       rng,
		logger:    zap.NewNop(),
		roster:    roster,
		meleeDist: combat.Metric(cfg.MeleeMetric),
	}
	e.place = func(sp *creature.Species) (gruid.Point, bool) {
		return arena.RandomOpenTile(sp, rng)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger)
	e.resolver = combat.NewResolver(e, roster, cfg, rng, e.logger)

	for _, m := range party.Members {
		if m.IsAlive() && !arena.Join(m) {
			e.logger.Warn("party member could not join the fight",
				zap.String("member", m.Name()),
				zap.Int("x", m.Pos.X),
				zap.Int("y", m.Pos.Y),
			)
		}
	}
	return e
}

// Battlefield returns the arena.
func (e *Encounter) Battlefield() combat.Battlefield { return e.arena }

// Party returns the party's shared resources.
func (e *Encounter) Party() combat.Party { return e.party }

// Aura returns the active aura.
func (e *Encounter) Aura() combat.Aura { return e.aura }

// SetAura starts a or refreshes it for another stretch of rounds.
func (e *Encounter) SetAura(a combat.Aura) {
	if a != e.aura {
		e.record("", "aura "+a.String())
	}
	e.aura = a
	e.auraLeft = auraRounds
}

// Resolver returns the rules engine bound to this encounter.
func (e *Encounter) Resolver() *combat.Resolver { return e.resolver }

// Populate places a group led by sp at open tiles. The group size
// is rolled from the species encounter size and capped by the creature
// limit; all but the last may be swapped for the species' leader or the
// leader's leader. Returns the creatures placed.
func (e *Encounter) Populate(sp *creature.Species) []*creature.Instance {
	if sp == nil {
		return nil
	}
	count := 1
	if sp.EncounterSize > 0 {
		count = e.rng.Intn(sp.EncounterSize) + 1
	}
	if e.cfg.MaxCreatures > 0 {
		count = min(count, e.cfg.MaxCreatures-len(e.arena.Creatures()))
	}

	var placed []*creature.Instance
	for i := 0; i < count; i++ {
		kind := sp
		if sp.Leader != sp.ID && i != count-1 {
			kind = e.leaderFor(sp)
		}
		p, ok := e.place(kind)
		if !ok {
			break
		}
		inst := e.arena.Place(kind, p)
		if inst == nil {
			break
		}
		inst.SetInitialHP(creature.RandomHP, e.rng)
		placed = append(placed, inst)
	}
	return placed
}

func (e *Encounter) leaderFor(sp *creature.Species) *creature.Species {
	leader := e.roster.GetByID(sp.Leader)
	if leader == nil {
		return sp
	}
	switch {
	case e.rng.Intn(32) == 0:
		if top := e.roster.GetByID(leader.Leader); top != nil {
			return top
		}
	case e.rng.Intn(8) == 0:
		return leader
	}
	return sp
}

// Run plays rounds until the encounter ends or the round limit is reached.
func (e *Encounter) Run(ctx context.Context) CombatPhase {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "encounter.run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("party_size", len(e.party.Alive())),
		attribute.Int("creature_count", e.livingCreatures()),
	)

	e.checkEnd()
	for !e.Phase.Over() {
		if e.cfg.MaxRounds > 0 && e.Round >= e.cfg.MaxRounds {
			e.Phase = PhaseStalemate
			break
		}
		e.PlayRound(ctx)
	}

	span.SetAttributes(
		attribute.String("outcome", e.Phase.String()),
		attribute.Int("rounds", e.Round),
		attribute.Int("party_hp_remaining", e.totalPartyHP()),
	)
	e.logger.Info("encounter over",
		zap.Stringer("outcome", e.Phase),
		zap.Int("rounds", e.Round),
		zap.Int("gold", e.party.Gold),
		zap.Int("food", e.party.Food),
	)
	return e.Phase
}

// PlayRound runs one party phase followed by one creature phase.
func (e *Encounter) PlayRound(ctx context.Context) {
	if e.Phase.Over() {
		return
	}
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "encounter.round")
	defer span.End()

	e.Round++
	span.SetAttributes(attribute.Int("round", e.Round))

	e.Phase = PhasePartyTurn
	for _, m := range e.party.Members {
		if !m.IsAlive() {
			continue
		}
		e.memberTurn(m)
		if e.checkEnd() {
			return
		}
	}

	e.Phase = PhaseCreatureTurn
	for _, inst := range e.arena.Creatures() {
		// Earlier turns this phase may have killed or removed inst.
		if inst.IsDead() || !e.arena.Contains(inst) {
			continue
		}
		e.creatureTurn(inst)
		if e.checkEnd() {
			return
		}
	}

	if e.auraLeft > 0 {
		e.auraLeft--
		if e.auraLeft == 0 {
			e.aura = combat.AuraNone
		}
	}
	e.Phase = PhasePartyTurn
}

// memberTurn makes a party member attack the nearest creature within reach
// of its weapon, or step towards it.
func (e *Encounter) memberTurn(m *entity.Member) {
	if m.IsAsleep() {
		if e.rng.Intn(e.cfg.WakeOdds) != 0 {
			return
		}
		m.WakeUp()
		e.record(m.Name(), "wakes up")
	}

	ranged := m.HasRangedWeapon()
	target, dist := e.resolver.NearestOpponent(m, ranged)
	if target == nil {
		return
	}
	reach := 1
	if ranged {
		reach = e.cfg.RangedReach
	}
	if dist > reach {
		e.stepToward(m, target.Position())
		return
	}

	if !e.resolver.AttackHit(m, target) {
		e.record(m.Name(), "misses "+target.Name())
		return
	}
	res := e.resolver.DealDamage(m, target, m.Damage(e.rng), creature.EffectNone)
	e.recordDamage(m.Name(), target.Name(), res)
}

func (e *Encounter) stepToward(m *entity.Member, to gruid.Point) {
	best, bestDist := m.Pos, e.meleeDist(m.Pos, to)
	for _, p := range e.arena.ValidMoves(m.Pos, nil) {
		if d := e.meleeDist(p, to); d < bestDist {
			best, bestDist = p, d
		}
	}
	m.SetPosition(best)
}

func (e *Encounter) creatureTurn(inst *creature.Instance) {
	avatar := e.avatar()
	if e.overworld && avatar != nil {
		if sr := e.resolver.SpecialAction(inst, avatar); sr.Fired {
			e.recordSpecial(inst, avatar, sr)
			return
		}
	}

	res := e.resolver.Act(inst)
	e.recordAction(inst, res)

	if e.overworld && avatar != nil {
		if sr := e.resolver.SpecialEffect(inst, avatar); sr.AvatarHit || len(sr.Destroyed) > 0 {
			e.recordSpecial(inst, avatar, sr)
		}
	}

	if inst.IsAlive() && res.Action != combat.ActionFled {
		if er := e.resolver.ApplyTileEffect(inst, e.arena.TileEffect(inst.Pos)); er.Slept || er.Damage > 0 {
			e.recordEffect(inst, er)
		}
	}
}

// avatar is the first living member; world map specials aim at it.
func (e *Encounter) avatar() *entity.Member {
	for _, m := range e.party.Members {
		if m.IsAlive() {
			return m
		}
	}
	return nil
}

// checkEnd moves to victory or defeat when one side is gone.
func (e *Encounter) checkEnd() bool {
	switch {
	case e.party.Defeated():
		e.Phase = PhaseDefeat
	case e.livingCreatures() == 0:
		e.Phase = PhaseVictory
	default:
		return false
	}
	return true
}

func (e *Encounter) livingCreatures() int {
	n := 0
	for _, inst := range e.arena.Creatures() {
		if inst.IsAlive() {
			n++
		}
	}
	return n
}

func (e *Encounter) totalPartyHP() int {
	total := 0
	for _, m := range e.party.Members {
		total += m.HP
	}
	return total
}

var _ combat.Controller = (*Encounter)(nil)
