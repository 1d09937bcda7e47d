package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/entity"
	"github.com/samdwyer/bestiary/internal/gamedata"
	"github.com/samdwyer/bestiary/internal/logging"
	"github.com/samdwyer/bestiary/internal/telemetry"
	"github.com/samdwyer/bestiary/internal/world"
)

// Overworld combat maps are this many tiles square.
const overworldArenaSize = 11

var (
	// ErrNoCreature is returned when nothing can be drawn for an encounter.
	ErrNoCreature = errors.New("no creature for encounter")
	// ErrNoRoom is returned when the party has nowhere to stand.
	ErrNoRoom = errors.New("no room for the party")
)

// Session sets up encounters for one party against the creature roster.
// Not safe for concurrent use.
type Session struct {
	cfg      *config.Config
	registry *gamedata.CreatureRegistry
	party    *entity.Party
	rng      *rand.Rand
	logger   *zap.Logger
}

// New creates a session. The registry must already be loaded.
func New(cfg *config.Config, registry *gamedata.CreatureRegistry, party *entity.Party, rng *rand.Rand, logger *zap.Logger) *Session {
	return &Session{
		cfg:      cfg,
		registry: registry,
		party:    party,
		rng:      rng,
		logger:   logging.OrNop(logger),
	}
}

// Party returns the session's party.
func (s *Session) Party() *entity.Party { return s.party }

// Dungeon generates a dungeon level and sets up a fight in its first room
// against creatures drawn for that level.
func (s *Session) Dungeon(ctx context.Context, level int) (*Encounter, *world.Dungeon, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.dungeon")
	defer span.End()

	d := world.NewDungeonLevel(world.DefaultWidth, world.DefaultHeight, level, s.rng)
	d.Generate(ctx)
	if len(d.Rooms) == 0 {
		return nil, d, ErrNoRoom
	}

	sp := s.registry.RandomForDungeon(d.Level, s.rng)
	if sp == nil {
		return nil, d, fmt.Errorf("dungeon level %d: %w", d.Level, ErrNoCreature)
	}

	room := d.Rooms[0]
	if err := s.deploy(d.Arena, func() (gruid.Point, bool) { return d.RandomPointInRoom(0) }); err != nil {
		return nil, d, err
	}

	enc := NewEncounter(d.Arena, s.party, s.registry, s.cfg.Combat, s.rng,
		WithLogger(s.logger),
		WithPlacement(func(kind *creature.Species) (gruid.Point, bool) {
			return s.openTileIn(d.Arena, room, kind)
		}),
	)
	placed := enc.Populate(sp)

	span.SetAttributes(
		attribute.Int("dungeon.level", d.Level),
		attribute.String("creature", sp.Name),
		attribute.Int("creature_count", len(placed)),
	)
	s.logger.Info("dungeon encounter",
		zap.Int("level", d.Level),
		zap.String("creature", sp.Name),
		zap.Int("count", len(placed)),
	)
	return enc, d, nil
}

// Overworld sets up a fight on an open map of terrain. The era follows the
// move counter; ambushers may strike instead of the creature drawn for the
// terrain. Fights at sea leave a strip of shore for the party.
func (s *Session) Overworld(ctx context.Context, terrain world.Tile, moves int) (*Encounter, *world.Arena, error) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.overworld")
	defer span.End()

	era := s.cfg.Encounters.EraForMoves(moves)
	sp := s.registry.RandomForTile(terrain, era, s.rng)
	if sp == nil {
		return nil, nil, fmt.Errorf("terrain %c era %d: %w", terrain, era, ErrNoCreature)
	}
	if !sp.IsAquatic() && s.rng.Intn(8) == 0 {
		if ambusher := s.registry.RandomAmbushing(s.rng); ambusher != nil {
			sp = ambusher
		}
	}

	arena := world.NewArena(overworldArenaSize, overworldArenaSize, terrain, s.rng)
	if !terrain.IsPassable() {
		for y := 0; y < arena.Height; y++ {
			for x := 0; x < 2; x++ {
				arena.SetTile(gruid.Point{X: x, Y: y}, world.TileGrass)
			}
		}
	}

	row := 0
	next := func() (gruid.Point, bool) {
		for ; row < arena.Height; row++ {
			p := gruid.Point{X: 0, Y: row}
			if arena.IsPassable(p) && arena.OccupantAt(p) == nil {
				row++
				return p, true
			}
		}
		return gruid.Point{}, false
	}
	if err := s.deploy(arena, next); err != nil {
		return nil, arena, err
	}

	enc := NewEncounter(arena, s.party, s.registry, s.cfg.Combat, s.rng,
		WithLogger(s.logger),
		Overworld(),
	)
	placed := enc.Populate(sp)

	span.SetAttributes(
		attribute.Int("era", era),
		attribute.String("terrain", string(terrain.Rune())),
		attribute.String("creature", sp.Name),
		attribute.Int("creature_count", len(placed)),
	)
	s.logger.Info("overworld encounter",
		zap.Int("era", era),
		zap.String("creature", sp.Name),
		zap.Int("count", len(placed)),
	)
	return enc, arena, nil
}

// deploy gives every living member a distinct starting tile.
func (s *Session) deploy(arena *world.Arena, pick func() (gruid.Point, bool)) error {
	taken := make(map[gruid.Point]bool)
	for _, m := range s.party.Alive() {
		placed := false
		for try := 0; try < 100 && !placed; try++ {
			p, ok := pick()
			if !ok {
				break
			}
			if !taken[p] {
				taken[p] = true
				m.SetPosition(p)
				placed = true
			}
		}
		if !placed {
			return fmt.Errorf("deploy %s: %w", m.Name(), ErrNoRoom)
		}
	}
	return nil
}

// openTileIn picks a random free tile inside room that a creature of
// species sp may stand on.
func (s *Session) openTileIn(arena *world.Arena, room world.Room, sp *creature.Species) (gruid.Point, bool) {
	for i := 0; i < 100; i++ {
		p := gruid.Point{X: room.X + s.rng.Intn(room.Width), Y: room.Y + s.rng.Intn(room.Height)}
		if arena.Tile(p).Admits(sp) && arena.OccupantAt(p) == nil {
			return p, true
		}
	}
	return gruid.Point{}, false
}
