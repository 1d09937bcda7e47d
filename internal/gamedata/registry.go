package gamedata

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/telemetry"
)

// CreatureFile is the embedded roster.
const CreatureFile = "creatures.yaml"

// TileCapabilities is what the registry needs to know about a map tile to
// pick a creature that can live on it.
type TileCapabilities interface {
	Swimmable() bool
	Sailable() bool
	Flyable() bool
	CreatureWalkable() bool
}

// Source produces the decoded creature file.
type Source func() (CreaturesFile, error)

// Embedded reads the roster compiled into the binary.
func Embedded() Source {
	return func() (CreaturesFile, error) { return Load[CreaturesFile](CreatureFile) }
}

// FromFile reads a roster from disk.
func FromFile(path string) Source {
	return func() (CreaturesFile, error) { return LoadFile[CreaturesFile](path) }
}

// FromBytes decodes an in-memory roster.
func FromBytes(name string, content []byte) Source {
	return func() (CreaturesFile, error) { return Parse[CreaturesFile](name, content) }
}

type weighted struct {
	species *creature.Species
	weight  int
}

type dungeonLevel struct {
	level   int
	entries []weighted
}

// CreatureRegistry owns every species definition. It is populated once by
// LoadAll and is read-only afterwards, so lookups are safe from any goroutine.
type CreatureRegistry struct {
	source       Source
	hpMultiplier int
	logger       *zap.Logger

	once sync.Once
	err  error

	byID    map[creature.ID]*creature.Species
	byName  map[string]*creature.Species
	byTile  map[string]*creature.Species
	ordered []*creature.Species
	dungeon []dungeonLevel
}

// Option configures a CreatureRegistry.
type Option func(*CreatureRegistry)

// WithLogger sets the logger used during load.
func WithLogger(l *zap.Logger) Option {
	return func(r *CreatureRegistry) { r.logger = l }
}

// WithHPMultiplier scales every base hit point value, e.g. 2 for hard battles.
func WithHPMultiplier(m int) Option {
	return func(r *CreatureRegistry) { r.hpMultiplier = m }
}

// NewCreatureRegistry creates an empty registry that will read from source.
func NewCreatureRegistry(source Source, opts ...Option) *CreatureRegistry {
	r := &CreatureRegistry{
		source:       source,
		hpMultiplier: 1,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// LoadCreatureRegistry builds and loads a registry from the embedded roster.
func LoadCreatureRegistry(ctx context.Context, opts ...Option) (*CreatureRegistry, error) {
	r := NewCreatureRegistry(Embedded(), opts...)
	if err := r.LoadAll(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// MustLoadCreatureRegistry loads the embedded roster, panicking on error.
func MustLoadCreatureRegistry() *CreatureRegistry {
	r, err := LoadCreatureRegistry(context.Background())
	if err != nil {
		panic(err)
	}
	return r
}

// LoadAll populates the registry. Only the first call does any work; later
// calls return the first call's result. On error the registry stays empty.
func (r *CreatureRegistry) LoadAll(ctx context.Context) error {
	r.once.Do(func() {
		r.err = r.load(ctx)
	})
	return r.err
}

// MustLoadAll is LoadAll for callers that cannot run without creatures.
func (r *CreatureRegistry) MustLoadAll(ctx context.Context) {
	if err := r.LoadAll(ctx); err != nil {
		panic(err)
	}
}

func (r *CreatureRegistry) load(ctx context.Context) error {
	_, span := telemetry.Tracer("gamedata").Start(ctx, "registry.load")
	defer span.End()

	file, err := r.source()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load creatures: %w", err)
	}
	if file.Default == nil {
		return ErrMissingDefault
	}

	byID := make(map[creature.ID]*creature.Species, len(file.Creatures))
	ordered := make([]*creature.Species, 0, len(file.Creatures))
	for i := range file.Creatures {
		sp, err := file.Creatures[i].Species(*file.Default, r.hpMultiplier)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creature #%d: %w", i, err)
		}
		if _, dup := byID[sp.ID]; dup {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateID, sp.ID, sp.Name)
		}
		byID[sp.ID] = sp
		ordered = append(ordered, sp)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, sp := range ordered {
		if _, ok := byID[sp.Leader]; !ok {
			return fmt.Errorf("%w: %s leader %d", ErrUnknownReference, sp.Name, sp.Leader)
		}
		if sp.SpawnsOnDeath() {
			if _, ok := byID[sp.Spawn]; !ok {
				return fmt.Errorf("%w: %s spawns %d", ErrUnknownReference, sp.Name, sp.Spawn)
			}
		}
	}

	dungeon, err := buildDungeon(file.Dungeon, byID)
	if err != nil {
		return err
	}

	fold := cases.Fold()
	byName := make(map[string]*creature.Species, len(ordered))
	byTile := make(map[string]*creature.Species, len(ordered))
	for _, sp := range ordered {
		key := fold.String(sp.Name)
		if _, taken := byName[key]; !taken {
			byName[key] = sp
		}
		if _, taken := byTile[sp.Tile]; !taken && sp.Tile != "" {
			byTile[sp.Tile] = sp
		}
	}

	r.byID, r.byName, r.byTile = byID, byName, byTile
	r.ordered, r.dungeon = ordered, dungeon

	span.SetAttributes(
		attribute.Int("creatures.count", len(ordered)),
		attribute.Int("dungeon.levels", len(dungeon)),
	)
	r.logger.Info("creature roster loaded",
		zap.Int("creatures", len(ordered)),
		zap.Int("dungeon_levels", len(dungeon)),
		zap.Int("hp_multiplier", r.hpMultiplier),
	)
	return nil
}

func buildDungeon(rows []DungeonRow, byID map[creature.ID]*creature.Species) ([]dungeonLevel, error) {
	levels := make([]dungeonLevel, 0, len(rows))
	for _, row := range rows {
		lvl := dungeonLevel{level: row.Level}
		for _, e := range row.Encounters {
			sp, ok := byID[creature.ID(e.ID)]
			if !ok || e.ID < 0 {
				return nil, fmt.Errorf("%w: dungeon level %d lists %d", ErrUnknownReference, row.Level, e.ID)
			}
			if e.Weight <= 0 {
				return nil, fmt.Errorf("%w: dungeon level %d weight %d", ErrInvalidField, row.Level, e.Weight)
			}
			lvl.entries = append(lvl.entries, weighted{species: sp, weight: e.Weight})
		}
		levels = append(levels, lvl)
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].level < levels[j].level })
	return levels, nil
}

// GetByID returns the species with the given id, or nil if not found.
func (r *CreatureRegistry) GetByID(id creature.ID) *creature.Species {
	return r.byID[id]
}

// GetByName returns the first species (in id order) whose name matches
// regardless of case, or nil.
func (r *CreatureRegistry) GetByName(name string) *creature.Species {
	return r.byName[cases.Fold().String(name)]
}

// GetByTile returns the first species drawn with the given tile, or nil.
func (r *CreatureRegistry) GetByTile(tile string) *creature.Species {
	return r.byTile[tile]
}

// All returns every species in ascending id order.
func (r *CreatureRegistry) All() []*creature.Species {
	out := make([]*creature.Species, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Count returns the number of species in the registry.
func (r *CreatureRegistry) Count() int {
	return len(r.ordered)
}

// RandomForTile picks a random encounter able to live on tile. Water tiles
// only produce aquatic creatures that can swim or sail there; land tiles
// produce non-aquatic walkers and fliers. Species from a later era than era
// are skipped. Returns nil when nothing fits.
func (r *CreatureRegistry) RandomForTile(tile TileCapabilities, era int, rng *rand.Rand) *creature.Species {
	if tile == nil {
		return nil
	}
	water := tile.Swimmable() || tile.Sailable()

	var candidates []weighted
	for _, sp := range r.ordered {
		if sp.SpawnWeight <= 0 || sp.Era > era {
			continue
		}
		var fits bool
		if water {
			fits = sp.IsAquatic() && ((sp.Swims() && tile.Swimmable()) || (sp.Sails() && tile.Sailable()))
		} else {
			fits = !sp.IsAquatic() && ((sp.Walks() && tile.CreatureWalkable()) || (sp.Flies() && tile.Flyable()))
		}
		if fits {
			candidates = append(candidates, weighted{species: sp, weight: sp.SpawnWeight})
		}
	}
	return pickWeighted(candidates, rng)
}

// RandomForDungeon picks an encounter for a dungeon level. A level uses the
// deepest table row not deeper than itself; levels above the first row use
// the first row. Returns nil when the table is empty.
func (r *CreatureRegistry) RandomForDungeon(level int, rng *rand.Rand) *creature.Species {
	if len(r.dungeon) == 0 {
		return nil
	}
	row := r.dungeon[0]
	for _, l := range r.dungeon {
		if l.level > level {
			break
		}
		row = l
	}
	return pickWeighted(row.entries, rng)
}

// RandomAmbushing picks uniformly among species that ambush. Returns nil
// when the roster has none.
func (r *CreatureRegistry) RandomAmbushing(rng *rand.Rand) *creature.Species {
	var ambushers []*creature.Species
	for _, sp := range r.ordered {
		if sp.Ambushes() {
			ambushers = append(ambushers, sp)
		}
	}
	if len(ambushers) == 0 {
		return nil
	}
	return ambushers[rng.Intn(len(ambushers))]
}

func pickWeighted(candidates []weighted, rng *rand.Rand) *creature.Species {
	total := 0
	for _, c := range candidates {
		total += c.weight
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, c := range candidates {
		cumulative += c.weight
		if roll < cumulative {
			return c.species
		}
	}
	return candidates[len(candidates)-1].species
}
