// Package main runs a single headless encounter and prints its log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/bestiary/internal/config"
	"github.com/samdwyer/bestiary/internal/entity"
	"github.com/samdwyer/bestiary/internal/game"
	"github.com/samdwyer/bestiary/internal/gamedata"
	"github.com/samdwyer/bestiary/internal/logging"
	"github.com/samdwyer/bestiary/internal/telemetry"
	"github.com/samdwyer/bestiary/internal/world"
)

func main() {
	level := flag.Int("dungeon", 0, "dungeon level to fight on, 0 for the overworld")
	terrain := flag.String("terrain", "grass", "overworld terrain: grass, swamp, forest, mountain, water, ocean")
	moves := flag.Int("moves", 0, "move counter, selects the overworld era")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg := config.Default()
	if path := os.Getenv("BESTIARY_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Enabled)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	registry, err := loadRegistry(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("load creatures", zap.Error(err))
	}
	classes, err := gamedata.LoadClasses()
	if err != nil {
		logger.Fatal("load classes", zap.Error(err))
	}
	party := entity.NewPartyFromClasses(classes,
		[]string{"Avatar", "Iolo", "Shamino", "Dupre"},
		[]entity.Class{entity.ClassFighter, entity.ClassBard, entity.ClassRanger, entity.ClassPaladin},
	)

	session := game.New(cfg, registry, party, rng, logger)
	enc, err := setup(ctx, session, *level, *terrain, *moves)
	if err != nil {
		logger.Fatal("set up encounter", zap.Error(err))
	}

	outcome := enc.Run(ctx)
	for _, ev := range enc.Log {
		fmt.Println(ev)
	}
	fmt.Printf("%s after %d rounds (seed %d, gold %d, food %d)\n", outcome, enc.Round, seed, party.Gold, party.Food)
	for _, m := range party.Members {
		fmt.Printf("  %-8s %-8s hp %3d/%d xp %d\n", m.Name(), m.Class, m.HP, m.MaxHP, m.XP)
	}
}

func loadRegistry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gamedata.CreatureRegistry, error) {
	mult, err := config.DifficultyMultiplier(cfg.Game.BattleDifficulty)
	if err != nil {
		return nil, err
	}
	source := gamedata.Embedded()
	if cfg.Game.CreatureFile != "" {
		source = gamedata.FromFile(cfg.Game.CreatureFile)
	}
	registry := gamedata.NewCreatureRegistry(source,
		gamedata.WithLogger(logger),
		gamedata.WithHPMultiplier(mult),
	)
	if err := registry.LoadAll(ctx); err != nil {
		return nil, err
	}
	return registry, nil
}

func setup(ctx context.Context, session *game.Session, level int, terrain string, moves int) (*game.Encounter, error) {
	if level > 0 {
		enc, _, err := session.Dungeon(ctx, level)
		return enc, err
	}
	tile, ok := world.ParseTerrain(terrain)
	if !ok {
		return nil, fmt.Errorf("unknown terrain %q", terrain)
	}
	enc, _, err := session.Overworld(ctx, tile, moves)
	return enc, err
}
