// Package config loads engine settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root of the TOML settings file.
type Config struct {
	Game       GameConfig      `toml:"game"`
	Combat     CombatConfig    `toml:"combat"`
	Encounters EncounterConfig `toml:"encounters"`
	Logging    LoggingConfig   `toml:"logging"`
	Telemetry  TelemetryConfig `toml:"telemetry"`
}

// GameConfig holds session-wide settings.
type GameConfig struct {
	// Seed for random number generation. A seed of 0 means a random seed.
	Seed             int64  `toml:"seed"`
	BattleDifficulty string `toml:"battle_difficulty"` // "normal", "hard" or "expert"
	CreatureFile     string `toml:"creature_file"`     // empty = embedded creatures.yaml
}

// CombatConfig tunes the combat engine. Odds are 1-in-N rolls.
type CombatConfig struct {
	MaxCreatures      int    `toml:"max_creatures"`       // divide cap across the whole battlefield, 0 = unlimited
	DivideOdds        int    `toml:"divide_odds"`         // 1-in-N chance a wounded divider splits
	TeleportOdds      int    `toml:"teleport_odds"`       // 1-in-N chance a teleporter blinks
	SleepCastOdds     int    `toml:"sleep_cast_odds"`     // 1-in-N chance a sleep caster casts
	WakeOdds          int    `toml:"wake_odds"`           // 1-in-N chance a sleeper wakes each turn
	StealGoldOdds     int    `toml:"steal_gold_odds"`     // 1-in-N chance a hit steals gold
	RevealOdds        int    `toml:"reveal_odds"`         // 1-in-N chance a hidden creature shows itself
	RevealDistance    int    `toml:"reveal_distance"`     // hidden creatures closer than this may show
	RangedReach       int    `toml:"ranged_reach"`        // maximum ranged attack distance
	MaxTargetDistance int    `toml:"max_target_distance"` // opponents further away are ignored, 0 = unlimited
	MeleeMetric       string `toml:"melee_metric"`        // "manhattan" or "chebyshev"
	RangedMetric      string `toml:"ranged_metric"`       // "manhattan" or "chebyshev"
	MaxRounds         int    `toml:"max_rounds"`          // encounter round limit
}

// EncounterConfig controls overworld encounter tables.
type EncounterConfig struct {
	// Move counts at which overworld eras 1, 2, ... begin.
	EraThresholds []int `toml:"era_thresholds"`
}

// LoggingConfig selects the zap logger level and encoding.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// TelemetryConfig toggles OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

// Validate rejects settings the combat core cannot run with.
func (c *Config) Validate() error {
	if _, err := DifficultyMultiplier(c.Game.BattleDifficulty); err != nil {
		return err
	}
	for _, m := range []string{c.Combat.MeleeMetric, c.Combat.RangedMetric} {
		if m != MetricManhattan && m != MetricChebyshev {
			return fmt.Errorf("unknown distance metric %q", m)
		}
	}
	odds := map[string]int{
		"divide_odds":     c.Combat.DivideOdds,
		"teleport_odds":   c.Combat.TeleportOdds,
		"sleep_cast_odds": c.Combat.SleepCastOdds,
		"wake_odds":       c.Combat.WakeOdds,
		"steal_gold_odds": c.Combat.StealGoldOdds,
		"reveal_odds":     c.Combat.RevealOdds,
	}
	for name, v := range odds {
		if v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", name, v)
		}
	}
	prev := 0
	for _, t := range c.Encounters.EraThresholds {
		if t <= prev {
			return fmt.Errorf("era_thresholds must be strictly increasing and positive")
		}
		prev = t
	}
	return nil
}

// Distance metric names.
const (
	MetricManhattan = "manhattan"
	MetricChebyshev = "chebyshev"
)

// DifficultyMultiplier returns the base hit point multiplier for a battle
// difficulty setting.
func DifficultyMultiplier(difficulty string) (int, error) {
	switch strings.ToLower(difficulty) {
	case "", "normal":
		return 1, nil
	case "hard":
		return 2, nil
	case "expert":
		return 4, nil
	default:
		return 0, fmt.Errorf("unknown battle difficulty %q", difficulty)
	}
}

// EraForMoves maps a move counter to an overworld encounter era.
func (e EncounterConfig) EraForMoves(moves int) int {
	era := 0
	for _, t := range e.EraThresholds {
		if moves > t {
			era++
		}
	}
	return era
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Seed:             0,
			BattleDifficulty: "normal",
		},
		Combat: CombatConfig{
			MaxCreatures:      16,
			DivideOdds:        2,
			TeleportOdds:      8,
			SleepCastOdds:     4,
			WakeOdds:          8,
			StealGoldOdds:     4,
			RevealOdds:        2,
			RevealDistance:    5,
			RangedReach:       11,
			MaxTargetDistance: 0,
			MeleeMetric:       MetricManhattan,
			RangedMetric:      MetricChebyshev,
			MaxRounds:         100,
		},
		Encounters: EncounterConfig{
			EraThresholds: []int{20000, 30000},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}
