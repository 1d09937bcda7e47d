package gamedata

import (
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/bestiary/internal/creature"
)

// Load errors. Wrapped errors returned by the registry can be tested with errors.Is.
var (
	ErrMissingDefault   = errors.New("creature file has no default block")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidField     = errors.New("invalid field value")
	ErrDuplicateID      = errors.New("duplicate creature id")
	ErrUnknownReference = errors.New("reference to unknown creature id")
)

// CreaturesFile is the layout of creatures.yaml.
type CreaturesFile struct {
	Default   *CreatureDefaults `yaml:"default"`
	Creatures []CreatureRecord  `yaml:"creatures"`
	Dungeon   []DungeonRow      `yaml:"dungeon"`
}

// CreatureDefaults supplies values for optional fields a record leaves out.
type CreatureDefaults struct {
	HitTile       string `yaml:"rangedhittile"`
	MissTile      string `yaml:"rangedmisstile"`
	RangedChance  int    `yaml:"rangedChance"`
	EncounterSize int    `yaml:"encounterSize"`
	SpawnWeight   int    `yaml:"spawnWeight"`
	Armor         int    `yaml:"armor"`
	Color         string `yaml:"color"`
}

// CreatureRecord is one creature entry as written in the data file.
// Pointer fields distinguish "absent" from zero.
type CreatureRecord struct {
	ID     *int   `yaml:"id"`
	Name   string `yaml:"name"`
	Tile   string `yaml:"tile"`
	Color  string `yaml:"color"`
	BaseHP *int   `yaml:"basehp"`
	Exp    int    `yaml:"exp"`
	Leader *int   `yaml:"leader"`
	Era    int    `yaml:"era"`

	EncounterSize *int `yaml:"encounterSize"`
	SpawnWeight   *int `yaml:"spawnWeight"`
	Armor         *int `yaml:"armor"`

	Ranged          bool   `yaml:"ranged"`
	RangedChance    *int   `yaml:"rangedChance"`
	RangedHitTile   string `yaml:"rangedhittile"`
	RangedMissTile  string `yaml:"rangedmisstile"`
	CamouflageTile  string `yaml:"camouflageTile"`
	WorldRangedTile string `yaml:"worldrangedtile"`
	LeavesTile      bool   `yaml:"leavestile"`

	Resists  []string `yaml:"resists"`
	Steals   string   `yaml:"steals"`
	Casts    string   `yaml:"casts"`
	Movement string   `yaml:"movement"`

	Undead        bool `yaml:"undead"`
	Good          bool `yaml:"good"`
	Swims         bool `yaml:"swims"`
	Sails         bool `yaml:"sails"`
	Flies         bool `yaml:"flies"`
	Teleports     bool `yaml:"teleports"`
	OntoCreatures bool `yaml:"canMoveOntoCreatures"`
	OntoAvatar    bool `yaml:"canMoveOntoAvatar"`
	CantAttack    bool `yaml:"cantattack"`
	WontAttack    bool `yaml:"wontattack"`
	Camouflage    bool `yaml:"camouflage"`
	Ambushes      bool `yaml:"ambushes"`
	Incorporeal   bool `yaml:"incorporeal"`
	NoChest       bool `yaml:"nochest"`
	Divides       bool `yaml:"divides"`
	ForceOfNature bool `yaml:"forceOfNature"`
	Invulnerable  bool `yaml:"invulnerable"`
	SpawnsOnDeath *int `yaml:"spawnsOnDeath"`
}

// DungeonRow lists the encounters possible from Level downwards.
type DungeonRow struct {
	Level      int                `yaml:"level"`
	Encounters []DungeonEncounter `yaml:"encounters"`
}

// DungeonEncounter is one weighted entry of a dungeon row.
type DungeonEncounter struct {
	ID     int `yaml:"id"`
	Weight int `yaml:"weight"`
}

const randomTile = "random"

// Species builds a fresh species from the record. Absent optional fields take
// their value from d; hpMultiplier scales the base hit points for the battle
// difficulty. The record itself is never modified.
func (r *CreatureRecord) Species(d CreatureDefaults, hpMultiplier int) (*creature.Species, error) {
	if r.ID == nil {
		return nil, fmt.Errorf("%w: id (creature %q)", ErrMissingField, r.Name)
	}
	if *r.ID < 0 || *r.ID > math.MaxUint16 {
		return nil, fmt.Errorf("%w: id %d out of range", ErrInvalidField, *r.ID)
	}
	if r.Name == "" {
		return nil, fmt.Errorf("%w: name (creature %d)", ErrMissingField, *r.ID)
	}
	if r.BaseHP == nil {
		return nil, fmt.Errorf("%w: basehp (creature %d)", ErrMissingField, *r.ID)
	}
	if *r.BaseHP < 1 {
		return nil, fmt.Errorf("%w: basehp %d (creature %d)", ErrInvalidField, *r.BaseHP, *r.ID)
	}
	if hpMultiplier < 1 {
		hpMultiplier = 1
	}

	id := creature.ID(*r.ID)
	sp := &creature.Species{
		ID:              id,
		Name:            r.Name,
		Tile:            r.Tile,
		CamouflageTile:  r.CamouflageTile,
		WorldRangedTile: r.WorldRangedTile,
		LeavesTile:      r.LeavesTile,
		BaseHP:          *r.BaseHP * hpMultiplier,
		XP:              r.Exp,
		Leader:          id,
		Invulnerable:    r.Invulnerable,
		Era:             r.Era,
		EncounterSize:   intOr(r.EncounterSize, d.EncounterSize),
		SpawnWeight:     intOr(r.SpawnWeight, d.SpawnWeight),
		Armor:           intOr(r.Armor, d.Armor),
	}
	if r.Leader != nil {
		sp.Leader = creature.ID(*r.Leader)
	}
	if sp.SpawnWeight < 0 || sp.Armor < 0 || sp.Era < 0 {
		return nil, fmt.Errorf("%w: negative weight, armor or era (creature %d)", ErrInvalidField, *r.ID)
	}

	color, err := ParseHexColor(stringOr(r.Color, d.Color))
	if err != nil {
		return nil, fmt.Errorf("%w: color (creature %d): %v", ErrInvalidField, *r.ID, err)
	}
	sp.Color = color

	if err := r.applyRanged(sp, d); err != nil {
		return nil, err
	}
	if err := r.applyAttributes(sp); err != nil {
		return nil, err
	}
	if err := r.applyMovement(sp); err != nil {
		return nil, err
	}
	if err := r.applyResists(sp); err != nil {
		return nil, err
	}
	sp.Slowed = sp.DeriveSlowed()

	return sp, nil
}

func (r *CreatureRecord) applyRanged(sp *creature.Species, d CreatureDefaults) error {
	switch {
	case r.RangedChance != nil:
		sp.RangedChance = *r.RangedChance
	case r.Ranged:
		sp.RangedChance = d.RangedChance
	}
	if sp.RangedChance < 0 || sp.RangedChance > 100 {
		return fmt.Errorf("%w: rangedChance %d (creature %d)", ErrInvalidField, sp.RangedChance, sp.ID)
	}

	sp.HitTile = stringOr(r.RangedHitTile, stringOr(d.HitTile, creature.DefaultHitTile))
	sp.MissTile = stringOr(r.RangedMissTile, stringOr(d.MissTile, creature.DefaultMissTile))
	if sp.HitTile == randomTile || sp.MissTile == randomTile {
		sp.Attrs = sp.Attrs.With(creature.AttrRandomRanged)
		sp.HitTile, sp.MissTile = creature.DefaultHitTile, creature.DefaultMissTile
	}
	return nil
}

func (r *CreatureRecord) applyAttributes(sp *creature.Species) error {
	flags := []struct {
		set  bool
		attr creature.Attribute
	}{
		{r.Undead, creature.AttrUndead},
		{r.Good, creature.AttrGood},
		{r.CantAttack, creature.AttrNonAttackable},
		{r.WontAttack, creature.AttrNoAttack},
		{r.Camouflage, creature.AttrCamouflage},
		{r.Ambushes, creature.AttrAmbushes},
		{r.Incorporeal, creature.AttrIncorporeal},
		{r.NoChest, creature.AttrNoChest},
		{r.Divides, creature.AttrDivides},
		{r.ForceOfNature, creature.AttrForceOfNature},
	}
	for _, f := range flags {
		if f.set {
			sp.Attrs = sp.Attrs.With(f.attr)
		}
	}

	switch r.Steals {
	case "":
	case "food":
		sp.Attrs = sp.Attrs.With(creature.AttrStealFood)
	case "gold":
		sp.Attrs = sp.Attrs.With(creature.AttrStealGold)
	default:
		return fmt.Errorf("%w: steals %q (creature %d)", ErrInvalidField, r.Steals, sp.ID)
	}

	switch r.Casts {
	case "":
	case "sleep":
		sp.Attrs = sp.Attrs.With(creature.AttrCastsSleep)
	case "negate":
		sp.Attrs = sp.Attrs.With(creature.AttrNegates)
	default:
		return fmt.Errorf("%w: casts %q (creature %d)", ErrInvalidField, r.Casts, sp.ID)
	}

	if r.SpawnsOnDeath != nil {
		if *r.SpawnsOnDeath < 0 || *r.SpawnsOnDeath > math.MaxUint16 {
			return fmt.Errorf("%w: spawnsOnDeath %d (creature %d)", ErrInvalidField, *r.SpawnsOnDeath, sp.ID)
		}
		sp.Attrs = sp.Attrs.With(creature.AttrSpawnsOnDeath)
		sp.Spawn = creature.ID(*r.SpawnsOnDeath)
	}
	return nil
}

func (r *CreatureRecord) applyMovement(sp *creature.Species) error {
	switch r.Movement {
	case "":
	case "none":
		sp.Move = sp.Move.With(creature.MoveStationary)
	case "wanders":
		sp.Move = sp.Move.With(creature.MoveWanders)
	default:
		return fmt.Errorf("%w: movement %q (creature %d)", ErrInvalidField, r.Movement, sp.ID)
	}

	if r.Swims {
		sp.Move = sp.Move.With(creature.MoveSwims)
		sp.Attrs = sp.Attrs.With(creature.AttrAquatic)
	}
	if r.Sails {
		sp.Move = sp.Move.With(creature.MoveSails)
		sp.Attrs = sp.Attrs.With(creature.AttrAquatic)
	}
	if r.Flies {
		sp.Move = sp.Move.With(creature.MoveFlies)
	}
	if r.Teleports {
		sp.Move = sp.Move.With(creature.MoveTeleports)
	}
	if r.OntoCreatures {
		sp.Move = sp.Move.With(creature.MoveOntoCreatures)
	}
	if r.OntoAvatar {
		sp.Move = sp.Move.With(creature.MoveOntoAvatar)
	}
	return nil
}

// A fire resistant creature also shrugs off lava.
func (r *CreatureRecord) applyResists(sp *creature.Species) error {
	for _, name := range r.Resists {
		switch name {
		case "fire", "lava":
			sp.Resists = sp.Resists.With(creature.EffectFire).With(creature.EffectLava)
		case "poison":
			sp.Resists = sp.Resists.With(creature.EffectPoisonField).With(creature.EffectPoison)
		case "sleep":
			sp.Resists = sp.Resists.With(creature.EffectSleep)
		case "energy":
			sp.Resists = sp.Resists.With(creature.EffectElectricity)
		default:
			return fmt.Errorf("%w: resists %q (creature %d)", ErrInvalidField, name, sp.ID)
		}
	}
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
