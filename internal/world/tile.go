// Package world provides battlefield maps and dungeon generation.
package world

import "github.com/samdwyer/bestiary/internal/creature"

// Tile represents a single map tile.
type Tile rune

const (
	TileWall        Tile = '#'
	TileFloor       Tile = '.'
	TileGrass       Tile = ','
	TileSwamp       Tile = '%'
	TileForest      Tile = 'T'
	TileMountain    Tile = '^'
	TileWater       Tile = '~' // shallow, swimmers only
	TileOcean       Tile = '≈'
	TileLava        Tile = '='
	TileFireField   Tile = '*'
	TilePoisonField Tile = '!'
	TileSleepField  Tile = 'z'
	TileEnergyField Tile = '|'
)

// Speed is how much a tile slows down creatures that walk over it.
type Speed int

const (
	SpeedFast Speed = iota
	SpeedSlow
	SpeedVerySlow
	SpeedVeryVerySlow
)

// IsPassable returns true if the party can walk on the tile.
func (t Tile) IsPassable() bool {
	switch t {
	case TileFloor, TileGrass, TileSwamp, TileForest, TileLava,
		TileFireField, TileSleepField, TilePoisonField:
		return true
	}
	return false
}

// CreatureWalkable reports whether walking creatures may enter the tile.
func (t Tile) CreatureWalkable() bool {
	return t.IsPassable()
}

// Swimmable reports whether swimming creatures may enter the tile.
func (t Tile) Swimmable() bool {
	return t == TileWater || t == TileOcean
}

// Sailable reports whether ships may enter the tile.
func (t Tile) Sailable() bool {
	return t == TileOcean
}

// Flyable reports whether flying creatures may cross the tile.
func (t Tile) Flyable() bool {
	return t != TileWall && t != TileEnergyField
}

// Speed returns the tile's movement speed.
func (t Tile) Speed() Speed {
	switch t {
	case TileSwamp:
		return SpeedSlow
	case TileForest:
		return SpeedVerySlow
	case TileLava:
		return SpeedVeryVerySlow
	default:
		return SpeedFast
	}
}

// Effect returns what standing on the tile does to a creature.
func (t Tile) Effect() creature.Effect {
	switch t {
	case TileSwamp:
		return creature.EffectPoison
	case TileLava:
		return creature.EffectLava
	case TileFireField:
		return creature.EffectFire
	case TilePoisonField:
		return creature.EffectPoisonField
	case TileSleepField:
		return creature.EffectSleep
	case TileEnergyField:
		return creature.EffectElectricity
	default:
		return creature.EffectNone
	}
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Admits reports whether a creature of species sp may stand on the tile.
// Creatures that combine movement types may use any of them.
func (t Tile) Admits(sp *creature.Species) bool {
	if sp == nil {
		return t.IsPassable()
	}
	switch {
	case sp.Swims() && t.Swimmable():
		return true
	case sp.Sails() && t.Sailable():
		return true
	case sp.Flies() && t.Flyable():
		return true
	case sp.Walks() && t.CreatureWalkable():
		return true
	}
	return false
}

var terrainNames = map[string]Tile{
	"grass":    TileGrass,
	"swamp":    TileSwamp,
	"forest":   TileForest,
	"mountain": TileMountain,
	"water":    TileWater,
	"ocean":    TileOcean,
	"lava":     TileLava,
	"floor":    TileFloor,
}

// ParseTerrain maps an overworld terrain name such as "grass" or "ocean"
// to its tile.
func ParseTerrain(name string) (Tile, bool) {
	t, ok := terrainNames[name]
	return t, ok
}
