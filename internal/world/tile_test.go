package world

import (
	"testing"

	"github.com/samdwyer/bestiary/internal/creature"
	"github.com/samdwyer/bestiary/internal/gamedata"
)

var _ gamedata.TileCapabilities = TileGrass

func TestTileAdmits(t *testing.T) {
	walker := &creature.Species{Name: "Orc"}
	swimmer := &creature.Species{Name: "Nixie", Move: creature.Movement(0).With(creature.MoveSwims)}
	ship := &creature.Species{Name: "Pirate Ship", Move: creature.Movement(0).With(creature.MoveSails)}
	bat := &creature.Species{Name: "Bat", Move: creature.Movement(0).With(creature.MoveFlies)}
	storm := &creature.Species{Name: "Storm", Move: creature.Movement(0).With(creature.MoveSwims).With(creature.MoveFlies)}

	tests := []struct {
		tile    Tile
		species *creature.Species
		want    bool
	}{
		{TileGrass, walker, true},
		{TileGrass, swimmer, false},
		{TileGrass, bat, true},
		{TileGrass, nil, true},
		{TileWall, bat, false},
		{TileWall, nil, false},
		{TileMountain, walker, false},
		{TileMountain, bat, true},
		{TileWater, swimmer, true},
		{TileWater, ship, false},
		{TileOcean, ship, true},
		{TileOcean, walker, false},
		{TileOcean, storm, true},
		{TileEnergyField, bat, false},
		{TileLava, walker, true},
	}

	for _, tt := range tests {
		name := "party"
		if tt.species != nil {
			name = tt.species.Name
		}
		if got := tt.tile.Admits(tt.species); got != tt.want {
			t.Errorf("Tile(%c).Admits(%s) = %v, want %v", tt.tile, name, got, tt.want)
		}
	}
}

func TestTileEffectAndSpeed(t *testing.T) {
	tests := []struct {
		tile   Tile
		effect creature.Effect
		speed  Speed
	}{
		{TileFloor, creature.EffectNone, SpeedFast},
		{TileSwamp, creature.EffectPoison, SpeedSlow},
		{TileForest, creature.EffectNone, SpeedVerySlow},
		{TileLava, creature.EffectLava, SpeedVeryVerySlow},
		{TileFireField, creature.EffectFire, SpeedFast},
		{TileSleepField, creature.EffectSleep, SpeedFast},
		{TilePoisonField, creature.EffectPoisonField, SpeedFast},
		{TileEnergyField, creature.EffectElectricity, SpeedFast},
	}

	for _, tt := range tests {
		if got := tt.tile.Effect(); got != tt.effect {
			t.Errorf("Tile(%c).Effect() = %v, want %v", tt.tile, got, tt.effect)
		}
		if got := tt.tile.Speed(); got != tt.speed {
			t.Errorf("Tile(%c).Speed() = %v, want %v", tt.tile, got, tt.speed)
		}
	}
}

func TestParseTerrain(t *testing.T) {
	if tile, ok := ParseTerrain("ocean"); !ok || tile != TileOcean {
		t.Errorf("ParseTerrain(ocean) = %c, %v", tile, ok)
	}
	if _, ok := ParseTerrain("void"); ok {
		t.Error("ParseTerrain(void) should fail")
	}
}
