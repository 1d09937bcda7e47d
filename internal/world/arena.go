package world

import (
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/creature"
)

// Arena is a rectangular battlefield. It owns the creature instances that
// fight on it and keeps every combatant in insertion order, which is the
// scan order used for targeting.
// Accessed only from the game loop goroutine, no locks.
type Arena struct {
	Width  int
	Height int

	tiles      []Tile
	combatants []combat.Combatant
	rng        *rand.Rand
	nbs        paths.Neighbors
}

// NewArena creates an arena filled with fill.
func NewArena(width, height int, fill Tile, rng *rand.Rand) *Arena {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = fill
	}
	return &Arena{
		Width:  width,
		Height: height,
		tiles:  tiles,
		rng:    rng,
	}
}

// InBounds reports whether p lies on the arena.
func (a *Arena) InBounds(p gruid.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.Width && p.Y < a.Height
}

// Tile returns the tile at p. Points outside the arena read as walls.
func (a *Arena) Tile(p gruid.Point) Tile {
	if !a.InBounds(p) {
		return TileWall
	}
	return a.tiles[p.Y*a.Width+p.X]
}

// SetTile changes the tile at p. Points outside the arena are ignored.
func (a *Arena) SetTile(p gruid.Point, t Tile) {
	if a.InBounds(p) {
		a.tiles[p.Y*a.Width+p.X] = t
	}
}

// IsPassable returns true if the party can walk at p.
func (a *Arena) IsPassable(p gruid.Point) bool {
	return a.Tile(p).IsPassable()
}

// Combatants returns everyone on the arena in insertion order.
func (a *Arena) Combatants() []combat.Combatant {
	out := make([]combat.Combatant, len(a.combatants))
	copy(out, a.combatants)
	return out
}

// Creatures returns the creature instances on the arena.
func (a *Arena) Creatures() []*creature.Instance {
	var out []*creature.Instance
	for _, c := range a.combatants {
		if inst, ok := c.(*creature.Instance); ok {
			out = append(out, inst)
		}
	}
	return out
}

// Contains reports whether c is still on the arena.
func (a *Arena) Contains(c combat.Combatant) bool {
	for _, o := range a.combatants {
		if o == c {
			return true
		}
	}
	return false
}

// OccupantAt returns the living combatant standing at p, or nil.
func (a *Arena) OccupantAt(p gruid.Point) combat.Combatant {
	for _, c := range a.combatants {
		if c.IsAlive() && c.Position() == p {
			return c
		}
	}
	return nil
}

// Join adds a party member to the arena. It fails when the tile is blocked.
func (a *Arena) Join(c combat.Combatant) bool {
	p := c.Position()
	if !a.IsPassable(p) || a.OccupantAt(p) != nil {
		return false
	}
	a.combatants = append(a.combatants, c)
	return true
}

// canEnter reports whether a creature of species sp may stand at p.
func (a *Arena) canEnter(sp *creature.Species, p gruid.Point) bool {
	if !a.InBounds(p) || !a.Tile(p).Admits(sp) {
		return false
	}
	occupant := a.OccupantAt(p)
	switch {
	case occupant == nil:
		return true
	case sp == nil:
		return false
	case occupant.IsPartyMember():
		return sp.CanMoveOntoPlayer()
	default:
		return sp.CanMoveOntoCreatures()
	}
}

// ValidMoves lists the neighbours of from that a creature of species sp
// could step onto. A nil species asks for party member moves.
func (a *Arena) ValidMoves(from gruid.Point, sp *creature.Species) []gruid.Point {
	ps := a.nbs.All(from, func(p gruid.Point) bool { return a.canEnter(sp, p) })
	return append([]gruid.Point(nil), ps...)
}

// Place adds a new instance of sp at p, or returns nil when it cannot
// stand there. Dead creatures do not block placement.
func (a *Arena) Place(sp *creature.Species, p gruid.Point) *creature.Instance {
	if sp == nil || !a.InBounds(p) || !a.Tile(p).Admits(sp) || a.OccupantAt(p) != nil {
		return nil
	}
	inst := creature.NewInstance(sp, p)
	a.combatants = append(a.combatants, inst)
	return inst
}

// Move relocates inst to to. Creatures slowed by terrain may lose the move.
func (a *Arena) Move(inst *creature.Instance, to gruid.Point) bool {
	if inst == nil || inst.IsDead() || to == inst.Pos || !a.canEnter(inst.Species, to) {
		return false
	}
	if a.slowed(inst.Species, a.Tile(to)) {
		return false
	}
	inst.Pos = to
	return true
}

func (a *Arena) slowed(sp *creature.Species, t Tile) bool {
	if sp.Slowed != creature.SlowedByTile || a.rng == nil {
		return false
	}
	switch t.Speed() {
	case SpeedSlow:
		return a.rng.Intn(8) == 0
	case SpeedVerySlow:
		return a.rng.Intn(4) == 0
	case SpeedVeryVerySlow:
		return a.rng.Intn(2) == 0
	default:
		return false
	}
}

// Remove takes inst off the arena.
func (a *Arena) Remove(inst *creature.Instance) {
	kept := a.combatants[:0]
	for _, c := range a.combatants {
		if c != combat.Combatant(inst) {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(a.combatants); i++ {
		a.combatants[i] = nil
	}
	a.combatants = kept
}

// RandomOpenTile picks a random free tile a creature of species sp may
// stand on.
func (a *Arena) RandomOpenTile(sp *creature.Species, rng *rand.Rand) (gruid.Point, bool) {
	var free []gruid.Point
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			p := gruid.Point{X: x, Y: y}
			if a.Tile(p).Admits(sp) && a.OccupantAt(p) == nil {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return gruid.Point{}, false
	}
	return free[rng.Intn(len(free))], true
}

// TileEffect returns the effect of the tile at p.
func (a *Arena) TileEffect(p gruid.Point) creature.Effect {
	return a.Tile(p).Effect()
}

var _ combat.Battlefield = (*Arena)(nil)
