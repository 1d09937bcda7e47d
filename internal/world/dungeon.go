package world

import (
	"context"
	"math/rand"
	"time"

	"codeberg.org/anaseto/gruid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bestiary/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 24

	// BSP parameters
	minRoomSize = 8  // Minimum room dimension (accommodates party formation)
	maxRoomSize = 15 // Maximum room dimension
	minLeafSize = 10 // Minimum BSP leaf size before stopping split

	// MaxLevel is the deepest dungeon level.
	MaxLevel = 8
)

// fieldTiles are scattered through rooms, more of them the deeper the level.
var fieldTiles = []Tile{TilePoisonField, TileSleepField, TileFireField, TileLava, TileEnergyField}

// Dungeon is a generated dungeon level. It is a battlefield: creatures are
// placed and fight on the embedded arena.
type Dungeon struct {
	*Arena
	Level int
	Rooms []Room
	rng   *rand.Rand
}

// NewDungeon creates a new level 1 dungeon filled with walls.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	return NewDungeonLevel(width, height, 1, rng)
}

// NewDungeonLevel creates a dungeon for the given level filled with walls.
// Levels outside 1..MaxLevel are clamped.
func NewDungeonLevel(width, height, level int, rng *rand.Rand) *Dungeon {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return &Dungeon{
		Arena: NewArena(width, height, TileWall, rng),
		Level: level,
		Rooms: make([]Room, 0),
		rng:   rng,
	}
}

// Generate creates the dungeon layout using BSP algorithm.
func (d *Dungeon) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	// Start BSP with the entire dungeon as root
	root := &bspNode{
		x:      1,
		y:      1,
		width:  d.Width - 2,
		height: d.Height - 2,
	}

	// Recursively split the dungeon
	d.splitNode(root)

	// Create rooms in leaf nodes
	d.createRooms(root)

	// Connect rooms with corridors
	d.connectRooms(root)

	fields := d.scatterFields()

	// Record telemetry
	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.level", d.Level),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.field_count", fields),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// RoomIndexAt returns the index of the room containing p, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(p gruid.Point) int {
	for i, room := range d.Rooms {
		if room.Contains(p) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random passable point within the specified room.
func (d *Dungeon) RandomPointInRoom(roomIndex int) (gruid.Point, bool) {
	if roomIndex < 0 || roomIndex >= len(d.Rooms) {
		return gruid.Point{}, false
	}
	room := d.Rooms[roomIndex]

	for i := 0; i < 100; i++ {
		p := gruid.Point{
			X: room.X + d.rng.Intn(room.Width),
			Y: room.Y + d.rng.Intn(room.Height),
		}
		if d.IsPassable(p) && d.Tile(p) == TileFloor && d.OccupantAt(p) == nil {
			return p, true
		}
	}
	return room.Center(), d.IsPassable(room.Center())
}

type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (d *Dungeon) splitNode(node *bspNode) {
	// Stop if too small to split
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	// Determine split direction
	var splitHorizontally bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitHorizontally = false
	case node.height >= minLeafSize*2:
		splitHorizontally = true
	case node.width >= minLeafSize*2:
		splitHorizontally = false
	default:
		return
	}

	// Calculate split position
	extent := node.width
	if splitHorizontally {
		extent = node.height
	}
	lo, hi := minLeafSize, extent-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + d.rng.Intn(hi-lo+1)

	// Create child nodes
	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	// Recursively split children
	d.splitNode(node.left)
	d.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (d *Dungeon) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		d.createRooms(node.left)
		d.createRooms(node.right)
		return
	}

	// Create a room within this leaf
	roomWidth := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1))
	roomHeight := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1))
	// Ensure room fits within leaf
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}

	// Random position within leaf
	room := Room{
		X:      node.x + 1 + d.rng.Intn(node.width-roomWidth-1),
		Y:      node.y + 1 + d.rng.Intn(node.height-roomHeight-1),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	d.Rooms = append(d.Rooms, room)

	// Carve out the room
	d.carveRoom(room)
}

func (d *Dungeon) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carve(gruid.Point{X: x, Y: y})
		}
	}
}

// carve turns an interior tile into floor. The outer border stays wall.
func (d *Dungeon) carve(p gruid.Point) {
	if p.X > 0 && p.X < d.Width-1 && p.Y > 0 && p.Y < d.Height-1 {
		d.SetTile(p, TileFloor)
	}
}

// connectRooms connects rooms with corridors.
func (d *Dungeon) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	// Connect children first
	d.connectRooms(node.left)
	d.connectRooms(node.right)

	// Get a room from each subtree and connect them
	leftRoom := d.getRoom(node.left)
	rightRoom := d.getRoom(node.right)
	if leftRoom != nil && rightRoom != nil {
		d.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns any room from a subtree.
func (d *Dungeon) getRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := d.getRoom(node.left); room != nil {
		return room
	}
	return d.getRoom(node.right)
}

func (d *Dungeon) carveCorridor(room1, room2 Room) {
	a, b := room1.Center(), room2.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if d.rng.Intn(2) == 0 {
		d.carveLine(a, gruid.Point{X: b.X, Y: a.Y})
		d.carveLine(gruid.Point{X: b.X, Y: a.Y}, b)
	} else {
		d.carveLine(a, gruid.Point{X: a.X, Y: b.Y})
		d.carveLine(gruid.Point{X: a.X, Y: b.Y}, b)
	}
}

// carveLine carves a straight horizontal or vertical tunnel from a to b.
func (d *Dungeon) carveLine(a, b gruid.Point) {
	for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
		for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
			d.carve(gruid.Point{X: x, Y: y})
		}
	}
}

// scatterFields drops field and lava tiles on room floors. Level one has
// none; each level deeper adds a few more and unlocks nastier kinds.
// Corridors are left clear so rooms stay connected for walkers.
func (d *Dungeon) scatterFields() int {
	count := 0
	kinds := min(d.Level, len(fieldTiles))
	for _, room := range d.Rooms {
		for i := 0; i < d.Level-1; i++ {
			p := gruid.Point{
				X: room.X + 1 + d.rng.Intn(max(room.Width-2, 1)),
				Y: room.Y + 1 + d.rng.Intn(max(room.Height-2, 1)),
			}
			if d.Tile(p) != TileFloor || p == room.Center() {
				continue
			}
			d.SetTile(p, fieldTiles[d.rng.Intn(kinds)])
			count++
		}
	}
	return count
}
