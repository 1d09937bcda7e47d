package world

import "codeberg.org/anaseto/gruid"

// Room represents a rectangular room in a dungeon.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Center returns the centre of the room.
func (r Room) Center() gruid.Point {
	return gruid.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if p is inside the room.
func (r Room) Contains(p gruid.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}
