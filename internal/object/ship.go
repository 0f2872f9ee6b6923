package object

import (
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/geometry"
)

// Turn is the steering direction requested by input.
type Turn int

const (
	TurnNone  Turn = 0
	TurnLeft  Turn = -1
	TurnRight Turn = 1
)

// Ship is the player-controlled ship.
type Ship struct {
	X, Y     float64 // Position (centre of the bounding box)
	Angle    float64 // Heading in degrees, [0, 360), compass convention
	Speed    float64 // Forward speed in units per tick
	TurnRate float64 // Degrees per tick; one of -2, 0, 2

	arena Arena
}

// NewShip creates a ship at (x, y) facing angle.
func NewShip(arena Arena, x, y, angle float64) *Ship {
	return &Ship{
		X:     x,
		Y:     y,
		Angle: normalizeAngle(angle),
		arena: arena,
	}
}

// Steer applies the current input state. It only sets speed and turn rate;
// motion happens in Advance.
func (s *Ship) Steer(thrust bool, turn Turn) {
	if thrust {
		s.Speed = config.ThrustSpeed
	} else {
		s.Speed = 0
	}
	s.TurnRate = float64(turn) * config.TurnRate
}

// Advance moves the ship by one tick and wraps it around the arena.
func (s *Ship) Advance() {
	s.Angle = normalizeAngle(s.Angle + s.TurnRate)

	dx, dy := heading(s.Angle)
	s.X += s.Speed * dx
	s.Y += s.Speed * dy

	s.arena.WrapPosition(&s.X, &s.Y)
}

// Reset puts the ship back at (x, y) at rest, facing 0.
func (s *Ship) Reset(x, y float64) {
	s.X, s.Y = x, y
	s.Angle = 0
	s.Speed = 0
	s.TurnRate = 0
}

// Bounds returns the axis-aligned collision box centred on the ship.
func (s *Ship) Bounds() geometry.Polygon {
	h := config.ShipHalfExtent
	return geometry.Polygon{
		{X: s.X + h, Y: s.Y + h},
		{X: s.X - h, Y: s.Y + h},
		{X: s.X - h, Y: s.Y - h},
		{X: s.X + h, Y: s.Y - h},
	}
}

// Outline returns a triangle pointing along the heading, for rendering only.
func (s *Ship) Outline() geometry.Polygon {
	h := config.ShipHalfExtent
	nx, ny := heading(s.Angle)
	lx, ly := heading(s.Angle + 140)
	rx, ry := heading(s.Angle - 140)
	return geometry.Polygon{
		{X: s.X + nx*h, Y: s.Y + ny*h},
		{X: s.X + lx*h*0.7, Y: s.Y + ly*h*0.7},
		{X: s.X + rx*h*0.7, Y: s.Y + ry*h*0.7},
	}
}
