// Package object implements the simulated entities: the ship, its
// projectiles and the asteroids. Every entity advances by one fixed tick at a
// time and exposes the polygon used for collisions and rendering.
package object

import (
	"math"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/geometry"
)

// Arena is the rectangle the simulation runs in. It is passed explicitly to
// every constructor that needs it.
type Arena struct {
	Width  float64
	Height float64
}

// NewArena creates an arena of the given size.
func NewArena(width, height int) Arena {
	return Arena{Width: float64(width), Height: float64(height)}
}

// Center returns the midpoint of the arena.
func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.Height / 2
}

// Contains reports whether (x, y) lies in the closed rectangle [0,W]x[0,H].
func (a Arena) Contains(x, y float64) bool {
	return x >= 0 && x <= a.Width && y >= 0 && y <= a.Height
}

// ContainsPolygon reports whether every vertex of p lies inside the arena.
func (a Arena) ContainsPolygon(p geometry.Polygon) bool {
	for _, v := range p {
		if !a.Contains(v.X, v.Y) {
			return false
		}
	}
	return true
}

// WrapPosition wraps x and y into [0, W+margin) and [0, H+margin).
func (a Arena) WrapPosition(x, y *float64) {
	*x = wrap(*x, a.Width+config.WrapMargin)
	*y = wrap(*y, a.Height+config.WrapMargin)
}

// wrap is a floored modulo that never returns m itself, even when a tiny
// negative input rounds up to m after the correction.
func wrap(v, m float64) float64 {
	if m <= 0 {
		return v
	}
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	if v >= m {
		v = 0
	}
	return v
}

// normalizeAngle maps degrees into [0, 360).
func normalizeAngle(deg float64) float64 {
	return wrap(deg, 360)
}

// heading returns the per-unit displacement for a compass angle:
// 0 degrees points along +Y, 90 along +X.
func heading(deg float64) (dx, dy float64) {
	rad := deg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}
