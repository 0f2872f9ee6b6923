package object

import (
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/geometry"
)

// tierSides maps a shape tier to its polygon side count. Lower tiers have
// fewer sides; fragments step down one tier per split.
var tierSides = [...]int{3, 5, 7, 11}

// MaxTier is the highest shape tier.
const MaxTier = len(tierSides) - 1

// Sides returns the polygon side count for a tier, clamping the tier to
// [0, MaxTier].
func Sides(tier int) int {
	return tierSides[clampTier(tier)]
}

func clampTier(tier int) int {
	if tier < 0 {
		return 0
	}
	if tier > MaxTier {
		return MaxTier
	}
	return tier
}

// Asteroid is a regular polygon drifting through the arena.
type Asteroid struct {
	X, Y   float64 // Position of the polygon's local origin
	VX, VY float64 // Velocity components (applied with axes swapped)
	Tier   int     // Index into the side-count table
	Size   float64 // Edge length
	Radius float64 // Circumradius, derived from Size and Tier

	shape     geometry.Polygon // Local vertices, computed once
	arena     Arena
	destroyed bool
}

// NewAsteroid creates an asteroid. The polygon is generated once here and
// only translated afterwards.
func NewAsteroid(arena Arena, x, y, vx, vy float64, tier int, size float64) *Asteroid {
	tier = clampTier(tier)
	sides := Sides(tier)
	return &Asteroid{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Tier:   tier,
		Size:   size,
		Radius: geometry.Circumradius(sides, size),
		shape:  geometry.Regular(sides, size),
		arena:  arena,
	}
}

// Sides returns the asteroid's polygon side count.
func (a *Asteroid) Sides() int {
	return Sides(a.Tier)
}

// IsDebris reports whether the asteroid is too small to hurt the ship,
// bounce, or hold up level progression.
func (a *Asteroid) IsDebris() bool {
	return a.Size <= config.DebrisSize
}

// Splittable reports whether projectiles can still hit this asteroid.
func (a *Asteroid) Splittable() bool {
	return a.Size > config.SplitMinSize
}

// NextTier returns the tier for fragments of this asteroid.
func (a *Asteroid) NextTier() int {
	return max(0, a.Tier-1)
}

// Polygon returns the asteroid's outline in arena coordinates.
func (a *Asteroid) Polygon() geometry.Polygon {
	return a.shape.Translate(a.X, a.Y)
}

// Advance moves the asteroid by one tick. Velocity components are applied to
// the opposite axes (x takes VY, y takes VX). A non-debris asteroid with any
// vertex outside the arena reverses both components.
func (a *Asteroid) Advance() {
	a.X += a.VY
	a.Y += a.VX

	if a.IsDebris() {
		return
	}
	if !a.arena.ContainsPolygon(a.Polygon()) {
		a.VX = -a.VX
		a.VY = -a.VY
	}
}

// Culled reports whether the asteroid has drifted past the arena expanded by
// twice its radius on any side.
func (a *Asteroid) Culled() bool {
	m := config.CullMarginRadii * a.Radius
	return a.X > a.arena.Width+m || a.X < -m ||
		a.Y > a.arena.Height+m || a.Y < -m
}

// MarkDestroyed marks the asteroid for removal.
func (a *Asteroid) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for removal.
func (a *Asteroid) IsDestroyed() bool {
	return a.destroyed
}
