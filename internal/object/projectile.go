package object

import (
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/geometry"
)

// Projectile is a shot fired by the ship. It flies in a straight line until
// it leaves the arena or hits an asteroid.
type Projectile struct {
	X, Y  float64 // Anchor vertex of the triangle
	Speed float64 // Units per tick
	Angle float64 // Heading in degrees, compass convention

	destroyed bool
}

// NewProjectile creates a projectile at (x, y) flying along angle.
func NewProjectile(x, y, speed, angle float64) *Projectile {
	return &Projectile{X: x, Y: y, Speed: speed, Angle: angle}
}

// Advance moves the projectile by one tick.
func (p *Projectile) Advance() {
	p.Angle = normalizeAngle(p.Angle)

	dx, dy := heading(p.Angle)
	p.X += p.Speed * dx
	p.Y += p.Speed * dy
}

// Polygon returns the projectile's triangle in arena coordinates.
func (p *Projectile) Polygon() geometry.Polygon {
	s := config.ProjectileSize
	return geometry.Polygon{
		{X: p.X, Y: p.Y},
		{X: p.X + s, Y: p.Y},
		{X: p.X + s/2, Y: p.Y + s},
	}
}

// OutOfBounds reports whether the projectile is strictly outside the arena.
func (p *Projectile) OutOfBounds(arena Arena) bool {
	return !arena.Contains(p.X, p.Y)
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for removal.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}
