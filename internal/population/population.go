// Package population owns the live asteroids and projectiles: spawning,
// culling, and the split-on-hit rules.
//
// Entities are never removed while a collection is being iterated. A pass
// marks entities destroyed and queues new fragments; compact() then drops the
// tombstones and flushes the queue once the pass is over.
package population

import (
	"math"
	"math/rand"
	"slices"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/geometry"
	"github.com/tomz197/polyroids/internal/object"
)

// gridCellSize must cover the largest interaction distance: an 11-sided
// asteroid of size 25 has a circumradius of ~44.4, plus a ship half-diagonal
// of ~14.2.
const gridCellSize = 64.0

// projectileReach is the farthest a projectile vertex lies from its anchor.
var projectileReach = math.Hypot(config.ProjectileSize/2, config.ProjectileSize)

// Options tunes a Manager.
type Options struct {
	Cap int // Population cap for debris-sized fragments; 0 means default
}

// Hits summarizes one projectile resolution pass.
type Hits struct {
	Destroyed int // Asteroids destroyed by projectiles
	Spawned   int // Fragments added
	Score     int // Points earned
}

// Manager owns the live entity collections.
type Manager struct {
	arena object.Arena
	rng   *rand.Rand
	cap   int

	asteroids   []*object.Asteroid
	projectiles []*object.Projectile
	toSpawn     []*object.Asteroid // Fragments to add after the current pass
	live        int                // Asteroids alive, including queued fragments

	grid       *geometry.SpatialGrid
	candidates []int
}

// New creates an empty manager. rng must not be shared across goroutines.
func New(arena object.Arena, rng *rand.Rand, opts Options) *Manager {
	c := opts.Cap
	if c <= 0 {
		c = config.PopulationCap
	}
	return &Manager{
		arena: arena,
		rng:   rng,
		cap:   c,
		grid:  geometry.NewSpatialGrid(arena.Width, arena.Height, gridCellSize),
	}
}

// Asteroids returns the live asteroids. The slice must not be modified.
func (m *Manager) Asteroids() []*object.Asteroid {
	return m.asteroids
}

// Projectiles returns the live projectiles. The slice must not be modified.
func (m *Manager) Projectiles() []*object.Projectile {
	return m.projectiles
}

// HeavyCount returns the number of non-debris asteroids.
func (m *Manager) HeavyCount() int {
	n := 0
	for _, a := range m.asteroids {
		if !a.IsDestroyed() && !a.IsDebris() {
			n++
		}
	}
	return n
}

// Populate replaces every asteroid with a fresh batch of 5 x level.
func (m *Manager) Populate(level int) {
	clear(m.asteroids)
	m.asteroids = m.asteroids[:0]
	m.toSpawn = m.toSpawn[:0]
	m.live = 0

	n := config.AsteroidsPerLevel * max(level, 0)
	inset := config.AsteroidSpawnInset
	for i := 0; i < n; i++ {
		x := m.randInt(inset, int(m.arena.Width)-inset)
		y := m.randInt(inset, int(m.arena.Height)-inset)
		tier := m.rng.Intn(object.MaxTier + 1)
		size := m.randInt(config.AsteroidMinSize, config.AsteroidMaxSize)
		m.Add(object.NewAsteroid(m.arena, float64(x), float64(y), m.randVelocity(), m.randVelocity(), tier, float64(size)))
	}
}

// Add inserts prebuilt asteroids.
func (m *Manager) Add(asteroids ...*object.Asteroid) {
	m.asteroids = append(m.asteroids, asteroids...)
	m.live += len(asteroids)
}

// Fire spawns a projectile.
func (m *Manager) Fire(x, y, speed, angle float64) *object.Projectile {
	p := object.NewProjectile(x, y, speed, angle)
	m.projectiles = append(m.projectiles, p)
	return p
}

// ClearProjectiles removes every projectile.
func (m *Manager) ClearProjectiles() {
	clear(m.projectiles)
	m.projectiles = m.projectiles[:0]
}

// Clear removes every entity.
func (m *Manager) Clear() {
	m.ClearProjectiles()
	clear(m.asteroids)
	m.asteroids = m.asteroids[:0]
	m.toSpawn = m.toSpawn[:0]
	m.live = 0
}

// Advance moves every entity by one tick and culls what left the arena.
func (m *Manager) Advance() {
	for _, a := range m.asteroids {
		a.Advance()
	}
	for _, p := range m.projectiles {
		p.Advance()
	}
	m.CullOutOfBounds()
}

// CullOutOfBounds removes projectiles outside the arena and asteroids beyond
// their cull margin.
func (m *Manager) CullOutOfBounds() {
	for _, p := range m.projectiles {
		if p.OutOfBounds(m.arena) {
			p.MarkDestroyed()
		}
	}
	for _, a := range m.asteroids {
		if !a.IsDestroyed() && a.Culled() {
			a.MarkDestroyed()
			m.live--
		}
	}
	m.compact()
}

// ResolveShipCollisions tests the ship against every non-debris asteroid in
// collection order. The first overlap ends the scan, so at most one hit is
// reported per call. It returns true only if the ship was hit while
// vulnerable.
func (m *Manager) ResolveShipCollisions(ship *object.Ship, invulnerable bool) bool {
	box := ship.Bounds()
	reach := config.ShipHalfExtent * math.Sqrt2
	for _, a := range m.asteroids {
		if a.IsDestroyed() || a.IsDebris() {
			continue
		}
		if !geometry.CirclesOverlap(ship.X, ship.Y, reach, a.X, a.Y, a.Radius) {
			continue
		}
		if geometry.Intersects(a.Polygon(), box) {
			return !invulnerable
		}
	}
	return false
}

// ResolveProjectileCollisions splits every asteroid hit by a projectile. Each
// projectile destroys at most one asteroid, the earliest in collection order
// that it overlaps; both are removed once the pass completes.
func (m *Manager) ResolveProjectileCollisions() Hits {
	var hits Hits
	if len(m.projectiles) == 0 || len(m.asteroids) == 0 {
		return hits
	}

	// Only asteroids present at the start of the pass are candidates;
	// fragments queue in toSpawn and cannot be hit until the next tick.
	m.grid.Clear()
	for i, a := range m.asteroids {
		m.grid.Insert(a.X, a.Y, i)
	}

	for _, p := range m.projectiles {
		if p.IsDestroyed() {
			continue
		}
		target := m.firstHit(p)
		if target == nil {
			continue
		}

		p.MarkDestroyed()
		target.MarkDestroyed()

		hits.Destroyed++
		if !target.IsDebris() {
			hits.Score += config.ScoreKill
		}
		// The parent still counts toward the cap while its fragments spawn.
		hits.Spawned += m.split(target)
		m.live--
	}

	m.compact()
	return hits
}

// firstHit returns the lowest-indexed live asteroid overlapping p.
func (m *Manager) firstHit(p *object.Projectile) *object.Asteroid {
	shot := p.Polygon()
	m.candidates = m.grid.QueryAround(m.candidates[:0], p.X, p.Y)
	slices.Sort(m.candidates)

	for _, i := range m.candidates {
		a := m.asteroids[i]
		if a.IsDestroyed() || !a.Splittable() {
			continue
		}
		if !geometry.CirclesOverlap(p.X, p.Y, projectileReach, a.X, a.Y, a.Radius) {
			continue
		}
		if geometry.Intersects(a.Polygon(), shot) {
			return a
		}
	}
	return nil
}

// split queues the two fragments of parent, honoring the population cap, and
// returns how many were queued (0 or 2).
func (m *Manager) split(parent *object.Asteroid) int {
	size := parent.Size / 2
	if m.live >= m.cap && size <= config.SplitMinSize {
		return 0
	}

	tier := parent.NextTier()
	for i := 0; i < 2; i++ {
		x := m.randBetween(parent.X, parent.X+parent.Radius)
		y := m.randBetween(parent.Y, parent.Y+parent.Radius)
		child := object.NewAsteroid(m.arena, x, y, m.randVelocity(), m.randVelocity(), tier, size)
		m.toSpawn = append(m.toSpawn, child)
	}
	m.live += 2
	return 2
}

// compact drops tombstoned entities and flushes queued fragments.
func (m *Manager) compact() {
	kept := m.asteroids[:0]
	for _, a := range m.asteroids {
		if !a.IsDestroyed() {
			kept = append(kept, a)
		}
	}
	clear(m.asteroids[len(kept):])
	m.asteroids = append(kept, m.toSpawn...)
	clear(m.toSpawn)
	m.toSpawn = m.toSpawn[:0]

	keptP := m.projectiles[:0]
	for _, p := range m.projectiles {
		if !p.IsDestroyed() {
			keptP = append(keptP, p)
		}
	}
	clear(m.projectiles[len(keptP):])
	m.projectiles = keptP
}

// randInt returns a uniform integer in [lo, hi], inclusive.
func (m *Manager) randInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + m.rng.Intn(hi-lo+1)
}

// randBetween truncates both bounds to integers, orders them, and returns a
// uniform integer between them, inclusive.
func (m *Manager) randBetween(a, b float64) float64 {
	return float64(m.randInt(int(a), int(b)))
}

// randVelocity returns a velocity component in [-2, 2] with 0.01 resolution.
func (m *Manager) randVelocity() float64 {
	v := config.AsteroidMaxVelocity
	return float64(m.randInt(-v, v)) / 100
}
