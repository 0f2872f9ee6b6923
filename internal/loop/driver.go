// Package loop drives a game session: one Tick per frame advances the
// simulation, and Frame describes what to draw.
package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyroids/internal/audio"
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/object"
	"github.com/tomz197/polyroids/internal/population"
	"github.com/tomz197/polyroids/internal/session"
)

// Options configures a Driver. Zero values select defaults.
type Options struct {
	Rand    *rand.Rand
	Audio   audio.Sink
	Logger  *log.Logger
	Session session.Config
	Cap     int // Population cap
}

// Driver owns one game: session counters, entities, and rate limiters.
type Driver struct {
	arena   object.Arena
	session *session.Session
	pop     *population.Manager
	ship    *object.Ship
	world   world
	audio   audio.Sink
	logger  *log.Logger

	shotWindow float64 // Seconds since the shot limiter last reset
	shotFired  bool
	hitClock   float64 // Seconds since the last asteroid_hit sound
}

// world adapts the population and ship to the session's World.
type world struct {
	*population.Manager
	ship  *object.Ship
	arena object.Arena
}

// Reset clears every entity and parks the ship at the arena centre.
func (w world) Reset() {
	w.Clear()
	x, y := w.arena.Center()
	w.ship.Reset(x, y)
}

// NewDriver starts a game at level 1 with the ship at the arena centre.
func NewDriver(arena object.Arena, opts Options) *Driver {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Session
	if cfg == (session.Config{}) {
		cfg = session.DefaultConfig()
	}

	x, y := arena.Center()
	d := &Driver{
		arena:    arena,
		session:  session.New(cfg),
		pop:      population.New(arena, rng, population.Options{Cap: opts.Cap}),
		ship:     object.NewShip(arena, x, y, 0),
		audio:    sink,
		logger:   logger,
		hitClock: config.HitSoundInterval,
	}
	d.world = world{Manager: d.pop, ship: d.ship, arena: arena}
	d.pop.Populate(d.session.Level())

	logger.Debug("game started", "arena", fmt.Sprintf("%.0fx%.0f", arena.Width, arena.Height), "asteroids", len(d.pop.Asteroids()))
	return d
}

// Session returns the game counters.
func (d *Driver) Session() *session.Session { return d.session }

// Population returns the entity manager.
func (d *Driver) Population() *population.Manager { return d.pop }

// Ship returns the player's ship.
func (d *Driver) Ship() *object.Ship { return d.ship }

// Arena returns the arena the game runs in.
func (d *Driver) Arena() object.Arena { return d.arena }

// Tick runs one frame. dt is the wall time since the previous tick and only
// drives timers; movement advances by one fixed step per tick.
func (d *Driver) Tick(dt time.Duration, in input.State) {
	secs := dt.Seconds()

	d.shotWindow += secs
	if d.shotWindow > config.ShotWindow {
		d.shotFired = false
		d.shotWindow = 0
	}
	d.hitClock += secs

	if d.session.Phase() == session.Playing {
		d.play(in)
	}

	d.session.Advance(secs)
	prev := d.session.Phase()
	next := d.session.Evaluate(d.world, in.Any)
	if next != prev {
		d.logger.Debug("phase changed", "from", prev, "to", next,
			"level", d.session.Level(), "lives", d.session.Lives(), "score", d.session.Score())
	}
}

// play advances the simulation for one Playing tick.
func (d *Driver) play(in input.State) {
	turn := object.TurnNone
	switch {
	case in.Left && !in.Right:
		turn = object.TurnLeft
	case in.Right && !in.Left:
		turn = object.TurnRight
	}
	d.ship.Steer(in.Forward, turn)
	d.ship.Advance()

	if in.Shoot && !d.shotFired {
		d.pop.Fire(d.ship.X, d.ship.Y, d.ship.Speed+config.ProjectileBoost, d.ship.Angle)
		d.shotFired = true
		d.audio.Play(audio.Shoot)
	}

	d.pop.Advance()

	if d.pop.ResolveShipCollisions(d.ship, d.session.Invulnerable()) && d.session.RecordDeath() {
		d.audio.Play(audio.ShipDeath)
		d.logger.Debug("ship destroyed", "lives", d.session.Lives(), "score", d.session.Score())
	}

	hits := d.pop.ResolveProjectileCollisions()
	if hits.Score != 0 {
		d.session.AddScore(hits.Score)
	}
	if hits.Destroyed > 0 && d.hitClock >= config.HitSoundInterval {
		d.audio.Play(audio.AsteroidHit)
		d.hitClock = 0
	}
}

// Frame describes the current phase's visible entities and text.
func (d *Driver) Frame() Frame {
	f := Frame{
		Phase:  d.session.Phase(),
		Width:  d.arena.Width,
		Height: d.arena.Height,
		Shapes: noShapes,
	}

	switch f.Phase {
	case session.Playing:
		f.Shapes = d.shapes
		f.Text = []Text{
			{Value: fmt.Sprintf("LIVES: %d", d.session.Lives()), Anchor: AnchorTopLeft},
			{Value: fmt.Sprintf("SCORE: %d", d.session.Score()), Anchor: AnchorTopRight},
		}
	case session.LevelTransition:
		f.Text = []Text{
			{Value: fmt.Sprintf("LEVEL %d", d.session.Level()), Anchor: AnchorCenter},
		}
	case session.GameOver:
		f.Text = []Text{
			{Value: "GAME OVER", Anchor: AnchorCenter},
			{Value: fmt.Sprintf("SCORE: %d", d.session.Score()), Anchor: AnchorCenter, Line: 1},
		}
		if d.session.RestartReady() {
			f.Text = append(f.Text, Text{Value: "PRESS ANY KEY", Anchor: AnchorCenter, Line: 3})
		}
	}
	return f
}

// shapes yields asteroids, projectiles and finally the ship.
func (d *Driver) shapes(yield func(Shape) bool) {
	for _, a := range d.pop.Asteroids() {
		if !yield(Shape{Points: a.Polygon()}) {
			return
		}
	}
	for _, p := range d.pop.Projectiles() {
		if !yield(Shape{Points: p.Polygon(), Filled: true}) {
			return
		}
	}
	if d.session.ShipVisible() {
		yield(Shape{Points: d.ship.Outline(), Filled: true})
	}
}
