// Package session holds the per-game counters (level, lives, score) and the
// phase machine that moves a game between play, level banners and game over.
package session

import (
	"math"

	"github.com/tomz197/polyroids/internal/config"
)

// Phase is the current screen of a game.
type Phase int

const (
	Playing         Phase = iota // Asteroids in motion
	LevelTransition              // Level banner between waves
	GameOver                     // Final score, waiting for restart
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case LevelTransition:
		return "level_transition"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// validTransitions lists every allowed phase edge.
var validTransitions = map[Phase][]Phase{
	Playing:         {LevelTransition, GameOver},
	LevelTransition: {Playing},
	GameOver:        {Playing},
}

// CanTransition reports whether the machine may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// World is the part of the simulation the phase machine drives.
type World interface {
	HeavyCount() int
	ClearProjectiles()
	Populate(level int)
	Reset()
}

// Config holds the session rules. Durations are in seconds of simulated time.
type Config struct {
	Lives       int
	Level       int
	Grace       float64 // Invulnerability after a death or a level start
	Dwell       float64 // Banner time for level transitions and game over
	BlinkPeriod float64
	BlinkOn     float64
	DeathCost   int
	LevelBonus  int
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		Lives:       config.InitialLives,
		Level:       config.InitialLevel,
		Grace:       config.GraceSeconds,
		Dwell:       config.DwellSeconds,
		BlinkPeriod: config.BlinkPeriod,
		BlinkOn:     config.BlinkOnSeconds,
		DeathCost:   config.ScoreDeath,
		LevelBonus:  config.ScoreLevelClear,
	}
}

// Session is the state of one game. The zero value is not usable; use New.
type Session struct {
	cfg Config

	level int
	lives int
	score int
	phase Phase

	screenTime float64 // Seconds since the current phase was entered
	sinceDeath float64 // Seconds since the last death or grace reset
}

// New creates a session in the Playing phase. The ship starts inside a grace
// window, as if it had just respawned.
func New(cfg Config) *Session {
	return &Session{
		cfg:   cfg,
		level: cfg.Level,
		lives: cfg.Lives,
		phase: Playing,
	}
}

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// ScreenTime returns the seconds spent in the current phase.
func (s *Session) ScreenTime() float64 { return s.screenTime }

// Advance moves the session clocks forward by dt seconds.
func (s *Session) Advance(dt float64) {
	s.screenTime += dt
	s.sinceDeath += dt
}

// Invulnerable reports whether the ship is inside its grace window.
func (s *Session) Invulnerable() bool {
	return s.sinceDeath < s.cfg.Grace
}

// ShipVisible implements the grace-window blink: during the window the ship
// is drawn for the first BlinkOn seconds of every BlinkPeriod.
func (s *Session) ShipVisible() bool {
	if !s.Invulnerable() || s.cfg.BlinkPeriod <= 0 {
		return true
	}
	return math.Mod(s.sinceDeath, s.cfg.BlinkPeriod) < s.cfg.BlinkOn
}

// RestartReady reports whether a game-over screen accepts input.
func (s *Session) RestartReady() bool {
	return s.phase == GameOver && s.screenTime > s.cfg.Dwell
}

// RecordDeath applies a ship hit. Hits inside the grace window are ignored.
// It returns true if a life was lost.
func (s *Session) RecordDeath() bool {
	if s.Invulnerable() {
		return false
	}
	s.lives--
	s.score -= s.cfg.DeathCost
	s.sinceDeath = 0
	return true
}

// AddScore adds n points.
func (s *Session) AddScore(n int) {
	s.score += n
}

// Evaluate runs the phase transitions for the current tick and returns the
// resulting phase. anyKey is whether any key is down this tick.
func (s *Session) Evaluate(w World, anyKey bool) Phase {
	switch s.phase {
	case Playing:
		if s.lives <= 0 {
			s.enter(GameOver)
		} else if w.HeavyCount() == 0 {
			s.level++
			s.enter(LevelTransition)
		}

	case LevelTransition:
		if s.screenTime > s.cfg.Dwell {
			s.score += s.cfg.LevelBonus
			w.ClearProjectiles()
			w.Populate(s.level)
			s.sinceDeath = 0
			s.enter(Playing)
		}

	case GameOver:
		if s.RestartReady() && anyKey {
			// Level 0 has no asteroids, so the next tick clears it and
			// the LEVEL 1 banner runs as usual.
			s.level = 0
			s.lives = s.cfg.Lives
			s.score = 0
			w.Reset()
			w.Populate(s.level)
			s.sinceDeath = 0
			s.enter(Playing)
		}
	}
	return s.phase
}

// enter switches phase and restarts the screen timer. Invalid edges are a
// programming error.
func (s *Session) enter(p Phase) {
	if !CanTransition(s.phase, p) {
		panic("session: invalid transition " + s.phase.String() + " -> " + p.String())
	}
	s.phase = p
	s.screenTime = 0
}
