package config

import "time"

// Arena defaults.
const (
	DefaultArenaWidth  = 640
	DefaultArenaHeight = 500
	MinArenaSize       = 220 // spawn band is [100, size-100]
	WrapMargin         = 10  // ship wraps at size + WrapMargin
)

// Ship
const (
	ShipHalfExtent = 10.0
	ThrustSpeed    = 5.0
	TurnRate       = 2.0 // degrees per tick
)

// Projectiles
const (
	ProjectileSize  = 5.0
	ProjectileBoost = 2.0 // added to ship speed at fire time
	ShotWindow      = 1.0 // seconds; one shot per window
)

// Asteroids
const (
	AsteroidsPerLevel   = 5
	AsteroidMinSize     = 20
	AsteroidMaxSize     = 25
	AsteroidSpawnInset  = 100
	AsteroidMaxVelocity = 200 // hundredths of a unit per tick
	DebrisSize          = 9.0 // size <= DebrisSize is debris
	SplitMinSize        = 3.0 // projectiles ignore asteroids at or below this
	PopulationCap       = 100
	CullMarginRadii     = 2.0
)

// Scoring
const (
	ScoreKill       = 5
	ScoreDeath      = 10
	ScoreLevelClear = 20
)

// Session
const (
	InitialLives     = 10
	InitialLevel     = 1
	GraceSeconds     = 5.0
	DwellSeconds     = 3.0
	BlinkPeriod      = 0.35
	BlinkOnSeconds   = 0.2
	HitSoundInterval = 0.5
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	StartupDelay    = time.Second
)

// Terminal rendering
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Shutdown
const (
	ShutdownDisplaySeconds = 3.0
)

// Hosted sessions
const (
	MaxUsernameLength = 16
	IdleTimeout       = 2 * time.Minute // Disconnect after this long without input
)
