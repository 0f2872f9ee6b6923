// Package input turns raw key events into the per-tick control State.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned by ParseScheme for unrecognized names.
var ErrUnknownScheme = errors.New("unknown key scheme")

// Key names shared by every host.
const (
	KeyW     = "w"
	KeyA     = "a"
	KeyS     = "s"
	KeyD     = "d"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
	KeySpace = "space"
	KeyQuit  = "q"
)

// Scheme selects the movement bindings.
type Scheme int

const (
	WASD Scheme = iota
	Arrows
)

func (s Scheme) String() string {
	if s == Arrows {
		return "arrows"
	}
	return "wasd"
}

// ParseScheme accepts the scheme names and the startup prompt answers
// ("1" for WASD, "2" for arrows).
func ParseScheme(v string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "wasd":
		return WASD, nil
	case "2", "arrows", "arrow":
		return Arrows, nil
	}
	return WASD, fmt.Errorf("%w: %q", ErrUnknownScheme, v)
}

// Bindings returns the forward, left and right key names.
func (s Scheme) Bindings() (forward, left, right string) {
	if s == Arrows {
		return KeyUp, KeyLeft, KeyRight
	}
	return KeyW, KeyA, KeyD
}

// State is the control input for one tick.
type State struct {
	Forward bool
	Left    bool
	Right   bool
	Shoot   bool
	Quit    bool
	Any     bool // Any key at all is down
}

// Resolve builds a State from a key lookup.
func (s Scheme) Resolve(down func(name string) bool, anyKey bool) State {
	forward, left, right := s.Bindings()
	return State{
		Forward: down(forward),
		Left:    down(left),
		Right:   down(right),
		Shoot:   down(KeySpace),
		Quit:    down(KeyQuit),
		Any:     anyKey,
	}
}
