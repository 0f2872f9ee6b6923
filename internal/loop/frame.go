package loop

import (
	"iter"

	"github.com/tomz197/polyroids/internal/geometry"
	"github.com/tomz197/polyroids/internal/session"
)

// Anchor positions a line of text on screen.
type Anchor int

const (
	AnchorTopLeft  Anchor = iota // HUD, left edge
	AnchorTopRight               // HUD, right edge
	AnchorCenter                 // Phase banners
)

func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "hud_left"
	case AnchorTopRight:
		return "hud_right"
	case AnchorCenter:
		return "banner"
	default:
		return "unknown"
	}
}

// MarshalText encodes the anchor by name.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Shape is a closed polygon in arena coordinates (y up).
type Shape struct {
	Points geometry.Polygon `json:"points"`
	Filled bool             `json:"filled"`
}

// Text is a line of HUD or banner text. Line orders stacked banner lines.
type Text struct {
	Value  string `json:"value"`
	Anchor Anchor `json:"anchor"`
	Line   int    `json:"line"`
}

// Frame is everything a host needs to draw one tick.
type Frame struct {
	Phase  session.Phase
	Width  float64
	Height float64

	// Shapes is regenerated from live state each time it is ranged over. It
	// is only valid until the next Tick.
	Shapes iter.Seq[Shape]
	Text   []Text
}

func noShapes(func(Shape) bool) {}
