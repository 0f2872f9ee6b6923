// Package desktop runs the game in a native window via ebiten.
package desktop

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/polyroids/internal/geometry"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
)

// Title is the window title.
const Title = "Asteroids!"

const (
	lineHeight = 16
	margin     = 4
)

var (
	background = color.Black
	foreground = color.White
	face       = text.NewGoXFace(basicfont.Face7x13)
)

// keyBindings maps shared key names to ebiten keys.
var keyBindings = map[string][]ebiten.Key{
	input.KeyW:     {ebiten.KeyW},
	input.KeyA:     {ebiten.KeyA},
	input.KeyD:     {ebiten.KeyD},
	input.KeyUp:    {ebiten.KeyArrowUp},
	input.KeyLeft:  {ebiten.KeyArrowLeft},
	input.KeyRight: {ebiten.KeyArrowRight},
	input.KeySpace: {ebiten.KeySpace},
	input.KeyQuit:  {ebiten.KeyQ, ebiten.KeyEscape},
}

// Game adapts a Driver to ebiten.Game.
type Game struct {
	driver *loop.Driver
	scheme input.Scheme
	keys   []ebiten.Key
	white  *ebiten.Image
}

// New creates a window game for d.
func New(d *loop.Driver, scheme input.Scheme) *Game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Game{
		driver: d,
		scheme: scheme,
		white:  white.SubImage(white.Bounds().Inset(1)).(*ebiten.Image),
	}
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	a := g.driver.Arena()
	return int(a.Width), int(a.Height)
}

// Update advances one tick. Ebiten calls it at a fixed rate.
func (g *Game) Update() error {
	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	in := pollState(g.scheme, ebiten.IsKeyPressed, len(g.keys) > 0)
	if in.Quit {
		return ebiten.Termination
	}
	g.driver.Tick(time.Second/time.Duration(ebiten.TPS()), in)
	return nil
}

// Draw renders the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	f := g.driver.Frame()

	for s := range f.Shapes {
		pts := flip(s.Points, f.Height)
		if s.Filled {
			g.fill(screen, pts)
		}
		n := len(pts)
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, foreground, true)
		}
	}

	for _, t := range f.Text {
		x, y := textPosition(t, int(f.Width), int(f.Height))
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		op.ColorScale.ScaleWithColor(foreground)
		text.Draw(screen, t.Value, face, op)
	}
}

// Layout keeps the logical screen at arena size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}

// fill paints a polygon's interior.
func (g *Game) fill(screen *ebiten.Image, pts geometry.Polygon) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = 1, 1, 1, 1
	}
	screen.DrawTriangles(vs, is, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// pollState resolves the scheme's bindings against pressed.
func pollState(scheme input.Scheme, pressed func(ebiten.Key) bool, anyKey bool) input.State {
	down := func(name string) bool {
		for _, k := range keyBindings[name] {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return scheme.Resolve(down, anyKey)
}

// flip converts arena coordinates (y up) to screen coordinates (y down).
func flip(p geometry.Polygon, height float64) geometry.Polygon {
	out := make(geometry.Polygon, len(p))
	for i, v := range p {
		out[i] = geometry.Point{X: v.X, Y: height - v.Y}
	}
	return out
}

// textPosition returns the top-left corner for a line of basicfont text.
func textPosition(t loop.Text, width, height int) (x, y int) {
	w := len(t.Value) * basicfont.Face7x13.Advance
	switch t.Anchor {
	case loop.AnchorTopLeft:
		return margin, margin + t.Line*lineHeight
	case loop.AnchorTopRight:
		return width - w - margin, margin + t.Line*lineHeight
	default:
		return (width - w) / 2, height/2 + t.Line*lineHeight
	}
}
