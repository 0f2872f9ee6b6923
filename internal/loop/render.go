package loop

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/draw"
	"github.com/tomz197/polyroids/internal/geometry"
	"github.com/tomz197/polyroids/internal/object"
	"github.com/tomz197/polyroids/internal/session"
)

// hudWidth pads HUD values so a shorter score overwrites a longer one.
const hudWidth = 16

// terminalView draws frames onto a half-block canvas.
type terminalView struct {
	canvas  *draw.Canvas
	cw      *draw.ChunkWriter
	height  float64 // Arena height, for flipping y
	left    lipgloss.Style
	right   lipgloss.Style
	banner  lipgloss.Style
	notice  lipgloss.Style
	phase   session.Phase
	started bool
}

func newTerminalView(w io.Writer, arena object.Arena, termWidth, termHeight int) *terminalView {
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	r := lipgloss.NewRenderer(w)
	return &terminalView{
		canvas: canvas,
		cw:     draw.NewChunkWriter(w, offsetCol, offsetRow),
		height: arena.Height,
		left:   r.NewStyle().Bold(true).Width(hudWidth),
		right:  r.NewStyle().Bold(true).Width(hudWidth).Align(lipgloss.Right),
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		notice: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// resize follows terminal size changes, clearing the screen when the render
// area moves.
func (v *terminalView) resize(termWidth, termHeight int) {
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	if renderWidth == v.canvas.TerminalWidth() && renderHeight == v.canvas.TerminalHeight() &&
		offsetCol == v.canvas.OffsetCol() && offsetRow == v.canvas.OffsetRow() {
		return
	}
	v.cw.ClearScreen()
	v.canvas.Resize(renderWidth, renderHeight)
	v.canvas.SetOffset(offsetCol, offsetRow)
	v.canvas.ForceRedraw()
	v.cw.SetOffset(offsetCol, offsetRow)
}

// draw renders f. The arena is y-up and the terminal y-down, so every point
// is flipped on the way in.
func (v *terminalView) draw(f Frame) error {
	if !v.started || f.Phase != v.phase {
		v.cw.ClearScreen()
		v.canvas.ForceRedraw()
		v.phase = f.Phase
		v.started = true
	}

	v.canvas.Clear()
	for s := range f.Shapes {
		pts := v.canvas.BorrowPoints(len(s.Points))
		for i, p := range s.Points {
			pts[i] = geometry.Point{X: p.X, Y: v.height - p.Y}
		}
		v.canvas.DrawPolygon(pts, s.Filled)
	}
	v.canvas.Render(v.cw)
	v.canvas.RenderBorder(v.cw)

	for _, t := range f.Text {
		style := v.banner
		switch t.Anchor {
		case AnchorTopLeft:
			style = v.left
		case AnchorTopRight:
			style = v.right
		}
		v.writeText(t, style)
	}
	return v.cw.Flush()
}

// drawShutdown shows the server shutdown notice.
func (v *terminalView) drawShutdown(remaining float64) error {
	if v.phase != -1 {
		v.cw.ClearScreen()
		v.canvas.ForceRedraw()
		v.phase = -1
	}
	lines := []Text{
		{Value: "SERVER SHUTTING DOWN", Anchor: AnchorCenter},
		{Value: fmt.Sprintf("Disconnecting in %d seconds...", int(remaining)+1), Anchor: AnchorCenter, Line: 2},
		{Value: "Press Q to disconnect now", Anchor: AnchorCenter, Line: 4},
	}
	for _, t := range lines {
		v.writeText(t, v.notice)
	}
	return v.cw.Flush()
}

// writeText places one line of text and marks the cells it covers so the
// canvas repaints them once the text is gone.
func (v *terminalView) writeText(t Text, style lipgloss.Style) {
	s := style.Render(t.Value)
	width := lipgloss.Width(s)
	termWidth := v.canvas.TerminalWidth()
	termHeight := v.canvas.TerminalHeight()

	var col, row int
	switch t.Anchor {
	case AnchorTopLeft:
		col, row = 2, 1+t.Line
	case AnchorTopRight:
		col, row = termWidth-width, 1+t.Line
	default:
		col, row = termWidth/2-width/2, termHeight/2-1+t.Line
	}
	col = max(col, 1)
	row = max(row, 1)

	v.cw.WriteAt(col, row, s)
	v.canvas.Invalidate(col, row, width)
}
