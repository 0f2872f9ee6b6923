package web

import (
	"strings"

	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
)

// clientMessage is a key event from the browser.
type clientMessage struct {
	Type string `json:"type"` // "down", "up" or "reset"
	Key  string `json:"key"`  // KeyboardEvent.key
}

// wireShape is a polygon as [[x, y], ...] in arena coordinates (y up).
type wireShape struct {
	Points [][2]float64 `json:"points"`
	Filled bool         `json:"filled"`
}

// wireFrame is one server-to-browser frame.
type wireFrame struct {
	Phase  string      `json:"phase"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Shapes []wireShape `json:"shapes"`
	Text   []loop.Text `json:"text"`
}

// encodeFrame drains the frame's shapes into a wire frame.
func encodeFrame(f loop.Frame) wireFrame {
	wf := wireFrame{
		Phase:  f.Phase.String(),
		Width:  f.Width,
		Height: f.Height,
		Shapes: []wireShape{},
		Text:   f.Text,
	}
	if wf.Text == nil {
		wf.Text = []loop.Text{}
	}
	if f.Shapes == nil {
		return wf
	}
	for s := range f.Shapes {
		pts := make([][2]float64, len(s.Points))
		for i, p := range s.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		wf.Shapes = append(wf.Shapes, wireShape{Points: pts, Filled: s.Filled})
	}
	return wf
}

// keyName maps a browser key to the shared key names. Unknown keys map to
// themselves so they still count as "any key".
func keyName(key string) string {
	switch key {
	case " ", "Spacebar":
		return input.KeySpace
	case "ArrowUp":
		return input.KeyUp
	case "ArrowDown":
		return input.KeyDown
	case "ArrowLeft":
		return input.KeyLeft
	case "ArrowRight":
		return input.KeyRight
	}
	return strings.ToLower(key)
}

// apply records a key event. Malformed messages are ignored.
func (m clientMessage) apply(keys *input.Keys) {
	if m.Type == "reset" {
		keys.Reset()
		return
	}
	if m.Key == "" {
		return
	}
	switch m.Type {
	case "down":
		keys.Press(keyName(m.Key))
	case "up":
		keys.Release(keyName(m.Key))
	}
}
