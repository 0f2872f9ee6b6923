package desktop

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/polyroids/internal/geometry"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
)

func pressedSet(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestPollState(t *testing.T) {
	tests := []struct {
		name   string
		scheme input.Scheme
		keys   []ebiten.Key
		want   input.State
	}{
		{"wasd thrust", input.WASD, []ebiten.Key{ebiten.KeyW, ebiten.KeySpace}, input.State{Forward: true, Shoot: true, Any: true}},
		{"wasd ignores arrows", input.WASD, []ebiten.Key{ebiten.KeyArrowUp}, input.State{Any: true}},
		{"arrows turn", input.Arrows, []ebiten.Key{ebiten.KeyArrowLeft}, input.State{Left: true, Any: true}},
		{"escape quits", input.Arrows, []ebiten.Key{ebiten.KeyEscape}, input.State{Quit: true, Any: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pollState(tt.scheme, pressedSet(tt.keys...), len(tt.keys) > 0)
			if got != tt.want {
				t.Fatalf("pollState() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlip(t *testing.T) {
	p := geometry.Polygon{{X: 1, Y: 0}, {X: 2, Y: 500}, {X: 3, Y: 125}}
	got := flip(p, 500)
	want := geometry.Polygon{{X: 1, Y: 500}, {X: 2, Y: 0}, {X: 3, Y: 375}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flip()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if p[0].Y != 0 {
		t.Fatal("flip modified its input")
	}
}

func TestTextPosition(t *testing.T) {
	tests := []struct {
		text loop.Text
		x, y int
	}{
		{loop.Text{Value: "LIVES: 3", Anchor: loop.AnchorTopLeft}, 4, 4},
		{loop.Text{Value: "SCORE: 0", Anchor: loop.AnchorTopRight}, 640 - 8*7 - 4, 4},
		{loop.Text{Value: "GAME OVER", Anchor: loop.AnchorCenter, Line: 1}, (640 - 9*7) / 2, 250 + 16},
	}
	for _, tt := range tests {
		x, y := textPosition(tt.text, 640, 500)
		if x != tt.x || y != tt.y {
			t.Errorf("textPosition(%q) = %d,%d; want %d,%d", tt.text.Value, x, y, tt.x, tt.y)
		}
	}
}
