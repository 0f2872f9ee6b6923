package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/polyroids/internal/geometry"
)

func TestDrawLineEndpoints(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(geometry.Point{X: 1, Y: 1}, geometry.Point{X: 8, Y: 6})
	if !c.Pixel(1, 1) || !c.Pixel(8, 6) {
		t.Fatal("line endpoints not set")
	}
	if c.Pixel(0, 9) {
		t.Fatal("unexpected pixel set")
	}
}

func TestFilledPolygon(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	square := []geometry.Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}

	c.DrawPolygon(square, false)
	if c.Pixel(7, 7) {
		t.Fatal("outline should leave the interior empty")
	}
	c.DrawPolygon(square, true)
	if !c.Pixel(7, 7) {
		t.Fatal("fill should set the interior")
	}
}

func TestDrawPolygonIgnoresDegenerate(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawPolygon([]geometry.Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, true)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Pixel(x, y) {
				t.Fatalf("pixel (%d,%d) set for a two-point polygon", x, y)
			}
		}
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.DrawLine(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 1})

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Fatalf("first render %q missing full block", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;1H ") {
		t.Fatalf("cleared cell not erased: %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if got := strings.Count(fourth.String(), "H"); got != 8 {
		t.Fatalf("forced redraw wrote %d cells, want 8", got)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{300, 24, 200, 24, 50, 0},
		{100, 80, 100, 60, 0, 10},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h, 200, 60)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d,%d,%d,%d; want %d,%d,%d,%d",
				tt.w, tt.h, rw, rh, oc, or, tt.rw, tt.rh, tt.offCol, tt.offRow)
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[3;4Hhi"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

// writeSizes records the size of every Write.
type writeSizes []int

func (w *writeSizes) Write(p []byte) (int, error) {
	*w = append(*w, len(p))
	return len(p), nil
}

func TestChunkWriterSplitsFrames(t *testing.T) {
	var sizes writeSizes
	cw := NewChunkWriter(&sizes, 0, 0)
	cw.WriteAt(1, 1, strings.Repeat("x", 3000))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, n := range sizes {
		if n > maxChunkSize {
			t.Fatalf("write of %d bytes exceeds %d", n, maxChunkSize)
		}
		total += n
	}
	if want := len("\033[1;1H") + 3000; total != want || len(sizes) != 3 {
		t.Fatalf("writes = %v (total %d), want 3 writes of %d bytes", sizes, total, want)
	}
}

func TestInvalidate(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Render(&bytes.Buffer{})

	c.Invalidate(2, 2, 10)
	var out bytes.Buffer
	c.Render(&out)
	if got := strings.Count(out.String(), "H"); got != 3 {
		t.Fatalf("rewrote %d cells, want 3", got)
	}
	if !strings.Contains(out.String(), "\033[2;2H ") {
		t.Fatalf("output %q missing cell (2,2)", out.String())
	}
}
