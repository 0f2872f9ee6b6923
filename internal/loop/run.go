package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/draw"
	"github.com/tomz197/polyroids/internal/input"
)

// RunOptions configures a terminal game.
type RunOptions struct {
	Driver       *Driver
	Scheme       input.Scheme
	TermSizeFunc draw.TermSizeFunc
	Done         <-chan struct{} // Closed when the host is shutting down
	IdleTimeout  time.Duration   // Zero disables the idle disconnect
}

// Run plays one game on a terminal with the standard Input → Update → Draw
// cycle. It returns when the player quits, the input ends, the player idles
// past IdleTimeout, or Done closes and the shutdown notice has been shown.
func Run(r *bufio.Reader, w io.Writer, opts RunOptions) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	d := opts.Driver
	stream := input.StartStream(r, opts.Scheme)

	termWidth, termHeight, _ := sizeFunc()
	view := newTerminalView(w, d.Arena(), termWidth, termHeight)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	var (
		shuttingDown bool
		remaining    float64
	)
	lastTime := time.Now()
	lastInput := lastTime

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit {
			break
		}
		if in.Any {
			lastInput = frameStart
		} else if opts.IdleTimeout > 0 && frameStart.Sub(lastInput) > opts.IdleTimeout {
			break
		}
		if !shuttingDown {
			select {
			case <-opts.Done:
				shuttingDown = true
				remaining = config.ShutdownDisplaySeconds
			default:
			}
		}

		// ===== UPDATE PHASE =====
		if tw, th, err := sizeFunc(); err == nil {
			view.resize(tw, th)
		}
		if shuttingDown {
			remaining -= delta.Seconds()
			if remaining <= 0 {
				break
			}
		} else {
			d.Tick(delta, in)
		}

		// ===== DRAW PHASE =====
		var err error
		if shuttingDown {
			err = view.drawShutdown(remaining)
		} else {
			err = view.draw(d.Frame())
		}
		if err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}
