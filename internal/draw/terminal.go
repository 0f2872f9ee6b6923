package draw

import (
	"io"
	"strconv"
	"strings"
)

// ChunkWriter batches one frame of terminal output and sends it in
// maxChunkSize writes, one SSH channel packet each.
// Positions passed to WriteAt are canvas-relative; the offset centres them.
type ChunkWriter struct {
	frame  strings.Builder
	out    io.Writer
	digits [20]byte
	offCol int
	offRow int
}

// NewChunkWriter returns a writer to w with the given canvas offset.
func NewChunkWriter(w io.Writer, offCol, offRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    w,
		offCol: offCol,
		offRow: offRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offCol, offRow int) {
	cw.offCol, cw.offRow = offCol, offRow
}

// ClearScreen queues a full-screen clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.frame.WriteString("\033[H\033[2J")
}

// WriteAt queues s at 1-based canvas position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
	cw.frame.WriteString(s)
}

// Write queues raw bytes. Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// Flush sends the queued frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(cw.out, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
