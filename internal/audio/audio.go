// Package audio plays the game's sound effects.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate = beep.SampleRate(44100)
	quality    = 4
)

// Event is a sound trigger emitted by the simulation.
type Event int

const (
	Shoot Event = iota
	AsteroidHit
	ShipDeath
)

func (e Event) String() string {
	switch e {
	case Shoot:
		return "shoot"
	case AsteroidHit:
		return "asteroid_hit"
	case ShipDeath:
		return "ship_death"
	default:
		return "unknown"
	}
}

// files maps each event to its asset name.
var files = map[Event]string{
	Shoot:       "pew.wav",
	AsteroidHit: "asteroid_hit.wav",
	ShipDeath:   "death.wav",
}

// Sink receives sound events. Play must not block the caller.
type Sink interface {
	Play(Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Play(Event) {}

// Player plays buffered samples through the system speaker.
type Player struct {
	mu      sync.Mutex
	buffers map[Event]*beep.Buffer
	mixer   *beep.Mixer
	closed  bool
}

// Load decodes the sound assets in dir and starts the speaker.
func Load(dir string) (*Player, error) {
	buffers, err := decodeAll(dir)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p := &Player{buffers: buffers, mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

// LoadOrNop is Load that falls back to a silent sink. Missing audio never
// stops the game.
func LoadOrNop(dir string, logger *log.Logger) Sink {
	p, err := Load(dir)
	if err != nil {
		logger.Warn("audio disabled", "dir", dir, "err", err)
		return Nop{}
	}
	logger.Debug("audio ready", "dir", dir)
	return p
}

// Play starts the sample for e on top of whatever is already playing.
func (p *Player) Play(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf, ok := p.buffers[e]
	if !ok || p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// Close silences the player. Further events are dropped.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.closed = true
}

func decodeAll(dir string) (map[Event]*beep.Buffer, error) {
	buffers := make(map[Event]*beep.Buffer, len(files))
	var errs []error
	for e, name := range files {
		buf, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e, err))
			continue
		}
		buffers[e] = buf
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return buffers, nil
}

// decodeFile reads a wav file fully into memory at the speaker's sample rate.
func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(quality, format.SampleRate, sampleRate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}
