// Package server tracks the game sessions hosted by one process (SSH or web)
// so they can be counted, ranked, and drained on shutdown. Every session runs
// its own independent game; the hub shares no simulation state.
package server

import (
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// maxScores is the leaderboard length.
const maxScores = 10

// Handle is one registered session.
type Handle struct {
	ID       string
	Username string
	Joined   time.Time

	done chan struct{}
}

// Done is closed when the hub is shutting down.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// ScoreEntry is a single entry on the leaderboard.
type ScoreEntry struct {
	Username string    `json:"username"`
	Score    int       `json:"score"`
	At       time.Time `json:"at"`
}

// Hub manages connected sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Handle
	scores   []ScoreEntry
	closing  bool
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions: make(map[string]*Handle),
		logger:   logger,
	}
}

// Register adds a session for username. A session registered after Shutdown
// started gets a handle whose Done channel is already closed.
func (h *Hub) Register(username string) *Handle {
	handle := &Handle{
		ID:       uuid.NewString(),
		Username: username,
		Joined:   time.Now(),
		done:     make(chan struct{}),
	}

	h.mu.Lock()
	if h.closing {
		close(handle.done)
	}
	h.sessions[handle.ID] = handle
	n := len(h.sessions)
	h.mu.Unlock()

	h.logger.Info("session joined", "id", handle.ID, "user", username, "sessions", n)
	return handle
}

// Unregister removes a session. Unknown IDs are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	handle, ok := h.sessions[id]
	delete(h.sessions, id)
	n := len(h.sessions)
	h.mu.Unlock()

	if ok {
		h.logger.Info("session left", "id", id, "user", handle.Username,
			"played", time.Since(handle.Joined).Round(time.Second), "sessions", n)
	}
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Report records a finished game's score on the leaderboard and returns its
// 1-based rank, or 0 if it did not place.
func (h *Hub) Report(username string, score int) int {
	entry := ScoreEntry{Username: username, Score: score, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Equal scores keep their arrival order.
	i, _ := slices.BinarySearchFunc(h.scores, entry, func(e, t ScoreEntry) int {
		if e.Score >= t.Score {
			return -1
		}
		return 1
	})
	if i >= maxScores {
		return 0
	}
	h.scores = slices.Insert(h.scores, i, entry)
	if len(h.scores) > maxScores {
		h.scores = h.scores[:maxScores]
	}
	return i + 1
}

// TopScores returns a copy of the leaderboard, best first.
func (h *Hub) TopScores() []ScoreEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.scores)
}

// Shutdown notifies every session and waits for them to unregister, or for
// timeout. It returns how many sessions were still connected.
func (h *Hub) Shutdown(timeout time.Duration) int {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		for _, handle := range h.sessions {
			close(handle.done)
		}
	}
	h.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		remaining := h.Count()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "sessions", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
