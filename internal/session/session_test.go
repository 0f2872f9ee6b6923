package session

import "testing"

type fakeWorld struct {
	heavy     int
	populated []int
	clears    int
	resets    int
}

func (w *fakeWorld) HeavyCount() int   { return w.heavy }
func (w *fakeWorld) ClearProjectiles() { w.clears++ }

func (w *fakeWorld) Populate(level int) {
	w.populated = append(w.populated, level)
	w.heavy = 5 * level
}
func (w *fakeWorld) Reset() { w.resets++ }

// vulnerable returns a session past its initial grace window.
func vulnerable(cfg Config) *Session {
	s := New(cfg)
	s.Advance(cfg.Grace + 1)
	return s
}

func TestTransitionTable(t *testing.T) {
	phases := []Phase{Playing, LevelTransition, GameOver}
	allowed := map[[2]Phase]bool{
		{Playing, LevelTransition}: true,
		{Playing, GameOver}:        true,
		{LevelTransition, Playing}: true,
		{GameOver, Playing}:        true,
	}
	for _, from := range phases {
		for _, to := range phases {
			want := allowed[[2]Phase{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{Playing, "playing"},
		{LevelTransition, "level_transition"},
		{GameOver, "game_over"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestNewSession(t *testing.T) {
	s := New(DefaultConfig())
	if s.Level() != 1 || s.Lives() != 10 || s.Score() != 0 {
		t.Fatalf("level/lives/score = %d/%d/%d, want 1/10/0", s.Level(), s.Lives(), s.Score())
	}
	if s.Phase() != Playing {
		t.Fatalf("phase = %s, want playing", s.Phase())
	}
	if !s.Invulnerable() {
		t.Fatal("new session should start inside the grace window")
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lives = 1
	s := vulnerable(cfg)
	w := &fakeWorld{heavy: 3}

	if !s.RecordDeath() {
		t.Fatal("unprotected hit should cost a life")
	}
	if s.Lives() != 0 || s.Score() != -10 {
		t.Fatalf("lives/score = %d/%d, want 0/-10", s.Lives(), s.Score())
	}
	if got := s.Evaluate(w, false); got != GameOver {
		t.Fatalf("phase = %s, want game_over", got)
	}
}

func TestGameOverBeatsLevelClear(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lives = 1
	s := vulnerable(cfg)
	w := &fakeWorld{heavy: 0}

	s.RecordDeath()
	if got := s.Evaluate(w, false); got != GameOver {
		t.Fatalf("phase = %s, want game_over", got)
	}
	if s.Level() != 1 {
		t.Fatalf("level = %d, want 1", s.Level())
	}
}

func TestGraceWindow(t *testing.T) {
	s := vulnerable(DefaultConfig())

	if !s.RecordDeath() {
		t.Fatal("first hit should count")
	}
	s.Advance(1)
	if s.RecordDeath() {
		t.Fatal("hit 1s after death should be absorbed")
	}
	s.Advance(3.9)
	if s.RecordDeath() {
		t.Fatal("hit 4.9s after death should be absorbed")
	}
	if s.Lives() != 9 {
		t.Fatalf("lives = %d, want 9", s.Lives())
	}
	s.Advance(0.2)
	if !s.RecordDeath() {
		t.Fatal("hit after the grace window should count")
	}
	if s.Lives() != 8 || s.Score() != -20 {
		t.Fatalf("lives/score = %d/%d, want 8/-20", s.Lives(), s.Score())
	}
}

func TestShipVisible(t *testing.T) {
	s := New(DefaultConfig())
	tests := []struct {
		advance float64
		want    bool
	}{
		{0, true},     // 0.00
		{0.1, true},   // 0.10
		{0.15, false}, // 0.25
		{0.15, true},  // 0.40, 0.05 into the second period
		{0.2, false},  // 0.60
		{5, true},     // past grace
	}
	for i, tt := range tests {
		s.Advance(tt.advance)
		if got := s.ShipVisible(); got != tt.want {
			t.Errorf("step %d: ShipVisible() = %v, want %v", i, got, tt.want)
		}
	}
}

func TestLevelClearRequiresNoHeavyAsteroids(t *testing.T) {
	s := vulnerable(DefaultConfig())
	w := &fakeWorld{heavy: 1}

	if got := s.Evaluate(w, false); got != Playing {
		t.Fatalf("phase = %s, want playing", got)
	}
	w.heavy = 0
	if got := s.Evaluate(w, false); got != LevelTransition {
		t.Fatalf("phase = %s, want level_transition", got)
	}
	if s.Level() != 2 {
		t.Fatalf("level = %d, want 2", s.Level())
	}
	if s.ScreenTime() != 0 {
		t.Fatalf("screen time = %v, want 0", s.ScreenTime())
	}
}

func TestLevelTransitionDwell(t *testing.T) {
	s := vulnerable(DefaultConfig())
	w := &fakeWorld{}
	s.AddScore(15)
	s.Evaluate(w, false)

	s.Advance(3)
	if got := s.Evaluate(w, false); got != LevelTransition {
		t.Fatalf("phase at exactly 3s = %s, want level_transition", got)
	}
	if len(w.populated) != 0 {
		t.Fatal("populated before the dwell elapsed")
	}

	s.Advance(0.1)
	if got := s.Evaluate(w, false); got != Playing {
		t.Fatalf("phase = %s, want playing", got)
	}
	if s.Score() != 35 {
		t.Fatalf("score = %d, want 35", s.Score())
	}
	if w.clears != 1 {
		t.Fatalf("projectile clears = %d, want 1", w.clears)
	}
	if len(w.populated) != 1 || w.populated[0] != 2 {
		t.Fatalf("populated = %v, want [2]", w.populated)
	}
	if !s.Invulnerable() {
		t.Fatal("a new level should restart the grace window")
	}
}

func TestGameOverRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lives = 1
	s := vulnerable(cfg)
	w := &fakeWorld{heavy: 4}
	s.AddScore(40)
	s.RecordDeath()
	s.Evaluate(w, false)

	s.Advance(1)
	if got := s.Evaluate(w, true); got != GameOver {
		t.Fatalf("key before restart delay: phase = %s, want game_over", got)
	}
	s.Advance(2.5)
	if !s.RestartReady() {
		t.Fatal("restart should be ready after 3.5s")
	}
	if got := s.Evaluate(w, false); got != GameOver {
		t.Fatalf("no key: phase = %s, want game_over", got)
	}
	if got := s.Evaluate(w, true); got != Playing {
		t.Fatalf("phase = %s, want playing", got)
	}

	if s.Lives() != 1 || s.Score() != 0 || s.Level() != 0 {
		t.Fatalf("lives/score/level = %d/%d/%d, want 1/0/0", s.Lives(), s.Score(), s.Level())
	}
	if w.resets != 1 {
		t.Fatalf("resets = %d, want 1", w.resets)
	}
	if len(w.populated) != 1 || w.populated[0] != 0 {
		t.Fatalf("populated = %v, want [0]", w.populated)
	}

	// The empty level 0 clears on the next evaluation.
	if got := s.Evaluate(w, false); got != LevelTransition {
		t.Fatalf("after restart: phase = %s, want level_transition", got)
	}
	if s.Level() != 1 {
		t.Fatalf("level = %d, want 1", s.Level())
	}
	s.Advance(3.1)
	if got := s.Evaluate(w, false); got != Playing {
		t.Fatalf("after dwell: phase = %s, want playing", got)
	}
	if len(w.populated) != 2 || w.populated[1] != 1 {
		t.Fatalf("populated = %v, want [0 1]", w.populated)
	}
}
