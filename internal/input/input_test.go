package input

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"1", WASD, false},
		{"2", Arrows, false},
		{"wasd", WASD, false},
		{" Arrows\n", Arrows, false},
		{"3", WASD, true},
		{"", WASD, true},
	}
	for _, tt := range tests {
		got, err := ParseScheme(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownScheme) {
				t.Errorf("ParseScheme(%q) err = %v, want ErrUnknownScheme", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseScheme(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestKeysSchemeBindings(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		press  []string
		want   State
	}{
		{"wasd forward", WASD, []string{KeyW}, State{Forward: true, Any: true}},
		{"wasd ignores arrows", WASD, []string{KeyUp, KeyLeft}, State{Any: true}},
		{"arrows turn", Arrows, []string{KeyLeft, KeySpace}, State{Left: true, Shoot: true, Any: true}},
		{"arrows ignores wasd", Arrows, []string{KeyD}, State{Any: true}},
		{"quit", Arrows, []string{KeyQuit}, State{Quit: true, Any: true}},
		{"nothing", WASD, nil, State{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeys(tt.scheme)
			for _, name := range tt.press {
				k.Press(name)
			}
			if got := k.State(); got != tt.want {
				t.Errorf("State() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKeysRelease(t *testing.T) {
	k := NewKeys(WASD)
	k.Press(KeyW)
	k.Press(KeySpace)
	k.Release(KeyW)
	if got := k.State(); got.Forward || !got.Shoot {
		t.Fatalf("State() = %+v, want shoot only", got)
	}
	k.Reset()
	if got := k.State(); got.Any {
		t.Fatalf("State() after Reset = %+v, want empty", got)
	}
}

func TestKeysBoundedUnknownNames(t *testing.T) {
	k := NewKeys(WASD)
	for i := 0; i < 10000; i++ {
		k.Press("junk" + strconv.Itoa(i))
	}
	k.Press(KeyW)
	if n := len(k.down) + len(k.other); n > len(bound)+maxOtherKeys {
		t.Fatalf("tracked %d keys, want at most %d", n, len(bound)+maxOtherKeys)
	}
	if got := k.State(); !got.Forward || !got.Any {
		t.Fatalf("State() = %+v, want forward and any", got)
	}

	// Unbound keys alone still count as "any key".
	k.Release(KeyW)
	if got := k.State(); !got.Any || got.Forward {
		t.Fatalf("State() = %+v, want any only", got)
	}
	for i := 0; i < 10000; i++ {
		k.Release("junk" + strconv.Itoa(i))
	}
	if got := k.State(); got.Any {
		t.Fatalf("State() after releases = %+v, want empty", got)
	}
}

func TestKeysConcurrent(t *testing.T) {
	k := NewKeys(WASD)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				k.Press(KeySpace)
				_ = k.State()
				k.Release(KeySpace)
			}
		}()
	}
	wg.Wait()
}

func TestStreamHoldWindow(t *testing.T) {
	s := newStream(WASD)
	t0 := time.Unix(1000, 0)

	s.apply([]byte("w "), t0)
	st := s.state(t0.Add(50 * time.Millisecond))
	if !st.Forward || !st.Shoot || !st.Any {
		t.Fatalf("state = %+v, want forward+shoot", st)
	}

	st = s.state(t0.Add(keyHoldDuration))
	if st.Forward || st.Shoot || st.Any {
		t.Fatalf("state after hold window = %+v, want empty", st)
	}
}

func TestStreamArrowSequences(t *testing.T) {
	s := newStream(Arrows)
	t0 := time.Unix(1000, 0)

	s.apply([]byte("\x1b[A\x1b[D"), t0)
	st := s.state(t0)
	if !st.Forward || !st.Left || st.Right {
		t.Fatalf("state = %+v, want forward+left", st)
	}
}

func TestStreamSplitEscape(t *testing.T) {
	s := newStream(Arrows)
	t0 := time.Unix(1000, 0)

	s.apply([]byte("\x1b["), t0)
	if st := s.state(t0); st.Right {
		t.Fatal("incomplete sequence should not register")
	}
	s.apply([]byte("C"), t0)
	if st := s.state(t0); !st.Right {
		t.Fatal("completed sequence should register right")
	}
}

func TestStreamQuit(t *testing.T) {
	for _, b := range []byte{'q', 'Q', ctrlC} {
		s := newStream(WASD)
		t0 := time.Unix(1000, 0)
		s.apply([]byte{b}, t0)
		if st := s.state(t0); !st.Quit {
			t.Errorf("byte %#x: Quit = false, want true", b)
		}
	}
}

func TestReadInputClosedStreamQuits(t *testing.T) {
	s := newStream(WASD)
	close(s.ch)
	if st := ReadInput(s); !st.Quit || !s.closed {
		t.Fatalf("state = %+v, closed = %v; want quit", st, s.closed)
	}
}
