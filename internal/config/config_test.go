package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr bool
	}{
		{"unset", "", false, 7, false},
		{"empty", "", true, 7, false},
		{"number", "42", true, 42, false},
		{"garbage", "4x2", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("POLYROIDS_TEST_INT", tt.value)
			}
			got, err := GetEnvInt("POLYROIDS_TEST_INT", 7)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Fatalf("err = %v, want ErrInvalidValue", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("GetEnvInt() = %d, %v; want %d", got, err, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.ArenaWidth != 640 || s.ArenaHeight != 500 {
		t.Fatalf("arena = %dx%d, want 640x500", s.ArenaWidth, s.ArenaHeight)
	}
	if s.SSHPort != "2222" || s.WebPort != "8080" || s.AssetDir != "assets" {
		t.Fatalf("settings = %+v", s)
	}
}

func TestLoadRejectsSmallArena(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ARENA_WIDTH", "100")
	if _, err := Load(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Load() err = %v, want ErrInvalidValue", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("WEB_PORT=9090\nKEY_SCHEME=arrows\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Loaded values leak into the process environment; make sure they are
	// restored after the test.
	t.Setenv("WEB_PORT", "")
	os.Unsetenv("WEB_PORT")
	t.Setenv("KEY_SCHEME", "")
	os.Unsetenv("KEY_SCHEME")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.WebPort != "9090" || s.Scheme != "arrows" {
		t.Fatalf("WebPort/Scheme = %q/%q, want 9090/arrows", s.WebPort, s.Scheme)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "test")
	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("output = %q", buf.String())
	}

	if NewLogger(&buf, "nonsense", "").GetLevel() != log.InfoLevel {
		t.Fatal("unknown level should fall back to info")
	}
}

func TestOpenLogDiscardsWithoutFile(t *testing.T) {
	w, closeFn, err := Settings{}.OpenLog()
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
}
