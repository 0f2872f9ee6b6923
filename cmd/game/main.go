package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/polyroids/internal/audio"
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
	"github.com/tomz197/polyroids/internal/object"
)

func main() {
	os.Exit(run())
}

// run plays one game and returns the process exit code. Deferred cleanup
// runs before main exits.
func run() int {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	reader := bufio.NewReader(os.Stdin)
	scheme, err := chooseScheme(reader, os.Stdout, settings.Scheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to choose key scheme: %v\n", err)
		return 1
	}

	logOut, closeLog, err := settings.OpenLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logger := config.NewLogger(logOut, settings.LogLevel, "game")

	sink := audio.LoadOrNop(settings.AssetDir, logger)
	if p, ok := sink.(*audio.Player); ok {
		defer p.Close()
	}

	time.Sleep(config.StartupDelay)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	driver := loop.NewDriver(object.NewArena(settings.ArenaWidth, settings.ArenaHeight), loop.Options{
		Audio:  sink,
		Logger: logger,
	})
	if err := loop.Run(reader, os.Stdout, loop.RunOptions{Driver: driver, Scheme: scheme}); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		logger.Error("game error", "err", err)
		return 1
	}
	logger.Info("game over", "score", driver.Session().Score(), "level", driver.Session().Level())
	return 0
}

// chooseScheme uses the configured scheme, or asks until it gets a valid
// answer.
func chooseScheme(r *bufio.Reader, w io.Writer, configured string) (input.Scheme, error) {
	if configured != "" {
		return input.ParseScheme(configured)
	}
	for {
		fmt.Fprint(w, "WASD or arrow keys? (1/2) ")
		line, err := r.ReadString('\n')
		if s, perr := input.ParseScheme(line); perr == nil {
			return s, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return input.WASD, fmt.Errorf("no answer: %w", err)
			}
			return input.WASD, err
		}
		fmt.Fprintf(w, "Please answer 1 or 2, not %q.\n", strings.TrimSpace(line))
	}
}
