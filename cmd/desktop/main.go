package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/polyroids/internal/audio"
	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/desktop"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
	"github.com/tomz197/polyroids/internal/object"
)

func main() {
	os.Exit(run())
}

// run opens the window and returns the process exit code once it closes.
func run() int {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger := config.NewLogger(os.Stderr, settings.LogLevel, "desktop")

	scheme := input.WASD
	if settings.Scheme != "" {
		if scheme, err = input.ParseScheme(settings.Scheme); err != nil {
			logger.Error("invalid key scheme", "scheme", settings.Scheme, "err", err)
			return 1
		}
	}

	sink := audio.LoadOrNop(settings.AssetDir, logger)
	if p, ok := sink.(*audio.Player); ok {
		defer p.Close()
	}

	driver := loop.NewDriver(object.NewArena(settings.ArenaWidth, settings.ArenaHeight), loop.Options{
		Audio:  sink,
		Logger: logger,
	})
	game := desktop.New(driver, scheme)

	ebiten.SetWindowSize(game.Size())
	ebiten.SetWindowTitle(desktop.Title)

	time.Sleep(config.StartupDelay)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game error", "err", err)
		return 1
	}
	logger.Info("game over", "score", driver.Session().Score(), "level", driver.Session().Level())
	return 0
}
