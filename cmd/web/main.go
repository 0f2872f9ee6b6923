package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop/server"
	"github.com/tomz197/polyroids/internal/object"
	"github.com/tomz197/polyroids/internal/web"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, settings.LogLevel, "web")

	scheme := input.WASD
	if settings.Scheme != "" {
		if scheme, err = input.ParseScheme(settings.Scheme); err != nil {
			logger.Fatal("invalid key scheme", "scheme", settings.Scheme, "err", err)
		}
	}

	hub := server.NewHub(logger)
	srv := web.New(web.Options{
		Arena:  object.NewArena(settings.ArenaWidth, settings.ArenaHeight),
		Scheme: scheme,
		Hub:    hub,
		Logger: logger,
	})

	addr := net.JoinHostPort(settings.WebHost, settings.WebPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "addr", "http://"+addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", hub.Count())

	// Hijacked websocket connections are not tracked by http.Server.
	hub.Shutdown(time.Duration(config.ShutdownDisplaySeconds*float64(time.Second)) + 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
