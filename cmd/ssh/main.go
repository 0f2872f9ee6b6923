package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/draw"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
	"github.com/tomz197/polyroids/internal/loop/server"
	"github.com/tomz197/polyroids/internal/object"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, settings.LogLevel, "ssh")

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", settings.SSHHost, "port", settings.SSHPort,
		"hostKey", settings.SSHHostKey, "workingDir", workingDir)

	hub := server.NewHub(logger)
	arena := object.NewArena(settings.ArenaWidth, settings.ArenaHeight)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(hub, arena, settings, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(settings.SSHHost, settings.SSHPort))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", hub.Count())

	// Notify players and give them time to read the notice before closing.
	hub.Shutdown(time.Duration(config.ShutdownDisplaySeconds*float64(time.Second)) + 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(hub *server.Hub, arena object.Arena, settings config.Settings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			scheme, err := sessionScheme(sess.Command(), settings.Scheme)
			if err != nil {
				fmt.Fprintf(sess, "Error: %v. Use: ssh -t host wasd|arrows\n", err)
				return
			}

			username := truncateUsername(sess.User())
			handle := hub.Register(username)
			defer hub.Unregister(handle.ID)

			logger.Info("new game session", "user", username, "term", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height), "scheme", scheme)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			driver := loop.NewDriver(arena, loop.Options{
				Logger: logger.With("user", username),
			})
			err = loop.Run(bufio.NewReader(sess), sess, loop.RunOptions{
				Driver:       driver,
				Scheme:       scheme,
				TermSizeFunc: sizeTracker.getSize,
				Done:         handle.Done(),
				IdleTimeout:  config.IdleTimeout,
			})
			if err != nil {
				logger.Error("game error", "user", username, "err", err)
			}

			score := driver.Session().Score()
			if rank := hub.Report(username, score); rank > 0 {
				fmt.Fprintf(sess, "Final score: %d (#%d on the leaderboard)\r\n", score, rank)
			} else {
				fmt.Fprintf(sess, "Final score: %d\r\n", score)
			}
			logger.Info("session ended", "user", username, "score", score)
			next(sess)
		}
	}
}

// sessionScheme picks the key scheme from the ssh command line, then the
// configured default, then WASD.
func sessionScheme(args []string, fallback string) (input.Scheme, error) {
	if len(args) > 0 {
		return input.ParseScheme(args[0])
	}
	if fallback != "" {
		return input.ParseScheme(fallback)
	}
	return input.WASD, nil
}

func truncateUsername(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "anonymous"
	}
	if r := []rune(name); len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return name
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
