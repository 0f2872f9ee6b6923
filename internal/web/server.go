// Package web serves the game to browsers: each websocket connection plays
// its own game, ticked on the server and streamed as JSON frames.
package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/tomz197/polyroids/internal/config"
	"github.com/tomz197/polyroids/internal/input"
	"github.com/tomz197/polyroids/internal/loop"
	"github.com/tomz197/polyroids/internal/loop/server"
	"github.com/tomz197/polyroids/internal/object"
)

//go:embed index.html
var indexPage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	// writeWait bounds a single frame write.
	writeWait = time.Second
	// maxMessageSize bounds a client message. Key events are tiny.
	maxMessageSize = 512
)

// Options configures the web host.
type Options struct {
	Arena  object.Arena
	Scheme input.Scheme // Used when the client does not pick one
	Hub    *server.Hub
	Logger *log.Logger
}

// Server hosts browser games.
type Server struct {
	opts Options
}

// New creates a web host.
func New(opts Options) *Server {
	if opts.Hub == nil {
		opts.Hub = server.NewHub(opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{opts: opts}
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/scores", s.handleScores)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.opts.Hub.TopScores()); err != nil {
		s.opts.Logger.Error("encode scores", "err", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	scheme := s.opts.Scheme
	if v := r.URL.Query().Get("scheme"); v != "" {
		parsed, err := input.ParseScheme(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		scheme = parsed
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "anonymous"
	}
	if runes := []rune(name); len(runes) > config.MaxUsernameLength {
		name = string(runes[:config.MaxUsernameLength])
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.opts.Logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	handle := s.opts.Hub.Register(name)
	defer s.opts.Hub.Unregister(handle.ID)

	logger := s.opts.Logger.With("session", handle.ID, "user", name)
	driver := loop.NewDriver(s.opts.Arena, loop.Options{Logger: logger})
	keys := input.NewKeys(scheme)

	err = play(conn, driver, keys, handle.Done())
	if err != nil && !isClosed(err) {
		logger.Warn("session error", "err", err)
	}

	score := driver.Session().Score()
	rank := s.opts.Hub.Report(name, score)
	logger.Info("web session ended", "score", score, "rank", rank)
}

// play runs the tick loop until the player quits, the connection drops, or
// done closes.
func play(conn *websocket.Conn, d *loop.Driver, keys *input.Keys, done <-chan struct{}) error {
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				var syntaxErr *json.SyntaxError
				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
					continue
				}
				readErr <- err
				return
			}
			msg.apply(keys)
		}
	}()

	ticker := time.NewTicker(config.TargetFrameTime)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case err := <-readErr:
			return err
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteJSON(wireFrame{Phase: "shutdown", Shapes: []wireShape{}, Text: []loop.Text{
				{Value: "SERVER SHUTTING DOWN", Anchor: loop.AnchorCenter},
			}})
			return closeNormally(conn)
		case now := <-ticker.C:
			in := keys.State()
			if in.Quit {
				return closeNormally(conn)
			}
			d.Tick(now.Sub(last), in)
			last = now

			conn.SetWriteDeadline(now.Add(writeWait))
			if err := conn.WriteJSON(encodeFrame(d.Frame())); err != nil {
				return err
			}
		}
	}
}

func closeNormally(conn *websocket.Conn) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, websocket.ErrCloseSent)
}
