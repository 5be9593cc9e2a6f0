// Package web serves the game to browser renderers over websockets. Each
// connection owns one orchestrator driven by a single event loop; clients
// send directions and receive a frame after every state change.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"nhooyr.io/websocket"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/storage"
)

// Config holds the web server settings.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string

	// AllowOrigins lists accepted Origin host patterns. Empty accepts any origin.
	AllowOrigins []string

	// Variant is the board used when the client does not pick one.
	Variant string

	// Seed makes every session deterministic when non-zero.
	Seed int64

	// Store records finished rounds. Nil disables recording.
	Store *storage.Store

	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:    ":8080",
		Variant: "classic",
	}
}

// Server is the websocket game server.
type Server struct {
	cfg      Config
	logger   *log.Logger
	sessions atomic.Int64
}

// NewServer validates cfg and creates a server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Variant == "" {
		cfg.Variant = DefaultConfig().Variant
	}
	if _, ok := t2048.VariantByID(cfg.Variant); !ok {
		return nil, fmt.Errorf("web: unknown variant %q", cfg.Variant)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

// Handler returns the HTTP routes: /ws, /variants and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/variants", s.serveVariants)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"status": "ok", "sessions": s.sessions.Load()})
	})
	return mux
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

type variantInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Info string `json:"info"`
}

func (s *Server) serveVariants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, lo.Map(t2048.Variants, func(v t2048.Variant, _ int) variantInfo {
		return variantInfo{ID: v.ID, Name: v.Name, Info: v.Info}
	}))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("variant")
	if id == "" {
		id = s.cfg.Variant
	}
	variant, ok := t2048.VariantByID(id)
	if !ok {
		http.Error(w, "unknown variant", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:     s.cfg.AllowOrigins,
		InsecureSkipVerify: len(s.cfg.AllowOrigins) == 0,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := newSession(s, conn, variant)
	s.sessions.Add(1)
	defer s.sessions.Add(-1)

	start := time.Now()
	sess.logger.Info("session started", "remote", r.RemoteAddr, "variant", variant.ID)

	go sess.writePump(ctx)
	go sess.readPump(ctx, cancel)
	sess.loop.post(sess.start)
	sess.loop.run(ctx)

	sess.finishRound()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	sess.logger.Info("session ended", "remote", r.RemoteAddr, "duration", time.Since(start).Round(time.Second))
}
