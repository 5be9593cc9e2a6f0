package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"nhooyr.io/websocket"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
	"github.com/vovakirdan/merge2048/internal/games/t2048/engine"
	"github.com/vovakirdan/merge2048/internal/storage"
)

const (
	sendBuffer   = 64
	eventBuffer  = 64
	pingInterval = 15 * time.Second
)

// session is one websocket connection. Fields below loop are owned by the
// loop goroutine.
type session struct {
	id     string
	srv    *Server
	conn   *websocket.Conn
	send   chan []byte
	logger *log.Logger
	loop   *loop

	variant  t2048.Variant
	orch     *t2048.Orchestrator
	round    string // record id of the current round
	last     t2048.Frame
	recorded bool
}

func newSession(srv *Server, conn *websocket.Conn, variant t2048.Variant) *session {
	s := &session{
		id:      uuid.NewString(),
		srv:     srv,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		loop:    newLoop(eventBuffer),
		variant: variant,
	}
	s.logger = srv.logger.With("session", s.id)
	s.orch = t2048.NewOrchestrator(t2048.DefaultSettings(), loopScheduler{loop: s.loop},
		engine.NewRand(srv.cfg.Seed),
		t2048.WithLogger(s.logger),
		t2048.WithPublisher(s.publish))
	return s
}

// start greets the client and deals the first board.
func (s *session) start() {
	s.emit(typeHello, helloMsg{
		Session:  s.id,
		Variant:  s.variant.ID,
		Variants: lo.Map(t2048.Variants, func(v t2048.Variant, _ int) string { return v.ID }),
	})
	s.reset(s.variant)
}

func (s *session) reset(v t2048.Variant) {
	settings, err := v.LoadSettings()
	if err != nil {
		s.logger.Warn("load config, using defaults", "variant", v.ID, "err", err)
		settings = t2048.DefaultSettings()
	}
	s.variant = v
	s.round = uuid.NewString()
	s.recorded = false
	if err := s.orch.Reset(settings); err != nil {
		s.logger.Error("reset failed", "variant", v.ID, "err", err)
		s.emitError(codeEngine, err.Error())
	}
}

// handle runs one client message on the loop.
func (s *session) handle(env envelope) {
	switch env.T {
	case typeMove:
		var m moveMsg
		if err := json.Unmarshal(env.M, &m); err != nil {
			s.emitError(codeBadJSON, err.Error())
			return
		}
		dir, err := engine.ParseDirection(m.Dir)
		if err != nil {
			s.emitError(codeBadDir, m.Dir)
			return
		}
		if err := s.orch.HandleMove(dir); err != nil {
			s.logger.Error("move failed", "dir", dir, "err", err)
			s.emitError(codeEngine, err.Error())
		}

	case typeReset:
		var m resetMsg
		if len(env.M) > 0 {
			if err := json.Unmarshal(env.M, &m); err != nil {
				s.emitError(codeBadJSON, err.Error())
				return
			}
		}
		v := s.variant
		if m.Variant != "" {
			var ok bool
			if v, ok = t2048.VariantByID(m.Variant); !ok {
				s.emitError(codeBadVariant, m.Variant)
				return
			}
		}
		s.finishRound()
		s.reset(v)

	case typePing:
		s.emit(typePong, nil)

	default:
		s.emitError(codeUnknownType, env.T)
	}
}

// publish is the orchestrator's frame sink.
func (s *session) publish(f t2048.Frame) {
	s.last = f
	s.emit(typeFrame, newFrameMsg(f))
	if f.Lost && !s.recorded {
		s.record(f)
	}
}

// finishRound records the current round if it was played but not yet saved.
func (s *session) finishRound() {
	if !s.recorded && s.last.Moves > 0 {
		s.record(s.last)
	}
}

func (s *session) record(f t2048.Frame) {
	s.recorded = true
	store := s.srv.cfg.Store
	if store == nil || f.Moves == 0 {
		return
	}
	_, err := store.SaveGame(storage.GameRecord{
		ID:      s.round,
		Variant: s.variant.ID,
		Score:   f.Score,
		MaxTile: f.MaxNumber(),
		Moves:   f.Moves,
		Lost:    f.Lost,
	})
	if err != nil {
		s.logger.Warn("could not save game", "err", err)
	}
}

func (s *session) emit(t string, payload any) {
	b, err := encode(t, payload)
	if err != nil {
		s.logger.Error("encode failed", "type", t, "err", err)
		return
	}
	select {
	case s.send <- b:
	default:
		s.logger.Warn("send buffer full, dropping message", "type", t)
	}
}

func (s *session) emitError(code, detail string) {
	s.emit(typeError, errorMsg{Code: code, Detail: detail})
}

// readPump decodes client messages and posts them to the loop. It cancels
// the session when the connection fails.
func (s *session) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			return
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			if !s.loop.post(func() { s.emitError(codeBadJSON, err.Error()) }) {
				return
			}
			continue
		}
		if !s.loop.post(func() { s.handle(env) }) {
			return
		}
	}
}

// writePump sends queued messages and keeps the connection alive.
func (s *session) writePump(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.send:
			if err := s.conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		case <-ping.C:
			if err := s.conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}
