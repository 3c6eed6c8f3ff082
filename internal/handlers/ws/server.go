package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/services/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Config holds the configuration for the websocket server
type Config struct {
	// Addr is the listen address, e.g. ":8080". Port 0 picks a free port.
	Addr string

	// SessionService handles every decoded client event
	SessionService session.Service
}

// Server exposes the session over websocket at /ws, speaking the same JSON
// records as the TCP listener, one per text frame. /healthz reports the
// session state.
type Server struct {
	cfg        *Config
	listener   net.Listener
	httpServer *http.Server
	wg         sync.WaitGroup
}

// New creates a new websocket server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}

	s := &Server{
		cfg: cfg,
	}

	router := httprouter.New()
	router.GET("/ws", s.serveWS)
	router.GET("/healthz", s.serveHealth)

	s.httpServer = &http.Server{
		Handler: router,
	}

	return s, nil
}

// Start binds the listen address and begins serving
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener

	log.Info().Str("addr", listener.Addr().String()).Msg("websocket server listening")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("websocket server failed")
		}
	}()

	return nil
}

// Addr returns the bound listen address. Only valid after Start.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Stop shuts the HTTP server down and waits for the serve goroutine
func (s *Server) Stop(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.wg.Wait()
	return err
}

// serveWS upgrades the connection and runs the client protocol: the first
// text frame is the display name, every later frame is a JSON record.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := newWSClient(conn)
	go c.writePump()

	_, nameFrame, err := conn.ReadMessage()
	if err != nil {
		_ = c.Close()
		return
	}
	name := strings.TrimSpace(string(nameFrame))

	registered, err := s.cfg.SessionService.RegisterPlayer(r.Context(), &session.RegisterPlayerInput{
		Conn: c,
		Name: name,
	})
	if err != nil {
		log.Info().Err(err).Str("remote", r.RemoteAddr).Msg("registration rejected")
		_ = c.Close()
		return
	}

	log.Info().
		Str("player", registered.Name).
		Str("remote", r.RemoteAddr).
		Msg("websocket client connected")

	s.readPump(c, registered.Name)
}

// readPump decodes inbound frames until the peer disconnects, then removes
// the player from the session.
func (s *Server) readPump(c *wsClient, name string) {
	ctx := context.Background()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		line := bytes.TrimSpace(frame)
		if len(line) == 0 {
			continue
		}

		msg, err := protocol.ParseClientMessage(line)
		if err != nil {
			log.Debug().Err(err).Str("player", name).Msg("discarding malformed frame")
			continue
		}

		switch msg.Type {
		case protocol.TypeAnswer:
			if _, err := s.cfg.SessionService.SubmitAnswer(ctx, &session.SubmitAnswerInput{
				Name:   name,
				Choice: msg.Answer,
			}); err != nil {
				log.Warn().Err(err).Str("player", name).Msg("failed to submit answer")
			}
		case protocol.TypeChat:
			if _, err := s.cfg.SessionService.RelayChat(ctx, &session.RelayChatInput{
				Name: name,
				Msg:  msg.Msg,
			}); err != nil {
				log.Warn().Err(err).Str("player", name).Msg("failed to relay chat")
			}
		}
	}

	if _, err := s.cfg.SessionService.RemovePlayer(ctx, &session.RemovePlayerInput{Conn: c}); err != nil {
		log.Warn().Err(err).Str("player", name).Msg("failed to remove player")
		_ = c.Close()
	}
}

// serveHealth reports the session state as JSON
func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state, err := s.cfg.SessionService.GetSessionState(r.Context(), &session.GetSessionStateInput{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	board, err := s.cfg.SessionService.GetScoreboard(r.Context(), &session.GetScoreboardInput{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":          state.Status,
		"players":         state.PlayerCount,
		"question_number": state.QuestionNumber,
		"total_questions": state.TotalQuestions,
		"scoreboard":      board.Entries,
	})
}
