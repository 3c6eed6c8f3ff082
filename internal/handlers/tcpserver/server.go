package tcpserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/services/session"
)

// maxLineBytes caps a single inbound record
const maxLineBytes = 64 * 1024

// Config holds the configuration for the TCP server
type Config struct {
	// Addr is the listen address, e.g. ":9090". Port 0 picks a free port.
	Addr string

	// SessionService handles every decoded client event
	SessionService session.Service
}

// Server accepts TCP clients speaking the newline-delimited JSON protocol
// and bridges them onto the session service.
type Server struct {
	cfg      *Config
	listener net.Listener
	done     chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	clients map[*client]struct{}
	started bool
}

// New creates a new TCP server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}

	return &Server{
		cfg:     cfg,
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}, nil
}

// Start binds the listen address and begins accepting clients
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener

	log.Info().Str("addr", listener.Addr().String()).Msg("tcp server listening")

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the bound listen address. Only valid after Start.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Stop closes the listener and every active connection, then waits for the
// connection handlers to drain.
func (s *Server) Stop() error {
	close(s.done)

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}

	s.mu.Lock()
	for c := range s.clients {
		_ = c.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	log.Info().Msg("tcp server stopped")
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("accept failed")
			continue
		}

		c := newClient(conn)
		s.track(c)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.handleConn(c)
		}()
	}
}

func (s *Server) track(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

// handleConn runs the per-connection protocol: a bare name line first, then
// a stream of JSON records until the peer disconnects.
func (s *Server) handleConn(c *client) {
	ctx := context.Background()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	// Handshake: the first line is the display name
	if !scanner.Scan() {
		log.Debug().Str("remote", c.RemoteAddr()).Msg("connection closed before handshake")
		_ = c.Close()
		return
	}
	name := strings.TrimSpace(scanner.Text())

	registered, err := s.cfg.SessionService.RegisterPlayer(ctx, &session.RegisterPlayerInput{
		Conn: c,
		Name: name,
	})
	if err != nil {
		log.Info().Err(err).Str("remote", c.RemoteAddr()).Msg("registration rejected")
		_ = c.Close()
		return
	}

	log.Info().
		Str("player", registered.Name).
		Str("remote", c.RemoteAddr()).
		Msg("client connected")

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		msg, err := protocol.ParseClientMessage(line)
		if err != nil {
			// Malformed input never kills the connection
			log.Debug().Err(err).Str("player", registered.Name).Msg("discarding malformed record")
			continue
		}

		s.dispatch(ctx, registered.Name, msg)
	}

	// EOF or read error: the registry broadcasts the departure and closes
	// the connection
	if _, err := s.cfg.SessionService.RemovePlayer(ctx, &session.RemovePlayerInput{Conn: c}); err != nil {
		log.Warn().Err(err).Str("player", registered.Name).Msg("failed to remove player")
		_ = c.Close()
	}
}

// dispatch routes one decoded record. The registered name always wins over
// whatever name the record claims.
func (s *Server) dispatch(ctx context.Context, name string, msg *protocol.ClientMessage) {
	switch msg.Type {
	case protocol.TypeAnswer:
		_, err := s.cfg.SessionService.SubmitAnswer(ctx, &session.SubmitAnswerInput{
			Name:   name,
			Choice: msg.Answer,
		})
		if err != nil {
			log.Warn().Err(err).Str("player", name).Msg("failed to submit answer")
		}
	case protocol.TypeChat:
		_, err := s.cfg.SessionService.RelayChat(ctx, &session.RelayChatInput{
			Name: name,
			Msg:  msg.Msg,
		})
		if err != nil {
			log.Warn().Err(err).Str("player", name).Msg("failed to relay chat")
		}
	}
}
