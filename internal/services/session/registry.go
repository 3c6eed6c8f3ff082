package session

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

// RegisterPlayer adds a player with score 0 and broadcasts a join notice.
// Once the required player count is reached the game starts.
func (s *service) RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.Conn == nil {
		return nil, ErrNilConn
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Unknown"
	}

	s.mu.Lock()

	// Double registration of one connection is a handler bug; keep the
	// existing entry rather than crash
	if existing, ok := s.players[input.Conn]; ok {
		s.mu.Unlock()
		log.Warn().Str("player", existing.Name).Msg("connection registered twice")
		return &RegisterPlayerOutput{
			PlayerID: existing.ID,
			Name:     existing.Name,
		}, nil
	}

	// The join window closes when the game starts
	if !s.status.IsWaiting() {
		s.mu.Unlock()
		return nil, ErrSessionStarted
	}

	player := &models.Player{
		ID:       s.uuid.NewUUID(),
		Name:     name,
		Score:    0,
		JoinedAt: s.clock.Now(),
	}
	s.players[input.Conn] = player

	payloads := []([]byte){serverNotice(name + " joined the game")}

	if len(s.players) == s.cfg.RequiredPlayers {
		s.status = models.SessionStatusActive
		payloads = append(payloads, serverNotice("Game starting!"))
		s.logStateLocked("player quota reached, starting game")
		go s.deliverAfterDelay()
	}

	conns := s.connsLocked()
	s.mu.Unlock()

	log.Info().Str("player", name).Str("player_id", player.ID).Msg("player joined")
	s.send(conns, payloads...)

	return &RegisterPlayerOutput{
		PlayerID: player.ID,
		Name:     name,
	}, nil
}

// RemovePlayer removes a player and its score entry, broadcasts a departure
// notice, and aborts the session if the remaining count drops below the
// required quota mid-game. Removing an unknown connection is a no-op.
func (s *service) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.Conn == nil {
		return nil, ErrNilConn
	}

	s.mu.Lock()

	player, ok := s.players[input.Conn]
	if !ok {
		s.mu.Unlock()
		return &RemovePlayerOutput{Removed: false}, nil
	}

	delete(s.players, input.Conn)

	payloads := []([]byte){serverNotice(player.Name + " left the game")}

	// Quorum violation mid-game aborts the session with no winner,
	// exactly once
	if s.status.IsActive() && len(s.players) < s.cfg.RequiredPlayers {
		s.status = models.SessionStatusAborted
		s.windowOpen = false
		s.cancelDeadlineLocked()
		payloads = append(payloads, marshal(protocol.EndMessage{
			Type:   protocol.TypeEnd,
			Winner: protocol.NoWinnerAborted,
		}))
		s.logStateLocked("player count below quota, aborting session")
	}

	conns := s.connsLocked()
	s.mu.Unlock()

	log.Info().Str("player", player.Name).Msg("player left")
	s.send(conns, payloads...)

	// Registry removal is the one place the server closes a connection
	_ = input.Conn.Close()

	return &RemovePlayerOutput{
		Removed: true,
		Name:    player.Name,
	}, nil
}

// GetScoreboard returns the current standings sorted by score descending.
// Tie order follows map iteration and is not specified further.
func (s *service) GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error) {
	s.mu.Lock()
	entries := make([]models.ScoreEntry, 0, len(s.players))
	for _, p := range s.players {
		entries = append(entries, models.ScoreEntry{
			Name:  p.Name,
			Score: p.Score,
		})
	}
	s.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return &GetScoreboardOutput{
		Entries: entries,
	}, nil
}
