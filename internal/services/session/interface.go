package session

import "context"

// Conn is the transport-side handle for one player connection. Implementations
// must be safe for concurrent use; Send delivers one complete wire record.
type Conn interface {
	// Send writes one serialized record to the connection
	Send(data []byte) error

	// Close closes the underlying connection. Safe to call more than once.
	Close() error
}

// Service defines the interface for quiz session operations
type Service interface {
	// RegisterPlayer adds a player to the session during the join window
	RegisterPlayer(ctx context.Context, input *RegisterPlayerInput) (*RegisterPlayerOutput, error)

	// RemovePlayer removes a player and its score entry
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)

	// SubmitAnswer evaluates a submitted answer for the active question
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// RelayChat rebroadcasts a player chat message to all players
	RelayChat(ctx context.Context, input *RelayChatInput) (*RelayChatOutput, error)

	// GetScoreboard returns the current standings, best score first
	GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error)

	// GetSessionState reports the current state of the session
	GetSessionState(ctx context.Context, input *GetSessionStateInput) (*GetSessionStateOutput, error)
}
