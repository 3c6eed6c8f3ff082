package session

import (
	"time"

	"github.com/jonboulle/clockwork"

	commonuuid "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/common/uuid"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	questionRepo "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question"
)

// Config holds configuration for the session service
type Config struct {
	// QuestionRepo is the question bank source, read once at construction
	QuestionRepo questionRepo.Repository

	// UUIDGenerator assigns player IDs. Defaults to the standard generator.
	UUIDGenerator commonuuid.UUID

	// Clock drives question deadlines and pacing delays. Defaults to the
	// real clock; tests inject a fake.
	Clock clockwork.Clock

	// RequiredPlayers is the join quota that starts the game. Defaults to 2.
	RequiredPlayers int

	// QuestionTimeout is the per-question answer window. Defaults to 20s.
	QuestionTimeout time.Duration

	// PacingDelay is the pause between a resolved question and the next
	// delivery, giving clients time to render the result. Defaults to 1s.
	PacingDelay time.Duration

	// ShuffleSeed fixes the question order when non-zero. Zero seeds from
	// the clock.
	ShuffleSeed int64
}

// RegisterPlayerInput is the input for RegisterPlayer
type RegisterPlayerInput struct {
	// Conn is the player's connection handle
	Conn Conn

	// Name is the display name from the join handshake. May be empty.
	Name string
}

// RegisterPlayerOutput is the output for RegisterPlayer
type RegisterPlayerOutput struct {
	// PlayerID is the server-assigned identifier
	PlayerID string

	// Name is the display name actually registered
	Name string
}

// RemovePlayerInput is the input for RemovePlayer
type RemovePlayerInput struct {
	// Conn identifies the player to remove
	Conn Conn
}

// RemovePlayerOutput is the output for RemovePlayer
type RemovePlayerOutput struct {
	// Removed is false if the connection was not registered
	Removed bool

	// Name is the display name of the removed player
	Name string
}

// SubmitAnswerInput is the input for SubmitAnswer
type SubmitAnswerInput struct {
	// Name is the submitting player's display name
	Name string

	// Choice is the chosen option index
	Choice int
}

// SubmitAnswerOutput is the output for SubmitAnswer
type SubmitAnswerOutput struct {
	// Accepted is false when the answer window was closed and the
	// submission was discarded
	Accepted bool

	// Correct is only meaningful when Accepted is true
	Correct bool
}

// RelayChatInput is the input for RelayChat
type RelayChatInput struct {
	// Name is the sending player's display name
	Name string

	// Msg is the chat text, relayed verbatim
	Msg string
}

// RelayChatOutput is the output for RelayChat
type RelayChatOutput struct{}

// GetScoreboardInput is the input for GetScoreboard
type GetScoreboardInput struct{}

// GetScoreboardOutput is the output for GetScoreboard
type GetScoreboardOutput struct {
	// Entries is sorted by score descending; ties keep iteration order
	Entries []models.ScoreEntry
}

// GetSessionStateInput is the input for GetSessionState
type GetSessionStateInput struct{}

// GetSessionStateOutput is the output for GetSessionState
type GetSessionStateOutput struct {
	// Status is the session's lifecycle state
	Status models.SessionStatus

	// QuestionNumber is the 1-based number of the active question, or 0
	// before the first delivery
	QuestionNumber int

	// TotalQuestions is the question bank length
	TotalQuestions int

	// PlayerCount is the number of registered connections
	PlayerCount int

	// WindowOpen reports whether the active question accepts answers
	WindowOpen bool
}
