package models

import (
	"time"
)

// Player represents a connected participant in a quiz session
type Player struct {
	// ID is the server-assigned identifier for this connection
	ID string

	// Name is the display name sent in the join handshake.
	// Names are not guaranteed unique across players.
	Name string

	// Score is the player's current score. It may go negative.
	Score int

	// JoinedAt is when the player completed the join handshake
	JoinedAt time.Time
}

// ScoreEntry is one row of the scoreboard snapshot
type ScoreEntry struct {
	// Name is the player's display name
	Name string `json:"name"`

	// Score is the player's score at snapshot time
	Score int `json:"score"`
}
