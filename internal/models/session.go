package models

// SessionStatus represents the current state of a quiz session
type SessionStatus string

const (
	// SessionStatusWaiting indicates the session is waiting for the player quota
	SessionStatusWaiting SessionStatus = "waiting"

	// SessionStatusActive indicates questions are being delivered
	SessionStatusActive SessionStatus = "active"

	// SessionStatusEnded indicates the question bank was exhausted
	SessionStatusEnded SessionStatus = "ended"

	// SessionStatusAborted indicates the player count dropped below quota mid-game
	SessionStatusAborted SessionStatus = "aborted"
)

// IsWaiting returns true if the session has not started yet
func (s SessionStatus) IsWaiting() bool {
	return s == SessionStatusWaiting
}

// IsActive returns true if the session is delivering questions
func (s SessionStatus) IsActive() bool {
	return s == SessionStatusActive
}

// IsFinished returns true once the session has ended or been aborted
func (s SessionStatus) IsFinished() bool {
	return s == SessionStatusEnded || s == SessionStatusAborted
}
