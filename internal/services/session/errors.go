package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       SessionError = "config cannot be nil"
	ErrNilQuestionRepo SessionError = "question repository cannot be nil"
	ErrNilInput        SessionError = "input cannot be nil"
	ErrNilConn         SessionError = "connection cannot be nil"
	ErrSessionStarted  SessionError = "session already started"
)
