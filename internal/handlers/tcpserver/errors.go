package tcpserver

// ServerError is a tcp server error
type ServerError string

// Error returns the error message
func (e ServerError) Error() string {
	return string(e)
}

const (
	// ErrNilConfig is returned when a nil config is provided
	ErrNilConfig = ServerError("config cannot be nil")

	// ErrNilSessionService is returned when the config has no session service
	ErrNilSessionService = ServerError("session service cannot be nil")

	// ErrAlreadyStarted is returned when Start is called twice
	ErrAlreadyStarted = ServerError("server already started")
)
