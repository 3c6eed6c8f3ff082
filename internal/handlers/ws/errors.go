package ws

// ServerError is a websocket server error
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

	// ErrClientClosed is returned when sending to a closed client
	ErrClientClosed = ServerError("client closed")

	// ErrSendBufferFull is returned when a client cannot keep up with the
	// event stream
	ErrSendBufferFull = ServerError("client send buffer full")
)
