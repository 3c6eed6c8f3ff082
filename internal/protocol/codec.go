package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is returned for records whose type tag is not recognized
var ErrUnknownType = errors.New("unknown message type")

// Marshal serializes a message as a single newline-terminated JSON record,
// ready to be written to a connection.
func Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseClientMessage decodes one inbound record. The line must not include
// the trailing newline.
func ParseClientMessage(line []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse client message: %w", err)
	}

	switch msg.Type {
	case TypeAnswer, TypeChat:
		return &msg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
}

// ParseServerMessage decodes one server-to-client record into the union
// form. Used by clients reading the event stream.
func ParseServerMessage(line []byte) (*ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse server message: %w", err)
	}

	switch msg.Type {
	case TypeQuestion, TypeResult, TypeScore, TypeEnd, TypeChat:
		return &msg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
}
