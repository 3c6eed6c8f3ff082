package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

// marshal serializes a message once for fan-out. A marshal failure is a
// programming error; it is logged and the message dropped.
func marshal(msg any) []byte {
	data, err := protocol.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal broadcast message")
		return nil
	}
	return data
}

// send delivers each payload to every connection in the snapshot. A
// connection that fails to receive is unregistered instead of failing the
// whole broadcast; unregistering may cascade into a session abort.
func (s *service) send(conns []Conn, payloads ...[]byte) {
	var failed []Conn

	for _, conn := range conns {
		for _, payload := range payloads {
			if payload == nil {
				continue
			}
			if err := conn.Send(payload); err != nil {
				log.Warn().Err(err).Msg("dropping connection after failed send")
				failed = append(failed, conn)
				break
			}
		}
	}

	for _, conn := range failed {
		_, _ = s.RemovePlayer(context.Background(), &RemovePlayerInput{Conn: conn})
	}
}

// serverNotice builds a chat record originating from the server
func serverNotice(text string) []byte {
	return marshal(protocol.ChatMessage{
		Type: protocol.TypeChat,
		Name: protocol.ServerName,
		Msg:  text,
	})
}

// RelayChat rebroadcasts a player chat message verbatim to all players.
// The relay holds no state; the lock is taken only to snapshot the
// connection set.
func (s *service) RelayChat(ctx context.Context, input *RelayChatInput) (*RelayChatOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	conns := s.connsLocked()
	s.mu.Unlock()

	s.send(conns, marshal(protocol.ChatMessage{
		Type: protocol.TypeChat,
		Name: input.Name,
		Msg:  input.Msg,
	}))

	return &RelayChatOutput{}, nil
}
