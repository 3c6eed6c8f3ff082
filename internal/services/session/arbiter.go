package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

// SubmitAnswer evaluates a submitted answer against the active question.
// Only the first answer received for a question is scored: it closes the
// window and triggers advancement, and every later submission for that
// question is silently discarded. Answers arriving after a timeout closed
// the window are discarded the same way.
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()

	if !s.windowOpen || !s.status.IsActive() {
		s.mu.Unlock()
		log.Debug().Str("player", input.Name).Msg("answer discarded, window closed")
		return &SubmitAnswerOutput{Accepted: false}, nil
	}

	player := s.findPlayerLocked(input.Name)
	if player == nil {
		s.mu.Unlock()
		log.Warn().Str("player", input.Name).Msg("answer from unregistered name discarded")
		return &SubmitAnswerOutput{Accepted: false}, nil
	}

	correct := s.questions[s.current].IsCorrect(input.Choice)
	if correct {
		player.Score++
	} else {
		player.Score--
	}

	result := marshal(protocol.ResultMessage{
		Type:     protocol.TypeResult,
		Player:   player.Name,
		Correct:  &correct,
		MoveNext: true,
	})
	scores := marshal(protocol.ScoreMessage{
		Type:   protocol.TypeScore,
		Scores: s.scoresLocked(),
	})

	s.advanceLocked()

	conns := s.connsLocked()
	s.mu.Unlock()

	log.Info().Str("player", player.Name).Bool("correct", correct).Msg("answer scored")
	s.send(conns, result, scores)

	return &SubmitAnswerOutput{
		Accepted: true,
		Correct:  correct,
	}, nil
}
