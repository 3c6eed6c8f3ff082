package session

import (
	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

// advanceLocked is the single chokepoint for question progression, reached
// by both the answer path and the timeout path. It closes the answer
// window, cancels any pending deadline, and schedules the next delivery
// after the pacing delay. Callers must hold the lock and must have checked
// the window-open flag before scoring, which is what prevents a
// double-advance when an answer and the deadline race.
func (s *service) advanceLocked() {
	s.windowOpen = false
	s.cancelDeadlineLocked()
	s.current++
	go s.deliverAfterDelay()
}

// deliverAfterDelay waits out the pacing delay, then delivers the current
// question. The answer window stays closed for the whole delay, so late
// answers for the previous question are discarded.
func (s *service) deliverAfterDelay() {
	<-s.clock.After(s.cfg.PacingDelay)
	s.deliverCurrentQuestion()
}

// deliverCurrentQuestion broadcasts the question at the current index and
// opens its answer window, or ends the session when the bank is exhausted.
func (s *service) deliverCurrentQuestion() {
	s.mu.Lock()

	// The session may have been aborted during the pacing delay
	if !s.status.IsActive() {
		s.mu.Unlock()
		return
	}

	if s.current >= len(s.questions) {
		s.status = models.SessionStatusEnded
		winner := s.winnerLocked()
		conns := s.connsLocked()
		s.logStateLocked("question bank exhausted, ending session")
		s.mu.Unlock()

		log.Info().Str("winner", winner).Msg("game over")
		s.send(conns, marshal(protocol.EndMessage{
			Type:   protocol.TypeEnd,
			Winner: winner,
		}))
		return
	}

	q := s.questions[s.current]
	payload := marshal(protocol.QuestionMessage{
		Type:           protocol.TypeQuestion,
		Question:       q.Prompt,
		Options:        q.Options,
		QuestionNum:    s.current + 1,
		TotalQuestions: len(s.questions),
		TimeLimit:      int(s.cfg.QuestionTimeout.Seconds()),
	})

	s.windowOpen = true
	s.armDeadlineLocked()

	conns := s.connsLocked()
	questionNum := s.current + 1
	s.mu.Unlock()

	log.Info().Int("question_num", questionNum).Msg("question delivered")
	s.send(conns, payload)
}

// winnerLocked computes the end-of-game winner: the player with the maximum
// score, or the no-winner sentinel when the score mapping is empty.
func (s *service) winnerLocked() string {
	winner := ""
	best := 0
	first := true
	for _, p := range s.players {
		if first || p.Score > best {
			winner = p.Name
			best = p.Score
			first = false
		}
	}

	if first {
		return protocol.NoWinner
	}
	return winner
}
