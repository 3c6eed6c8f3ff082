package session

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
)

// armDeadlineLocked arms the per-question deadline. The generation counter
// is the cancellation token: a timer that was already firing when the
// window closed sees a stale generation and does nothing.
func (s *service) armDeadlineLocked() {
	s.deadlineGen++
	d := &deadline{
		timer: s.clock.NewTimer(s.cfg.QuestionTimeout),
		quit:  make(chan struct{}),
		gen:   s.deadlineGen,
	}
	s.deadline = d

	go func() {
		select {
		case <-d.timer.Chan():
			s.onDeadline(d.gen)
		case <-d.quit:
			stopAndDrainTimer(d.timer)
		}
	}()
}

// cancelDeadlineLocked cancels the pending deadline, if any. Must be called
// whenever the window closes through the answer path so the timer cannot
// fire against a later question's state.
func (s *service) cancelDeadlineLocked() {
	if s.deadline == nil {
		return
	}
	close(s.deadline.quit)
	s.deadline = nil
	s.deadlineGen++
}

// onDeadline runs when a question deadline fires. If the window is already
// closed (an answer arrived first, or this firing raced with cancellation)
// it is a no-op. Otherwise every registered player is penalized one point
// and the session advances.
func (s *service) onDeadline(gen uint64) {
	s.mu.Lock()

	if gen != s.deadlineGen || !s.windowOpen || !s.status.IsActive() {
		s.mu.Unlock()
		return
	}

	// Global penalty: every registered player loses a point, including
	// any player whose correct answer simply arrived too late
	for _, p := range s.players {
		p.Score--
	}

	result := marshal(protocol.ResultMessage{
		Type:     protocol.TypeResult,
		Timeout:  true,
		MoveNext: true,
	})
	scores := marshal(protocol.ScoreMessage{
		Type:   protocol.TypeScore,
		Scores: s.scoresLocked(),
	})

	s.deadline = nil
	s.advanceLocked()

	conns := s.connsLocked()
	questionNum := s.current
	s.mu.Unlock()

	log.Info().Int("question_num", questionNum).Msg("question timed out, all players penalized")
	s.send(conns, result, scores)
}

// stopAndDrainTimer stops a timer and drains its channel so a concurrent
// fire cannot leave a value behind
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
