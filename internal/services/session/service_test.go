package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	uuidMocks "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/common/uuid/mocks"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/protocol"
	questionRepo "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question"
	questionMocks "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question/mocks"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeConn records every payload sent to it. Safe for concurrent use.
type fakeConn struct {
	mu       sync.Mutex
	payloads [][]byte
	closed   bool
	failSend bool
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return fmt.Errorf("send failed")
	}
	payload := make([]byte, len(data))
	copy(payload, data)
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// messages decodes everything received so far
func (c *fakeConn) messages() []*protocol.ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := make([]*protocol.ServerMessage, 0, len(c.payloads))
	for _, payload := range c.payloads {
		msg, err := protocol.ParseServerMessage(payload[:len(payload)-1])
		if err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func (c *fakeConn) messagesOfType(kind string) []*protocol.ServerMessage {
	var out []*protocol.ServerMessage
	for _, msg := range c.messages() {
		if msg.Type == kind {
			out = append(out, msg)
		}
	}
	return out
}

func (c *fakeConn) questionNumbered(num int) *protocol.ServerMessage {
	for _, msg := range c.messagesOfType(protocol.TypeQuestion) {
		if msg.QuestionNum == num {
			return msg
		}
	}
	return nil
}

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockRepo *questionMocks.MockRepository
	ctx      context.Context

	fixtures []models.Question
	// correct option index per prompt, since delivery order is shuffled
	correctByPrompt map[string]int
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = questionMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.fixtures = []models.Question{
		{
			Prompt:       "What is the capital of France?",
			Options:      []string{"Paris", "London", "Berlin", "Madrid"},
			CorrectIndex: 0,
		},
		{
			Prompt:       "What is 5 + 7?",
			Options:      []string{"10", "11", "12", "13"},
			CorrectIndex: 2,
		},
		{
			Prompt:       "In which year did World War II end?",
			Options:      []string{"1943", "1945", "1947", "1950"},
			CorrectIndex: 1,
		},
	}
	s.correctByPrompt = make(map[string]int)
	for _, q := range s.fixtures {
		s.correctByPrompt[q.Prompt] = q.CorrectIndex
	}
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// newService builds a service over the fixture bank with fast timings
func (s *SessionServiceTestSuite) newService(overrides func(cfg *Config)) *service {
	s.mockRepo.EXPECT().
		ListQuestions(gomock.Any(), &questionRepo.ListQuestionsInput{}).
		Return(&questionRepo.ListQuestionsOutput{Questions: s.fixtures}, nil)

	cfg := &Config{
		QuestionRepo:    s.mockRepo,
		RequiredPlayers: 2,
		QuestionTimeout: 500 * time.Millisecond,
		PacingDelay:     20 * time.Millisecond,
		ShuffleSeed:     1,
	}
	if overrides != nil {
		overrides(cfg)
	}

	svc, err := New(s.ctx, cfg)
	s.Require().NoError(err)
	return svc
}

// startPair registers Ann and Bo, starting the game, and waits for the
// first question to reach both
func (s *SessionServiceTestSuite) startPair(svc *service) (*fakeConn, *fakeConn) {
	ann := &fakeConn{}
	bo := &fakeConn{}

	_, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Ann"})
	s.Require().NoError(err)
	_, err = svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: bo, Name: "Bo"})
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return ann.questionNumbered(1) != nil && bo.questionNumbered(1) != nil
	}, waitFor, tick, "first question was not delivered")

	return ann, bo
}

func (s *SessionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(s.ctx, nil)
	s.Require().Error(err)
	s.Equal(ErrNilConfig, err)

	_, err = New(s.ctx, &Config{})
	s.Require().Error(err)
	s.Equal(ErrNilQuestionRepo, err)
}

func (s *SessionServiceTestSuite) TestQuorumStartsGame() {
	svc := s.newService(nil)

	ann := &fakeConn{}
	_, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Ann"})
	s.Require().NoError(err)

	// One player is below quota; nothing starts
	state, err := svc.GetSessionState(s.ctx, &GetSessionStateInput{})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusWaiting, state.Status)
	s.Equal(1, state.PlayerCount)

	bo := &fakeConn{}
	_, err = svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: bo, Name: "Bo"})
	s.Require().NoError(err)

	state, err = svc.GetSessionState(s.ctx, &GetSessionStateInput{})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusActive, state.Status)

	// Both players hear the join notices and the start notice
	var startNotices int
	for _, msg := range bo.messagesOfType(protocol.TypeChat) {
		s.Equal(protocol.ServerName, msg.Name)
		if msg.Msg == "Game starting!" {
			startNotices++
		}
	}
	s.Equal(1, startNotices)

	s.Require().Eventually(func() bool {
		return ann.questionNumbered(1) != nil
	}, waitFor, tick)

	q := ann.questionNumbered(1)
	s.Len(q.Options, models.OptionCount)
	s.Equal(3, q.TotalQuestions)
	s.NotZero(q.TimeLimit)
}

func (s *SessionServiceTestSuite) TestRegisterAfterStartRejected() {
	svc := s.newService(nil)
	s.startPair(svc)

	late := &fakeConn{}
	_, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: late, Name: "Cyn"})
	s.Require().Error(err)
	s.Equal(ErrSessionStarted, err)
}

func (s *SessionServiceTestSuite) TestRegisterSameConnectionTwice() {
	svc := s.newService(nil)

	ann := &fakeConn{}
	first, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Ann"})
	s.Require().NoError(err)

	// Precondition violation is logged, not fatal; the original entry wins
	second, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Imposter"})
	s.Require().NoError(err)
	s.Equal(first.PlayerID, second.PlayerID)
	s.Equal("Ann", second.Name)

	state, err := svc.GetSessionState(s.ctx, &GetSessionStateInput{})
	s.Require().NoError(err)
	s.Equal(1, state.PlayerCount)
}

func (s *SessionServiceTestSuite) TestRegisterEmptyName() {
	svc := s.newService(nil)

	conn := &fakeConn{}
	output, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: conn, Name: "  "})
	s.Require().NoError(err)
	s.Equal("Unknown", output.Name)
}

func (s *SessionServiceTestSuite) TestRegisterUsesUUIDGenerator() {
	mockUUID := uuidMocks.NewMockUUID(s.mockCtrl)
	mockUUID.EXPECT().NewUUID().Return("fixed-player-id")

	svc := s.newService(func(cfg *Config) {
		cfg.UUIDGenerator = mockUUID
	})

	output, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: &fakeConn{}, Name: "Ann"})
	s.Require().NoError(err)
	s.Equal("fixed-player-id", output.PlayerID)
}

// Scenario A: a correct answer scores the answering player, broadcasts the
// result and scores, and the next question follows after the pacing delay.
func (s *SessionServiceTestSuite) TestAnswerScoresAndAdvances() {
	svc := s.newService(nil)
	ann, bo := s.startPair(svc)

	q := ann.questionNumbered(1)
	output, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Name:   "Ann",
		Choice: s.correctByPrompt[q.Question],
	})
	s.Require().NoError(err)
	s.True(output.Accepted)
	s.True(output.Correct)

	s.Require().Eventually(func() bool {
		return len(bo.messagesOfType(protocol.TypeResult)) > 0
	}, waitFor, tick)

	result := bo.messagesOfType(protocol.TypeResult)[0]
	s.Equal("Ann", result.Player)
	s.Require().NotNil(result.Correct)
	s.True(*result.Correct)
	s.False(result.Timeout)
	s.True(result.MoveNext)

	scores := bo.messagesOfType(protocol.TypeScore)[0]
	s.Equal(map[string]int{"Ann": 1, "Bo": 0}, scores.Scores)

	s.Require().Eventually(func() bool {
		return bo.questionNumbered(2) != nil
	}, waitFor, tick, "next question was not delivered after the pacing delay")
}

func (s *SessionServiceTestSuite) TestIncorrectAnswerPenalizesAnswerer() {
	svc := s.newService(nil)
	ann, _ := s.startPair(svc)

	q := ann.questionNumbered(1)
	wrong := (s.correctByPrompt[q.Question] + 1) % models.OptionCount

	output, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{Name: "Bo", Choice: wrong})
	s.Require().NoError(err)
	s.True(output.Accepted)
	s.False(output.Correct)

	s.Require().Eventually(func() bool {
		return len(ann.messagesOfType(protocol.TypeScore)) > 0
	}, waitFor, tick)
	scores := ann.messagesOfType(protocol.TypeScore)[0]
	s.Equal(map[string]int{"Ann": 0, "Bo": -1}, scores.Scores)
}

// Scenario B: nobody answers in time; every registered player is penalized
// and the next question is still delivered.
func (s *SessionServiceTestSuite) TestTimeoutPenalizesEveryPlayer() {
	svc := s.newService(func(cfg *Config) {
		cfg.QuestionTimeout = 60 * time.Millisecond
	})
	ann, bo := s.startPair(svc)

	s.Require().Eventually(func() bool {
		return len(ann.messagesOfType(protocol.TypeResult)) > 0
	}, waitFor, tick, "deadline did not fire")

	result := ann.messagesOfType(protocol.TypeResult)[0]
	s.True(result.Timeout)
	s.True(result.MoveNext)
	s.Empty(result.Player)
	s.Nil(result.Correct)

	scores := ann.messagesOfType(protocol.TypeScore)[0]
	s.Equal(map[string]int{"Ann": -1, "Bo": -1}, scores.Scores)

	s.Require().Eventually(func() bool {
		return bo.questionNumbered(2) != nil
	}, waitFor, tick)
}

// Scenario C: the second answer for an already-resolved question is
// silently discarded.
func (s *SessionServiceTestSuite) TestSecondAnswerDiscarded() {
	svc := s.newService(nil)
	ann, _ := s.startPair(svc)

	q := ann.questionNumbered(1)
	correct := s.correctByPrompt[q.Question]

	first, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{Name: "Ann", Choice: correct})
	s.Require().NoError(err)
	s.True(first.Accepted)

	second, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{Name: "Bo", Choice: correct})
	s.Require().NoError(err)
	s.False(second.Accepted)

	// Bo's discarded answer produced no result and no score change
	s.Require().Eventually(func() bool {
		return len(ann.messagesOfType(protocol.TypeScore)) > 0
	}, waitFor, tick)
	s.Len(ann.messagesOfType(protocol.TypeResult), 1)
	s.Equal(map[string]int{"Ann": 1, "Bo": 0}, ann.messagesOfType(protocol.TypeScore)[0].Scores)
}

func (s *SessionServiceTestSuite) TestLateAnswerAfterTimeoutDiscarded() {
	svc := s.newService(func(cfg *Config) {
		cfg.QuestionTimeout = 60 * time.Millisecond
		// Long pacing keeps the window closed while we submit late
		cfg.PacingDelay = 500 * time.Millisecond
	})
	ann, _ := s.startPair(svc)

	s.Require().Eventually(func() bool {
		return len(ann.messagesOfType(protocol.TypeResult)) > 0
	}, waitFor, tick)

	q := ann.questionNumbered(1)
	output, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Name:   "Ann",
		Choice: s.correctByPrompt[q.Question],
	})
	s.Require().NoError(err)
	s.False(output.Accepted)
}

// A cancelled deadline must not fire against a later question's state:
// exactly one of {answer, timeout} resolves each question.
func (s *SessionServiceTestSuite) TestAnswerCancelsDeadline() {
	svc := s.newService(func(cfg *Config) {
		cfg.QuestionTimeout = 80 * time.Millisecond
		cfg.PacingDelay = 200 * time.Millisecond
	})
	ann, _ := s.startPair(svc)

	q := ann.questionNumbered(1)
	_, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Name:   "Ann",
		Choice: s.correctByPrompt[q.Question],
	})
	s.Require().NoError(err)

	// Wait past the original deadline; the cancelled timer must not
	// produce a timeout result
	time.Sleep(150 * time.Millisecond)

	for _, result := range ann.messagesOfType(protocol.TypeResult) {
		s.False(result.Timeout)
	}
	s.Len(ann.messagesOfType(protocol.TypeResult), 1)
}

// Scenario D: a disconnect that drops the player count below quota aborts
// the session with a single no-winner end event and no further questions.
func (s *SessionServiceTestSuite) TestDisconnectBelowQuorumAborts() {
	svc := s.newService(nil)
	ann, bo := s.startPair(svc)

	output, err := svc.RemovePlayer(s.ctx, &RemovePlayerInput{Conn: ann})
	s.Require().NoError(err)
	s.True(output.Removed)
	s.Equal("Ann", output.Name)
	s.True(ann.isClosed())

	s.Require().Eventually(func() bool {
		return len(bo.messagesOfType(protocol.TypeEnd)) > 0
	}, waitFor, tick)

	ends := bo.messagesOfType(protocol.TypeEnd)
	s.Len(ends, 1)
	s.Equal(protocol.NoWinnerAborted, ends[0].Winner)

	state, err := svc.GetSessionState(s.ctx, &GetSessionStateInput{})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusAborted, state.Status)

	// No further questions or timeout results after the abort
	time.Sleep(600 * time.Millisecond)
	s.Nil(bo.questionNumbered(2))
	for _, result := range bo.messagesOfType(protocol.TypeResult) {
		s.False(result.Timeout)
	}
}

func (s *SessionServiceTestSuite) TestRemoveUnknownConnection() {
	svc := s.newService(nil)

	output, err := svc.RemovePlayer(s.ctx, &RemovePlayerInput{Conn: &fakeConn{}})
	s.Require().NoError(err)
	s.False(output.Removed)
}

func (s *SessionServiceTestSuite) TestGameEndsWithWinner() {
	s.fixtures = s.fixtures[:1]

	svc := s.newService(nil)
	ann, bo := s.startPair(svc)

	q := ann.questionNumbered(1)
	_, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Name:   "Ann",
		Choice: s.correctByPrompt[q.Question],
	})
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return len(bo.messagesOfType(protocol.TypeEnd)) > 0
	}, waitFor, tick, "end event was not delivered")

	s.Equal("Ann", bo.messagesOfType(protocol.TypeEnd)[0].Winner)

	state, err := svc.GetSessionState(s.ctx, &GetSessionStateInput{})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusEnded, state.Status)
}

func (s *SessionServiceTestSuite) TestWinnerComputation() {
	svc := s.newService(nil)

	// Empty score mapping reports the no-winner sentinel
	s.Equal(protocol.NoWinner, svc.winnerLocked())

	svc.players[&fakeConn{}] = &models.Player{Name: "Ann", Score: -2}
	svc.players[&fakeConn{}] = &models.Player{Name: "Bo", Score: 3}
	svc.players[&fakeConn{}] = &models.Player{Name: "Cyn", Score: 1}
	s.Equal("Bo", svc.winnerLocked())
}

func (s *SessionServiceTestSuite) TestScoreboardSortedByScore() {
	svc := s.newService(nil)
	svc.players[&fakeConn{}] = &models.Player{Name: "Ann", Score: -1}
	svc.players[&fakeConn{}] = &models.Player{Name: "Bo", Score: 2}
	svc.players[&fakeConn{}] = &models.Player{Name: "Cyn", Score: 0}

	output, err := svc.GetScoreboard(s.ctx, &GetScoreboardInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 3)
	s.Equal(models.ScoreEntry{Name: "Bo", Score: 2}, output.Entries[0])
	s.Equal(models.ScoreEntry{Name: "Cyn", Score: 0}, output.Entries[1])
	s.Equal(models.ScoreEntry{Name: "Ann", Score: -1}, output.Entries[2])
}

func (s *SessionServiceTestSuite) TestChatRelayedVerbatim() {
	svc := s.newService(nil)
	ann, bo := s.startPair(svc)

	_, err := svc.RelayChat(s.ctx, &RelayChatInput{Name: "Bo", Msg: "good luck!"})
	s.Require().NoError(err)

	for _, conn := range []*fakeConn{ann, bo} {
		s.Require().Eventually(func() bool {
			for _, msg := range conn.messagesOfType(protocol.TypeChat) {
				if msg.Name == "Bo" && msg.Msg == "good luck!" {
					return true
				}
			}
			return false
		}, waitFor, tick)
	}
}

func (s *SessionServiceTestSuite) TestFailedSendUnregistersConnection() {
	svc := s.newService(func(cfg *Config) {
		cfg.RequiredPlayers = 3
	})

	ann := &fakeConn{}
	_, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Ann"})
	s.Require().NoError(err)

	dead := &fakeConn{failSend: true}
	_, err = svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: dead, Name: "Bo"})
	s.Require().NoError(err)

	// The join-notice broadcast fails for the dead connection, which
	// unregisters it
	s.Require().Eventually(func() bool {
		state, err := svc.GetSessionState(s.ctx, &GetSessionStateInput{})
		s.Require().NoError(err)
		return state.PlayerCount == 1
	}, waitFor, tick)
	s.True(dead.isClosed())
}

// Concurrent submissions for one question: exactly one is scored.
func (s *SessionServiceTestSuite) TestConcurrentAnswersScoreOnce() {
	svc := s.newService(nil)
	ann, _ := s.startPair(svc)

	q := ann.questionNumbered(1)
	correct := s.correctByPrompt[q.Question]

	var wg sync.WaitGroup
	var accepted int32
	var mu sync.Mutex
	for _, name := range []string{"Ann", "Bo"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			output, err := svc.SubmitAnswer(s.ctx, &SubmitAnswerInput{Name: name, Choice: correct})
			s.NoError(err)
			if output.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()

	s.Equal(int32(1), accepted)
	s.Len(ann.messagesOfType(protocol.TypeResult), 1)
}

// The deadline and pacing run on the injected clock.
func (s *SessionServiceTestSuite) TestDeadlineWithFakeClock() {
	fc := clockwork.NewFakeClock()
	svc := s.newService(func(cfg *Config) {
		cfg.Clock = fc
		cfg.QuestionTimeout = 20 * time.Second
		cfg.PacingDelay = time.Second
	})

	ann := &fakeConn{}
	bo := &fakeConn{}
	_, err := svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: ann, Name: "Ann"})
	s.Require().NoError(err)
	_, err = svc.RegisterPlayer(s.ctx, &RegisterPlayerInput{Conn: bo, Name: "Bo"})
	s.Require().NoError(err)

	// Pacing delay before the first question
	fc.BlockUntil(1)
	fc.Advance(time.Second)

	s.Require().Eventually(func() bool {
		return ann.questionNumbered(1) != nil
	}, waitFor, tick)
	s.Equal(20, ann.questionNumbered(1).TimeLimit)

	// No answer arrives; advance past the deadline
	fc.BlockUntil(1)
	fc.Advance(20 * time.Second)

	s.Require().Eventually(func() bool {
		return len(ann.messagesOfType(protocol.TypeResult)) > 0
	}, waitFor, tick)
	s.True(ann.messagesOfType(protocol.TypeResult)[0].Timeout)
}
