package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	commonuuid "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/common/uuid"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
	questionRepo "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question"
)

// deadline is one armed question timeout. The generation counter makes a
// firing that raced with cancellation a no-op.
type deadline struct {
	timer clockwork.Timer
	quit  chan struct{}
	gen   uint64
}

// service implements the Service interface. A single mutex guards all
// mutable session state: the connection registry, scores, the question
// index, and the answer-window flag. Network writes happen outside the
// lock, over a snapshot of the connection set.
type service struct {
	cfg   *Config
	uuid  commonuuid.UUID
	clock clockwork.Clock

	mu          sync.Mutex
	status      models.SessionStatus
	players     map[Conn]*models.Player
	questions   []models.Question
	current     int
	windowOpen  bool
	deadline    *deadline
	deadlineGen uint64
}

// New creates a session service, loading and shuffling the question bank
// once. The session is constructible, not process-global, so independent
// games can run side by side.
func New(ctx context.Context, cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.QuestionRepo == nil {
		return nil, ErrNilQuestionRepo
	}

	// Set default values if not provided
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = commonuuid.New()
	}

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	if cfg.RequiredPlayers <= 0 {
		cfg.RequiredPlayers = 2
	}

	if cfg.QuestionTimeout <= 0 {
		cfg.QuestionTimeout = 20 * time.Second
	}

	if cfg.PacingDelay <= 0 {
		cfg.PacingDelay = time.Second
	}

	output, err := cfg.QuestionRepo.ListQuestions(ctx, &questionRepo.ListQuestionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}

	questions := make([]models.Question, len(output.Questions))
	copy(questions, output.Questions)

	// Randomize the question order once; it is fixed for the session's
	// lifetime
	seed := cfg.ShuffleSeed
	if seed == 0 {
		seed = cfg.Clock.Now().UnixNano()
	}
	random := rand.New(rand.NewSource(seed))
	random.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return &service{
		cfg:       cfg,
		uuid:      cfg.UUIDGenerator,
		clock:     cfg.Clock,
		status:    models.SessionStatusWaiting,
		players:   make(map[Conn]*models.Player),
		questions: questions,
	}, nil
}

// GetSessionState reports the current state of the session
func (s *service) GetSessionState(ctx context.Context, input *GetSessionStateInput) (*GetSessionStateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questionNumber := 0
	if !s.status.IsWaiting() {
		questionNumber = s.current + 1
		if questionNumber > len(s.questions) {
			questionNumber = len(s.questions)
		}
	}

	return &GetSessionStateOutput{
		Status:         s.status,
		QuestionNumber: questionNumber,
		TotalQuestions: len(s.questions),
		PlayerCount:    len(s.players),
		WindowOpen:     s.windowOpen,
	}, nil
}

// connsLocked snapshots the registered connections. The snapshot decouples
// broadcast iteration from registry mutation by other workers.
func (s *service) connsLocked() []Conn {
	conns := make([]Conn, 0, len(s.players))
	for conn := range s.players {
		conns = append(conns, conn)
	}
	return conns
}

// scoresLocked builds the wire score mapping, keyed by display name
func (s *service) scoresLocked() map[string]int {
	scores := make(map[string]int, len(s.players))
	for _, p := range s.players {
		scores[p.Name] = p.Score
	}
	return scores
}

// findPlayerLocked returns the first registered player with the given name
func (s *service) findPlayerLocked(name string) *models.Player {
	for _, p := range s.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// logStateLocked emits a debug line for state transitions
func (s *service) logStateLocked(msg string) {
	log.Debug().
		Str("status", string(s.status)).
		Int("question_index", s.current).
		Bool("window_open", s.windowOpen).
		Int("players", len(s.players)).
		Msg(msg)
}
