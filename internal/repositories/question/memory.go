package question

import (
	"context"
	"sync"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
)

// defaultQuestions is the built-in question bank, used when no external
// question source is configured.
var defaultQuestions = []models.Question{
	{Prompt: "What is the capital of France?", Options: []string{"Paris", "London", "Berlin", "Madrid"}, CorrectIndex: 0},
	{Prompt: "What is 5 + 7?", Options: []string{"10", "11", "12", "13"}, CorrectIndex: 2},
	{Prompt: "Who wrote 'Hamlet'?", Options: []string{"Shakespeare", "Dickens", "Tolkien", "Rowling"}, CorrectIndex: 0},
	{Prompt: "What is the largest planet in our solar system?", Options: []string{"Earth", "Mars", "Jupiter", "Saturn"}, CorrectIndex: 2},
	{Prompt: "Which country is home to the kangaroo?", Options: []string{"South Africa", "Brazil", "Australia", "New Zealand"}, CorrectIndex: 2},
	{Prompt: "What is the chemical symbol for gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, CorrectIndex: 2},
	{Prompt: "In which year did World War II end?", Options: []string{"1943", "1945", "1947", "1950"}, CorrectIndex: 1},
	{Prompt: "Which of these is not a primary color?", Options: []string{"Red", "Blue", "Green", "Yellow"}, CorrectIndex: 3},
	{Prompt: "What is the capital of Japan?", Options: []string{"Beijing", "Seoul", "Tokyo", "Bangkok"}, CorrectIndex: 2},
	{Prompt: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter", "Saturn"}, CorrectIndex: 1},
}

// DefaultQuestions returns a copy of the built-in question bank, for
// seeding an external question source
func DefaultQuestions() []models.Question {
	questions := make([]models.Question, len(defaultQuestions))
	copy(questions, defaultQuestions)
	return questions
}

// memoryRepository implements the Repository interface in process memory
type memoryRepository struct {
	mu        sync.RWMutex
	questions []models.Question
}

// NewMemory creates an in-memory question repository preloaded with the
// built-in question bank
func NewMemory() *memoryRepository {
	questions := make([]models.Question, len(defaultQuestions))
	copy(questions, defaultQuestions)

	return &memoryRepository{
		questions: questions,
	}
}

// ListQuestions returns a copy of the stored questions
func (r *memoryRepository) ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]models.Question, len(r.questions))
	copy(questions, r.questions)

	return &ListQuestionsOutput{
		Questions: questions,
	}, nil
}

// SeedQuestions replaces the stored question bank
func (r *memoryRepository) SeedQuestions(ctx context.Context, input *SeedQuestionsInput) error {
	if input == nil {
		return ErrNilInput
	}

	if err := validateQuestions(input.Questions); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	questions := make([]models.Question, len(input.Questions))
	copy(questions, input.Questions)
	r.questions = questions

	return nil
}

// validateQuestions rejects questions that do not have exactly four options
// or whose correct index is out of range
func validateQuestions(questions []models.Question) error {
	for _, q := range questions {
		if len(q.Options) != models.OptionCount {
			return ErrBadQuestion
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= models.OptionCount {
			return ErrBadQuestion
		}
	}
	return nil
}
