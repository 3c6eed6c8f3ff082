package question

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question Repository

// Repository defines the interface for question bank storage
type Repository interface {
	// ListQuestions returns every question in the bank
	ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error)

	// SeedQuestions replaces the stored question bank
	SeedQuestions(ctx context.Context, input *SeedQuestionsInput) error
}
