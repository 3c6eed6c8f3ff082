package question

import (
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
)

// ListQuestionsInput is the input for ListQuestions
type ListQuestionsInput struct{}

// ListQuestionsOutput is the output for ListQuestions
type ListQuestionsOutput struct {
	// Questions holds the stored questions in storage order
	Questions []models.Question
}

// SeedQuestionsInput is the input for SeedQuestions
type SeedQuestionsInput struct {
	// Questions replaces the current question bank
	Questions []models.Question
}
