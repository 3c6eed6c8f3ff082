package models

// OptionCount is the number of answer options every question carries
const OptionCount = 4

// Question is a single multiple-choice question. Questions are loaded
// once at session startup and never mutated afterwards.
type Question struct {
	// Prompt is the question text shown to players
	Prompt string `json:"question"`

	// Options holds the four answer texts, in display order
	Options []string `json:"options"`

	// CorrectIndex is the index into Options of the correct answer (0-3)
	CorrectIndex int `json:"answer"`
}

// IsCorrect reports whether the chosen option index is the correct answer
func (q *Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}
