package question

// RepositoryError is a custom error type for question repository errors
type RepositoryError string

// Error implements the error interface
func (e RepositoryError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoQuestions  RepositoryError = "question bank is empty"
	ErrNilConfig    RepositoryError = "config cannot be nil"
	ErrNilRedis     RepositoryError = "redis client cannot be nil"
	ErrNilInput     RepositoryError = "input cannot be nil"
	ErrBadQuestion  RepositoryError = "question must have four options and a correct index in range"
)
