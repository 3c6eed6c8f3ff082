package question

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/models"
)

const (
	// Key for the stored question bank
	questionBankKey = "quiz:questions"
)

// Config holds configuration for the Redis question repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed question repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedis
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// ListQuestions retrieves the stored question bank from Redis
func (r *redisRepository) ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	entries, err := r.client.LRange(ctx, questionBankKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]models.Question, 0, len(entries))
	for _, entry := range entries {
		var q models.Question
		if err := json.Unmarshal([]byte(entry), &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question: %w", err)
		}
		questions = append(questions, q)
	}

	return &ListQuestionsOutput{
		Questions: questions,
	}, nil
}

// SeedQuestions replaces the stored question bank in Redis
func (r *redisRepository) SeedQuestions(ctx context.Context, input *SeedQuestionsInput) error {
	if input == nil {
		return ErrNilInput
	}

	if err := validateQuestions(input.Questions); err != nil {
		return err
	}

	// Marshal every question up front so a bad record can't leave the
	// bank half-replaced
	entries := make([]any, 0, len(input.Questions))
	for _, q := range input.Questions {
		data, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("failed to marshal question: %w", err)
		}
		entries = append(entries, data)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, questionBankKey)
	if len(entries) > 0 {
		pipe.RPush(ctx, questionBankKey, entries...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed questions: %w", err)
	}

	return nil
}
