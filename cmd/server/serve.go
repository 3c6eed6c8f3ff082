package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/handlers/tcpserver"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/handlers/ws"
	questionRepo "github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/repositories/question"
	"github.com/mabdulrehman-CS/Multiplayer-Quiz-System/internal/services/session"
)

func run(ctx context.Context, cfg *Config) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	repo, err := buildQuestionRepo(cfg)
	if err != nil {
		return err
	}

	if cfg.seedDefaults {
		if err := repo.SeedQuestions(ctx, &questionRepo.SeedQuestionsInput{
			Questions: questionRepo.DefaultQuestions(),
		}); err != nil {
			return err
		}
		log.Info().Msg("question bank seeded")
		return nil
	}

	sessionSvc, err := session.New(ctx, &session.Config{
		QuestionRepo:    repo,
		RequiredPlayers: cfg.requiredPlayers,
		QuestionTimeout: cfg.questionTimeout,
		PacingDelay:     cfg.pacingDelay,
	})
	if err != nil {
		return err
	}

	tcpSrv, err := tcpserver.New(&tcpserver.Config{
		Addr:           cfg.tcpAddr,
		SessionService: sessionSvc,
	})
	if err != nil {
		return err
	}

	wsSrv, err := ws.New(&ws.Config{
		Addr:           cfg.wsAddr,
		SessionService: sessionSvc,
	})
	if err != nil {
		return err
	}

	if err := tcpSrv.Start(); err != nil {
		return err
	}

	if err := wsSrv.Start(); err != nil {
		_ = tcpSrv.Stop()
		return err
	}

	log.Info().Msg("quiz server is now running. Press CTRL-C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := tcpSrv.Stop(); err != nil {
		log.Warn().Err(err).Msg("tcp server shutdown failed")
	}
	if err := wsSrv.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("websocket server shutdown failed")
	}

	return nil
}

// buildQuestionRepo selects the question source: redis when an address is
// configured, the built-in bank otherwise.
func buildQuestionRepo(cfg *Config) (questionRepo.Repository, error) {
	if cfg.redisAddr == "" {
		return questionRepo.NewMemory(), nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       0,
	})

	return questionRepo.NewRedis(&questionRepo.Config{
		RedisClient: redisClient,
	})
}
