package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const releaseVersion = "1.0.0"

type Config struct {
	tcpAddr         string
	wsAddr          string
	redisAddr       string
	redisPassword   string
	requiredPlayers int
	questionTimeout time.Duration
	pacingDelay     time.Duration
	seedDefaults    bool
	verbose         bool
}

func (c *Config) validate() error {
	if c.requiredPlayers < 1 {
		return fmt.Errorf("invalid required player count: %d", c.requiredPlayers)
	}
	if c.questionTimeout <= 0 {
		return fmt.Errorf("invalid question timeout: %s", c.questionTimeout)
	}
	if c.pacingDelay < 0 {
		return fmt.Errorf("invalid pacing delay: %s", c.pacingDelay)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "quiz-server",
		Short:   "A multiplayer trivia session server speaking newline-delimited JSON over TCP and websocket.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.tcpAddr, "tcp-addr", ":9090", "tcp listen address (env: QUIZ_TCP_ADDR)")
	fs.StringVar(&cfg.wsAddr, "ws-addr", ":8080", "websocket listen address (env: QUIZ_WS_ADDR)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "", "redis address for the question bank; empty uses the built-in bank (env: QUIZ_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: QUIZ_REDIS_PASSWORD)")
	fs.IntVar(&cfg.requiredPlayers, "required-players", 2, "player count that starts the game (env: QUIZ_REQUIRED_PLAYERS)")
	fs.DurationVar(&cfg.questionTimeout, "question-timeout", 20*time.Second, "per-question answer window (env: QUIZ_QUESTION_TIMEOUT)")
	fs.DurationVar(&cfg.pacingDelay, "pacing-delay", time.Second, "pause between questions (env: QUIZ_PACING_DELAY)")
	fs.BoolVar(&cfg.seedDefaults, "seed-defaults", false, "seed the built-in question bank into redis and exit (env: QUIZ_SEED_DEFAULTS)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging (env: QUIZ_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quiz-server v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
