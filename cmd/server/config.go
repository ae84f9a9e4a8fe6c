package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	port           int
	baseURL        string
	redisAddr      string
	redisPassword  string
	discordToken   string
	discordChannel string
	verbose        bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.redisAddr == "" {
		return errors.New("redis address cannot be empty")
	}
	if c.discordToken != "" && c.discordChannel == "" {
		return errors.New("--discord-channel is required when --discord-token is set")
	}
	return nil
}

func (c *Config) listenAddr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DICEROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "diceroom",
		Short:         "A shared dice-rolling room with live-synced rolls and roster.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
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

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: DICEROOM_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: DICEROOM_PORT)")
	fs.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "externally visible URL, used for QR join links (env: DICEROOM_BASE_URL)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "redis address (env: DICEROOM_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: DICEROOM_REDIS_PASSWORD)")
	fs.StringVar(&cfg.discordToken, "discord-token", "", "bot token for the optional roll announcer (env: DICEROOM_DISCORD_TOKEN)")
	fs.StringVar(&cfg.discordChannel, "discord-channel", "", "channel the announcer posts to (env: DICEROOM_DISCORD_CHANNEL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: DICEROOM_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
