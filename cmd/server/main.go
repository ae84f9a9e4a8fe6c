package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/diceroom/internal/dice"
	"github.com/KirkDiggler/diceroom/internal/events"
	"github.com/KirkDiggler/diceroom/internal/handlers/discord"
	"github.com/KirkDiggler/diceroom/internal/handlers/web"
	memberRepo "github.com/KirkDiggler/diceroom/internal/repositories/member"
	rollRepo "github.com/KirkDiggler/diceroom/internal/repositories/roll"
	roomRepo "github.com/KirkDiggler/diceroom/internal/repositories/room"
	"github.com/KirkDiggler/diceroom/internal/roomcode"
	roomService "github.com/KirkDiggler/diceroom/internal/services/room"
)

func main() {
	// Missing .env is fine; flags and process env still apply
	_ = godotenv.Load()

	cfg := &Config{}
	cmd := newCmd(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	bus, err := events.NewRedis(&events.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}

	rooms, err := roomRepo.NewRedis(&roomRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create room repository: %w", err)
	}

	rolls, err := rollRepo.NewRedis(&rollRepo.Config{
		RedisClient: redisClient,
		EventBus:    bus,
	})
	if err != nil {
		return fmt.Errorf("failed to create roll repository: %w", err)
	}

	members, err := memberRepo.NewRedis(&memberRepo.Config{
		RedisClient: redisClient,
		EventBus:    bus,
	})
	if err != nil {
		return fmt.Errorf("failed to create member repository: %w", err)
	}

	roomSvc, err := roomService.New(&roomService.Config{
		RoomRepo:   rooms,
		RollRepo:   rolls,
		MemberRepo: members,
		EventBus:   bus,
		DiceRoller: dice.New(&dice.Config{}),
	})
	if err != nil {
		return fmt.Errorf("failed to create room service: %w", err)
	}

	handler, err := web.New(&web.Config{
		RoomService:   roomSvc,
		CodeGenerator: roomcode.New(&roomcode.Config{}),
		BaseURL:       cfg.baseURL,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	// The announcer only runs when a token is configured
	if cfg.discordToken != "" {
		announcer, err := discord.New(&discord.Config{
			Token:     cfg.discordToken,
			ChannelID: cfg.discordChannel,
			EventBus:  bus,
			Logger:    log,
		})
		if err != nil {
			return fmt.Errorf("failed to create roll announcer: %w", err)
		}

		if err := announcer.Start(); err != nil {
			return fmt.Errorf("failed to start roll announcer: %w", err)
		}
		defer func() {
			if err := announcer.Stop(); err != nil {
				log.Warn().Err(err).Msg("error stopping roll announcer")
			}
		}()
	}

	server := &http.Server{
		Addr:              cfg.listenAddr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	log.Info().Msg("server stopped")
	return nil
}
