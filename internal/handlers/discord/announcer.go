package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/diceroom/internal/events"
	"github.com/KirkDiggler/diceroom/internal/models"
)

// Announcer posts inserted rolls from every room to a Discord channel.
// It is an optional side channel: announcement failures are logged and
// never affect the rooms themselves.
type Announcer struct {
	session   *discordgo.Session
	bus       events.Bus
	channelID string
	log       zerolog.Logger

	stop        context.CancelFunc
	unsubscribe func()
	done        chan struct{}
}

// Config holds the configuration for the announcer
type Config struct {
	// Discord bot token
	Token string

	// ChannelID is the channel announcements are posted to
	ChannelID string

	// EventBus supplies the change stream to announce from
	EventBus events.Bus

	// Logger for announcement logging
	Logger zerolog.Logger
}

// New creates a new roll announcer
func New(cfg *Config) (*Announcer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.ChannelID == "" {
		return nil, errors.New("channel id cannot be empty")
	}

	if cfg.EventBus == nil {
		return nil, errors.New("event bus cannot be nil")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Announcer{
		session:   session,
		bus:       cfg.EventBus,
		channelID: cfg.ChannelID,
		log:       cfg.Logger,
		done:      make(chan struct{}),
	}, nil
}

// Start opens the Discord connection and begins announcing
func (a *Announcer) Start() error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	stream, unsubscribe, err := a.bus.SubscribeAll(ctx)
	if err != nil {
		cancel()
		_ = a.session.Close()
		return fmt.Errorf("failed to subscribe to change stream: %w", err)
	}

	a.stop = cancel
	a.unsubscribe = unsubscribe

	go a.run(stream)

	a.log.Info().Str("channel_id", a.channelID).Msg("roll announcer running")
	return nil
}

// Stop tears down the subscription and the Discord connection
func (a *Announcer) Stop() error {
	if a.stop != nil {
		a.stop()
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
		<-a.done
	}
	return a.session.Close()
}

func (a *Announcer) run(stream <-chan *models.ChangeEvent) {
	defer close(a.done)

	for event := range stream {
		if event.Table != models.TableRolls || event.Type != models.EventInsert {
			continue
		}
		if event.NewRoll == nil {
			continue
		}

		if _, err := a.session.ChannelMessageSend(a.channelID, FormatRoll(event.NewRoll)); err != nil {
			a.log.Warn().Err(err).Str("room_id", event.RoomID).Msg("failed to announce roll")
		}
	}
}

// FormatRoll renders one roll as an announcement line
func FormatRoll(roll *models.Roll) string {
	if roll.ResultDisplayMode == models.DisplayModeStatistics && roll.StatisticsTarget != nil {
		return fmt.Sprintf("🎲 **%s** rolled %d×%s in `%s`: %d dice showing %d",
			roll.UserName, roll.DiceCount, roll.DiceType, roll.RoomID, roll.Total, *roll.StatisticsTarget)
	}

	return fmt.Sprintf("🎲 **%s** rolled %d×%s in `%s`: total %d",
		roll.UserName, roll.DiceCount, roll.DiceType, roll.RoomID, roll.Total)
}
