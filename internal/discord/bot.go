package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/rmoreira/steamwatch-bot/internal/watchlist"
	"github.com/rmoreira/steamwatch-bot/pkg/config"
	pkgerrors "github.com/rmoreira/steamwatch-bot/pkg/errors"
	"github.com/rmoreira/steamwatch-bot/pkg/logger"
)

// Bot bridges Discord messages to the watchlist command processor.
type Bot struct {
	session *discordgo.Session
	handler watchlist.Service
	logger  *logger.Logger

	// one command runs to completion before the next starts, regardless of
	// how many goroutines discordgo dispatches handlers on
	mu sync.Mutex
}

// New builds the Discord session and registers the message handler. The
// connection is not opened until Open is called.
func New(cfg config.DiscordConfig, handler watchlist.Service, logg *logger.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discord token is required")
	}
	if handler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "command handler is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session: session,
		handler: handler,
		logger:  logg,
	}
	session.AddHandler(bot.onMessageCreate)
	session.AddHandler(bot.onReady)
	return bot, nil
}

// Open connects the gateway session.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening discord session")
	}
	return nil
}

// Close shuts the gateway session down.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, event *discordgo.Ready) {
	ctx := b.logger.WithField(context.Background(), "bot_user", event.User.Username)
	b.logger.Info(ctx, "discord session ready")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.handleIncoming(func(channelID, content string) error {
		_, err := s.ChannelMessageSend(channelID, content)
		return err
	}, selfID, m)
}

// handleIncoming drops self-authored messages before any parsing, forwards
// the rest to the command processor, and delivers each reply to the
// originating channel. Delivery failures are logged, not retried.
func (b *Bot) handleIncoming(send func(channelID, content string) error, selfID string, m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil {
		return
	}
	if m.Author.ID == selfID {
		return
	}

	ctx := b.logger.WithUserID(context.Background(), m.Author.ID)

	b.mu.Lock()
	replies := b.handler.HandleMessage(ctx, m.Author.ID, m.Content)
	b.mu.Unlock()

	for _, reply := range replies {
		if err := send(m.ChannelID, reply); err != nil {
			b.logger.Error(ctx, fmt.Sprintf("delivering reply to channel %s", m.ChannelID), err)
		}
	}
}
