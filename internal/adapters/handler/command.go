package handler

import (
	"context"
	"time"
	"wiwbot/internal/core/domain"
	"wiwbot/internal/core/domain/command"
	"wiwbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, timeout: timeout}
}

// BotOptions makes the bot run handlers on its single polling worker, one update at a time.
func BotOptions(defaultHandler bot.HandlerFunc) []bot.Option {
	return []bot.Option{
		bot.WithDefaultHandler(defaultHandler),
		bot.WithWorkers(1),
		bot.WithNotAsyncHandlers(),
	}
}

// Register routes text messages and photo captions that start with the trigger's sigil to Handle. The registry
// resolves the full command case-insensitively.
func (c *Command) Register(b *bot.Bot, trigger string) {
	sigil := trigger[:1]
	b.RegisterHandler(bot.HandlerTypeMessageText, sigil, bot.MatchTypePrefix, c.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, sigil, bot.MatchTypePrefix, c.Handle)
}

// Handle dispatches a message to the command registered for its first word. It blocks until the command has
// responded; with BotOptions updates are answered in the order they arrive.
func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message")
		return
	}

	text := update.Message.Text
	if text == "" {
		text = update.Message.Caption
	}

	cmd := command.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	requestID, err := uuid.NewV4()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate request id")
		return
	}

	l := log.With().
		Str("requestId", requestID.String()).
		Int("messageId", update.Message.ID).
		Int64("chatId", update.Message.Chat.ID).
		Str("command", cmd).
		Logger()
	l.Debug().Str("message", text).Msg("received command")

	err = commandHandler.Respond(l.WithContext(ctx), c.timeout, &domain.Message{
		ID:       update.Message.ID,
		ChatID:   update.Message.Chat.ID,
		Username: getUserNameFromMessage(update.Message.From),
		Text:     text,
	})
	if err != nil {
		l.Err(err).Msg("failed to respond to command")
	}
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
