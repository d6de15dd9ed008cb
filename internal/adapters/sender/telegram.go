package sender

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
	"wiwbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// TelegramMessageLimit is the maximum number of characters in a single message.
const TelegramMessageLimit = 4096

func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var sentID int

	for _, chunk := range splitMessage(text, TelegramMessageLimit) {
		sent, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   chunk,
			ReplyParameters: &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			},
		})
		if err != nil {
			return sentID, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if sent != nil {
			sentID = sent.ID
		}
	}

	return sentID, nil
}

func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Warn().Err(err).Int64("chatId", message.ChatID).Msg("notifying chat about error")

	if _, sendErr := s.SendMessageReply(ctx, message, err.Error()); sendErr != nil {
		log.Error().Err(sendErr).Msg("failed to send error notification")
		return sendErr
	}

	return err
}

const ChatActionRepeatSeconds = 5

func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatID", chatID).Msg("starting action routine")

	chatAction := models.ChatAction(action)

	ticker := time.NewTicker(ChatActionRepeatSeconds * time.Second)
	defer ticker.Stop()

	for {
		log.Debug().Int64("chatID", chatID).Msg("transmitting action")
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			if ctx.Err() == nil {
				log.Err(err).Msg("error sending chat action")
			}
			return
		}

		select {
		case <-ctx.Done():
			log.Debug().Int64("chatID", chatID).Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}

// splitMessage cuts text into chunks of at most limit characters, preferring line breaks as cut points.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	current := &strings.Builder{}
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := utf8.RuneCountInString(line)

		if currentLen+lineLen > limit {
			flush()
		}

		for lineLen > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			lineLen -= limit
		}

		current.WriteString(line)
		currentLen += lineLen
	}

	flush()

	return chunks
}
