package notify

import (
	"fmt"

	"github.com/fuazim/fitcamp/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes short operational messages to the back-office chat.
type Notifier interface {
	Notify(msg string)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// New returns a Telegram notifier, or a no-op one when token or chat id is unset.
func New(token string, chatID int64) (Notifier, error) {
	if token == "" || chatID == 0 {
		return Noop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(msg string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, msg)); err != nil {
		logger.Warn("telegram notify failed", "error", err)
	}
}

type Noop struct{}

func (Noop) Notify(string) {}
