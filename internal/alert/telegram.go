package alert

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ent0n29/iris/internal/schedule"
)

// Notifier delivers out-of-band alerts about assistant activity. Delivery is
// best-effort; callers log failures and move on.
type Notifier interface {
	TaskStored(ctx context.Context, task schedule.Task) error
}

// TelegramNotifier pings a Telegram chat when a reminder is stored.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) TaskStored(_ context.Context, task schedule.Task) error {
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("Reminder stored (#%d): %s", task.ID, task.Text))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// NoopNotifier is used when Telegram is not configured.
type NoopNotifier struct{}

func (NoopNotifier) TaskStored(context.Context, schedule.Task) error { return nil }
