package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends text messages to a chat.
type Notifier interface {
	SendMessage(text string) error
}

type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a Notifier bound to one chat.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if botToken == "" || chatID == 0 {
		return nil, errors.New("telegram bot token and chat id are required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a Markdown message with link previews disabled.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// SendAll sends every message in order and stops at the first failure.
func SendAll(n Notifier, messages []string) error {
	for i, m := range messages {
		if err := n.SendMessage(m); err != nil {
			return fmt.Errorf("send part %d/%d: %w", i+1, len(messages), err)
		}
	}
	return nil
}
