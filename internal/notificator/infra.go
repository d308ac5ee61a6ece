package notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender — часть *tgbotapi.BotAPI, нужная для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Infra struct {
	bot         Sender
	adminChatID int64
}

func NewInfra(bot Sender, adminChatID int64) *Infra {
	return &Infra{bot: bot, adminChatID: adminChatID}
}

func (i *Infra) Notify(ctx context.Context, channel string, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Error in father-bot (%s)\n\nError: %v\n\nDetails: %s",
		channel,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text)); sendErr != nil {
		log.Printf("[notificator] send fail to %d: %v", i.adminChatID, sendErr)
		return sendErr
	}
	return nil
}

// LogOnly — когда ADMIN_CHAT_ID не задан
type LogOnly struct{}

func (LogOnly) Notify(ctx context.Context, channel string, err error, details string) error {
	log.Printf("[notificator] channel=%s err=%v details=%s", channel, err, details)
	return nil
}
