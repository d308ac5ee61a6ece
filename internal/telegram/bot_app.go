package telegram

import (
	"context"
	"fmt"
	"sync"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/olpex/father-bot/internal/broker"
)

// Sender — часть *tgbotapi.BotAPI, которой пользуются хендлеры
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Broker interface {
	Pricing() broker.Pricing
	Balance(identity string) int
	Answer(ctx context.Context, identity, question string) (*broker.Answer, error)
}

type BotApp struct {
	bot         Sender
	broker      Broker
	paymentLink string
	log         *logger.ZapLogger

	wg sync.WaitGroup
}

func NewBotApp(bot Sender, b Broker, paymentLink string, log *logger.ZapLogger) *BotApp {
	return &BotApp{
		bot:         bot,
		broker:      b,
		paymentLink: paymentLink,
		log:         log,
	}
}

// Run — главный цикл получения апдейтов. Каждый апдейт в своей горутине,
// леджер сам держит лок. После отмены ctx ждёт незавершённые ответы.
func (app *BotApp) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer app.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			if fromID := extractTelegramID(update); fromID != 0 {
				app.info(fmt.Sprintf("[bot_touch] fromTG=%d updateID=%d", fromID, update.UpdateID))
			}

			app.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer app.wg.Done()
				app.HandleUpdate(ctx, u)
			}(update)
		}
	}
}

func extractTelegramID(u tgbotapi.Update) int64 {
	if u.Message != nil && u.Message.From != nil {
		return u.Message.From.ID
	}
	return 0
}

func (app *BotApp) send(c tgbotapi.Chattable) {
	if _, err := app.bot.Send(c); err != nil {
		app.log.Log(logger.LogEntry{Level: "warn", Message: "[bot] send fail", Error: err, Service: "father-bot"})
	}
}

func (app *BotApp) info(msg string) {
	app.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: "father-bot"})
}
