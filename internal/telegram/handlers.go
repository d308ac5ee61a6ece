package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/olpex/father-bot/internal/broker"
)

func (app *BotApp) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			app.handleStart(msg)
		case "credits":
			app.handleCredits(msg)
		case "buy":
			app.handleBuy(msg)
		default:
			app.send(tgbotapi.NewMessage(msg.Chat.ID, msgUnknownCommand))
		}
		return
	}

	if msg.Text == "" {
		return
	}
	app.handleQuestion(ctx, msg)
}

func identityOf(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.From.ID, 10)
}

func (app *BotApp) handleStart(msg *tgbotapi.Message) {
	app.send(tgbotapi.NewMessage(msg.Chat.ID, welcomeText(msg.From.FirstName, app.broker.Pricing())))
}

func (app *BotApp) handleCredits(msg *tgbotapi.Message) {
	n := app.broker.Balance(identityOf(msg))
	app.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("You have %d answers remaining.", n)))
}

func (app *BotApp) handleBuy(msg *tgbotapi.Message) {
	out := tgbotapi.NewMessage(msg.Chat.ID, buyText(app.broker.Pricing()))
	out.ReplyMarkup = BuildBuyKeyboard(app.paymentLink)
	app.send(out)
}

func (app *BotApp) handleQuestion(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	identity := identityOf(msg)

	// индикатор "печатает…", пока ждём модель
	if _, err := app.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		app.info(fmt.Sprintf("[text] chat action fail tg=%s: %v", identity, err))
	}

	ans, err := app.broker.Answer(ctx, identity, msg.Text)

	var gerr *broker.GenerationError
	switch {
	case errors.Is(err, broker.ErrInsufficientCredits):
		out := tgbotapi.NewMessage(chatID, msgNoCredits)
		out.ReplyMarkup = BuildBuyKeyboard(app.paymentLink)
		app.send(out)
		return
	case errors.As(err, &gerr):
		app.send(tgbotapi.NewMessage(chatID, "Sorry, I encountered an error: "+gerr.Message))
		return
	case err != nil:
		app.send(tgbotapi.NewMessage(chatID, "Sorry, I encountered an error: "+err.Error()))
		return
	}

	app.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n\nRemaining credits: %d", ans.Text, ans.CreditsRemaining)))
}
