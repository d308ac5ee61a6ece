package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// BuildBuyKeyboard — одна кнопка со статической ссылкой на оплату
func BuildBuyKeyboard(paymentLink string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💳 Pay with Stripe", paymentLink),
		),
	)
}
