package telegram

import (
	"fmt"

	"github.com/olpex/father-bot/internal/broker"
)

const (
	msgNoCredits      = "You don't have any credits left. Use /buy to purchase more answers."
	msgUnknownCommand = "I don't know that command. Try /start, /credits or /buy."
)

func welcomeText(firstName string, p broker.Pricing) string {
	return fmt.Sprintf(
		"Hi %s! 👋 I'm your AI Father Bot.\n\n"+
			"I'm here to provide fatherly advice and guidance.\n"+
			"You can purchase %d answers for %s.\n\n"+
			"Available commands:\n"+
			"/credits - Check your remaining credits\n"+
			"/buy - Purchase more credits\n"+
			"Just send me a message to ask for advice!",
		firstName, p.BundleSize, p.DisplayPrice(),
	)
}

func buyText(p broker.Pricing) string {
	return fmt.Sprintf("Click below to purchase %d answers for %s:", p.BundleSize, p.DisplayPrice())
}
