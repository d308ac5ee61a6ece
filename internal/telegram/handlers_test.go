package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/olpex/father-bot/internal/broker"
	"github.com/olpex/father-bot/internal/credits"
	"github.com/olpex/father-bot/internal/notificator"
	"github.com/olpex/father-bot/internal/payments"
)

const testLink = "https://buy.stripe.com/test_link"

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	msgs := f.messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

type stubGenerator struct {
	answer string
	err    error
}

func (s *stubGenerator) Generate(context.Context, string, string) (string, error) {
	return s.answer, s.err
}

type noPayments struct{}

func (noPayments) CreateIntent(context.Context, payments.IntentRequest) (*payments.Intent, error) {
	return nil, errors.New("not used")
}

type fixture struct {
	app    *BotApp
	bot    *fakeSender
	ledger credits.Ledger
	gen    *stubGenerator
}

func newFixture() *fixture {
	f := &fixture{
		bot:    &fakeSender{},
		ledger: credits.NewMemoryLedger(),
		gen:    &stubGenerator{answer: "Keep your chin up."},
	}
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	b := broker.NewBroker(
		"telegram",
		"telegram_id",
		broker.Pricing{BundleSize: 5, PriceMinor: 1000, Currency: "usd"},
		f.ledger,
		noPayments{},
		f.gen,
		notificator.LogOnly{},
		log,
	)
	f.app = NewBotApp(f.bot, b, testLink, log)
	return f
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, FirstName: "Sam"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
	if len(text) > 0 && text[0] == '/' {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

func buttonURL(t *testing.T, m tgbotapi.MessageConfig) string {
	t.Helper()
	kb, ok := m.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 1)
	require.NotNil(t, kb.InlineKeyboard[0][0].URL)
	return *kb.InlineKeyboard[0][0].URL
}

func TestStart(t *testing.T) {
	f := newFixture()

	f.app.HandleUpdate(context.Background(), textUpdate(7, "/start"))

	m := f.bot.last(t)
	assert.Equal(t, int64(7), m.ChatID)
	assert.Contains(t, m.Text, "Hi Sam!")
	assert.Contains(t, m.Text, "5 answers for $10.00")
	assert.Contains(t, m.Text, "/credits")
	assert.Contains(t, m.Text, "/buy")
}

func TestCredits(t *testing.T) {
	f := newFixture()
	f.ledger.Add("7", 5)

	f.app.HandleUpdate(context.Background(), textUpdate(7, "/credits"))
	assert.Equal(t, "You have 5 answers remaining.", f.bot.last(t).Text)

	f.app.HandleUpdate(context.Background(), textUpdate(8, "/credits"))
	assert.Equal(t, "You have 0 answers remaining.", f.bot.last(t).Text)
}

func TestBuy(t *testing.T) {
	f := newFixture()

	f.app.HandleUpdate(context.Background(), textUpdate(7, "/buy"))

	m := f.bot.last(t)
	assert.Equal(t, "Click below to purchase 5 answers for $10.00:", m.Text)
	assert.Equal(t, testLink, buttonURL(t, m))
	assert.Equal(t, 0, f.ledger.Balance("7"))
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture()

	f.app.HandleUpdate(context.Background(), textUpdate(7, "/dance"))

	assert.Equal(t, msgUnknownCommand, f.bot.last(t).Text)
}

func TestQuestion_NoCredits(t *testing.T) {
	f := newFixture()

	f.app.HandleUpdate(context.Background(), textUpdate(7, "Should I buy a car?"))

	m := f.bot.last(t)
	assert.Equal(t, msgNoCredits, m.Text)
	assert.Equal(t, testLink, buttonURL(t, m))
	assert.Equal(t, 0, f.ledger.Balance("7"))
}

func TestQuestion_Answered(t *testing.T) {
	f := newFixture()
	f.ledger.Add("7", 2)

	f.app.HandleUpdate(context.Background(), textUpdate(7, "Should I buy a car?"))

	assert.Equal(t, "Keep your chin up.\n\nRemaining credits: 1", f.bot.last(t).Text)
	assert.Equal(t, 1, f.ledger.Balance("7"))
	require.Len(t, f.bot.requests, 1)
	action, ok := f.bot.requests[0].(tgbotapi.ChatActionConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ChatTyping, action.Action)
}

func TestQuestion_GenerationErrorKeepsCredit(t *testing.T) {
	f := newFixture()
	f.ledger.Add("7", 3)
	f.gen.err = errors.New("rate limited")

	f.app.HandleUpdate(context.Background(), textUpdate(7, "Help"))

	assert.Equal(t, "Sorry, I encountered an error: rate limited", f.bot.last(t).Text)
	assert.Equal(t, 3, f.ledger.Balance("7"))
}

func TestIgnoresUpdatesWithoutText(t *testing.T) {
	f := newFixture()

	f.app.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 2})
	f.app.HandleUpdate(context.Background(), textUpdate(7, ""))

	assert.Empty(t, f.bot.messages())
}

func TestRun_HandlesUpdatesUntilCancelled(t *testing.T) {
	f := newFixture()
	f.ledger.Add("7", 5)

	updates := make(chan tgbotapi.Update)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.app.Run(ctx, updates)
		close(done)
	}()

	updates <- textUpdate(7, "/credits")
	updates <- textUpdate(7, "one")
	updates <- textUpdate(7, "two")

	require.Eventually(t, func() bool { return len(f.bot.messages()) == 3 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, 3, f.ledger.Balance("7"))
}
