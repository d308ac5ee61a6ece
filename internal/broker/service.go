package broker

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"

	"github.com/olpex/father-bot/internal/advice"
	"github.com/olpex/father-bot/internal/credits"
	"github.com/olpex/father-bot/internal/notificator"
	"github.com/olpex/father-bot/internal/payments"
)

type Answer struct {
	Text             string
	CreditsRemaining int
}

// Broker связывает леджер кредитов с провайдерами оплаты и генерации.
// У каждого канала (http, telegram) свой Broker со своим леджером.
type Broker struct {
	channel     string
	metadataKey string
	pricing     Pricing

	ledger    credits.Ledger
	payments  payments.Provider
	generator advice.Generator
	notifier  notificator.Notificator
	log       *logger.ZapLogger
}

func NewBroker(
	channel string,
	metadataKey string,
	pricing Pricing,
	ledger credits.Ledger,
	paymentProvider payments.Provider,
	generator advice.Generator,
	notifier notificator.Notificator,
	log *logger.ZapLogger,
) *Broker {
	return &Broker{
		channel:     channel,
		metadataKey: metadataKey,
		pricing:     pricing,
		ledger:      ledger,
		payments:    paymentProvider,
		generator:   generator,
		notifier:    notifier,
		log:         log,
	}
}

func (b *Broker) Pricing() Pricing { return b.pricing }

func (b *Broker) Balance(identity string) int {
	return b.ledger.Balance(identity)
}

// InitiatePurchase создаёт платёж у провайдера и возвращает client secret.
// Леджер не трогает: кредиты начисляются только через ConfirmPurchase.
func (b *Broker) InitiatePurchase(ctx context.Context, identity string) (string, error) {
	intent, err := b.payments.CreateIntent(ctx, payments.IntentRequest{
		AmountMinor:    b.pricing.PriceMinor,
		Currency:       b.pricing.Currency,
		Description:    fmt.Sprintf("%d fatherly answers", b.pricing.BundleSize),
		Metadata:       map[string]string{b.metadataKey: identity},
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		perr := &PaymentProviderError{Message: payments.ProviderMessage(err), Err: err}
		b.fault(ctx, perr, "create payment intent for "+identity)
		return "", perr
	}

	b.info(fmt.Sprintf("[pay] intent created id=%s identity=%s", intent.ID, identity))
	return intent.ClientSecret, nil
}

// ConfirmPurchase начисляет один пакет кредитов.
//
// Вызывающему доверяем полностью: нет ни проверки подписи события провайдера,
// ни привязки к конкретному payment intent. Любой, кто может вызвать этот
// метод, может начислить себе кредиты.
func (b *Broker) ConfirmPurchase(ctx context.Context, identity string) int {
	balance := b.ledger.Add(identity, b.pricing.BundleSize)

	b.log.Log(logger.LogEntry{
		Level: "warn",
		Message: fmt.Sprintf("[pay] unverified payment confirmation channel=%s identity=%s balance=%d",
			b.channel, identity, balance),
		Service: "father-bot",
	})
	return balance
}

// Answer списывает кредит ДО вызова модели (резерв), и возвращает его,
// если генерация упала. Итог: при ошибке кредит не тратится.
func (b *Broker) Answer(ctx context.Context, identity, question string) (*Answer, error) {
	if _, ok := b.ledger.TryConsume(identity); !ok {
		b.info(fmt.Sprintf("[ask] no credits channel=%s identity=%s", b.channel, identity))
		return nil, ErrInsufficientCredits
	}

	text, err := b.generator.Generate(ctx, advice.Persona, question)
	if err != nil {
		refunded := b.ledger.Add(identity, 1)
		gerr := &GenerationError{Message: advice.ProviderMessage(err), Err: err}
		b.fault(ctx, gerr, fmt.Sprintf("answer for %s (credit returned, balance=%d)", identity, refunded))
		return nil, gerr
	}

	return &Answer{
		Text:             text,
		CreditsRemaining: b.ledger.Balance(identity),
	}, nil
}

func (b *Broker) info(msg string) {
	b.log.Log(logger.LogEntry{Level: "info", Message: msg, Service: "father-bot"})
}

func (b *Broker) fault(ctx context.Context, err error, details string) {
	b.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("[%s] %s", b.channel, details),
		Error:   err,
		Service: "father-bot",
	})
	if b.notifier != nil {
		_ = b.notifier.Notify(ctx, b.channel, err, details)
	}
}
