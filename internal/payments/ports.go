package payments

import "context"

// IntentRequest — запрос на создание платежа за один пакет кредитов
type IntentRequest struct {
	AmountMinor    int64 // в минимальных единицах валюты, 1000 = $10.00
	Currency       string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

// Intent — созданный у провайдера платёж. ClientSecret отдаётся клиенту,
// он сам завершает оплату.
type Intent struct {
	ID           string
	ClientSecret string
}

type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}
