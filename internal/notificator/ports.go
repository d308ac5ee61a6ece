package notificator

import "context"

type Notificator interface {
	// Notify — сообщает о сбое провайдера (оплата / генерация). Нехватка
	// кредитов сюда не попадает.
	Notify(ctx context.Context, channel string, err error, details string) error
}
