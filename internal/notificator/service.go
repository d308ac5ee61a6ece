package notificator

import "context"

type Service struct {
	infra Notificator
}

// NewService выбирает Telegram-уведомления админу или только лог
func NewService(bot Sender, adminChatID int64) *Service {
	if bot == nil || adminChatID == 0 {
		return &Service{infra: LogOnly{}}
	}
	return &Service{infra: NewInfra(bot, adminChatID)}
}

func (s *Service) Notify(ctx context.Context, channel string, err error, details string) error {
	return s.infra.Notify(ctx, channel, err, details)
}
