package broker

import "errors"

// ErrInsufficientCredits — ожидаемый бизнес-исход, не сбой
var ErrInsufficientCredits = errors.New("no credits available")

// PaymentProviderError — провайдер не создал платёж
type PaymentProviderError struct {
	Message string
	Err     error
}

func (e *PaymentProviderError) Error() string {
	return "payment provider error: " + e.Message
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }

// GenerationError — провайдер генерации не вернул ответ. Кредит не списан.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return "generation error: " + e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }
