package advice

import "context"

// Persona — системный промпт для всех ответов
const Persona = "You are a wise and caring father figure providing advice and guidance."

type Generator interface {
	// Generate — один запрос/ответ к модели, без истории и стриминга
	Generate(ctx context.Context, persona, question string) (string, error)
}
