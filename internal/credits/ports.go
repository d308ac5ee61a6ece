package credits

// Stats — снимок состояния леджера для периодического отчёта
type Stats struct {
	Identities int
	Credits    int
}

// Ledger хранит баланс кредитов по идентификатору пользователя.
// Идентификатор — непрозрачная строка (email или telegram id).
type Ledger interface {
	// Balance возвращает баланс, 0 для незнакомого идентификатора
	Balance(identity string) int
	// Add начисляет amount кредитов и возвращает новый баланс
	Add(identity string, amount int) int
	// TryConsume списывает один кредит, если баланс положительный
	TryConsume(identity string) (remaining int, ok bool)
	Stats() Stats
}
