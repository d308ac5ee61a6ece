package credits

import "sync"

type memoryLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewMemoryLedger — леджер в памяти процесса. Всё теряется при рестарте.
func NewMemoryLedger() Ledger {
	return &memoryLedger{balances: make(map[string]int)}
}

func (l *memoryLedger) Balance(identity string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[identity]
}

func (l *memoryLedger) Add(identity string, amount int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount < 0 {
		amount = 0
	}
	l.balances[identity] += amount
	return l.balances[identity]
}

// check и decrement под одним локом, иначе два параллельных запроса
// могут оба увидеть баланс 1
func (l *memoryLedger) TryConsume(identity string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bal := l.balances[identity]
	if bal <= 0 {
		return bal, false
	}
	l.balances[identity] = bal - 1
	return bal - 1, true
}

func (l *memoryLedger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Stats{Identities: len(l.balances)}
	for _, b := range l.balances {
		st.Credits += b
	}
	return st
}
