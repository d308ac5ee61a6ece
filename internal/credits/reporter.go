package credits

import (
	"fmt"
	"sort"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/robfig/cron/v3"
)

// Reporter периодически пишет в лог состояние леджеров каждого канала
type Reporter struct {
	cron    *cron.Cron
	ledgers map[string]Ledger
	log     *logger.ZapLogger
}

func NewReporter(ledgers map[string]Ledger, log *logger.ZapLogger) *Reporter {
	return &Reporter{
		cron:    cron.New(),
		ledgers: ledgers,
		log:     log,
	}
}

// Start регистрирует задачу по cron-выражению (поддерживается "@every 10m")
func (r *Reporter) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.Report); err != nil {
		return fmt.Errorf("schedule ledger report %q: %w", spec, err)
	}
	r.cron.Start()
	return nil
}

func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reporter) Report() {
	channels := make([]string, 0, len(r.ledgers))
	for ch := range r.ledgers {
		channels = append(channels, ch)
	}
	sort.Strings(channels)

	for _, ch := range channels {
		st := r.ledgers[ch].Stats()
		r.log.Log(logger.LogEntry{
			Level: "info",
			Message: fmt.Sprintf("[ledger] channel=%s identities=%d credits=%d",
				ch, st.Identities, st.Credits),
			Service: "father-bot",
		})
	}
}
