package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/olpex/father-bot/internal/advice"
	"github.com/olpex/father-bot/internal/broker"
	"github.com/olpex/father-bot/internal/config"
	"github.com/olpex/father-bot/internal/credits"
	"github.com/olpex/father-bot/internal/delivery"
	"github.com/olpex/father-bot/internal/notificator"
	"github.com/olpex/father-bot/internal/payments"
	"github.com/olpex/father-bot/internal/telegram"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// CLIENTS (payments / AI / telegram)
	// =========================================================================

	paymentProvider := payments.NewStripeProvider(cfg.StripeSecretKey, nil)
	generator := advice.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}

	notifier := notificator.NewService(bot, cfg.AdminChatID)

	pricing := broker.Pricing{
		BundleSize: cfg.BundleSize,
		PriceMinor: cfg.BundlePrice,
		Currency:   cfg.Currency,
	}

	// =========================================================================
	// BROKERS: у каждого канала свой леджер, балансы не общие
	// =========================================================================

	httpLedger := credits.NewMemoryLedger()
	tgLedger := credits.NewMemoryLedger()

	httpBroker := broker.NewBroker("http", "customer_email", pricing,
		httpLedger, paymentProvider, generator, notifier, zl)
	tgBroker := broker.NewBroker("telegram", "telegram_id", pricing,
		tgLedger, paymentProvider, generator, notifier, zl)

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	reporter := credits.NewReporter(map[string]credits.Ledger{
		"http":     httpLedger,
		"telegram": tgLedger,
	}, zl)
	if err := reporter.Start(cfg.LedgerReportSpec); err != nil {
		log.Fatalf("failed to start ledger reporter: %v", err)
	}
	defer reporter.Stop()

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	botApp := telegram.NewBotApp(bot, tgBroker, cfg.PaymentLinkURL, zl)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		botApp.Run(ctx, updates)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "telegram bot ready: @" + bot.Self.UserName,
		Service: "father-bot",
	})

	// =========================================================================
	// HTTP SERVER
	// =========================================================================

	r := delivery.NewRouter(delivery.NewAdviceHandler(httpBroker, zl))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + srv.Addr,
			Service: "father-bot",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	// =========================================================================
	// SHUTDOWN
	// =========================================================================

	zl.Log(logger.LogEntry{Level: "info", Message: "shutting down", Service: "father-bot"})

	bot.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "http shutdown", Error: err, Service: "father-bot"})
	}

	select {
	case <-botDone:
	case <-shutdownCtx.Done():
	}
}
