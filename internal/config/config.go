package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port string

	StripeSecretKey  string
	OpenAIAPIKey     string
	TelegramBotToken string

	BundleSize        int
	BundlePrice       int64 // в центах
	Currency          string
	OpenAIModel       string
	GenerationTimeout time.Duration
	PaymentLinkURL    string
	AdminChatID       int64
	LedgerReportSpec  string
}

// ConfigurationError — не заданы обязательные переменные или значения битые.
// Фатальна на старте.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required settings: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid settings: "+strings.Join(e.Invalid, ", "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

var required = []string{
	"STRIPE_SECRET_KEY",
	"OPENAI_API_KEY",
	"TELEGRAM_BOT_TOKEN",
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("BUNDLE_SIZE", 5)
	v.SetDefault("BUNDLE_PRICE", 1000)
	v.SetDefault("CURRENCY", "usd")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("GENERATION_TIMEOUT", "60s")
	v.SetDefault("PAYMENT_LINK_URL", "https://buy.stripe.com/YOUR_PAYMENT_LINK")
	v.SetDefault("ADMIN_CHAT_ID", 0)
	v.SetDefault("LEDGER_REPORT_SPEC", "@every 10m")
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	return parse(v)
}

func parse(v *viper.Viper) (*Config, error) {
	cerr := &ConfigurationError{}

	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			cerr.Missing = append(cerr.Missing, key)
		}
	}

	cfg := &Config{
		Port:             v.GetString("PORT"),
		StripeSecretKey:  strings.TrimSpace(v.GetString("STRIPE_SECRET_KEY")),
		OpenAIAPIKey:     strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		TelegramBotToken: strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
		Currency:         strings.ToLower(v.GetString("CURRENCY")),
		OpenAIModel:      v.GetString("OPENAI_MODEL"),
		PaymentLinkURL:   v.GetString("PAYMENT_LINK_URL"),
		LedgerReportSpec: v.GetString("LEDGER_REPORT_SPEC"),
	}

	// viper.GetInt молча возвращает 0 на мусоре, поэтому парсим сами
	var err error
	if cfg.BundleSize, err = toInt(v, "BUNDLE_SIZE"); err != nil || cfg.BundleSize <= 0 {
		cerr.Invalid = append(cerr.Invalid, "BUNDLE_SIZE")
	}
	price, err := toInt(v, "BUNDLE_PRICE")
	if err != nil || price <= 0 {
		cerr.Invalid = append(cerr.Invalid, "BUNDLE_PRICE")
	}
	cfg.BundlePrice = int64(price)

	if cfg.AdminChatID, err = toInt64(v, "ADMIN_CHAT_ID"); err != nil {
		cerr.Invalid = append(cerr.Invalid, "ADMIN_CHAT_ID")
	}

	if cfg.GenerationTimeout, err = time.ParseDuration(v.GetString("GENERATION_TIMEOUT")); err != nil || cfg.GenerationTimeout <= 0 {
		cerr.Invalid = append(cerr.Invalid, "GENERATION_TIMEOUT")
	}

	if len(cfg.Currency) != 3 {
		cerr.Invalid = append(cerr.Invalid, "CURRENCY")
	}

	if len(cerr.Missing) > 0 || len(cerr.Invalid) > 0 {
		return nil, cerr
	}
	return cfg, nil
}

func toInt(v *viper.Viper, key string) (int, error) {
	n, err := toInt64(v, key)
	return int(n), err
}

func toInt64(v *viper.Viper, key string) (int64, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, raw)
	}
	return n, nil
}
