package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken    string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AllowedUserIDs      []int64 `env:"ALLOWED_USER_IDS,required"`
	TelegramPollTimeout int     `env:"TELEGRAM_POLL_TIMEOUT,default=60"`

	DBPath string `env:"DB_PATH,default=coinwatch.db"`

	QuoteBaseURL  string        `env:"QUOTE_BASE_URL,default=https://api.coingecko.com/api/v3"`
	QuoteCurrency string        `env:"QUOTE_CURRENCY,default=usd"`
	QuoteTimeout  time.Duration `env:"QUOTE_TIMEOUT,default=10s"`

	PollInterval time.Duration `env:"POLL_INTERVAL,default=15s"`

	ProbeAddr    string        `env:"PROBE_ADDR,default=:8080"`
	PingURL      string        `env:"PING_URL"`
	PingInterval time.Duration `env:"PING_INTERVAL,default=5m"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
