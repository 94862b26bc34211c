package app

import (
	"context"

	"github.com/coinwatchbot/coinwatch/internal/config"
	"github.com/coinwatchbot/coinwatch/internal/delivery/telegram"
	"github.com/coinwatchbot/coinwatch/internal/infra/coingecko"
	"github.com/coinwatchbot/coinwatch/internal/infra/db"
	"github.com/coinwatchbot/coinwatch/internal/infra/log"
	"github.com/coinwatchbot/coinwatch/internal/probe"
	"github.com/coinwatchbot/coinwatch/internal/usecase"
	"go.uber.org/zap"
)

type App struct {
	bot       *telegram.Bot
	watcher   *usecase.Watcher
	prober    *probe.Prober
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	alertRepo := db.NewAlertRepository(dbConn)
	quoteClient := coingecko.NewClient(cfg.QuoteBaseURL, cfg.QuoteCurrency, cfg.QuoteTimeout, logger)

	api, err := telegram.NewAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}

	notifier := telegram.NewNotifier(api, logger)
	alertUC := usecase.NewAlertUsecase(alertRepo, quoteClient)
	watcher := usecase.NewWatcher(alertRepo, quoteClient, notifier, cfg.PollInterval, logger)
	handlers := telegram.NewHandlers(alertUC, cfg.AllowedUserIDs, logger)
	bot := telegram.NewBot(api, handlers, cfg.TelegramPollTimeout)
	prober := probe.New(cfg.ProbeAddr, cfg.PingURL, cfg.PingInterval, logger)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{bot: bot, watcher: watcher, prober: prober, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("coinwatch starting")
	go a.watcher.Run(ctx)
	go a.prober.Run(ctx)

	a.logger.Info("coinwatch started")
	return a.bot.Start(ctx)
}

func (a *App) Shutdown() {
	a.logger.Info("coinwatch shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close alert store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
