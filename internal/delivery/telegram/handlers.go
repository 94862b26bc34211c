package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"github.com/coinwatchbot/coinwatch/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const unauthorizedText = "Sorry, you are not authorized to use this bot. Contact the bot owner to get access."

type Handlers struct {
	alertUC *usecase.AlertUsecase
	allowed map[int64]struct{}
	logger  *zap.Logger
}

func NewHandlers(alertUC *usecase.AlertUsecase, allowedUserIDs []int64, logger *zap.Logger) *Handlers {
	allowed := make(map[int64]struct{}, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = struct{}{}
	}
	return &Handlers{alertUC: alertUC, allowed: allowed, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, api, update)
	}
}

func (h *Handlers) handleCommand(ctx context.Context, api *tgbotapi.BotAPI, update tgbotapi.Update) {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	h.logger.Info(
		"command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("command", command),
		zap.String("args", args),
	)

	if _, ok := h.allowed[userID]; !ok {
		h.logger.Warn("unauthorized user", zap.Int64("user_id", userID), zap.String("command", command))
		h.reply(api, chatID, unauthorizedText)
		return
	}

	switch command {
	case "start":
		h.reply(api, chatID, "Welcome to Coinwatch.\n\n"+HelpText)
	case "help":
		h.reply(api, chatID, HelpText)
	case "coins":
		h.reply(api, chatID, formatCoins())
	case "add":
		symbol, price, direction, err := ParseAddArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /add SYMBOL PRICE [above|below]\nExample: /add btc 30000 below")
			return
		}
		alert, err := h.alertUC.AddAlert(ctx, userID, symbol, price, direction)
		if err != nil {
			h.logger.Warn("add failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, fmt.Sprintf(
			"Alert set for %s at $%s (%s).",
			strings.ToUpper(alert.Symbol), alert.Threshold.String(), alert.Direction,
		))
	case "list":
		alerts, err := h.alertUC.ListAlerts(ctx, userID)
		if err != nil {
			h.logger.Warn("list failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		if len(alerts) == 0 {
			h.reply(api, chatID, "You have no active alerts.")
			return
		}
		var builder strings.Builder
		builder.WriteString("Your active alerts:\n")
		for i, alert := range alerts {
			builder.WriteString(fmt.Sprintf(
				"%d. %s %s $%s\n",
				i+1, strings.ToUpper(alert.Symbol), alert.Direction, alert.Threshold.String(),
			))
		}
		h.reply(api, chatID, builder.String())
	case "remove":
		index, err := ParseRemoveIndex(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /remove ALERT_NUMBER\nUse /list to see alert numbers.")
			return
		}
		removed, err := h.alertUC.RemoveAlert(ctx, userID, index)
		if err != nil {
			h.logger.Warn("remove failed", zap.Int64("user_id", userID), zap.Int("index", index), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		h.reply(api, chatID, fmt.Sprintf(
			"Removed alert for %s at $%s (%s).",
			strings.ToUpper(removed.Symbol), removed.Threshold.String(), removed.Direction,
		))
	case "price":
		symbols, err := ParsePriceArgs(args)
		if err != nil {
			h.reply(api, chatID, "Usage: /price SYMBOL [SYMBOL ...]\nExample: /price btc eth sol")
			return
		}
		quotes, err := h.alertUC.Prices(ctx, symbols)
		if err != nil {
			h.logger.Warn("price failed", zap.Int64("user_id", userID), zap.Error(err))
			h.reply(api, chatID, h.errorMessage(err))
			return
		}
		lines := make([]string, 0, len(quotes))
		for _, quote := range quotes {
			if quote.Price == nil {
				lines = append(lines, fmt.Sprintf("%s: price not available", strings.ToUpper(quote.Symbol)))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: $%s", strings.ToUpper(quote.Symbol), quote.Price.StringFixed(5)))
		}
		h.reply(api, chatID, strings.Join(lines, "\n"))
	default:
		h.reply(api, chatID, "Unknown command. Use /help to see available commands.")
	}
}

func (h *Handlers) errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUnknownSymbol):
		return "Unsupported coin. Use /coins to see what is available."
	case errors.Is(err, usecase.ErrInvalidThreshold):
		return "Invalid price. Use a positive number like 100 or 0.010."
	case errors.Is(err, usecase.ErrIndexOutOfRange):
		return "Alert number out of range. Use /list to see alert numbers."
	case errors.Is(err, usecase.ErrQuoteUnavailable):
		return "Failed to fetch prices. Try again later."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func formatCoins() string {
	var builder strings.Builder
	builder.WriteString("Available coins:\n")
	for _, entry := range domain.Coins() {
		builder.WriteString(fmt.Sprintf("- %s (%s)\n", strings.ToUpper(entry.Symbol), entry.CoinID))
	}
	builder.WriteString("\nUse /add SYMBOL PRICE [above|below] to set an alert.")
	return builder.String()
}

func (h *Handlers) reply(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}
