package telegram

import (
	"errors"
	"strconv"
	"strings"
)

const HelpText = `Commands:
/start - welcome and usage
/help - show this help
/coins - list supported coins
/add SYMBOL PRICE [above|below] - set a price alert
/list - list your alerts
/remove N - remove alert number N (see /list)
/price SYMBOL [SYMBOL ...] - current prices

Examples:
/add btc 100000 - alert when BTC reaches 100000
/add btc 100000 below - alert when BTC drops to 100000
/price btc eth sol
`

var ErrInvalidArguments = errors.New("invalid arguments")

// ParseAddArgs splits "/add SYMBOL PRICE [above|below]" arguments. The
// direction is returned raw; validation and defaulting happen downstream.
func ParseAddArgs(args string) (symbol, price, direction string, err error) {
	parts := strings.Fields(args)
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", "", ErrInvalidArguments
	}
	if len(parts) == 3 {
		direction = parts[2]
	}
	return parts[0], parts[1], direction, nil
}

// ParseRemoveIndex parses the 1-based alert number for /remove.
func ParseRemoveIndex(args string) (int, error) {
	idxStr := strings.TrimSpace(args)
	if idxStr == "" {
		return 0, ErrInvalidArguments
	}
	value, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, ErrInvalidArguments
	}
	return value, nil
}

// ParsePriceArgs returns the symbols requested by /price.
func ParsePriceArgs(args string) ([]string, error) {
	symbols := strings.Fields(args)
	if len(symbols) == 0 {
		return nil, ErrInvalidArguments
	}
	return symbols, nil
}
