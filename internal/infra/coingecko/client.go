package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client queries the simple-price endpoint of a CoinGecko-compatible API.
type Client struct {
	baseURL  string
	currency string
	client   *http.Client
	logger   *zap.Logger
}

func NewClient(baseURL, currency string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: strings.ToLower(currency),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Fetch returns current prices for the given canonical coin ids in one
// batch request. Ids the service does not quote are absent from the result;
// only transport, status, and decode failures are errors.
func (c *Client) Fetch(ctx context.Context, coinIDs []string) (map[string]decimal.Decimal, error) {
	if len(coinIDs) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(coinIDs, ","))
	query.Set("vs_currencies", c.currency)
	endpoint := fmt.Sprintf("%s/simple/price?%s", c.baseURL, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("quote request failed", zap.Strings("ids", coinIDs), zap.Error(err))
		return nil, err
	}
	defer response.Body.Close()

	c.logger.Debug(
		"quote request complete",
		zap.Strings("ids", coinIDs),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("quote service: status %d", response.StatusCode)
	}

	var payload map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("quote service: decode: %w", err)
	}

	prices := make(map[string]decimal.Decimal, len(payload))
	for id, quotes := range payload {
		if price, ok := quotes[c.currency]; ok {
			prices[id] = price
		}
	}
	return prices, nil
}
