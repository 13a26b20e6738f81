// Package eodhd fetches exchange symbol lists from the EODHD API, the
// primary roster source.
package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lician/backend/pkg/httputil"
	"github.com/lician/backend/pkg/logger"
)

// Client handles communication with the EODHD API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	exchange   string
}

// NewClient creates a new EODHD client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, apiKey, exchange string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		apiKey:     apiKey,
		exchange:   exchange,
	}
}

// Name identifies the source in sync logs.
func (c *Client) Name() string {
	return fmt.Sprintf("eodhd:%s", c.exchange)
}

// symbolRow is one entry of the exchange-symbol-list response.
type symbolRow struct {
	Code     string `json:"Code"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Exchange string `json:"Exchange"`
}

// FetchSymbols returns the common-stock symbols of the configured
// exchange. ETFs, funds and preferred shares are filtered out; the
// comparison pages only cover common stocks.
func (c *Client) FetchSymbols(ctx context.Context) ([]string, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("eodhd API key is not configured")
	}

	params := url.Values{}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	endpoint := fmt.Sprintf("%s/exchange-symbol-list/%s?%s", c.baseURL, c.exchange, params.Encode())

	var rows []symbolRow
	if err := c.httpClient.GetJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("fetch symbol list: %w", err)
	}

	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Type != "Common Stock" || row.Code == "" {
			continue
		}
		symbols = append(symbols, row.Code)
	}

	c.logger.WithFields(map[string]interface{}{
		"exchange": c.exchange,
		"total":    len(rows),
		"stocks":   len(symbols),
	}).Info("Fetched EODHD symbol list")

	return symbols, nil
}
