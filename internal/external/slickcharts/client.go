// Package slickcharts scrapes the S&P 500 constituents table from
// slickcharts.com. It serves as the fallback roster source when the
// EODHD API is unavailable or unconfigured.
package slickcharts

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lician/backend/pkg/httputil"
	"github.com/lician/backend/pkg/logger"
)

// Client scrapes slickcharts.com.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new slickcharts client.
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://www.slickcharts.com",
	}
}

// Name identifies the source in sync logs.
func (c *Client) Name() string {
	return "slickcharts:sp500"
}

// FetchSymbols scrapes the S&P 500 constituents table and returns the
// ticker symbols in page order (weight-descending).
func (c *Client) FetchSymbols(ctx context.Context) ([]string, error) {
	body, err := c.httpClient.GetBody(ctx, c.baseURL+"/sp500")
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	var symbols []string
	seen := make(map[string]struct{})

	// Symbol cells link to /symbol/{ticker}
	doc.Find("table tbody tr td a[href^='/symbol/']").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		symbol := strings.TrimSpace(strings.TrimPrefix(href, "/symbol/"))
		if symbol == "" {
			return
		}
		// Company name and ticker columns link to the same page
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	})

	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols found in constituents table")
	}

	c.logger.WithField("symbols", len(symbols)).Info("Scraped S&P 500 constituents")

	return symbols, nil
}
