package slickcharts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lician/backend/pkg/httputil"
	"github.com/lician/backend/pkg/logger"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<table class="table">
  <thead><tr><th>#</th><th>Company</th><th>Symbol</th><th>Weight</th></tr></thead>
  <tbody>
    <tr><td>1</td><td><a href="/symbol/NVDA">NVIDIA</a></td><td><a href="/symbol/NVDA">NVDA</a></td><td>7.5%</td></tr>
    <tr><td>2</td><td><a href="/symbol/MSFT">Microsoft</a></td><td><a href="/symbol/MSFT">MSFT</a></td><td>6.8%</td></tr>
    <tr><td>3</td><td><a href="/symbol/AAPL">Apple</a></td><td><a href="/symbol/AAPL">AAPL</a></td><td>6.1%</td></tr>
  </tbody>
</table>
</body></html>`

func newTestClient(url string) *Client {
	client := NewClient(httputil.New(logger.NewNop()).DisableRetry(), logger.NewNop())
	client.baseURL = url
	return client
}

func TestFetchSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sp500", r.URL.Path)
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	symbols, err := newTestClient(server.URL).FetchSymbols(context.Background())
	require.NoError(t, err)

	// Duplicated company/ticker links collapse to one symbol each,
	// page order preserved
	assert.Equal(t, []string{"NVDA", "MSFT", "AAPL"}, symbols)
}

func TestFetchSymbolsEmptyTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>maintenance</p></body></html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchSymbols(context.Background())
	assert.Error(t, err)
}

func TestFetchSymbolsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchSymbols(context.Background())
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "slickcharts:sp500", NewClient(nil, logger.NewNop()).Name())
}
