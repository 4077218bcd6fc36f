// Package rates provides the live exchange-rate provider the converter
// consumes. The provider calls a JSON rate endpoint; any transport error,
// non-200 status, or malformed payload surfaces as an error and the
// converter degrades to its fallback table.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// HTTPProvider fetches exchange rates from a REST endpoint that answers
// GET {baseURL}?from=EUR&to=USD with {"from":"EUR","to":"USD","rate":"1.08"}.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPProvider creates a new HTTPProvider instance.
// Timeouts are driven by the caller's context; the client carries none of its own.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client:  &http.Client{},
	}
}

// rateResponse is the provider endpoint's payload. The rate arrives as a
// JSON string so it can be parsed into a decimal without a float64 detour.
type rateResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Rate string `json:"rate"`
}

// FetchRate fetches the live rate for a currency pair
func (p *HTTPProvider) FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s?from=%s&to=%s", p.BaseURL, url.QueryEscape(from), url.QueryEscape(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("rate fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	var payload rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, err := decimal.NewFromString(payload.Rate)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse rate %q: %w", payload.Rate, err)
	}

	return rate, nil
}
