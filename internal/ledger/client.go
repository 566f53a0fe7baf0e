// Package ledger implements the HTTP client for the transaction ledger
// service, the external owner of all transaction data.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

const userIDHeader = "X-User-Id"

// Client calls the transaction ledger over HTTP. It implements
// service.LedgerClient. Transient failures are retried with backoff; any
// final failure surfaces as common.ErrUpstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      common.RetryOptions
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryOptions overrides the retry policy for ledger calls.
func WithRetryOptions(opts common.RetryOptions) Option {
	return func(c *Client) { c.retry = opts }
}

// NewClient creates a ledger client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ledger base URL cannot be empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retry:      common.RetryOptions{MaxAttempts: 3},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetSpentAmount returns the total expense amount in the window, scoped to a
// category when categoryID is non-nil.
func (c *Client) GetSpentAmount(ctx context.Context, userID int64, categoryID *int64, start, end model.Date) (decimal.Decimal, error) {
	params := url.Values{}
	if categoryID != nil {
		params.Set("categoryId", strconv.FormatInt(*categoryID, 10))
	}
	params.Set("startDate", start.String())
	params.Set("endDate", end.String())

	var spent decimal.Decimal
	if err := c.getJSON(ctx, userID, "/transactions/calculate-spent", params, &spent); err != nil {
		return decimal.Zero, err
	}
	return spent, nil
}

// GetBalance returns income/expense totals and per-category breakdowns for
// the window.
func (c *Client) GetBalance(ctx context.Context, userID int64, start, end model.Date) (*model.Balance, error) {
	params := url.Values{}
	params.Set("startDate", start.String())
	params.Set("endDate", end.String())

	var balance model.Balance
	if err := c.getJSON(ctx, userID, "/transactions/balance", params, &balance); err != nil {
		return nil, err
	}
	if balance.ExpenseByCategory == nil {
		balance.ExpenseByCategory = map[string]decimal.Decimal{}
	}
	if balance.IncomeByCategory == nil {
		balance.IncomeByCategory = map[string]decimal.Decimal{}
	}
	return &balance, nil
}

// GetRecentTransactions returns one page of transactions sorted by the given
// field and direction.
func (c *Client) GetRecentTransactions(ctx context.Context, userID int64, page, size int, sortBy, sortDir string) (*model.TransactionPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	params.Set("sortBy", sortBy)
	params.Set("sortDir", sortDir)

	var result model.TransactionPage
	if err := c.getJSON(ctx, userID, "/transactions", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTransactionsByDateRange returns one page of transactions inside the
// window.
func (c *Client) GetTransactionsByDateRange(ctx context.Context, userID int64, start, end model.Date, page, size int) (*model.TransactionPage, error) {
	params := url.Values{}
	params.Set("startDate", start.String())
	params.Set("endDate", end.String())
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var result model.TransactionPage
	if err := c.getJSON(ctx, userID, "/transactions/date-range", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON performs a GET against the ledger and decodes the JSON response.
// 5xx and transport errors are retried; 4xx responses are not.
func (c *Client) getJSON(ctx context.Context, userID int64, path string, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse ledger URL: %w", err)
	}
	u.RawQuery = params.Encode()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("ledger request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("ledger returned %d: %s", resp.StatusCode, string(body))
			if resp.StatusCode >= 500 {
				return err
			}
			return &common.RetryableError{Err: err, Retryable: false}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &common.RetryableError{
				Err:       fmt.Errorf("failed to decode ledger response: %w", err),
				Retryable: false,
			}
		}
		return nil
	}

	if err := common.WithRetry(ctx, operation, c.retry); err != nil {
		return common.Upstreamf("ledger call %s failed: %v", path, err)
	}
	return nil
}
