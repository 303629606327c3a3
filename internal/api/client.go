package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"financas/internal/cache"
	"financas/internal/core"
	"financas/internal/log"
)

const (
	endpointTransactions = "/transacoes/"
	endpointCategories   = "/categorias/"
	endpointGoals        = "/metas/"
	endpointDashboard    = "/dashboard/"
	endpointAnalytics    = "/analises/"

	maxBodyBytes = 8 << 20
)

// Client talks to the finance backend's REST API. GET responses are
// memoized in an LRU cache keyed by canonical URL; any write purges it.
type Client struct {
	baseURL   string
	http      *http.Client
	logger    *log.Logger
	responses *cache.LRU[[]byte]
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger.WithComponent(log.ComponentAPI) }
}

// WithCache enables response memoization.
func WithCache(responses *cache.LRU[[]byte]) Option {
	return func(c *Client) { c.responses = responses }
}

// New creates a client for the given base URL, e.g. "http://127.0.0.1:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  log.New(log.Config{Component: log.ComponentAPI}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transactions lists transactions matching the filter.
func (c *Client) Transactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var wires []transactionWire
	if err := c.get(ctx, endpointTransactions, f.query(), &wires); err != nil {
		return nil, err
	}
	out := make([]core.Transaction, 0, len(wires))
	for _, w := range wires {
		t, err := w.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// CreateTransaction stores a new transaction and returns the backend's copy.
func (c *Client) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	var w transactionWire
	if err := c.send(ctx, http.MethodPost, endpointTransactions, transactionToWire(t), &w); err != nil {
		return core.Transaction{}, err
	}
	return w.toCore()
}

// UpdateTransaction replaces the transaction with the given ID.
func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	var w transactionWire
	path := itemPath(endpointTransactions, t.ID)
	if err := c.send(ctx, http.MethodPut, path, transactionToWire(t), &w); err != nil {
		return core.Transaction{}, err
	}
	return w.toCore()
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, itemPath(endpointTransactions, id), nil, nil)
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var wires []categoryWire
	if err := c.get(ctx, endpointCategories, nil, &wires); err != nil {
		return nil, err
	}
	out := make([]core.Category, 0, len(wires))
	for _, w := range wires {
		cat, err := w.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, cat core.Category) (core.Category, error) {
	var w categoryWire
	if err := c.send(ctx, http.MethodPost, endpointCategories, categoryToWire(cat), &w); err != nil {
		return core.Category{}, err
	}
	return w.toCore()
}

// UpdateCategory replaces the category with the given ID.
func (c *Client) UpdateCategory(ctx context.Context, cat core.Category) (core.Category, error) {
	var w categoryWire
	path := itemPath(endpointCategories, cat.ID)
	if err := c.send(ctx, http.MethodPut, path, categoryToWire(cat), &w); err != nil {
		return core.Category{}, err
	}
	return w.toCore()
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, itemPath(endpointCategories, id), nil, nil)
}

// Goals lists all goals.
func (c *Client) Goals(ctx context.Context) ([]core.Goal, error) {
	var wires []goalWire
	if err := c.get(ctx, endpointGoals, nil, &wires); err != nil {
		return nil, err
	}
	out := make([]core.Goal, 0, len(wires))
	for _, w := range wires {
		g, err := w.toCore()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// CreateGoal stores a new goal.
func (c *Client) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	var w goalWire
	if err := c.send(ctx, http.MethodPost, endpointGoals, goalToWire(g), &w); err != nil {
		return core.Goal{}, err
	}
	return w.toCore()
}

// UpdateGoal replaces the goal with the given ID.
func (c *Client) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	var w goalWire
	path := itemPath(endpointGoals, g.ID)
	if err := c.send(ctx, http.MethodPut, path, goalToWire(g), &w); err != nil {
		return core.Goal{}, err
	}
	return w.toCore()
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, itemPath(endpointGoals, id), nil, nil)
}

// Dashboard fetches the pre-aggregated dashboard snapshot.
func (c *Client) Dashboard(ctx context.Context, f DashboardFilter) (core.DashboardSummary, error) {
	if err := f.Validate(); err != nil {
		return core.DashboardSummary{}, err
	}
	var w dashboardWire
	if err := c.get(ctx, endpointDashboard, f.query(), &w); err != nil {
		return core.DashboardSummary{}, err
	}
	return w.toCore(), nil
}

// Analytics fetches the monthly balance series and category breakdown.
func (c *Client) Analytics(ctx context.Context, f AnalyticsFilter) (core.AnalyticsSummary, error) {
	if err := f.Validate(); err != nil {
		return core.AnalyticsSummary{}, err
	}
	var w analyticsWire
	if err := c.get(ctx, endpointAnalytics, f.query(), &w); err != nil {
		return core.AnalyticsSummary{}, err
	}
	return w.toCore(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if c.responses != nil {
		if body, ok := c.responses.Get(target); ok {
			c.logger.DebugContext(ctx, "response served from cache",
				log.FieldEndpoint, endpoint, log.FieldCacheHit, true)
			return json.Unmarshal(body, out)
		}
	}

	body, err := c.roundTrip(ctx, http.MethodGet, target, endpoint, nil)
	if err != nil {
		return err
	}

	if c.responses != nil {
		c.responses.Set(target, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, endpoint, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	body, err := c.roundTrip(ctx, method, c.baseURL+endpoint, endpoint, reqBody)
	if err != nil {
		return err
	}

	// Server state changed, cached reads are stale.
	if c.responses != nil {
		c.responses.Purge()
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, target, endpoint string, reqBody io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fields := log.NewFields().WithRequest(method, endpoint).WithRequestID(requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "request failed", fields.WithError(err).ToSlice()...)
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, endpoint, err)
	}

	c.logger.DebugContext(ctx, "request completed",
		fields.WithResponse(resp.StatusCode, time.Since(start).Milliseconds()).ToSlice()...)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(method, endpoint, resp.StatusCode, body)
	}
	return body, nil
}

func itemPath(endpoint string, id int64) string {
	return endpoint + strconv.FormatInt(id, 10) + "/"
}
