// Package gateway is the HTTP client for the expense backend REST API.
// Every call is a fresh round trip; failures are surfaced immediately as
// a typed *Error with no retries and no caching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gagyebu/internal/core"
)

// Error kinds. Network covers transport-level failures (dial, timeout,
// connection reset); ServerRejected covers any non-2xx response.
const (
	KindNetwork Kind = iota + 1
	KindServerRejected
)

type Kind int

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServerRejected:
		return "server rejected"
	default:
		return "unknown"
	}
}

// Error is the typed failure for gateway calls.
type Error struct {
	Kind    Kind
	Status  int // HTTP status for ServerRejected, 0 otherwise
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindServerRejected && e.Status != 0 {
		return fmt.Sprintf("gateway: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gateway: %s: %s", e.Kind, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client for the given backend base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches all transactions. Records are normalized to the canonical
// model at this boundary; the rest of the program never sees legacy
// sign-encoded amounts.
func (c *Client) List(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &out); err != nil {
		return nil, err
	}
	return core.NormalizeAll(out), nil
}

// Create posts a new transaction draft and returns the stored record with
// its server-assigned id and createdAt.
func (c *Client) Create(ctx context.Context, d core.Draft) (core.Transaction, error) {
	var out core.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/expenses", d, &out); err != nil {
		return core.Transaction{}, err
	}
	return core.Normalize(out), nil
}

// Update replaces all editable fields of the transaction with the given id.
func (c *Client) Update(ctx context.Context, id string, d core.Draft) (core.Transaction, error) {
	var out core.Transaction
	if err := c.do(ctx, http.MethodPut, "/api/expenses/"+url.PathEscape(id), d, &out); err != nil {
		return core.Transaction{}, err
	}
	return core.Normalize(out), nil
}

// Delete removes the transaction with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:    KindServerRejected,
			Status:  resp.StatusCode,
			Message: readErrorBody(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Message: "decode response: " + err.Error()}
	}
	return nil
}

// readErrorBody extracts a short human-readable message from a failure
// response, preferring the {"error": "..."} shape the backend uses.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
