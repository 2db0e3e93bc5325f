package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"kebuli-storefront/internal/domain"
)

// Client talks HTTP+JSON to the restaurant API. All business truth (orders,
// products, auth, addresses, ratings) lives behind this client; the gateway
// only caches what it is told.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client against the given origin.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// apiError is the upstream error envelope. Validation responses carry a
// per-field message map that is surfaced verbatim.
type apiError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// do issues one request and decodes the response into out (if non-nil).
// Status codes are mapped onto the domain error taxonomy so call sites can
// branch with errors.Is.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnprocessableEntity:
		var payload apiError
		if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Errors) > 0 {
			return &domain.ValidationError{Fields: payload.Errors}
		}
		msg := strings.TrimSpace(string(raw))
		if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
			msg = payload.Message
		}
		return domain.NewValidationError("request", msg)
	default:
		return fmt.Errorf("api: %s %s: status %d: %s", method, path, resp.StatusCode, raw)
	}
}
