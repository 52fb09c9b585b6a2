// Package rest is the client for the remote TechStore API. It owns the wire
// format (Spanish field names, float euro prices) and the uniform error
// decoding; callers only ever see entity types and classified errors.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/logging"
)

// TokenSource yields the current bearer token, or "" when anonymous. The
// session store implements it; the client never caches the credential.
type TokenSource interface {
	Token() string
}

type anonymous struct{}

func (anonymous) Token() string { return "" }

type Client struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = anonymous{}
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	return c.roundTrip(ctx, method, path, auth, "", "", body, out)
}

func (c *Client) doWithHeader(ctx context.Context, method, path, hdrKey, hdrVal string, body, out any) error {
	return c.roundTrip(ctx, method, path, true, hdrKey, hdrVal, body, out)
}

// roundTrip runs one JSON exchange. A non-2xx response becomes a
// *StatusError carrying the server's `detail`/`error` text when present;
// anything that fails before a status line is an *entity.TransportError.
func (c *Client) roundTrip(ctx context.Context, method, path string, auth bool, hdrKey, hdrVal string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &entity.TransportError{Message: "could not encode request", Err: err}
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &entity.TransportError{Message: "could not build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if hdrKey != "" && hdrVal != "" {
		req.Header.Set(hdrKey, hdrVal)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &entity.TransportError{Message: "could not reach the store", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := decodeError(resp)
		logging.FromCtx(ctx).Warn("api request failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return serr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &entity.TransportError{Message: "could not decode response", Err: err}
	}
	return nil
}

// decodeError extracts the message of a failed response. The API puts
// human-readable text in `detail` (FastAPI style) or `error`; a body that is
// not JSON is used raw, and an empty one falls back to "status N".
func decodeError(resp *http.Response) *entity.StatusError {
	msg := fmt.Sprintf("status %d", resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		var payload struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			if payload.Detail != "" {
				msg = payload.Detail
			} else if payload.Error != "" {
				msg = payload.Error
			}
		} else {
			msg = string(raw)
		}
	}
	return &entity.StatusError{Code: resp.StatusCode, Message: msg}
}
