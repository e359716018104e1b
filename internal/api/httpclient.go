package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventadmin/internal/logging"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for outbound requests. An empty
// token means the request goes out without an Authorization header.
type TokenSource interface {
	Token() string
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func newHTTPClient(baseURL string, tokens TokenSource, hc *http.Client) *httpClient {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		tokens:     tokens,
	}
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, payload any) (request, error) {
	req := request{op: op, method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("failed to marshal request body: %w", err)}
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out when out is non-nil.
// A request id already on ctx is reused so the calls of one operator action
// share it; otherwise each call gets its own.
func (c *httpClient) do(ctx context.Context, req request, out any) error {
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = logging.WithOperation(ctx, requestID, req.op)

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: req.op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logExchange(ctx, req, 0, start, err)
		return &Error{Kind: KindTransport, Op: req.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logExchange(ctx, req, resp.StatusCode, start, err)
		return &Error{Kind: KindTransport, Op: req.op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	c.logExchange(ctx, req, resp.StatusCode, start, nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code, message := decodeErrorBody(body)
		return &Error{Kind: KindStatus, Op: req.op, Status: resp.StatusCode, Code: code, Message: message}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindDecode, Op: req.op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *httpClient) logExchange(ctx context.Context, req request, status int, start time.Time, err error) {
	attrs := append(logging.OperationAttrs(ctx),
		slog.String("method", req.method),
		slog.String("path", req.path),
		slog.Int("status", status),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		slog.LogAttrs(ctx, slog.LevelWarn, "api request failed", attrs...)
		return
	}
	slog.LogAttrs(ctx, slog.LevelDebug, "api request", attrs...)
}
