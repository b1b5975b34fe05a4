package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/middleware/requestid"
)

const maxErrorBody = 64 << 10

type callObserver interface {
	ObserveBackendCall(op string, status int, duration time.Duration)
}

type tokenKey struct{}

// WithBearerToken attaches the caller's access token so backend calls are made on their behalf.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// BearerToken returns the access token attached by WithBearerToken.
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// BackendClient issues JSON requests against the lab REST backend.
type BackendClient struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer callObserver
}

// NewBackendClient constructs a client. A nil httpClient uses one with the given timeout.
func NewBackendClient(baseURL string, httpClient *http.Client, timeout time.Duration, logger *zap.Logger, observer callObserver) *BackendClient {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackendClient{baseURL: baseURL, http: httpClient, logger: logger, observer: observer}
}

type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Do sends body as JSON and decodes the response into out when out is non-nil.
// op is a stable label for logs and metrics.
func (c *BackendClient) Do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(op, 0, duration)
		c.logger.Warn("backend call failed", zap.String("op", op), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, appErrors.ErrBackend.Message)
	}
	defer resp.Body.Close()
	c.observe(op, resp.StatusCode, duration)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(fmt.Errorf("decode %s response: %w", op, err), appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "unexpected backend response")
	}
	return nil
}

func (c *BackendClient) statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var decoded backendError
	_ = json.Unmarshal(raw, &decoded)
	message := decoded.Message
	if message == "" {
		message = decoded.Error
	}

	c.logger.Warn("backend rejected request", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("message", message))
	return appErrors.FromBackendStatus(resp.StatusCode, message, fmt.Errorf("%s: backend status %d", op, resp.StatusCode))
}

func (c *BackendClient) observe(op string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveBackendCall(op, status, duration)
	}
}
