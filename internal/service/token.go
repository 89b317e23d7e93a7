package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"orderdash/internal/metrics"
)

// TokenClient exchanges the process credentials for a bearer token. One POST,
// no retry, no caching; callers request a fresh token per operation.
type TokenClient struct {
	authURL string
	client  *http.Client
	logger  *zap.Logger
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func NewTokenClient(authURL string, logger *zap.Logger) *TokenClient {
	return &TokenClient{
		authURL: authURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// FetchToken returns the upstream access token. Any failure is logged and
// surfaced as an error; the HTTP layer collapses it to an empty payload.
func (c *TokenClient) FetchToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("auth", "error").Inc()
		c.logger.Error("token request failed", zap.Error(err))
		return "", fmt.Errorf("do token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("auth", "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("token endpoint returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("unexpected token status: %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		metrics.UpstreamRequests.WithLabelValues("auth", "error").Inc()
		c.logger.Error("token response decode failed", zap.Error(err))
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		metrics.UpstreamRequests.WithLabelValues("auth", "error").Inc()
		return "", errors.New("token response missing access_token")
	}

	metrics.UpstreamRequests.WithLabelValues("auth", "ok").Inc()
	return tok.AccessToken, nil
}
