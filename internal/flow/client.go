package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"neurodiverse/internal/config"
	"neurodiverse/internal/model"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotConfigured is returned when no API key was provided
var ErrNotConfigured = errors.New("flow service API key is not configured")

// Client invokes flows on the remote flow service
type Client struct {
	config  *config.FlowConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new flow client
func NewClient(cfg *config.FlowConfig, logger *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

type invokeRequest struct {
	Flow  *model.FlowDefinition `json:"flow"`
	Input model.FlowPayload     `json:"input"`
}

// Invoke runs a flow with the given payload and returns its generated text
func (c *Client) Invoke(ctx context.Context, def *model.FlowDefinition, payload model.FlowPayload) (string, error) {
	if !c.config.IsEnabled() {
		return "", ErrNotConfigured
	}
	if err := checkPayload(def, payload); err != nil {
		return "", err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("flow %s: %w", def.Name(), err)
	}

	jsonBody, err := json.Marshal(invokeRequest{Flow: def, Input: payload})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("MiraAuthorization", c.config.APIKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("flow request failed",
			zap.String("flow", def.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("flow %s: %w", def.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("flow %s: read response: %w", def.Name(), err)
	}

	c.logger.Info("flow invoked",
		zap.String("flow", def.Name()),
		zap.Int("status", resp.StatusCode),
		zap.Int("inputLength", len(payload.Text)),
		zap.Int("responseBytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("flow %s returned status %d: %s", def.Name(), resp.StatusCode, truncate(string(body), 300))
	}

	var result model.FlowResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("flow %s: decode response: %w", def.Name(), err)
	}
	if result.Result == nil {
		return "", fmt.Errorf("flow %s: response has no result", def.Name())
	}

	return *result.Result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
