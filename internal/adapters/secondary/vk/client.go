package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"
)

const (
	vkAPIBaseURL = "https://api.vk.com/method/"
	apiTimeout   = 30 * time.Second
)

// Client клиент для работы с VK Bot API (от имени сообщества)
type Client struct {
	httpClient *http.Client
	token      string
	version    string
	log        *slog.Logger
}

// NewClient создаёт новый клиент для VK Bot API
func NewClient(cfg *Config, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: apiTimeout,
		},
		token:   cfg.Token,
		version: cfg.APIVersion,
		log:     log,
	}
}

// callMethod выполняет запрос к методу VK API и возвращает поле response
func (c *Client) callMethod(ctx context.Context, method string, params url.Values) (json.RawMessage, error) {
	params.Set("access_token", c.token)
	params.Set("v", c.version)

	endpoint := vkAPIBaseURL + method

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		c.log.Error("failed to create request",
			"error", err,
			"method", method,
		)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("failed to send request to vk",
			"error", err,
			"method", method,
		)
		return nil, fmt.Errorf("failed to send request to vk: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read response body",
			"error", err,
			"method", method,
			"status_code", resp.StatusCode,
		)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		c.log.Error("failed to unmarshal response",
			"error", err,
			"method", method,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		c.log.Error("vk API returned error",
			"error_code", apiResp.Error.Code,
			"description", apiResp.Error.Message,
			"method", method,
			"status_code", resp.StatusCode,
		)
		return nil, fmt.Errorf("vk API error: %s (code: %d)", apiResp.Error.Message, apiResp.Error.Code)
	}

	return apiResp.Response, nil
}
