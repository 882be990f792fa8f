// Package discord отправляет сообщения в канал Discord через REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Значения по умолчанию.
const (
	DefaultBaseURL = "https://discord.com/api/v10"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 500
)

// Config — конфигурация Client.
type Config struct {
	BaseURL   string        // базовый URL API (default: DefaultBaseURL)
	Token     string        // токен бота
	ChannelID string        // ID канала для объявлений
	Timeout   time.Duration // таймаут одного запроса (default: 30s)

	// HTTPClient — опционально; если nil, создаётся http.Client с Timeout.
	HTTPClient *http.Client
}

// Client отправляет сообщения в один канал.
type Client struct {
	baseURL   string
	token     string
	channelID string
	http      *http.Client
}

// New создаёт новый Client.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:   baseURL,
		token:     cfg.Token,
		channelID: cfg.ChannelID,
		http:      httpClient,
	}
}

// createMessageRequest — тело POST /channels/{id}/messages.
type createMessageRequest struct {
	Content string `json:"content"`
}

// MessagesURL возвращает URL создания сообщения в канале.
func (c *Client) MessagesURL() string {
	return fmt.Sprintf("%s/channels/%s/messages", c.baseURL, c.channelID)
}

// Send публикует сообщение в канал.
//
// Ответ вне 2xx возвращается как *DeliveryError,
// сетевые ошибки оборачивают ErrRequest.
func (c *Client) Send(ctx context.Context, content string) error {
	body, err := json.Marshal(createMessageRequest{Content: content})
	if err != nil {
		return fmt.Errorf("%w: marshal body: %v", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.MessagesURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrRequest, err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
	}
	return nil
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
