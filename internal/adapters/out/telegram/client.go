// Package telegram implements the outbound Messenger port against the
// Telegram Bot API. Messages are sent with HTML parse mode and optional
// inline keyboards.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"boutique/internal/core/ports"
)

const defaultBaseURL = "https://api.telegram.org"

// clientTimeout bounds each API call so a slow Telegram never stalls the
// request that triggered the notification.
const clientTimeout = 5 * time.Second

// Client talks to the Telegram Bot API for one bot token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API host, used by tests to point at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Telegram client for the given bot token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: clientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID    string       `json:"chat_id"`
	Text      string       `json:"text"`
	ParseMode string       `json:"parse_mode"`
	Markup    *replyMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts one HTML message to the chat, with the buttons rendered
// as an inline keyboard when present.
func (c *Client) SendMessage(ctx context.Context, chatID string, text string, buttons [][]ports.Button) error {
	payload := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	if len(buttons) > 0 {
		markup := &replyMarkup{InlineKeyboard: make([][]inlineButton, 0, len(buttons))}
		for _, row := range buttons {
			apiRow := make([]inlineButton, 0, len(row))
			for _, b := range row {
				apiRow = append(apiRow, inlineButton{Text: b.Label, CallbackData: b.Data})
			}
			markup.InlineKeyboard = append(markup.InlineKeyboard, apiRow)
		}
		payload.Markup = markup
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message to chat %s: %w", chatID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read sendMessage response: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode sendMessage response (status %d): %w", resp.StatusCode, err)
	}
	if !decoded.OK {
		return fmt.Errorf("telegram rejected message to chat %s: %s", chatID, decoded.Description)
	}

	return nil
}
