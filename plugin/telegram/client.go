// Package telegram provides a minimal Telegram Bot API client: long polling
// for updates and the handful of send/edit methods the bot needs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Config holds the Telegram client configuration.
type Config struct {
	// Token is the bot token issued by BotFather.
	Token string
	// APIURL is the Bot API base URL (default: https://api.telegram.org).
	APIURL string
	// Timeout is the HTTP timeout for non-polling requests.
	Timeout time.Duration
}

// Client talks to the Telegram Bot API. Outbound calls are throttled to stay
// under the Bot API global send limit (~30 messages per second).
type Client struct {
	httpClient *http.Client
	pollClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a Telegram Bot API client.
func NewClient(cfg Config) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		// Long polling holds the connection open for up to pollTimeout; give
		// the poll client extra headroom instead of sharing the send timeout.
		pollClient: &http.Client{Timeout: timeout + pollTimeout},
		baseURL:    fmt.Sprintf("%s/bot%s", apiURL, cfg.Token),
		limiter:    rate.NewLimiter(rate.Limit(30), 1),
	}
}

const pollTimeout = 50 * time.Second

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// GetUpdates long-polls for new updates starting from offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	payload := map[string]any{
		"offset":          offset,
		"timeout":         int(pollTimeout.Seconds()),
		"allowed_updates": []string{"message", "callback_query"},
	}

	result, err := c.call(ctx, c.pollClient, "getUpdates", payload)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal updates")
	}
	return updates, nil
}

// SendMessage sends a text message, optionally with an inline keyboard.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) error {
	payload := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	if markup != nil {
		payload["reply_markup"] = markup
	}

	_, err := c.call(ctx, c.httpClient, "sendMessage", payload)
	return err
}

// EditMessageText replaces the text of an already sent message.
func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int64, text string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}

	_, err := c.call(ctx, c.httpClient, "editMessageText", payload)
	return err
}

// AnswerCallbackQuery acknowledges a button press so the client stops showing
// the progress indicator.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error {
	payload := map[string]any{
		"callback_query_id": callbackQueryID,
	}

	_, err := c.call(ctx, c.httpClient, "answerCallbackQuery", payload)
	return err
}

func (c *Client) call(ctx context.Context, httpClient *http.Client, method string, payload map[string]any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s payload", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s request failed", method)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", method)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s response", method)
	}
	if !apiResp.OK {
		return nil, errors.Errorf("%s failed: %s", method, apiResp.Description)
	}

	return apiResp.Result, nil
}
