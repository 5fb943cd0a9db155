package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	requestTimeout = 15 * time.Second
)

// Client is a minimal Telegram Bot API client covering the two calls the
// relay needs: getMe and sendMessage.
type Client struct {
	botToken string
	baseURL  string
	client   *http.Client
}

// NewClient builds a client for the given bot credential. When forceIPv4
// is set, connections dial tcp4 only; some networks resolve
// api.telegram.org to unroutable IPv6 addresses.
func NewClient(botToken string, forceIPv4 bool) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}

	if forceIPv4 {
		dialer := &net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}
		httpClient.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, "tcp4", addr)
			},
		}
	}

	return &Client{
		botToken: botToken,
		baseURL:  defaultBaseURL,
		client:   httpClient,
	}
}

// GetMe resolves the bot's own identity.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	result, err := c.call(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(result, &user); err != nil {
		return nil, fmt.Errorf("decode getMe result: %w", err)
	}
	return &user, nil
}

// SendMessage delivers one message and returns once the API acknowledges it.
func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) error {
	_, err := c.call(ctx, "sendMessage", params)
	return err
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", method, err)
		}
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("method", method).Dur("elapsed", elapsed).Msg("telegram api request failed")
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.OK {
		log.Error().
			Str("method", method).
			Int("status", resp.StatusCode).
			Str("description", envelope.Description).
			Dur("elapsed", elapsed).
			Msg("telegram api call rejected")
		return nil, fmt.Errorf("%s failed with status %d: %s", method, resp.StatusCode, envelope.Description)
	}

	log.Debug().Str("method", method).Dur("elapsed", elapsed).Msg("telegram api call ok")
	return envelope.Result, nil
}
