// Package notify delivers customer notifications through the messaging
// provider's HTTP API. Message text is rendered by the provider from the
// template named after the notification kind.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 64 << 10
)

var _ ports.NotificationDispatcher = (*HTTPDispatcher)(nil)

type HTTPDispatcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPDispatcher(baseURL, token string, timeout time.Duration) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPDispatcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type message struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params,omitempty"`
}

type messageResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// Send makes exactly one request. Every failure is returned in the result.
func (d *HTTPDispatcher) Send(
	ctx context.Context,
	kind ports.NotificationKind,
	phone string,
	data map[string]string,
) ports.DispatchResult {
	if d.baseURL == "" {
		return ports.DispatchResult{Error: "messaging provider is not configured"}
	}
	if phone == "" {
		return ports.DispatchResult{Error: "recipient phone is empty"}
	}

	body, err := json.Marshal(message{To: phone, Template: string(kind), Params: data})
	if err != nil {
		return ports.DispatchResult{Error: fmt.Sprintf("encode message: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return ports.DispatchResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return ports.DispatchResult{Error: fmt.Sprintf("send message: %v", err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var decoded messageResponse
	_ = json.Unmarshal(respBody, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("messaging provider returned status %d", resp.StatusCode)
		if decoded.Error != "" {
			msg += ": " + decoded.Error
		}
		return ports.DispatchResult{Error: msg}
	}

	return ports.DispatchResult{Success: true, MessageID: decoded.MessageID}
}
