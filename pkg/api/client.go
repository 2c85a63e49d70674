package api

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sparklebot/pkg/logging"
	"sparklebot/pkg/retry"

	"github.com/charmbracelet/x/ansi"
)

const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// ErrEmptyBody is returned for an attempt whose response body was empty.
var ErrEmptyBody = errors.New("empty response body")

// Client sends chat turns to a completion endpoint with bounded retries.
type Client struct {
	Endpoint string
	APIKey   string
	Model    string
	Sender   Sender
	Policy   retry.Policy
}

// NewClient creates a client with the default endpoint, model and retry policy.
func NewClient(apiKey string, sender Sender) *Client {
	if sender == nil {
		sender = NewTransport(nil)
	}
	return &Client{
		Endpoint: DefaultEndpoint,
		APIKey:   apiKey,
		Model:    DefaultModel,
		Sender:   sender,
		Policy:   retry.DefaultPolicy(),
	}
}

// SendWithRetry posts messages to the endpoint, retrying transport failures and
// empty bodies under the client's policy. A non-empty body is returned as is,
// even when it is not valid JSON. The attempt count is always reported.
func (c *Client) SendWithRetry(ctx context.Context, messages []Message) ([]byte, int, error) {
	payload, err := BuildPayload(CompletionRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, 0, err
	}

	req := Request{
		Method: "POST",
		URL:    c.Endpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.APIKey,
			"Content-Type":  "application/json",
		},
		Body: payload,
	}

	slog.Debug("Preparing chat request",
		"model", c.Model,
		"messages_count", len(messages),
		"api_key", logging.MaskSecret(c.APIKey),
		"max_attempts", c.Policy.MaxAttempts)

	body, stats, err := retry.Do(ctx, c.Policy, func(ctx context.Context, attempt int) ([]byte, error) {
		data, err := c.Sender.Send(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			slog.Warn("Empty response body", "attempt", attempt)
			return nil, ErrEmptyBody
		}
		return data, nil
	})
	if err != nil {
		slog.Error("Chat request failed", "attempts", stats.Attempts, "error", err)
		return nil, stats.Attempts, err
	}
	return body, stats.Attempts, nil
}

// Complete runs one chat turn: retrying send followed by Parse.
func (c *Client) Complete(ctx context.Context, messages []Message) Completion {
	body, attempts, err := c.SendWithRetry(ctx, messages)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Completion{Kind: KindCanceled, Reason: ctxErr.Error(), Attempts: attempts}
		}
		return Completion{Kind: KindTransportError, Reason: err.Error(), Attempts: attempts}
	}

	completion := Parse(body)
	completion.Attempts = attempts

	switch completion.Kind {
	case KindSuccess:
		slog.Debug("Chat completion received",
			"attempts", attempts,
			"response_preview", preview(completion.Reply))
	case KindEmpty:
		slog.Warn("Chat completion had no choices", "detail", completion.Reason, "body_preview", preview(string(body)))
	case KindParseError:
		slog.Error("Failed to parse chat completion", "reason", completion.Reason, "body_preview", preview(string(body)))
	}
	return completion
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return ansi.Truncate(s, 100, "...")
}
