package slack

import "context"

// Message is the incoming-webhook payload.
type Message struct {
	Text string `json:"text"`
}

// Notifier sends best-effort chat notifications.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
