package telegram

import (
	"context"
	"log/slog"
	"time"
)

// Handler processes one inbound update. Implementations own their error
// handling; the poller never inspects the outcome.
type Handler interface {
	HandleUpdate(ctx context.Context, update Update)
}

// Poller long-polls the Bot API and fans each update out to the handler in
// its own goroutine, so a slow generation for one chat never blocks events
// for other chats.
type Poller struct {
	client  *Client
	handler Handler
}

func NewPoller(client *Client, handler Handler) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
	}
}

// Run polls until ctx is canceled.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64

	for {
		updates, err := p.client.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("failed to fetch telegram updates, backing off", "error", err)
			select {
			case <-time.After(3 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go p.handler.HandleUpdate(ctx, update)
		}
	}
}
