// Package signal is the in-process broadcast channel for the two navigation
// requests that originate from deeply nested views: "open this business
// profile" and "open an order for this business". Payloads carry a single
// id, matching the {id} shape of the web client's custom events.
package signal

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics for the two cross-component signals.
const (
	TopicOpenBusiness = "open-business-profile"
	TopicOpenOrder    = "open-pedido"
)

type payload struct {
	ID int64 `json:"id"`
}

// Bus is a thin wrapper over a watermill in-memory pub/sub.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates the bus.
func NewBus() *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
	}
}

// PublishOpenBusiness requests the business-profile view for id.
func (b *Bus) PublishOpenBusiness(id int64) error {
	return b.publish(TopicOpenBusiness, id)
}

// PublishOpenOrder requests the order form, optionally pinned to a business
// (id == 0 means no preselection).
func (b *Bus) PublishOpenOrder(id int64) error {
	return b.publish(TopicOpenOrder, id)
}

func (b *Bus) publish(topic string, id int64) error {
	data, err := json.Marshal(payload{ID: id})
	if err != nil {
		return err
	}
	return b.pubsub.Publish(topic, message.NewMessage(watermill.NewUUID(), data))
}

// Subscribe returns a channel of ids published on topic. The channel closes
// when ctx is cancelled or the bus shuts down. Malformed payloads are
// acked and dropped.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan int64, error) {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := make(chan int64)
	go func() {
		defer close(out)
		for msg := range messages {
			var p payload
			err := json.Unmarshal(msg.Payload, &p)
			msg.Ack()
			if err != nil {
				continue
			}
			select {
			case out <- p.ID:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close shuts the bus down and terminates all subscriptions.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
