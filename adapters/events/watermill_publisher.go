package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/ports"
)

// TransferTopic is the topic issuance notifications are published on
const TransferTopic = "redeemer.transfer"

// TransferEvent is the wire form of core.TransferEvent
type TransferEvent struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID string `json:"token_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     TransferTopic,
	}
}

// PublishTransfer publishes an issuance event
func (p *WatermillPublisher) PublishTransfer(ctx context.Context, event *core.TransferEvent) error {
	payload, err := json.Marshal(TransferEvent{
		From:    event.From.Hex(),
		To:      event.To.Hex(),
		TokenID: event.TokenID.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.Metadata.Set("token_id", event.TokenID.String())
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher drops every event
type NopPublisher struct{}

// PublishTransfer does nothing
func (NopPublisher) PublishTransfer(context.Context, *core.TransferEvent) error { return nil }
