package ports

import (
	"context"

	"github.com/layer-3/redeemer/core"
)

// EventPublisher notifies external observers about issuance
type EventPublisher interface {
	PublishTransfer(ctx context.Context, event *core.TransferEvent) error
}
