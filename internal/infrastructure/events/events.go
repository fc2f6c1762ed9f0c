package events

import (
	"context"
	"log"
	"time"
)

// Routing keys of the domain events published on the events exchange.
const (
	ManagedAccountLinked    = "managed_account.linked"
	ManagedAccountRefreshed = "managed_account.refreshed"
	ManagedAccountUnlinked  = "managed_account.unlinked"
	CampaignCreated         = "campaign.created"
	CampaignDeleted         = "campaign.deleted"
)

// Envelope is the JSON body of every published event.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, key string, data any) error
	Close() error
}

// Emit publishes an event and logs instead of failing; events never abort
// the operation that produced them.
func Emit(ctx context.Context, p Publisher, key string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, key, data); err != nil {
		log.Printf("[events] publish %s: %v", key, err)
	}
}

// Nop discards every event. Used when RABBIT_URL is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
