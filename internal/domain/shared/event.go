package shared

import (
	"time"

	"github.com/google/uuid"
)

// Change channels carried by the event bus. Each domain event is published on
// exactly one channel, its EventType.
const (
	ChannelItemsChanged        = "items-changed"
	ChannelTransactionsChanged = "transactions-changed"
	ChannelStaffChanged        = "staff-changed"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	ShopID() uuid.UUID
	Action() string
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggID       uuid.UUID `json:"aggregate_id"`
	AggType     string    `json:"aggregate_type"`
	ShopIDValue uuid.UUID `json:"shop_id"`
	ActionValue string    `json:"action"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the channel of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateID() uuid.UUID {
	return e.AggID
}

// AggregateType returns the type of the aggregate
func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}

// ShopID returns the shop the change belongs to
func (e *BaseDomainEvent) ShopID() uuid.UUID {
	return e.ShopIDValue
}

// Action returns what happened to the aggregate (created, updated, ...)
func (e *BaseDomainEvent) Action() string {
	return e.ActionValue
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(channel, action, aggType string, aggID, shopID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New(),
		Type:        channel,
		Timestamp:   time.Now(),
		AggID:       aggID,
		AggType:     aggType,
		ShopIDValue: shopID,
		ActionValue: action,
	}
}
