package domain

import "time"

// Interest is the topic name device tokens are registered against.
type Interest string

// Subscription binds a device token to an interest. At most one row exists per interest.
type Subscription struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Interest  Interest  `json:"interest" gorm:"uniqueIndex;not null"`
	Token     string    `json:"-" gorm:"index;not null"` // Don't expose token in JSON
	CreatedAt time.Time `json:"created_at"`
}

// EventType describes what happened to an interest's subscription
type EventType string

const (
	EventSubscribed   EventType = "subscribed"
	EventUnsubscribed EventType = "unsubscribed"
)

// SubscriptionEvent is emitted after a subscription change has been committed
type SubscriptionEvent struct {
	Type       EventType `json:"type"`
	Interest   Interest  `json:"interest"`
	Token      string    `json:"token,omitempty"`
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
