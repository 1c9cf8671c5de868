package service

import (
	"context"
	"time"
)

// EventTypeLikeToggled is the event type attribute of LikeToggledEvent messages.
const EventTypeLikeToggled = "like.toggled"

// LikeToggledEvent is published after a like toggle commits. The worker uses it to
// reconcile the cached like count against the stored Like records.
type LikeToggledEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Liked     bool      `json:"liked"`
	LikeCount int       `json:"like_count"`
	ToggledAt time.Time `json:"toggled_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLikeToggled publishes a like toggle for asynchronous reconciliation
	PublishLikeToggled(ctx context.Context, event *LikeToggledEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
