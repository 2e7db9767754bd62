package models

import "time"

// Event types published to Kafka.
const (
	EventUserRegistered      = "user.registered"
	EventUserPasswordChanged = "user.password_changed"
	EventUserPasswordReset   = "user.password_reset"
	EventUserDeactivated     = "user.deactivated"
	EventUserStatusToggled   = "user.status_toggled"
	EventPostCreated         = "post.created"
	EventPostDeleted         = "post.deleted"
)

// Event is a domain event published to Kafka after a state change.
type Event struct {
	EventID    string    `json:"event_id"`           // Unique event id
	Type       string    `json:"type"`               // One of the Event* constants
	UserID     int64     `json:"user_id,omitempty"`  // Affected user
	PostID     int64     `json:"post_id,omitempty"`  // Affected post, if any
	Username   string    `json:"username,omitempty"` // Affected username
	OccurredAt time.Time `json:"occurred_at"`        // Event timestamp
}
