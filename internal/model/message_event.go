package model

import "time"

const EventMessageCreated = "message.created"

// MessageEvent is published after a message has been persisted.
type MessageEvent struct {
	Type       string    `json:"type"`
	Message    Message   `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}
