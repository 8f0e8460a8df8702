package models

import "time"

// DLQMessage is a queue message that could not be processed.
type DLQMessage struct {
	MessageID    string     `json:"message_id"`
	Topic        string     `json:"topic"`
	Key          string     `json:"key"`
	Value        string     `json:"value"`
	ErrorMessage string     `json:"error_message"`
	Resolved     bool       `json:"resolved"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

type DLQStats struct {
	Total      int            `json:"total"`
	Unresolved int            `json:"unresolved"`
	ByTopic    map[string]int `json:"by_topic"`
}
