package domain

import "time"

// Message is one chat entry. Sender is a by-value snapshot taken at send
// time, so later participant changes never rewrite history.
type Message struct {
	ID        int64       `json:"id"`
	Sender    Participant `json:"sender"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}
