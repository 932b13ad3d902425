package services

import (
	"encoding/json"
	"log"
	"time"

	"bjjtracker/pkg/rabbitmq"
)

// EventPublisher is satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ActivityEvent is published after every successful write.
type ActivityEvent struct {
	Event    string    `json:"event"`
	UserID   string    `json:"userId"`
	RecordID string    `json:"recordId"`
	At       time.Time `json:"at"`
}

// publishActivity is best effort: a failed publish never fails the write.
func publishActivity(pub EventPublisher, event, userID, recordID string) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(ActivityEvent{Event: event, UserID: userID, RecordID: recordID, At: time.Now().UTC()})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := pub.Publish(rabbitmq.ActivityExchange, event, body); err != nil {
		log.Printf("Warning: failed to publish %s event for record %s: %v", event, recordID, err)
	}
}
