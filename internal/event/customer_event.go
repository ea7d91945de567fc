package event

import (
	"context"
	"time"
)

const (
	RoutingKeyCustomerCreated = "customer.created"
	RoutingKeyCustomerUpdated = "customer.updated"
	RoutingKeyCustomerDeleted = "customer.deleted"
)

type CustomerEventPayload struct {
	CustomerID     string `json:"customerId"`
	GitHubUsername string `json:"githubUsername,omitempty"`
	FullName       string `json:"fullName,omitempty"`
	Email          string `json:"email,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
}

type CustomerEvent struct {
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

func NewCustomerEvent(routingKey string, payload CustomerEventPayload) CustomerEvent {
	return CustomerEvent{
		Type:      routingKey,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

type EventPublisher interface {
	PublishCustomerEvent(ctx context.Context, event CustomerEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCustomerEvent(context.Context, CustomerEvent) error { return nil }

var _ EventPublisher = NopPublisher{}
