package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewCustomerEvent(RoutingKeyCustomerCreated, CustomerEventPayload{
		CustomerID:     "0b9d3c6e-6f3a-4d5e-9c1a-1f2e3d4c5b6a",
		GitHubUsername: "validuser",
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		DateOfBirth:    "1990-01-01",
	})

	assert.Equal(t, RoutingKeyCustomerCreated, evt.Type)
	assert.False(t, evt.Timestamp.Before(before))

	body, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "validuser", payload["githubUsername"])
	assert.Equal(t, "1990-01-01", payload["dateOfBirth"])
}

func TestDeletedEventOmitsEmptyFields(t *testing.T) {
	evt := NewCustomerEvent(RoutingKeyCustomerDeleted, CustomerEventPayload{CustomerID: "abc"})

	body, err := json.Marshal(evt.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customerId":"abc"}`, string(body))
}

func TestNopPublisher(t *testing.T) {
	err := NopPublisher{}.PublishCustomerEvent(context.Background(), NewCustomerEvent(RoutingKeyCustomerUpdated, CustomerEventPayload{}))
	assert.NoError(t, err)
}
