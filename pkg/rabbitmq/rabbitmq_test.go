package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg, err := newPublishing(map[string]interface{}{"type": "product.created", "productID": 7}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, now, msg.Timestamp)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "product.created", decoded["type"])
	assert.Equal(t, float64(7), decoded["productID"])
}

func TestNewPublishing_UnsupportedPayload(t *testing.T) {
	_, err := newPublishing(make(chan int), time.Now())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal event")
}

func TestClientWithoutChannel(t *testing.T) {
	c := &Client{queue: DefaultQueue}

	err := c.PublishEvent(map[string]string{"type": "product.deleted"})
	assert.EqualError(t, err, "RabbitMQ channel is not available")

	err = c.ConsumeEvents(func(amqp.Delivery) error { return nil })
	assert.EqualError(t, err, "RabbitMQ channel is not available for consumption")

	assert.NoError(t, c.Close())
}
