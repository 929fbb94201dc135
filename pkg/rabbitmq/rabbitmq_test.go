package rabbitmq

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_OpensBreakerAfterConsecutiveFailures(t *testing.T) {
	c := &Client{breaker: newBreaker(Config{BreakerMaxFailures: 3, BreakerOpenTimeout: time.Minute})}

	for i := 0; i < 3; i++ {
		err := c.Publish("order.placed", map[string]string{"order_id": "o-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel is not available")
		assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}

	err := c.Publish("order.placed", map[string]string{"order_id": "o-2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, gobreaker.StateOpen, c.breaker.State())
}

func TestPublish_RejectsUnmarshalablePayload(t *testing.T) {
	c := &Client{breaker: newBreaker(Config{})}

	err := c.Publish("order.placed", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal")
	// Marshal failures never reach the breaker.
	assert.Equal(t, uint32(0), c.breaker.Counts().Requests)
}

func TestConsumeOrderEvents_RequiresChannel(t *testing.T) {
	c := &Client{breaker: newBreaker(Config{})}

	err := c.ConsumeOrderEvents(nil)
	assert.Error(t, err)
}

func TestClose_WithoutConnection(t *testing.T) {
	c := &Client{}
	assert.NoError(t, c.Close())
}
