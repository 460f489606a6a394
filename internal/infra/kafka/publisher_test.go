package kafka

import (
	"testing"
	"time"

	"icafe-booking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_KeyedByOrder(t *testing.T) {
	evt := domain.OrderEvent{OrderID: "o-1", Status: domain.StatusPending, OccurredAt: time.Unix(0, 0).UTC()}

	m, err := message(domain.EventOrderCreated, evt)
	require.NoError(t, err)

	assert.Equal(t, "order.created", m.Topic)
	assert.Equal(t, []byte("o-1"), m.Key)
	assert.Contains(t, string(m.Value), `"orderId":"o-1"`)
	assert.Equal(t, "x-event-type", m.Headers[0].Key)
}

func TestMessage_Unkeyed(t *testing.T) {
	m, err := message("misc", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Nil(t, m.Key)
}
