package coordination_test

import (
	"encoding/json"
	"testing"
	"time"

	"tableside/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Off-process consumers bind to the fanout exchange and parse the JSON body,
// so the field names are a wire contract.
func TestEventWireFormat(t *testing.T) {
	occurred := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	body, err := json.Marshal(ports.Event{
		Kind:       ports.EventOrderStatusChanged,
		TenantID:   "tenant-1",
		OrderID:    "order-1",
		TableID:    "table-1",
		Status:     "preparing",
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "order.status_changed", decoded["kind"])
	assert.Equal(t, "tenant-1", decoded["tenant_id"])
	assert.Equal(t, "order-1", decoded["order_id"])
	assert.Equal(t, "table-1", decoded["table_id"])
	assert.Equal(t, "preparing", decoded["status"])
	assert.Equal(t, "2025-06-01T12:30:00Z", decoded["occurred_at"])

	// Fields that do not apply to the event kind stay off the wire.
	assert.NotContains(t, decoded, "occupancy")
}
