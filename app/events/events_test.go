package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewOrderEvent(t *testing.T) {
	order := &models.Order{
		ID:          3,
		OrderNumber: "GC-1A2B3C4D",
		CustomerID:  9,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(300),
		Items: []models.OrderItem{
			{ProductID: 1, ProductSku: "RING-1", Quantity: 3, UnitPrice: decimal.NewFromInt(100)},
		},
	}

	ev := NewOrderEvent(TypeOrderPlaced, order)

	assert.Equal(t, TypeOrderPlaced, ev.Type)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, "RING-1", ev.Items[0].Sku)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"order_number":"GC-1A2B3C4D"`)
	assert.Contains(t, string(raw), `"total_amount":"300"`)
}

func TestNewPublisherWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, "orders", zap.NewNop())
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), OrderEvent{}))
}

func TestMemoryPublisher(t *testing.T) {
	m := &MemoryPublisher{}
	require.NoError(t, m.Publish(context.Background(), OrderEvent{Type: TypeOrderCancelled}))
	assert.Len(t, m.Events(), 1)
}

func TestKafkaPublisherDoesNotBlockOnBroker(t *testing.T) {
	w := &kafka.Writer{Addr: kafka.TCP("127.0.0.1:1"), Topic: "orders", MaxAttempts: 1}
	p := newKafkaPublisher(w, zap.NewNop(), 1)

	start := time.Now()
	require.NoError(t, p.Publish(context.Background(), OrderEvent{Type: TypeOrderPlaced, OrderNumber: "GC-00000001"}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	err := p.Publish(context.Background(), OrderEvent{Type: TypeOrderPlaced, OrderNumber: "GC-00000002"})
	assert.ErrorContains(t, err, "queue full")

	go p.run()
	require.NoError(t, p.Close())
	assert.NoError(t, p.Close())
	assert.ErrorIs(t, p.Publish(context.Background(), OrderEvent{}), ErrPublisherClosed)
}
