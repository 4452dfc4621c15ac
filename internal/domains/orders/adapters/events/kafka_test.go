package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func TestKafkaPublisher_EncodesEvent(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewKafkaPublisher(producer, "orders.events")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := publisher.Publish(context.Background(), domain.ItemStatusChanged{
		BaseEvent:  domain.BaseEvent{OrderID: "ord-1", Timestamp: at},
		ProductID:  "A",
		FromStatus: domain.AdminProcessing,
		ToStatus:   domain.AdminConfirmed,
		TrackingID: "TRK1",
	})
	require.NoError(t, err)
	require.Len(t, producer.records, 1)

	record := producer.records[0]
	assert.Equal(t, "orders.events", record.Topic)
	assert.Equal(t, []byte("ord-1"), record.Key)
	assert.Equal(t, at, record.Timestamp)

	var header string
	for _, h := range record.Headers {
		if h.Key == "event_type" {
			header = string(h.Value)
		}
	}
	assert.Equal(t, "orders.item.status_changed", header)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(record.Value, &payload))
	assert.Equal(t, "ord-1", payload["orderId"])
	assert.Equal(t, "Confirmed", payload["toStatus"])
	assert.Equal(t, "TRK1", payload["trackingId"])
}

func TestKafkaPublisher_ReturnsProduceError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("not leader")}
	publisher := NewKafkaPublisher(producer, "orders.events")

	err := publisher.Publish(context.Background(), domain.OrderStatusChanged{BaseEvent: domain.BaseEvent{OrderID: "ord-1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders.order.status_changed")
}
