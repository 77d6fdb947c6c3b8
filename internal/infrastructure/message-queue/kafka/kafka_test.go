package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	written  []kafka.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.calls++
	if w.calls <= w.failures {
		return errors.New("broker unavailable")
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	return nil
}

func TestPublishWritesKeyedEnvelope(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newPublisher(writer, time.Millisecond)

	err := publisher.Publish(context.Background(), "order-1", dto.KafkaMessage{
		EventType: dto.EventOrderCreated,
		Data:      dto.OrderCreatedEvent{OrderID: "order-1", UserID: "u1"},
	})
	require.NoError(t, err)

	require.Len(t, writer.written, 1)
	assert.Equal(t, []byte("order-1"), writer.written[0].Key)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(writer.written[0].Value, &envelope))
	assert.Equal(t, "order_created", envelope["event_type"])
	assert.Equal(t, "order-1", envelope["data"].(map[string]interface{})["order_id"])
}

func TestPublishRetries(t *testing.T) {
	writer := &fakeWriter{failures: 1}
	publisher := newPublisher(writer, time.Millisecond)

	err := publisher.Publish(context.Background(), "k", dto.KafkaMessage{EventType: "test"})
	require.NoError(t, err)
	assert.Equal(t, 2, writer.calls)
}

func TestPublishGivesUpAfterRetries(t *testing.T) {
	writer := &fakeWriter{failures: 10}
	publisher := newPublisher(writer, time.Millisecond)

	err := publisher.Publish(context.Background(), "k", dto.KafkaMessage{EventType: "test"})
	assert.Error(t, err)
	assert.Equal(t, 3, writer.calls)

	// the breaker is open now, so the broker is not called again
	err = publisher.Publish(context.Background(), "k", dto.KafkaMessage{EventType: "test"})
	assert.Error(t, err)
	assert.Equal(t, 3, writer.calls)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "k", dto.KafkaMessage{EventType: "test"}))
	assert.NoError(t, NopPublisher{}.Close())
}
