package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"go.uber.org/zap"
)

type MockWriter struct {
	Messages []kafkaGo.Message
	Err      error
	Closed   bool
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	m.Closed = true
	return nil
}

func testEvent() domain.CheckoutSubmitted {
	return domain.CheckoutSubmitted{
		CheckoutID:    "checkout-123",
		Client:        "browser-1",
		OrderID:       42,
		OrderCode:     "TRX-001",
		TotalAmount:   "100000",
		PaymentMethod: "cod",
		SubmittedAt:   time.Date(2024, time.March, 28, 10, 30, 0, 0, time.UTC),
	}
}

func TestPublishSubmitted_WritesKeyedMessage(t *testing.T) {
	writer := &MockWriter{}
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop()}

	err := p.PublishSubmitted(context.Background(), testEvent())

	require.NoError(t, err)
	require.Len(t, writer.Messages, 1)
	msg := writer.Messages[0]
	assert.Equal(t, "checkout-123", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, SubmittedEventType, string(msg.Headers[0].Value))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "checkout-123", payload["checkout_id"])
	assert.Equal(t, "browser-1", payload["client"])
	assert.Equal(t, "TRX-001", payload["kode_transaksi"])
	assert.Equal(t, "100000", payload["total_amount"])
	assert.Equal(t, float64(42), payload["order_id"])
}

func TestPublishSubmitted_WriterError(t *testing.T) {
	writer := &MockWriter{Err: errors.New("broker unavailable")}
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop()}

	err := p.PublishSubmitted(context.Background(), testEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "checkout-123")
}

func TestClose(t *testing.T) {
	writer := &MockWriter{}
	p := &KafkaPublisher{writer: writer, logger: zap.NewNop()}

	require.NoError(t, p.Close())
	assert.True(t, writer.Closed)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.PublishSubmitted(context.Background(), testEvent()))
	assert.NoError(t, p.Close())
}

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers, "broker address should not be empty")

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestKafkaPublisher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping kafka integration test in short mode")
	}
	brokerAddr, cleanup := setupKafka(t)
	defer cleanup()

	createTopic(t, brokerAddr, SubmittedTopic)
	time.Sleep(5 * time.Second)

	p := NewKafkaPublisher(zap.NewNop(), brokerAddr)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, p.PublishSubmitted(ctx, testEvent()))

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:  []string{brokerAddr},
		Topic:    SubmittedTopic,
		GroupID:  "test-consumer",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "checkout-123", string(msg.Key))
	var event domain.CheckoutSubmitted
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, int64(42), event.OrderID)
}
