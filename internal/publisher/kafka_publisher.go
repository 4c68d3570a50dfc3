package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront-service/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	SubmittedTopic     = "checkout-submitted"
	SubmittedEventType = "CheckoutSubmitted"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes checkout events keyed by checkout id, so events of one checkout stay ordered
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewKafkaPublisher(logger *zap.Logger, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  SubmittedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) PublishSubmitted(ctx context.Context, event domain.CheckoutSubmitted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CheckoutID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(SubmittedEventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish checkout %s: %w", event.CheckoutID, err)
	}

	p.logger.Debug("checkout event published",
		zap.String("checkout_id", event.CheckoutID),
		zap.String("topic", SubmittedTopic))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishSubmitted(context.Context, domain.CheckoutSubmitted) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
