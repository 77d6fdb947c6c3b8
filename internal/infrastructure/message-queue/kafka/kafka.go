package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	circuitbreaker "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const (
	maxRetries   = 3
	writeTimeout = 5 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[[]byte]
	backoff time.Duration
}

func CreateKafkaPublisher(config *config.Config) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:                  config.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	return newPublisher(writer, time.Second)
}

func newPublisher(writer messageWriter, backoff time.Duration) *Publisher {
	return &Publisher{
		writer:  writer,
		breaker: circuitbreaker.CreateCircuitBreaker("kafka-publisher"),
		backoff: backoff,
	}
}

// Publish keys the message so events for one aggregate land on one partition.
func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		_, err = p.breaker.Execute(func() ([]byte, error) {
			return nil, p.writer.WriteMessages(ctx, kafka.Message{
				Key:   []byte(key),
				Value: jsonMsg,
			})
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Int("attempt", i+1).Msg("")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(p.backoff * time.Duration(i+1))
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no broker address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	log.Ctx(ctx).Debug().Str("component", "Publish").Str("event_type", msg.EventType).Msg("event publishing disabled")
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
