package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vaultaudit/internal/domain"
	"vaultaudit/internal/infrastructure/telemetry"
	"vaultaudit/internal/streaming"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	prefix string
}

type ProducerConfig struct {
	Brokers     []string
	TopicPrefix string
}

func NewProducer(cfg ProducerConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if strings.TrimSpace(cfg.TopicPrefix) == "" {
		cfg.TopicPrefix = "vaultaudit"
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 500 * time.Millisecond,
	}
	return &Producer{writer: writer, prefix: cfg.TopicPrefix}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishEvents sends one message per exported event to <prefix>-events-<chain>.
func (p *Producer) PublishEvents(ctx context.Context, chainID uint64, vault string, events []domain.LogEntry) error {
	if len(events) == 0 {
		return nil
	}
	ctx, span := otel.Tracer("vaultaudit/kafka").Start(ctx, "kafka.publish_events", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.Int64("chain.id", int64(chainID)),
		attribute.String("vault", vault),
		attribute.Int("event.count", len(events)),
	)

	headers := make([]kafka.Header, 0, 1)
	telemetry.InjectKafkaHeaders(ctx, &headers)

	topic := p.topic("events", chainID)
	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := streaming.Encode(streaming.Message{
			Type:        streaming.MessageTypeEvent,
			ChainID:     chainID,
			Vault:       vault,
			Emitter:     event.Emitter,
			BlockNumber: event.BlockNumber,
			TxHash:      event.TxHash,
			LogIndex:    event.LogIndex,
			Topics:      event.Topics,
			Data:        event.Data,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		messages = append(messages, kafka.Message{
			Topic:   topic,
			Key:     []byte(strings.ToLower(vault)),
			Value:   payload,
			Headers: headers,
		})
	}
	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// PublishAddresses sends a vault's permission address list to <prefix>-permissions-<chain>.
func (p *Producer) PublishAddresses(ctx context.Context, chainID uint64, vault string, addresses []string) error {
	ctx, span := otel.Tracer("vaultaudit/kafka").Start(ctx, "kafka.publish_addresses", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.Int64("chain.id", int64(chainID)),
		attribute.String("vault", vault),
		attribute.Int("address.count", len(addresses)),
	)

	payload, err := streaming.Encode(streaming.Message{
		Type:      streaming.MessageTypePermissions,
		ChainID:   chainID,
		Vault:     vault,
		Addresses: addresses,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	headers := make([]kafka.Header, 0, 1)
	telemetry.InjectKafkaHeaders(ctx, &headers)
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic:   p.topic("permissions", chainID),
		Key:     []byte(strings.ToLower(vault)),
		Value:   payload,
		Headers: headers,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (p *Producer) topic(kind string, chainID uint64) string {
	return fmt.Sprintf("%s-%s-%d", p.prefix, kind, chainID)
}
