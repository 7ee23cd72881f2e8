package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/pkg/logger"
)

// Publisher wraps Kafka producer and implements domain.EventPublisher
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, brokers), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, brokers []string) *Publisher {
	return &Publisher{producer: producer, brokers: brokers}
}

// PublishFavoriteAdded publishes a favorite added event
func (p *Publisher) PublishFavoriteAdded(ctx context.Context, entry domain.Entry) error {
	event := FavoriteAddedEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeFavoriteAdded,
		Term:      entry.Term,
		Meaning:   entry.Meaning,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, TopicFavorites, event.EventType, event.EventID, entry.Term, event)
}

// PublishFavoritesRemoved publishes a favorites removed event
func (p *Publisher) PublishFavoritesRemoved(ctx context.Context, labels []string, removed int) error {
	event := FavoritesRemovedEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeFavoritesRemoved,
		Labels:    labels,
		Removed:   removed,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, TopicFavorites, event.EventType, event.EventID, "", event)
}

// PublishQuizGraded publishes a quiz graded event keyed by session
func (p *Publisher) PublishQuizGraded(ctx context.Context, sessionID string, report *domain.Report) error {
	missed := make([]string, 0, len(report.Incorrect))
	for _, r := range report.Incorrect {
		missed = append(missed, r.Entry.Term)
	}
	event := QuizGradedEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeQuizGraded,
		SessionID: sessionID,
		Correct:   len(report.Correct),
		Incorrect: len(report.Incorrect),
		Missed:    missed,
		Timestamp: report.GradedAt,
	}
	return p.publish(ctx, TopicQuiz, event.EventType, event.EventID, sessionID, event)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID, key string, event any) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
