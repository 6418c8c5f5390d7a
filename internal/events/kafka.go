package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/treemap/internal/models"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes tree events to a Kafka topic.
type KafkaPublisher struct {
	writer messageWriter
	log    *slog.Logger
}

// NewKafkaPublisher creates a producer for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, log *slog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, log: log}
}

// PublishTreeCreated writes one tree.created message keyed by the tree ID, so
// all events for a tree land on the same partition.
func (p *KafkaPublisher) PublishTreeCreated(ctx context.Context, tree *models.Tree) error {
	msg, err := serializeToMessage(NewTreeCreated(tree))
	if err != nil {
		return err
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish tree event: %w", err)
	}

	p.log.DebugContext(ctx, "Tree event published", "tree_id", tree.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event TreeCreated) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize tree event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.TreeID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
