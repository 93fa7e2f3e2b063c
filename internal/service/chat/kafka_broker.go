package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"chitchat_server/internal/config"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

// KafkaBroker transports events through one topic. Messages are keyed by room
// id with a hash balancer, so every event of a room lands on the same
// partition and comes back in publish order.
type KafkaBroker struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	events   chan Event
	cancel   context.CancelFunc
}

func NewKafkaBroker(cfg config.KafkaConfig) (*KafkaBroker, error) {
	if cfg.HostPort == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "kafka host_port not configured")
	}
	b := &KafkaBroker{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.HostPort),
			Topic:                  cfg.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           cfg.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{cfg.HostPort},
			Topic:          cfg.EventTopic,
			GroupID:        "chitchat_events",
			CommitInterval: cfg.Timeout * time.Second,
			StartOffset:    kafka.LastOffset,
		}),
		events: make(chan Event, constants.CHANNEL_SIZE),
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.consume(ctx)
	return b, nil
}

func (b *KafkaBroker) Publish(e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "marshal event")
	}
	return b.producer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(e.RoomId),
		Value: value,
	})
}

func (b *KafkaBroker) Events() <-chan Event {
	return b.events
}

func (b *KafkaBroker) consume(ctx context.Context) {
	defer close(b.events)
	for {
		msg, err := b.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("kafka read failed", zap.Error(err))
			continue
		}
		var e Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			zap.L().Error("kafka event decode failed", zap.Error(err))
			continue
		}
		select {
		case b.events <- e:
		case <-ctx.Done():
			return
		}
	}
}

func (b *KafkaBroker) Close() error {
	b.cancel()
	if err := b.producer.Close(); err != nil {
		zap.L().Error("kafka producer close failed", zap.Error(err))
	}
	return b.consumer.Close()
}
