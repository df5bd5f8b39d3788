package kafka

import (
	"Tieba/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Producer 业务事件发布，发布失败只记录日志，不影响主流程
type Producer interface {
	PublishInteraction(ctx context.Context, event *InteractionEvent)
	PublishModeration(ctx context.Context, event *ModerationEvent)
	Close() error
}

type saramaProducer struct {
	producer         sarama.SyncProducer
	interactionTopic string
	moderationTopic  string
}

// NewProducer 未配置 broker 时返回空实现
func NewProducer(cfg *config.Config) (Producer, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("Kafka brokers not configured, events will be dropped")
		return NopProducer{}, nil
	}
	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &saramaProducer{
		producer:         p,
		interactionTopic: cfg.Kafka.Topics.Interaction,
		moderationTopic:  cfg.Kafka.Topics.Moderation,
	}, nil
}

func (s *saramaProducer) PublishInteraction(ctx context.Context, event *InteractionEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	// 同一接收者的通知落在同一分区
	s.send(ctx, s.interactionTopic, strconv.FormatUint(event.ReceiverID, 10), event)
}

func (s *saramaProducer) PublishModeration(ctx context.Context, event *ModerationEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	s.send(ctx, s.moderationTopic, strconv.FormatUint(event.BoardID, 10), event)
}

func (s *saramaProducer) send(ctx context.Context, topic, key string, event any) {
	value, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal event failed", "topic", topic, "err", err)
		return
	}
	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		log.ErrorContext(ctx, "publish event failed", "topic", topic, "key", key, "err", err)
		return
	}
	log.DebugContext(ctx, "event published", "topic", topic, "partition", partition, "offset", offset)
}

func (s *saramaProducer) Close() error {
	return s.producer.Close()
}

// NopProducer 丢弃所有事件
type NopProducer struct{}

func (NopProducer) PublishInteraction(context.Context, *InteractionEvent) {}

func (NopProducer) PublishModeration(context.Context, *ModerationEvent) {}

func (NopProducer) Close() error { return nil }
