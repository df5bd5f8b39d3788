package kafka

import (
	"Tieba/internal/api/config"
	"Tieba/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	notifyConsumer sarama.ConsumerGroup
	notifyHandler  sarama.ConsumerGroupHandler

	modLogConsumer sarama.ConsumerGroup
	modLogHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	notificationRepo mongo.NotificationRepo,
	modLogRepo mongo.ModLogRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	notifyConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.Notify.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	modLogConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ModLog.GroupID, saramaCfg)
	if err != nil {
		_ = notifyConsumer.Close()
		return nil, err
	}

	return &ConsumerManager{
		notifyConsumer: notifyConsumer,
		notifyHandler:  NewNotificationHandler(notificationRepo),
		modLogConsumer: modLogConsumer,
		modLogHandler:  NewModLogHandler(modLogRepo),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go m.consume(ctx, "Notification", cfg.Kafka.Notify.Topic, m.notifyConsumer, m.notifyHandler)
	go m.consume(ctx, "Mod log", cfg.Kafka.ModLog.Topic, m.modLogConsumer, m.modLogHandler)

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.notifyConsumer.Close(); err != nil {
		log.Error("Failed to close notification consumer", "err", err)
	}
	if err := m.modLogConsumer.Close(); err != nil {
		log.Error("Failed to close mod log consumer", "err", err)
	}

	return nil
}

func (m *ConsumerManager) consume(ctx context.Context, name, topic string, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) {
	log.Info(name+" consumer started", "topic", topic)
	for {
		if err := group.Consume(ctx, []string{topic}, handler); err != nil {
			log.Error("Error from consumer", "consumer", name, "err", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
