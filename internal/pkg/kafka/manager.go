package kafka

import (
	"SocialPulse/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	ingestConsumer sarama.ConsumerGroup
	ingestHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, ingestHandler *IngestHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	ingestConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaIngest.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		ingestConsumer: ingestConsumer,
		ingestHandler:  ingestHandler,
	}, nil
}

// Start 阻塞运行直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		for err := range m.ingestConsumer.Errors() {
			log.Error("ingest consumer group error", "err", err)
		}
	}()

	go func() {
		topic := cfg.KafkaIngest.Topic
		log.Info("Ingest consumer started", "topic", topic)
		for {
			if err := m.ingestConsumer.Consume(ctx, []string{topic}, m.ingestHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.ingestConsumer.Close(); err != nil {
		log.Error("Failed to close ingest consumer", "err", err)
	}

	return nil
}
