package kafka

import (
	"Palisade/internal/api/config"
	"Palisade/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	aiFlagConsumer sarama.ConsumerGroup
	aiFlagHandler  sarama.ConsumerGroupHandler

	reportConsumer sarama.ConsumerGroup
	reportHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, queueService service.QueueService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	aiFlagConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaAIFlagConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	reportConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaReportConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		aiFlagConsumer: aiFlagConsumer,
		aiFlagHandler:  NewAIFlagHandler(queueService),
		reportConsumer: reportConsumer,
		reportHandler:  NewReportHandler(queueService),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaAIFlagConsumer.Topic
		log.Info("AI flag consumer started", "topic", topic)
		for {
			if err := m.aiFlagConsumer.Consume(ctx, []string{topic}, m.aiFlagHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaReportConsumer.Topic
		log.Info("Report consumer started", "topic", topic)
		for {
			if err := m.reportConsumer.Consume(ctx, []string{topic}, m.reportHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.aiFlagConsumer.Close(); err != nil {
		log.Error("Failed to close ai flag consumer", "err", err)
	}
	if err := m.reportConsumer.Close(); err != nil {
		log.Error("Failed to close report consumer", "err", err)
	}

	return nil
}
