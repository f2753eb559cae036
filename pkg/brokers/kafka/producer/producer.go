package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/tumbleweedd/shopify_klaviyo_sync/internal/domain/models"
	"github.com/tumbleweedd/shopify_klaviyo_sync/pkg/logger"
)

// Producer publishes one message per delivery result, keyed by order id so
// that reruns of the same order land on the same partition.
type Producer struct {
	log *slog.Logger

	topic    string
	producer sarama.SyncProducer
}

type resultMessage struct {
	RunID uuid.UUID `json:"run_id"`
	models.DeliveryResult
}

func NewConfig() *sarama.Config {
	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForAll
	producerConfig.Producer.Compression = sarama.CompressionNone
	producerConfig.Producer.Return.Successes = true
	producerConfig.Producer.Return.Errors = true

	return producerConfig
}

func NewSyncProducer(brokerAddress []string) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(brokerAddress, NewConfig())
}

func NewProducer(log *slog.Logger, producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{
		log:      log,
		topic:    topic,
		producer: producer,
	}
}

func (p *Producer) Publish(_ context.Context, report models.Report) error {
	const op = "brokers.kafka.producer.Publish"

	log := p.log.With(
		slog.String("op", op),
		slog.String("topic", p.topic),
		slog.String("run_id", report.RunID.String()),
	)

	if len(report.Results) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(report.Results))
	for _, result := range report.Results {
		bytes, err := json.Marshal(resultMessage{RunID: report.RunID, DeliveryResult: result})
		if err != nil {
			log.Error("failed to marshal result", slog.Int64("order", result.Order), logger.Err(err))
			return fmt.Errorf("%s: marshal result %d: %w", op, result.Order, err)
		}

		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(strconv.FormatInt(result.Order, 10)),
			Value: sarama.ByteEncoder(bytes),
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		var producerErrs sarama.ProducerErrors
		if errors.As(err, &producerErrs) {
			log.Warn("failed to send messages", slog.Int("failed", len(producerErrs)), slog.Int("total", len(messages)))
		} else {
			log.Warn("failed to send messages", logger.Err(err))
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("results sent", slog.Int("messages", len(messages)))

	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
