package event_publisher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/events"
	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// EventPublisher pushes classification events to Kafka so external reporting
// can consume review results without this process persisting them.
type EventPublisher struct {
	logger        *zap.Logger
	kafkaProducer *kafka.Producer
	kafkaTopic    string
}

func NewEventPublisher(kafkaBroker, kafkaTopic string, logger *zap.Logger) (*EventPublisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": kafkaBroker,
		"acks":              "all",
		"retries":           3,
		"retry.backoff.ms":  100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &EventPublisher{
		logger:        logger,
		kafkaProducer: producer,
		kafkaTopic:    kafkaTopic,
	}, nil
}

// PublishReview publishes one event per classified transaction, keyed by the
// reviewed address. Individual delivery failures are logged and do not stop
// the remaining events.
func (ep *EventPublisher) PublishReview(address string, transactions []model.TransactionResult) error {
	successCount := 0
	for _, tx := range transactions {
		if err := ep.publishTransaction(address, tx); err != nil {
			ep.logger.Error("Failed to publish classification event",
				zap.String("tx_hash", tx.Hash),
				zap.Error(err))
			continue
		}
		successCount++
	}

	ep.logger.Info("Published classification events",
		zap.String("address", address),
		zap.Int("success_count", successCount),
		zap.Int("attempted", len(transactions)))

	if successCount < len(transactions) {
		return fmt.Errorf("published %d of %d classification events", successCount, len(transactions))
	}
	return nil
}

func (ep *EventPublisher) publishTransaction(address string, tx model.TransactionResult) error {
	kafkaMsg := events.ClassificationEvent{
		EventID:         uuid.New().String(),
		Address:         address,
		TxHash:          tx.Hash,
		TxDate:          tx.Time(),
		FromName:        tx.FromName,
		ToName:          tx.ToName,
		ContractName:    tx.ContractName,
		FunctionName:    tx.FunctionName,
		ExternalInbound: tx.ExternalInbound,
		IsError:         tx.IsError,
		EthMovements:    tx.EthMovements,
		TokenMovements:  tx.TokenMovements,
		Timestamp:       time.Now(),
	}

	msgBytes, err := json.Marshal(kafkaMsg)
	if err != nil {
		return err
	}

	deliveryChan := make(chan kafka.Event)
	defer close(deliveryChan)

	err = ep.kafkaProducer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &ep.kafkaTopic, Partition: kafka.PartitionAny},
		Key:            []byte(address), // Key by reviewed address for partition consistency
		Value:          msgBytes,
	}, deliveryChan)

	if err != nil {
		return err
	}

	// Wait for delivery confirmation
	e := <-deliveryChan
	switch ev := e.(type) {
	case *kafka.Message:
		if ev.TopicPartition.Error != nil {
			return ev.TopicPartition.Error
		}
		return nil
	default:
		return fmt.Errorf("unexpected kafka event type: %T", e)
	}
}

func (ep *EventPublisher) Close() error {
	if ep.kafkaProducer != nil {
		ep.kafkaProducer.Close()
	}
	return nil
}
