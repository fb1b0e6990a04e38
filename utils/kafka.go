package utils

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the producer used to fan out enrollment
// notifications. The consumer side lives in internal/notification.
func InitializeKafka(cfg *config.Config) {
	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaEnrollmentsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	log.Printf("✅ Kafka producer ready (topic: %s)", cfg.KafkaEnrollmentsTopic)
}

// PublishMessage writes one message to the enrollments topic.
func PublishMessage(ctx context.Context, key string, value []byte) error {
	if kafkaWriter == nil {
		log.Println("⚠️ Kafka not initialized, message dropped")
		return nil
	}
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// NewKafkaReader builds the consumer for the enrollments topic.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     strings.Split(cfg.KafkaBrokers, ","),
		Topic:       cfg.KafkaEnrollmentsTopic,
		GroupID:     cfg.KafkaConsumerGroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		StartOffset: kafka.LastOffset,
	})
}

// CloseKafka flushes and closes the producer.
func CloseKafka() {
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			log.Printf("⚠️ Kafka writer close failed: %v", err)
		}
	}
}
