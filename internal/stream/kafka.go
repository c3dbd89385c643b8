package stream

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const (
	// TopicContractorVerified carries a VerifiedEvent every time a verification is stored.
	TopicContractorVerified = "contractor.verified"

	// TopicContractorReverify carries a ReverifyRequest asking for a stored claim to be evaluated again.
	TopicContractorReverify = "contractor.reverify"
)

const flushTimeout = 5 * time.Second

// Publisher is what handlers and workers need to emit events.
type Publisher interface {
	Publish(topic, key string, payload any) error
}

type KafkaStream struct {
	kafkaServers string
	logger       *slog.Logger

	mu       sync.Mutex
	producer *kafka.Producer
}

func New(kafkaServers string, logger *slog.Logger) *KafkaStream {
	return &KafkaStream{
		kafkaServers: kafkaServers,
		logger:       logger,
	}
}

// getProducer lazily creates one producer shared by every publish call.
func (st *KafkaStream) getProducer() (*kafka.Producer, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer != nil {
		return st.producer, nil
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  st.kafkaServers,
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, err
	}

	go st.logDeliveries(producer)

	st.producer = producer
	return producer, nil
}

func (st *KafkaStream) logDeliveries(producer *kafka.Producer) {
	for e := range producer.Events() {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			st.logger.Error("event delivery failed", "topic", *m.TopicPartition.Topic, "error", m.TopicPartition.Error)
		}
	}
}

// Publish encodes payload as JSON and queues it on topic. Messages sharing a
// key land on the same partition, so events for one contractor stay ordered.
func (st *KafkaStream) Publish(topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	producer, err := st.getProducer()
	if err != nil {
		return err
	}

	err = producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}, nil)
	if err != nil {
		return err
	}

	st.logger.Debug("event published", "topic", topic, "key", key)
	return nil
}

type StreamConsumer struct {
	GroupId string
	Topic   string
}

func (st *KafkaStream) CreateConsumer(consumerStruct *StreamConsumer) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": st.kafkaServers,
		"group.id":          consumerStruct.GroupId,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(consumerStruct.Topic, nil); err != nil {
		consumer.Close()
		return nil, err
	}

	return consumer, nil
}

// Close flushes queued messages and releases the producer.
func (st *KafkaStream) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.producer == nil {
		return
	}

	st.producer.Flush(int(flushTimeout / time.Millisecond))
	st.producer.Close()
	st.producer = nil
}
