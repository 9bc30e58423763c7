package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang-storefront/internal/models"

	"github.com/segmentio/kafka-go"
)

const TopicOrderEvents = "storefront_order_events"

type KafkaProducer struct {
	brokers    []string
	orderTopic string
	mu         sync.Mutex
	writers    map[string]*kafka.Writer
}

// NewKafkaProducer publishes order events to orderTopic, or to
// TopicOrderEvents when it is empty.
func NewKafkaProducer(brokers []string, orderTopic string) *KafkaProducer {
	if orderTopic == "" {
		orderTopic = TopicOrderEvents
	}
	return &KafkaProducer{
		brokers:    brokers,
		orderTopic: orderTopic,
		writers:    make(map[string]*kafka.Writer),
	}
}

func (kp *KafkaProducer) GetWriter(topic string) *kafka.Writer {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(kp.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}
	kp.writers[topic] = writer
	return writer
}

func (kp *KafkaProducer) SendMessage(ctx context.Context, topic string, key string, value interface{}) error {
	writer := kp.GetWriter(topic)

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return writer.WriteMessages(ctx, message)
}

// PublishOrderPlaced keys the event by submission id so retries land on one partition.
func (kp *KafkaProducer) PublishOrderPlaced(ctx context.Context, order models.OrderPlaced) error {
	return kp.SendMessage(ctx, kp.orderTopic, order.SubmissionID, OrderEvent{
		Type:  "order_placed",
		Order: order,
	})
}

func (kp *KafkaProducer) Close() {
	kp.mu.Lock()
	defer kp.mu.Unlock()
	for _, writer := range kp.writers {
		writer.Close()
	}
}

type OrderEvent struct {
	Type  string             `json:"type"`
	Order models.OrderPlaced `json:"order"`
}
