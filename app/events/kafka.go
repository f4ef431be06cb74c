package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	queueSize    = 1024
	writeTimeout = 10 * time.Second
)

var ErrPublisherClosed = errors.New("publisher closed")

// KafkaPublisher queues events in memory and writes them from a single
// background goroutine, so Publish never waits on the broker.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	p := newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, log, queueSize)
	go p.run()
	return p
}

func newKafkaPublisher(w *kafka.Writer, log *zap.Logger, size int) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		log:    log,
		queue:  make(chan kafka.Message, size),
		done:   make(chan struct{}),
	}
}

// Publish keys messages by order number so events for one order stay ordered
// within a partition. A full queue drops the event and returns an error.
func (p *KafkaPublisher) Publish(_ context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("event queue full, dropped %s event for %s", event.Type, event.OrderNumber)
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.log.Warn("failed to deliver order event", zap.ByteString("order_number", msg.Key), zap.Error(err))
			continue
		}
		p.log.Debug("event delivered", zap.ByteString("order_number", msg.Key))
	}
}

// Close stops accepting events, waits for queued ones to be written and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}

// NewPublisher returns a Kafka publisher when brokers are configured, otherwise a no-op.
func NewPublisher(brokers []string, topic string, log *zap.Logger) Publisher {
	if len(brokers) == 0 {
		log.Info("no kafka brokers configured, order events are disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, log)
}
