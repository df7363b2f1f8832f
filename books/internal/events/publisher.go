package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-tracker/books/internal/model"
	"github.com/Astemirdum/book-tracker/pkg/circuit_breaker"
)

// Publisher announces committed book writes. Implementations must not fail
// the caller: delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event model.BookEvent)
}

type Nop struct{}

func (Nop) Publish(context.Context, model.BookEvent) {}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		cb:       cb,
		log:      log.Named("events"),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event model.BookEvent) {
	if ctx.Err() != nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("json.Marshal", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.OwnerID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	if err := p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	}); err != nil {
		p.log.Warn("book event dropped",
			zap.String("type", string(event.Type)),
			zap.Int64("book_id", event.BookID),
			zap.Error(err))
		return
	}
	p.log.Debug("book event published", zap.String("type", string(event.Type)), zap.Int64("book_id", event.BookID))
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
