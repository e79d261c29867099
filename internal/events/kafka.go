package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type kafkaPublisher struct {
	producer sarama.SyncProducer
}

func NewKafkaPublisher(brokers []string, config *sarama.Config) (Publisher, error) {
	if config == nil {
		config = sarama.NewConfig()
		config.Producer.RequiredAcks = sarama.WaitForLocal
		config.Producer.Retry.Max = 3
		config.Producer.Return.Successes = true
		config.Producer.Return.Errors = true
		config.Producer.Compression = sarama.CompressionSnappy
	}

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewSyncProducer -> %w", err)
	}

	zap.L().Info("kafka publisher initialized", zap.Strings("brokers", brokers))

	return &kafkaPublisher{
		producer: producer,
	}, nil
}

func (p *kafkaPublisher) PublishEventCreated(ctx context.Context, event EventCreated) error {
	event.Timestamp = time.Now()
	return p.publish(TopicEventCreated, keyFor(event.EventID), event)
}

func (p *kafkaPublisher) PublishTransfer(ctx context.Context, event Transfer) error {
	event.Timestamp = time.Now()
	return p.publish(TopicTransfer, keyFor(event.TokenID), event)
}

func (p *kafkaPublisher) PublishTicketUsed(ctx context.Context, event TicketUsed) error {
	event.Timestamp = time.Now()
	return p.publish(TopicTicketUsed, keyFor(event.TokenID), event)
}

func (p *kafkaPublisher) PublishTicketListed(ctx context.Context, event TicketListed) error {
	event.Timestamp = time.Now()
	return p.publish(TopicTicketListed, keyFor(event.TokenID), event)
}

func (p *kafkaPublisher) PublishTicketSold(ctx context.Context, event TicketSold) error {
	event.Timestamp = time.Now()
	return p.publish(TopicTicketSold, keyFor(event.TokenID), event)
}

func (p *kafkaPublisher) PublishOffer(ctx context.Context, event OfferEvent) error {
	event.Timestamp = time.Now()
	return p.publish(TopicOffer, keyFor(event.TokenID), event)
}

// publish keys messages by token/event id so consumers see per-entity
// ordering.
func (p *kafkaPublisher) publish(topic, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("p.producer.SendMessage -> %w", err)
	}

	zap.L().Debug("published fact",
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

func keyFor(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
