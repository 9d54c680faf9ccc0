package eventsvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/trezcool/ujumbe/core"
)

// KafkaPublisher writes events as JSON to "<prefix><topic>", keyed by the entity id.
type KafkaPublisher struct {
	w      *kafka.Writer
	prefix string
}

var _ core.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(conf core.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(conf.Brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		prefix: conf.TopicPrefix,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, events ...core.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		value, err := json.Marshal(evt)
		if err != nil {
			return errors.Wrapf(err, "encoding %s event", evt.Type)
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.prefix + topic,
			Key:   []byte(evt.ID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(evt.Type)},
			},
			Time: evt.At,
		})
	}
	return errors.Wrapf(p.w.WriteMessages(ctx, msgs...), "writing to %s", p.prefix+topic)
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
