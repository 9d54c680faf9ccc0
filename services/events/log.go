package eventsvc

import (
	"context"
	"fmt"
	"sync"

	"github.com/trezcool/ujumbe/core"
)

// logPublisher logs the events; used when no broker is configured.
type logPublisher struct {
	logger core.Logger
}

var _ core.EventPublisher = (*logPublisher)(nil)

func NewLogPublisher(logger core.Logger) core.EventPublisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, topic string, events ...core.Event) error {
	for _, evt := range events {
		p.logger.Debug(fmt.Sprintf("event %s on %s: %s", evt.Type, topic, evt.ID))
	}
	return nil
}

// Recorder keeps the published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events map[string][]core.Event // {topic: events}
}

var _ core.EventPublisher = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{events: make(map[string][]core.Event)}
}

func (r *Recorder) Publish(_ context.Context, topic string, events ...core.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[topic] = append(r.events[topic], events...)
	return nil
}

// Events returns a copy of the events published on topic.
func (r *Recorder) Events(topic string) []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Event(nil), r.events[topic]...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = make(map[string][]core.Event)
	r.mu.Unlock()
}
