package core

import (
	"context"
	"io"
	"time"
)

type (
	// FileStorage persists uploaded file contents under opaque keys.
	FileStorage interface {
		Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
		Open(ctx context.Context, key string) (io.ReadCloser, error)
		Delete(ctx context.Context, key string) error
		// URL returns a time-limited link serving the content directly, or "" when the backend cannot serve it.
		URL(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
	}

	// Event is a domain event published after a state change.
	Event struct {
		Type    string      `json:"type"`
		ID      string      `json:"id"`
		ActorID string      `json:"actor_id,omitempty"`
		At      time.Time   `json:"at"`
		Data    interface{} `json:"data,omitempty"`
	}

	// EventPublisher delivers domain events to interested consumers.
	EventPublisher interface {
		Publish(ctx context.Context, topic string, events ...Event) error
	}

	// SettingsReader reads typed system settings, def being returned when unset or invalid.
	SettingsReader interface {
		String(ctx context.Context, key, def string) string
		Bool(ctx context.Context, key string, def bool) bool
		Int(ctx context.Context, key string, def int) int
	}

	// Cache is a string key/value store with expiry.
	Cache interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key, value string, ttl time.Duration) error
		Delete(ctx context.Context, keys ...string) error
	}
)

// NewEvent returns an Event stamped with the current UTC time.
func NewEvent(typ, id, actorID string, data interface{}) Event {
	return Event{Type: typ, ID: id, ActorID: actorID, At: time.Now().UTC(), Data: data}
}
