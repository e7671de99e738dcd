package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTTL bounds how long an idle conversation transcript is kept.
const DefaultTTL = 24 * time.Hour

// Message is one transcript entry.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Store keeps per-session transcripts in redis as lists, one entry per
// message, expiring after TTL of inactivity.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewStore creates a transcript store. A non-positive ttl uses DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if client == nil {
		panic("transcript: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("docchat.internal.transcript"),
	}
}

// Append adds one message to the session transcript and refreshes the TTL.
func (s *Store) Append(ctx context.Context, sessionID string, msg Message) error {
	ctx, span := s.tracer.Start(ctx, "transcript.append")
	defer span.End()

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("transcript: failed to marshal message: %w", err)
	}

	key := transcriptKey(sessionID)
	if err := s.redis.RPush(ctx, key, data).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("transcript: failed to append: %w", err)
	}
	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("transcript: failed to set ttl: %w", err)
	}
	return nil
}

// List returns the full transcript in order. An unknown session yields an
// empty slice, not an error.
func (s *Store) List(ctx context.Context, sessionID string) ([]Message, error) {
	ctx, span := s.tracer.Start(ctx, "transcript.list")
	defer span.End()

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("transcript: failed to load: %w", err)
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("transcript: failed to decode entry: %w", err)
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return fmt.Sprintf("transcript:%s", sessionID)
}
