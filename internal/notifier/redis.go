package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "availability:"

func channelFor(barberID uint) string {
	return fmt.Sprintf("%s%d", channelPrefix, barberID)
}

// RedisPublisher sends updates to every API instance through Redis.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Broadcast(ctx context.Context, u Update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal availability update: %w", err)
	}
	return p.client.Publish(ctx, channelFor(u.BarberID), payload).Err()
}

// RedisTransport pattern-subscribes to every barber channel.
type RedisTransport struct {
	client *redis.Client
}

func NewRedisTransport(client *redis.Client) *RedisTransport {
	return &RedisTransport{client: client}
}

func (t *RedisTransport) Open(ctx context.Context) (Stream, error) {
	ps := t.client.PSubscribe(ctx, channelPrefix+"*")
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe availability: %w", err)
	}
	return &redisStream{ps: ps}, nil
}

type redisStream struct {
	ps *redis.PubSub
}

func (s *redisStream) Next(ctx context.Context) (Update, error) {
	for {
		msg, err := s.ps.ReceiveMessage(ctx)
		if err != nil {
			return Update{}, err
		}
		var u Update
		if err := json.Unmarshal([]byte(msg.Payload), &u); err != nil {
			continue
		}
		return u, nil
	}
}

func (s *redisStream) Close() error {
	return s.ps.Close()
}
