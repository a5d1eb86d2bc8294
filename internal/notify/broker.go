// Package notify carries the process-wide "content changed" signal between
// the store, live websocket clients and any other running instance of the API.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const EventContentChanged = "content.changed"

const redisChannel = "portfolio:content"

type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Broker is a typed publish/subscribe channel. Subscribers treat every event
// purely as a cue to re-read the content document.
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe returns a receive channel and a cancel func. The channel is
	// closed after cancel.
	Subscribe() (<-chan Event, func())
}

// MemoryBroker fans events out inside a single process. Used by tests and as
// the degraded mode when Redis is unreachable at startup.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]chan Event)}
}

func (b *MemoryBroker) Publish(ctx context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber, drop rather than block the saver
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if old, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(old)
		}
	}
	return ch, cancel
}

// RedisBroker broadcasts events over a Redis channel so every running API
// instance sees saves made by any of them.
type RedisBroker struct {
	rdb *redis.Client
}

func NewRedisBroker(addr, password string) *RedisBroker {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RedisBroker{rdb: rdb}
}

func (b *RedisBroker) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, redisChannel, payload).Err()
}

func (b *RedisBroker) Subscribe() (<-chan Event, func()) {
	sub := b.rdb.Subscribe(context.Background(), redisChannel)
	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("notify: bad event payload: %v", err)
				continue
			}
			select {
			case out <- ev:
			default:
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel
}
