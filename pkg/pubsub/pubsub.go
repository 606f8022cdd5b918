package pubsub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrShutdown is returned by Subscribe after Shutdown.
var ErrShutdown = errors.New("pubsub: shut down")

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 64

// PubSub fans typed messages out to topic subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the message.
type PubSub[T any] struct {
	subscribers map[string]map[*Subscription[T]]struct{}
	mu          sync.RWMutex
	buffer      int
	shutdown    chan struct{}
	isShutdown  bool
	dropped     atomic.Uint64
}

// Subscription is one subscriber's view of a topic
type Subscription[T any] struct {
	topic     string
	channel   chan T
	ps        *PubSub[T]
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Option configures a PubSub
type Option func(*options)

type options struct {
	buffer int
}

// WithBuffer sets the per-subscription buffer. Values below 1 are ignored.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

// New creates a PubSub
func New[T any](opts ...Option) *PubSub[T] {
	o := options{buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(&o)
	}
	return &PubSub[T]{
		subscribers: make(map[string]map[*Subscription[T]]struct{}),
		buffer:      o.buffer,
		shutdown:    make(chan struct{}),
	}
}

// Subscribe registers a subscriber on topic. The subscription ends when ctx
// is cancelled, Unsubscribe is called or the PubSub shuts down; in every case
// the channel is closed.
func (ps *PubSub[T]) Subscribe(ctx context.Context, topic string) (*Subscription[T], error) {
	ps.mu.Lock()
	if ps.isShutdown {
		ps.mu.Unlock()
		return nil, ErrShutdown
	}

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		topic:   topic,
		channel: make(chan T, ps.buffer),
		ps:      ps,
		cancel:  cancel,
	}
	if ps.subscribers[topic] == nil {
		ps.subscribers[topic] = make(map[*Subscription[T]]struct{})
	}
	ps.subscribers[topic][sub] = struct{}{}
	ps.mu.Unlock()

	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-ps.shutdown:
		}
	}()

	return sub, nil
}

// Publish delivers message to every subscriber of topic and returns how many
// received it.
func (ps *PubSub[T]) Publish(topic string, message T) int {
	// Sends happen under the read lock so no channel is closed mid-send.
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.isShutdown {
		return 0
	}

	delivered := 0
	for sub := range ps.subscribers[topic] {
		select {
		case sub.channel <- message:
			delivered++
		default:
			ps.dropped.Add(1)
		}
	}
	return delivered
}

// SubscriberCount returns the number of subscribers for a topic
func (ps *PubSub[T]) SubscriberCount(topic string) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.subscribers[topic])
}

// Dropped returns how many deliveries were skipped because a buffer was full
func (ps *PubSub[T]) Dropped() uint64 {
	return ps.dropped.Load()
}

// Shutdown closes all subscriptions. Further publishes are ignored.
func (ps *PubSub[T]) Shutdown() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.isShutdown {
		return
	}
	ps.isShutdown = true
	close(ps.shutdown)

	for topic, subs := range ps.subscribers {
		for sub := range subs {
			sub.cancel()
			sub.close()
		}
		delete(ps.subscribers, topic)
	}
}

// Channel returns the subscription's message channel
func (s *Subscription[T]) Channel() <-chan T {
	return s.channel
}

// Topic returns the subscribed topic
func (s *Subscription[T]) Topic() string {
	return s.topic
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.cancel()

	s.ps.mu.Lock()
	defer s.ps.mu.Unlock()

	if subs := s.ps.subscribers[s.topic]; subs != nil {
		delete(subs, s)
		if len(subs) == 0 {
			delete(s.ps.subscribers, s.topic)
		}
	}

	s.close()
}

func (s *Subscription[T]) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
