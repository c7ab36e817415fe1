package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker fans messages out to in-process subscribers. Delivery happens on
// a separate goroutine so publishers never wait for slow subscribers.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	once         sync.Once
	done         chan struct{}
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver <-chan BrokerMessage
	receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	receiver := make(chan BrokerMessage)
	subscription := Subscription{ID: uuid.NewString(), Receiver: receiver, receiver: receiver}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptors[topic] = append(b.subscriptors[topic], &subscriptor{
		done:         make(chan struct{}),
		subscription: subscription,
	})

	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].safeClose()
	remaining := slices.Delete(slices.Clone(subscriptors), index, index+1)
	if len(remaining) == 0 {
		delete(b.subscriptors, topic)
	} else {
		b.subscriptors[topic] = remaining
	}

	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	topicSubscriptors, ok := b.subscriptors[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	go b.publish(topicSubscriptors, msg)

	return nil
}

func (b *LocalBroker) publish(topicSubscriptors []*subscriptor, msg BrokerMessage) {
	for _, s := range topicSubscriptors {
		select {
		case s.subscription.receiver <- msg:
		case <-s.done:
		}
	}
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.safeClose()
		}
		delete(b.subscriptors, topic)
	}
}

// safeClose marks the subscriptor as gone. The receiver channel is never
// closed, a pending delivery gives up instead.
func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		close(s.done)
	})
}
