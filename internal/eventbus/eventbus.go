// Package eventbus provides a small in-process publish/subscribe bus used to
// fan analysis results out to metrics and publishing subscribers.
package eventbus

import (
	"sync"
	"sync/atomic"
)

const defaultBuffer = 16

// Bus is a type-safe publish/subscribe bus for events of type T.
// Publishing never blocks: events are dropped for subscribers whose
// buffer is full.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    map[int]chan T
	nextID  int
	dropped atomic.Uint64
	closed  bool
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[int]chan T)}
}

// Publish delivers the event to every subscriber. Slow subscribers lose
// events instead of stalling the publisher.
func (b *Bus[T]) Publish(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber and returns its channel together with a
// cancel function that removes the subscription and closes the channel.
func (b *Bus[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, defaultBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				if !b.closed {
					close(ch)
				}
			}
		})
	}
	return ch, cancel
}

// Dropped reports how many events were discarded due to full buffers.
func (b *Bus[T]) Dropped() uint64 {
	return b.dropped.Load()
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
