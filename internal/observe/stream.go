// Package observe provides typed notification streams.
//
// A Stream replaces a string-keyed event bus: each notification kind is its
// own Stream[T], subscribers are typed, and every subscription returns a
// Cleanup that removes it.
//
//	var markupSet observe.Stream[any]
//	cancel := markupSet.Subscribe(func(v any) { ... })
//	defer cancel()
//	markupSet.Emit(value)
package observe

import "sync"

// Cleanup removes a subscription. Calling it more than once is a no-op.
type Cleanup func()

// Stream is a list of subscribers for one notification kind.
// The zero value is ready to use and safe for concurrent use.
type Stream[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a Cleanup that unregisters it.
func (s *Stream[T]) Subscribe(fn func(T)) Cleanup {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Emit calls every subscriber in registration order.
// Subscribers added or removed during Emit take effect on the next call.
func (s *Stream[T]) Emit(v T) {
	s.mu.Lock()
	if len(s.subs) == 0 {
		s.mu.Unlock()
		return
	}
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len returns the number of active subscribers.
func (s *Stream[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Stream[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}
