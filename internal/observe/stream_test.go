package observe

import "testing"

func TestStreamEmitOrder(t *testing.T) {
	var s Stream[int]
	var got []int

	s.Subscribe(func(v int) { got = append(got, v*10) })
	s.Subscribe(func(v int) { got = append(got, v*100) })

	s.Emit(1)

	if len(got) != 2 || got[0] != 10 || got[1] != 100 {
		t.Errorf("got %v, want [10 100]", got)
	}
}

func TestStreamCleanup(t *testing.T) {
	var s Stream[string]
	calls := 0

	cancel := s.Subscribe(func(string) { calls++ })
	s.Emit("a")
	cancel()
	cancel()
	s.Emit("b")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStreamCleanupKeepsOthers(t *testing.T) {
	var s Stream[int]
	var a, b int

	cancelA := s.Subscribe(func(int) { a++ })
	s.Subscribe(func(int) { b++ })
	cancelA()
	s.Emit(0)

	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d, want a=0 b=1", a, b)
	}
}

func TestStreamUnsubscribeDuringEmit(t *testing.T) {
	var s Stream[int]
	calls := 0

	var cancel Cleanup
	cancel = s.Subscribe(func(int) {
		calls++
		cancel()
	})

	s.Emit(1)
	s.Emit(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestStreamNilSubscriber(t *testing.T) {
	var s Stream[int]
	cancel := s.Subscribe(nil)
	cancel()
	s.Emit(1)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
