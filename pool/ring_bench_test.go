package pool

import (
	"sync"
	"testing"
)

func BenchmarkRingPutTake(b *testing.B) {
	r := NewRingBuffer[int](10)
	for i := 0; i < b.N; i++ {
		r.Put(i)
		_ = r.Take()
	}
}

func BenchmarkRingOneProducerTwoConsumers(b *testing.B) {
	r := NewRingBuffer[int](10)
	var wg sync.WaitGroup
	for c := 0; c < 2; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r.Take() >= 0 {
			}
		}()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Put(i)
	}
	r.Put(-1)
	r.Put(-1)
	wg.Wait()
}

// TestRingIndicesAfterDrain checks that a drained ring returns to the
// empty marker rather than leaving front == rear pointing at a stale slot.
func TestRingIndicesAfterDrain(t *testing.T) {
	r := NewRingBuffer[int](3)
	for round := 0; round < 5; round++ {
		r.Put(1)
		r.Put(2)
		r.Take()
		r.Take()
		if r.front != emptyIndex || r.rear != emptyIndex {
			t.Fatalf("round %d: front=%d rear=%d after drain", round, r.front, r.rear)
		}
		if r.slots[0] != 0 || r.slots[1] != 0 {
			t.Fatalf("round %d: taken slots not cleared: %v", round, r.slots)
		}
	}
}
