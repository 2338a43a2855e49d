package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapCachedPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("render.total")
	b := r.Ints.Get("render.total")
	if a != b {
		t.Error("same key must return the same pointer")
	}

	a.Store(42)
	if b.Load() != 42 {
		t.Errorf("shared pointer = %d, want 42", b.Load())
	}
	if r.Ints.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Ints.Count())
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	if f.Get() != 0 {
		t.Error("zero value must read 0.0")
	}
	f.Set(16.67)
	if f.Get() != 16.67 {
		t.Errorf("Get = %v, want 16.67", f.Get())
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("c")
	r.Ints.Get("a")
	r.Ints.Get("b")

	var keys []string
	r.Ints.Range(func(k string, _ *atomic.Int64) {
		keys = append(keys, k)
	})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Range order = %v, want %v", keys, want)
		}
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("shared").Set(1.0)
			}
		}()
	}
	wg.Wait()

	if m.Count() != 1 {
		t.Errorf("Count = %d, want 1", m.Count())
	}
}
