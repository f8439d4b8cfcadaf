// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync"
	"testing"
)

func TestDispatcher_Order(t *testing.T) {
	t.Parallel()

	var ls Listeners
	var mu sync.Mutex
	var got []float64

	ls.Add(ListenerFunc(func(e Event) {
		if r, ok := e.(Ready); ok {
			mu.Lock()
			got = append(got, r.Duration)
			mu.Unlock()
		}
	}))

	d := NewDispatcher(&ls)

	const n = 500
	var wg sync.WaitGroup
	for i := range n {
		d.Emit(Ready{Duration: float64(i)})
		if i%100 == 0 {
			// Concurrent posters must not break per-poster ordering.
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Post(func() {})
			}()
		}
	}
	wg.Wait()
	d.Close()

	if len(got) != n {
		t.Fatalf("delivered %d events, want %d", len(got), n)
	}
	for i, v := range got {
		if v != float64(i) {
			t.Fatalf("event %d = %v, out of order", i, v)
		}
	}
}

func TestDispatcher_NotReentrant(t *testing.T) {
	t.Parallel()

	var ls Listeners
	d := NewDispatcher(&ls)

	depth := 0
	maxDepth := 0
	done := make(chan struct{})

	var post func(i int)
	post = func(i int) {
		d.Post(func() {
			depth++
			maxDepth = max(maxDepth, depth)
			if i < 10 {
				post(i + 1)
			} else {
				close(done)
			}
			depth--
		})
	}
	post(0)

	<-done
	d.Close()

	if maxDepth != 1 {
		t.Errorf("max depth = %d, want 1", maxDepth)
	}
}

func TestDispatcher_PostAfterClose(t *testing.T) {
	t.Parallel()

	var ls Listeners
	d := NewDispatcher(&ls)
	d.Close()
	d.Close()

	ran := false
	d.Post(func() { ran = true })
	if ran {
		t.Error("function ran after Close")
	}
}
