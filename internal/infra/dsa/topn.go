package dsa

// ─── Bounded Top-N Selector ─────────────────────────────────────────────────
// Ranked snapshots (leaderboards, top songs) keep only the best N of a full
// scan. A binary min-heap of size N holds the current survivors with the
// weakest at the root, so a full pass over U candidates costs O(U log N).
//
// Operations:
//   Add:    O(log n)
//   Ranked: O(n log n) — best first

// TopN selects the best n items by the given ordering.
// better(a, b) reports whether a outranks b. Not safe for concurrent use;
// callers build and drain a TopN within one critical section.
type TopN[T any] struct {
	n      int
	better func(a, b T) bool
	heap   []T // min-heap: heap[0] is the weakest survivor
}

// NewTopN creates a selector keeping the best n items.
func NewTopN[T any](n int, better func(a, b T) bool) *TopN[T] {
	if n < 0 {
		n = 0
	}
	return &TopN[T]{n: n, better: better, heap: make([]T, 0, n)}
}

// Add offers an item. It is kept only if it outranks the current weakest
// survivor (or the selector is not yet full).
func (t *TopN[T]) Add(v T) {
	if t.n == 0 {
		return
	}
	if len(t.heap) < t.n {
		t.heap = append(t.heap, v)
		t.siftUp(len(t.heap) - 1)
		return
	}
	// Full: replace the root only if v outranks it.
	if t.better(v, t.heap[0]) {
		t.heap[0] = v
		t.siftDown(0)
	}
}

// Len returns the number of survivors.
func (t *TopN[T]) Len() int {
	return len(t.heap)
}

// Ranked drains the selector and returns the survivors best first.
func (t *TopN[T]) Ranked() []T {
	out := make([]T, len(t.heap))
	// Repeatedly extract the weakest survivor into the tail.
	for i := len(t.heap) - 1; i >= 0; i-- {
		out[i] = t.heap[0]
		last := len(t.heap) - 1
		t.heap[0] = t.heap[last]
		t.heap = t.heap[:last]
		if len(t.heap) > 0 {
			t.siftDown(0)
		}
	}
	return out
}

// less orders the heap: item i sits below item j when i is weaker.
func (t *TopN[T]) less(i, j int) bool {
	return t.better(t.heap[j], t.heap[i])
}

func (t *TopN[T]) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if t.less(idx, parent) {
			t.heap[idx], t.heap[parent] = t.heap[parent], t.heap[idx]
			idx = parent
		} else {
			break
		}
	}
}

func (t *TopN[T]) siftDown(idx int) {
	n := len(t.heap)
	for {
		smallest := idx
		left := 2*idx + 1
		right := 2*idx + 2

		if left < n && t.less(left, smallest) {
			smallest = left
		}
		if right < n && t.less(right, smallest) {
			smallest = right
		}
		if smallest == idx {
			break
		}
		t.heap[idx], t.heap[smallest] = t.heap[smallest], t.heap[idx]
		idx = smallest
	}
}
