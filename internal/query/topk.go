package query

import (
	"container/heap"

	"github.com/joe/pathq/pkg/pathinfo"
)

// boundedHeap keeps the best k entries seen so far under an ordering,
// evicting the current worst when a better candidate arrives. Memory is
// O(k) and each offer costs O(log k), which beats a full sort whenever
// k is much smaller than the number of matches.
//
// The heap does not guarantee stable tie order; callers who need
// deterministic ties supply a composite ordering (By.Then).
type boundedHeap struct {
	limit int
	by    By
	items []*pathinfo.Path
}

func newBoundedHeap(limit int, by By) *boundedHeap {
	return &boundedHeap{
		limit: limit,
		by:    by,
		items: make([]*pathinfo.Path, 0, limit),
	}
}

// Offer considers one candidate, keeping the heap at most limit entries.
func (h *boundedHeap) Offer(p *pathinfo.Path) {
	heap.Push(h, p)
	if len(h.items) > h.limit {
		heap.Pop(h)
	}
}

// Sorted drains the heap, returning the kept entries best-first. The heap
// is empty afterwards.
func (h *boundedHeap) Sorted() []*pathinfo.Path {
	result := make([]*pathinfo.Path, len(h.items))
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(*pathinfo.Path)
	}

	return result
}

// heap.Interface; the root holds the worst kept entry so eviction is O(log k).

func (h *boundedHeap) Len() int { return len(h.items) }

func (h *boundedHeap) Less(i, j int) bool {
	return h.by(h.items[j], h.items[i])
}

func (h *boundedHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *boundedHeap) Push(x any) {
	h.items = append(h.items, x.(*pathinfo.Path))
}

func (h *boundedHeap) Pop() any {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]

	return item
}
