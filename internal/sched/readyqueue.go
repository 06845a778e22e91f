// internal/sched/readyqueue.go

package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// readyQueue holds arrived, not-yet-dispatched processes ordered by
// (metric, index). The index is the position in the arrival-sorted working
// copy, so equal metrics fall back to arrival order.
type readyQueue struct {
	rbt *redblacktree.Tree
}

func newReadyQueue() *readyQueue {
	return &readyQueue{rbt: redblacktree.NewWith(compareReadyKeys)}
}

// Push admits the process at index with the given ordering metric.
func (q *readyQueue) Push(metric, index int) {
	q.rbt.Put(readyKey{metric: metric, index: index}, index)
}

// Pop removes and returns the index with the smallest (metric, index) key.
func (q *readyQueue) Pop() (int, bool) {
	node := q.rbt.Left()
	if node == nil {
		return 0, false
	}
	q.rbt.Remove(node.Key)
	return node.Value.(int), true
}

func (q *readyQueue) Empty() bool { return q.rbt.Empty() }

func (q *readyQueue) Len() int { return q.rbt.Size() }

// readyKey is used as a key in the red-black tree.
type readyKey struct {
	metric int
	index  int
}

// compareReadyKeys orders by metric, then by arrival-order index.
func compareReadyKeys(a, b any) int {
	ka, kb := a.(readyKey), b.(readyKey)
	switch {
	case ka.metric < kb.metric:
		return -1
	case ka.metric > kb.metric:
		return 1
	case ka.index < kb.index:
		return -1
	case ka.index > kb.index:
		return 1
	default:
		return 0
	}
}
