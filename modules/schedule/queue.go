// Package schedule is a deadline queue of keyed, cancellable tasks. It never
// reads the clock itself: callers advance it with the current time, which keeps
// timer behavior deterministic under test.
package schedule

import (
	"sort"
	"time"
)

// Task runs when its deadline is reached.
type Task func(now time.Time)

type entry struct {
	key string
	at  time.Time
	seq uint64
	run Task
}

// Queue holds pending tasks ordered by deadline, then by scheduling order.
// It is not safe for concurrent use; the owning event loop serializes access.
type Queue struct {
	entries []entry
	seq     uint64
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Schedule arms fn under key to run at the deadline. An existing task with the
// same key is replaced.
func (q *Queue) Schedule(key string, at time.Time, fn Task) {
	q.Cancel(key)
	q.seq++
	e := entry{key: key, at: at, seq: q.seq, run: fn}
	i := sort.Search(len(q.entries), func(i int) bool {
		o := q.entries[i]
		return o.at.After(at) || (o.at.Equal(at) && o.seq > e.seq)
	})
	q.entries = append(q.entries, entry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
}

// Cancel removes the task under key. It reports whether a task was pending.
func (q *Queue) Cancel(key string) bool {
	for i, e := range q.entries {
		if e.key == key {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether a task is armed under key.
func (q *Queue) Pending(key string) bool {
	for _, e := range q.entries {
		if e.key == key {
			return true
		}
	}
	return false
}

// Next returns the earliest deadline.
func (q *Queue) Next() (time.Time, bool) {
	if len(q.entries) == 0 {
		return time.Time{}, false
	}
	return q.entries[0].at, true
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Advance runs, in deadline order, every task whose deadline is at or before
// now, including tasks scheduled by other tasks during the call. It returns
// the number of tasks run.
func (q *Queue) Advance(now time.Time) int {
	ran := 0
	for len(q.entries) > 0 && !q.entries[0].at.After(now) {
		e := q.entries[0]
		q.entries = q.entries[1:]
		e.run(now)
		ran++
	}
	return ran
}

// Clear cancels every pending task.
func (q *Queue) Clear() {
	q.entries = nil
}
