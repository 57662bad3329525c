// Package clock provides a logical-time timer scheduler.
//
// A Scheduler never reads the wall clock and never starts goroutines. Time only
// moves when the owner calls Advance, so every callback runs on the owner's
// goroutine in a deterministic order. Presenters feed it real frame deltas,
// tests feed it whatever they like.
package clock

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

// Scheduler runs one-shot and periodic callbacks against a logical clock.
// It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	queue  timerQueue
	timers map[Handle]*timer
}

type timer struct {
	handle   Handle
	due      time.Duration
	interval time.Duration // 0 for one-shot
	seq      uint64        // tie-break: creation order
	fn       func()
	index    int
}

// New creates a scheduler at logical time zero.
func New() *Scheduler {
	return &Scheduler{
		timers: make(map[Handle]*timer),
	}
}

// Now returns the logical time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d after the current logical time.
// Non-positive d runs fn on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every interval, starting one interval from now.
// A non-positive interval is treated as one nanosecond.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return s.schedule(interval, interval, fn)
}

func (s *Scheduler) schedule(d, interval time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &timer{
		handle:   Handle(s.seq),
		due:      s.now + d,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	s.timers[t.handle] = t
	heap.Push(&s.queue, t)
	return t.handle
}

// Cancel stops a timer. Cancelling an unknown, fired or already cancelled
// handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	t, ok := s.timers[h]
	if !ok {
		return
	}
	delete(s.timers, h)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

// Active reports whether h refers to a timer that will still fire.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.timers[h]
	return ok
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves logical time forward by d, running every callback that
// becomes due in due-time order. Callbacks may schedule or cancel timers;
// newly scheduled timers that fall inside the window also run.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.due

		if next.interval > 0 {
			next.due += next.interval
			heap.Push(&s.queue, next)
		} else {
			delete(s.timers, next.handle)
		}

		next.fn()
	}

	s.now = target
}

// timerQueue is a min-heap ordered by due time, then scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
