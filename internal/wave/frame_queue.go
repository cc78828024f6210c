package wave

import "time"

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameFunc runs once on a display refresh with the host timestamp.
type FrameFunc func(ts time.Duration)

// Host schedules callbacks on the next display refresh and lets them be cancelled.
type Host interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a single-threaded Host. The platform loop calls Dispatch once per refresh.
// Callbacks requested during a dispatch run on the following one.
type FrameQueue struct {
	next    FrameID
	pending []pendingFrame
	running []pendingFrame // batch being dispatched
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Dispatch.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a queued callback, including one waiting later in the batch
// currently being dispatched. Unknown or already-run ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	if hasFrame(q.pending, id) {
		q.pending = dropFrame(q.pending, id)
		return
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Dispatch runs every callback queued before the call and returns how many ran.
func (q *FrameQueue) Dispatch(ts time.Duration) int {
	q.running = q.pending
	q.pending = nil
	defer func() { q.running = nil }()

	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(ts)
		ran++
	}
	return ran
}

func hasFrame(frames []pendingFrame, id FrameID) bool {
	for _, f := range frames {
		if f.id == id {
			return true
		}
	}
	return false
}

func dropFrame(frames []pendingFrame, id FrameID) []pendingFrame {
	out := frames[:0]
	for _, f := range frames {
		if f.id != id {
			out = append(out, f)
		}
	}
	return out
}
