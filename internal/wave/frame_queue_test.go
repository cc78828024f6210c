package wave

import (
	"testing"
	"time"
)

func TestFrameQueueDispatchOrder(t *testing.T) {
	q := NewFrameQueue()
	var got []int
	q.RequestFrame(func(time.Duration) { got = append(got, 1) })
	q.RequestFrame(func(time.Duration) { got = append(got, 2) })

	if n := q.Dispatch(0); n != 2 {
		t.Errorf("Dispatch ran %d callbacks, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("order = %v, want [1 2]", got)
	}
	if q.Pending() != 0 {
		t.Errorf("pending = %d after dispatch, want 0", q.Pending())
	}
}

func TestFrameQueueRequestDuringDispatchDefers(t *testing.T) {
	q := NewFrameQueue()
	var stamps []time.Duration

	var loop FrameFunc
	loop = func(ts time.Duration) {
		stamps = append(stamps, ts)
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	for i := 1; i <= 3; i++ {
		if n := q.Dispatch(time.Duration(i) * time.Millisecond); n != 1 {
			t.Fatalf("dispatch %d ran %d callbacks, want 1", i, n)
		}
	}
	if len(stamps) != 3 || stamps[2] != 3*time.Millisecond {
		t.Errorf("stamps = %v", stamps)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func(time.Duration) { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id + 100)

	if n := q.Dispatch(0); n != 0 || ran {
		t.Errorf("cancelled frame ran (n=%d)", n)
	}
}

func TestFrameQueueCancelLaterInBatch(t *testing.T) {
	q := NewFrameQueue()
	secondRan := false

	var second FrameID
	q.RequestFrame(func(time.Duration) { q.CancelFrame(second) })
	second = q.RequestFrame(func(time.Duration) { secondRan = true })

	if n := q.Dispatch(0); n != 1 {
		t.Errorf("Dispatch ran %d callbacks, want 1", n)
	}
	if secondRan {
		t.Error("callback cancelled mid-dispatch still ran")
	}
}
