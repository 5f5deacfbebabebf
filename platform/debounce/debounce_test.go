package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleRunsAfterDelay(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	task := d.Schedule(func() { calls.Add(1) })

	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestScheduleCancelsPendingTask(t *testing.T) {
	d := New(30 * time.Millisecond)
	var first, second atomic.Int32

	t1 := d.Schedule(func() { first.Add(1) })
	t2 := d.Schedule(func() { second.Add(1) })

	select {
	case <-t1.Done():
	case <-time.After(time.Second):
		t.Fatal("superseded task was not released")
	}
	select {
	case <-t2.Done():
	case <-time.After(time.Second):
		t.Fatal("latest task did not run")
	}

	if first.Load() != 0 {
		t.Fatalf("expected superseded task to be dropped, ran %d times", first.Load())
	}
	if second.Load() != 1 {
		t.Fatalf("expected latest task to run once, ran %d times", second.Load())
	}
}

func TestRapidSchedulingCollapsesToOneRun(t *testing.T) {
	d := New(100 * time.Millisecond)
	var calls atomic.Int32

	var last *Task
	for i := 0; i < 10; i++ {
		last = d.Schedule(func() { calls.Add(1) })
		time.Sleep(time.Millisecond)
	}

	select {
	case <-last.Done():
	case <-time.After(time.Second):
		t.Fatal("last task did not run")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single run, got %d", calls.Load())
	}
}

func TestTaskCancelReportsPending(t *testing.T) {
	d := New(time.Hour)
	task := d.Schedule(func() {})

	if !task.Cancel() {
		t.Fatal("expected first cancel to report pending")
	}
	if task.Cancel() {
		t.Fatal("expected second cancel to report not pending")
	}
	if d.Cancel() {
		t.Fatal("expected debouncer cancel to find nothing pending")
	}
}

func TestStopRejectsScheduling(t *testing.T) {
	d := New(time.Millisecond)
	d.Stop()

	if task := d.Schedule(func() {}); task != nil {
		t.Fatal("expected nil task after Stop")
	}
}
