// Package debounce delays work until its trigger has been quiet for a fixed
// interval. Each scheduled unit of work is an explicit Task that can be
// cancelled while it is still pending.
package debounce

import (
	"sync"
	"time"
)

// Task is a single scheduled invocation.
type Task struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	done    chan struct{}
}

// Cancel stops the task if it has not started yet.
// It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.pending {
		return false
	}
	t.pending = false
	t.timer.Stop()
	close(t.done)
	return true
}

// Done is closed once the task has either run to completion or been cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.pending {
		return false
	}
	t.pending = false
	return true
}

// Debouncer schedules at most one pending Task at a time. Scheduling a new
// task cancels the previous one if it has not fired. A task that is already
// running is left alone.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	current *Task
	stopped bool
}

// New returns a Debouncer that waits delay before running scheduled work.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the configured quiet interval.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending task and arms fn to run after the delay.
// It returns nil once the debouncer has been stopped.
func (d *Debouncer) Schedule(fn func()) *Task {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return nil
	}
	if d.current != nil {
		d.current.Cancel()
	}

	task := &Task{pending: true, done: make(chan struct{})}
	task.mu.Lock()
	task.timer = time.AfterFunc(d.delay, func() {
		if !task.start() {
			return
		}
		defer close(task.done)
		fn()
	})
	task.mu.Unlock()

	d.current = task
	return task
}

// Cancel drops the pending task, if any. It reports whether one was dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return false
	}
	cancelled := d.current.Cancel()
	d.current = nil
	return cancelled
}

// Stop cancels pending work and rejects further scheduling.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.current != nil {
		d.current.Cancel()
		d.current = nil
	}
}
