// Package eventloop implements the single-goroutine cooperative scheduler
// that owns a client, its session and its packet reader.
//
// All methods except Inject, Hold and PostDelayed must be called from the
// goroutine driving the loop. Work produced on other goroutines (socket
// reads, timers) enters the loop through Inject and runs on the loop
// goroutine in injection order.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrIdle is returned by WaitUntil when the condition does not hold and no
// scheduled or outstanding work is left that could change it.
var ErrIdle = errors.New("event loop idle")

// A Task is a unit of work scheduled on a Loop.
// Cancelling a task that has not run yet turns it into a no-op.
type Task struct {
	f         func()
	cancelled bool

	timer   *time.Timer
	release func()
}

// Cancel prevents the task from running. It is a no-op if the task already ran.
func (t *Task) Cancel() {
	if t == nil || t.cancelled {
		return
	}
	t.cancelled = true
	if t.timer != nil && t.timer.Stop() {
		t.release()
	}
}

// Cancelled says if Cancel was called.
func (t *Task) Cancelled() bool { return t.cancelled }

// A Loop is a cooperative FIFO scheduler.
type Loop struct {
	queue taskQueue

	injectMx sync.Mutex
	injected []func()
	notify   chan struct{}

	holds atomic.Int64
	now   func() time.Time
}

// New creates a new Loop.
func New() *Loop {
	return &Loop{
		notify: make(chan struct{}, 1),
		now:    time.Now,
	}
}

// SetClock replaces the clock used by Now. Used by tests.
func (l *Loop) SetClock(now func() time.Time) { l.now = now }

// Now returns the current time.
func (l *Loop) Now() time.Time { return l.now() }

// Post schedules f to run after all currently scheduled tasks.
func (l *Loop) Post(f func()) *Task {
	t := &Task{f: f}
	l.queue.Push(t)
	return t
}

// Inject schedules f from any goroutine.
func (l *Loop) Inject(f func()) {
	l.injectMx.Lock()
	l.injected = append(l.injected, f)
	l.injectMx.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Hold registers outstanding work that will eventually Inject into the loop.
// While a hold exists, WaitUntil blocks for injected work instead of
// returning ErrIdle. The returned release function is idempotent.
func (l *Loop) Hold() (release func()) {
	l.holds.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() {
			l.holds.Add(-1)
			l.signal()
		})
	}
}

// Outstanding returns the number of active holds.
func (l *Loop) Outstanding() int { return int(l.holds.Load()) }

// PostDelayed schedules f to run on the loop once d has elapsed.
func (l *Loop) PostDelayed(d time.Duration, f func()) *Task {
	t := &Task{f: f, release: l.Hold()}
	t.timer = time.AfterFunc(d, func() {
		// the task is queued before the hold is released,
		// so the loop never observes an idle gap
		l.Inject(func() {
			if !t.cancelled {
				t.f()
			}
		})
		t.release()
	})
	return t
}

func (l *Loop) drainInjected() {
	l.injectMx.Lock()
	injected := l.injected
	l.injected = nil
	l.injectMx.Unlock()
	for _, f := range injected {
		l.queue.Push(&Task{f: f})
	}
}

// RunOnce runs the next scheduled task. It returns false if there was none.
func (l *Loop) RunOnce() bool {
	l.drainInjected()
	t := l.queue.Next()
	if t == nil {
		return false
	}
	t.f()
	return true
}

// RunUntilIdle runs tasks until none are scheduled.
// It does not wait for outstanding work.
func (l *Loop) RunUntilIdle() {
	for l.RunOnce() {
	}
}

// Pending returns the number of scheduled tasks, including cancelled ones.
func (l *Loop) Pending() int {
	l.injectMx.Lock()
	n := len(l.injected)
	l.injectMx.Unlock()
	return l.queue.Len() + n
}

// WaitUntil pumps the loop until cond holds.
// It returns ErrIdle if there is nothing left that could make cond true,
// and the context's error if ctx is done first.
func (l *Loop) WaitUntil(ctx context.Context, cond func() bool) error {
	for {
		if cond() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.RunOnce() {
			continue
		}
		if l.holds.Load() == 0 {
			l.drainInjected()
			if l.queue.Len() == 0 {
				return ErrIdle
			}
			continue
		}
		select {
		case <-l.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close drops all scheduled tasks.
func (l *Loop) Close() {
	l.injectMx.Lock()
	l.injected = nil
	l.injectMx.Unlock()
	l.queue.Clear()
}
