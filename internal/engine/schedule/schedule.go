// Package schedule runs deferred work for a single-threaded host loop.
//
// Nothing here starts goroutines or reads the wall clock. The host advances
// time explicitly with Advance, which fires due one-shot timers in due-time
// order and then runs every per-frame task once. All callbacks run on the
// caller's goroutine.
package schedule

import (
	"sort"
	"time"
)

// Kind distinguishes one-shot timers from per-frame tasks.
type Kind int

const (
	KindTimer Kind = iota
	KindFrame
)

// FrameFunc is called once per Advance with the elapsed frame time.
// Returning false removes the task.
type FrameFunc func(dt time.Duration) bool

// Task is a handle to scheduled work.
type Task struct {
	s         *Scheduler
	id        uint64
	kind      Kind
	due       time.Duration
	fire      func()
	frame     FrameFunc
	cancelled bool
	done      bool
}

// Cancel stops the task. Cancelling a finished or already cancelled task,
// or a nil task, is a no-op.
func (t *Task) Cancel() {
	if t == nil || t.cancelled || t.done {
		return
	}
	t.cancelled = true
	t.s.remove(t)
}

// Active reports whether the task is still pending.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Kind returns the task kind.
func (t *Task) Kind() Kind {
	return t.kind
}

// Scheduler owns pending timers and frame tasks.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	timers []*Task
	frames []*Task
}

// New creates a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After arms a one-shot timer that fires d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &Task{s: s, id: s.nextID, kind: KindTimer, due: s.now + d, fire: fn}
	s.timers = append(s.timers, t)
	return t
}

// EveryFrame registers fn to run on every Advance until it returns false or
// the task is cancelled.
func (s *Scheduler) EveryFrame(fn FrameFunc) *Task {
	s.nextID++
	t := &Task{s: s, id: s.nextID, kind: KindFrame, frame: fn}
	s.frames = append(s.frames, t)
	return t
}

// PendingTimers returns the number of armed one-shot timers.
func (s *Scheduler) PendingTimers() int {
	return len(s.timers)
}

// PendingFrames returns the number of registered frame tasks.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// Advance moves the clock forward by dt. Timers due within the window fire
// in due order with Now() equal to their due time, so a timer re-armed from
// inside a callback is measured from the moment its predecessor fired. Frame
// tasks then run once with dt.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		s.remove(t)
		t.done = true
		t.fire()
	}
	s.now = target

	// Snapshot so tasks registered during this pass start next frame.
	frames := append([]*Task(nil), s.frames...)
	for _, t := range frames {
		if !t.Active() {
			continue
		}
		if !t.frame(dt) && t.Active() {
			t.done = true
			s.remove(t)
		}
	}
}

// Clear cancels every pending task.
func (s *Scheduler) Clear() {
	for _, t := range append(append([]*Task(nil), s.timers...), s.frames...) {
		t.Cancel()
	}
}

func (s *Scheduler) nextDue(target time.Duration) *Task {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due == s.timers[j].due {
			return s.timers[i].id < s.timers[j].id
		}
		return s.timers[i].due < s.timers[j].due
	})
	if s.timers[0].due > target {
		return nil
	}
	return s.timers[0]
}

func (s *Scheduler) remove(t *Task) {
	list := &s.timers
	if t.kind == KindFrame {
		list = &s.frames
	}
	for i, other := range *list {
		if other == t {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
