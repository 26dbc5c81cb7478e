// Package playback steps through a plan's timed animation steps.
//
// The controller is a small state machine (Stopped, Playing, Paused). While
// Playing, exactly one one-shot timer is armed for the current step; every
// change to the step, the playing flag or the step list cancels it and, if
// still Playing, arms a fresh one. Stale timer callbacks are ignored.
package playback

import (
	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/engine/schedule"
	"github.com/Faultbox/teardown/internal/plan"
)

// Status is the controller's high-level state.
type Status int

const (
	Stopped Status = iota
	Playing
	Paused
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// State is the observable playback state.
type State struct {
	Status  Status
	Playing bool
	Step    int
}

// stopped is the zero-step resting state.
var stopped = State{Status: Stopped}

// ChangeFunc observes state transitions.
type ChangeFunc func(prev, next State)

// Controller drives playback over a list of animation steps.
type Controller struct {
	sched *schedule.Scheduler
	log   *zap.Logger

	steps     []plan.AnimationStep
	state     State
	timer     *schedule.Task
	gen       uint64
	closed    bool
	listeners []ChangeFunc
}

// New creates a stopped controller with no steps.
func New(sched *schedule.Scheduler, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{sched: sched, log: log}
}

// OnChange registers fn to run after every state transition.
func (c *Controller) OnChange(fn ChangeFunc) {
	c.listeners = append(c.listeners, fn)
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Len returns the number of steps.
func (c *Controller) Len() int {
	return len(c.steps)
}

// Steps returns the step list. Callers must not modify it.
func (c *Controller) Steps() []plan.AnimationStep {
	return c.steps
}

// Current returns the active step.
func (c *Controller) Current() (plan.AnimationStep, bool) {
	if len(c.steps) == 0 {
		return plan.AnimationStep{}, false
	}
	return c.steps[c.state.Step], true
}

// SetSteps replaces the step list and rewinds to the first step. Playback
// continues if it was running and the new list is non-empty; otherwise the
// controller stops. Listeners are not notified: whoever replaces the plan
// propagates it together with the returned state.
func (c *Controller) SetSteps(steps []plan.AnimationStep) State {
	c.steps = append([]plan.AnimationStep(nil), steps...)

	next := stopped
	if c.state.Status == Playing && len(c.steps) > 0 && !c.closed {
		next = State{Status: Playing, Playing: true}
	}
	c.state = next
	c.rearm()
	return c.state
}

// Play starts or resumes playback. No-op when already playing, when there
// are no steps, or after Close.
func (c *Controller) Play() {
	if c.closed || len(c.steps) == 0 || c.state.Status == Playing {
		return
	}
	c.transition(State{Status: Playing, Playing: true, Step: c.state.Step})
}

// Pause suspends playback on the current step. No-op unless playing.
func (c *Controller) Pause() {
	if c.state.Status != Playing {
		return
	}
	c.transition(State{Status: Paused, Step: c.state.Step})
}

// Stop rewinds to the first step and stops.
func (c *Controller) Stop() {
	c.transition(stopped)
}

// Seek jumps to step, clamped to the valid range. The playing flag is
// unchanged; seeking away from step 0 while stopped leaves the controller
// paused on that step, since stopped always means step 0.
func (c *Controller) Seek(step int) {
	if len(c.steps) == 0 {
		return
	}
	step = max(0, min(step, len(c.steps)-1))

	next := c.state
	next.Step = step
	if c.state.Status == Stopped && step > 0 {
		next.Status = Paused
	}
	c.transition(next)
}

// Next seeks one step forward.
func (c *Controller) Next() {
	c.Seek(c.state.Step + 1)
}

// Previous seeks one step back.
func (c *Controller) Previous() {
	c.Seek(c.state.Step - 1)
}

// Close cancels the pending timer and makes the controller inert.
func (c *Controller) Close() {
	c.closed = true
	c.timer.Cancel()
	c.timer = nil
	c.gen++
}

// advance is the step timer's action: move to the next step, or pause on
// the last one.
func (c *Controller) advance() {
	if c.state.Status != Playing {
		return
	}
	if c.state.Step >= len(c.steps)-1 {
		c.log.Debug("playback reached last step", zap.Int("step", c.state.Step))
		c.transition(State{Status: Paused, Step: c.state.Step})
		return
	}
	c.transition(State{Status: Playing, Playing: true, Step: c.state.Step + 1})
}

func (c *Controller) transition(next State) {
	if c.closed {
		return
	}
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	c.rearm()

	c.log.Debug("playback transition",
		zap.Stringer("from", prev.Status),
		zap.Stringer("to", next.Status),
		zap.Int("step", next.Step),
	)
	for _, fn := range c.listeners {
		fn(prev, next)
	}
}

func (c *Controller) rearm() {
	c.timer.Cancel()
	c.timer = nil
	c.gen++

	if c.closed || c.state.Status != Playing || len(c.steps) == 0 {
		return
	}
	gen := c.gen
	d := c.steps[c.state.Step].Interval()
	c.timer = c.sched.After(d, func() {
		if gen != c.gen {
			return
		}
		c.timer = nil
		c.advance()
	})
}
