// Package plan holds the inputs the viewer receives from the planning
// backend: the optimized disassembly plan and the product's component
// metadata.
package plan

import (
	"errors"
	"math"
	"time"
)

// ErrEmptyPlan is returned when a plan has neither a sequence nor steps.
var ErrEmptyPlan = errors.New("plan has no sequence and no animation steps")

// DefaultStepDuration replaces missing or non-positive step durations.
const DefaultStepDuration = time.Second

// AnimationStep is one timed emphasis of a component.
type AnimationStep struct {
	Step      int     `json:"step"`
	PartID    string  `json:"part_id"`
	Duration  float64 `json:"duration"` // seconds
	Action    string  `json:"action,omitempty"`
	Highlight bool    `json:"highlight,omitempty"`
}

// Interval returns the step duration as a time.Duration, saturating at the
// longest representable duration.
func (s AnimationStep) Interval() time.Duration {
	ns := s.Duration * float64(time.Second)
	if ns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(ns)
}

// PathEntry is one row of the optimal path table.
type PathEntry struct {
	Step     int    `json:"step"`
	PartID   string `json:"part_id"`
	PartName string `json:"part_name"`
	Action   string `json:"action"`
}

// Metrics summarizes the optimization result.
type Metrics struct {
	TotalTime         float64 `json:"total_time"`
	TotalCost         float64 `json:"total_cost"`
	AverageDifficulty float64 `json:"average_difficulty"`
	NumberOfSteps     int     `json:"number_of_steps"`
	EfficiencyScore   float64 `json:"efficiency_score"`
	Algorithm         string  `json:"algorithm"`
}

// Plan is a finished disassembly plan. The viewer treats it as immutable.
type Plan struct {
	ProductID      string          `json:"product_id"`
	TargetParts    []string        `json:"target_parts"`
	Sequence       []string        `json:"sequence"`
	AnimationSteps []AnimationStep `json:"animation_steps"`
	OptimalPath    []PathEntry     `json:"optimal_path,omitempty"`
	Metrics        Metrics         `json:"metrics"`
}

// Steps returns the animation steps, or nil for a nil plan.
func (p *Plan) Steps() []AnimationStep {
	if p == nil {
		return nil
	}
	return p.AnimationSteps
}

// StepAt returns the step at index i.
func (p *Plan) StepAt(i int) (AnimationStep, bool) {
	if p == nil || i < 0 || i >= len(p.AnimationSteps) {
		return AnimationStep{}, false
	}
	return p.AnimationSteps[i], true
}

// Normalize enforces the plan invariants in place: every step gets a
// positive duration and a 1-based step number. It returns the indexes of
// steps whose duration was replaced.
func (p *Plan) Normalize(defaultDuration time.Duration) []int {
	if defaultDuration <= 0 {
		defaultDuration = DefaultStepDuration
	}
	var fixed []int
	for i := range p.AnimationSteps {
		s := &p.AnimationSteps[i]
		if !(s.Duration > 0) {
			s.Duration = defaultDuration.Seconds()
			fixed = append(fixed, i)
		}
		if s.Step == 0 {
			s.Step = i + 1
		}
	}
	return fixed
}

// Validate reports whether the plan has anything to show.
func (p *Plan) Validate() error {
	if p == nil || (len(p.Sequence) == 0 && len(p.AnimationSteps) == 0) {
		return ErrEmptyPlan
	}
	return nil
}
