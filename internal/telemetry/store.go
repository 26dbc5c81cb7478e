// Package telemetry exposes a read-only HTTP view of the viewer state.
//
// The viewer publishes immutable snapshots into a Store from its own
// goroutine; the HTTP server only ever reads from the Store.
package telemetry

import (
	"slices"
	"sync"

	"github.com/Faultbox/teardown/internal/plan"
	"github.com/Faultbox/teardown/internal/viewer"
)

// StepView is one animation step as reported over HTTP.
type StepView struct {
	Step     int     `json:"step"`
	PartID   string  `json:"part_id"`
	Duration float64 `json:"duration"`
	Action   string  `json:"action,omitempty"`
}

// PlanView is the plan readout: the finished path plus its metrics.
type PlanView struct {
	ProductID   string       `json:"product_id"`
	TargetParts []string     `json:"target_parts"`
	Sequence    []string     `json:"sequence"`
	Steps       []StepView   `json:"animation_steps"`
	Metrics     plan.Metrics `json:"metrics"`
}

// Store holds the latest published state. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state viewer.Snapshot
	plan  *PlanView
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// PublishState records s.
func (s *Store) PublishState(snap viewer.Snapshot) {
	snap.Highlighted = slices.Clone(snap.Highlighted)
	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()
}

// PublishPlan records a copy of p. A nil plan clears the readout.
func (s *Store) PublishPlan(p *plan.Plan) {
	var view *PlanView
	if p != nil {
		view = &PlanView{
			ProductID:   p.ProductID,
			TargetParts: slices.Clone(p.TargetParts),
			Sequence:    slices.Clone(p.Sequence),
			Metrics:     p.Metrics,
			Steps:       make([]StepView, len(p.AnimationSteps)),
		}
		for i, st := range p.AnimationSteps {
			view.Steps[i] = StepView{Step: st.Step, PartID: st.PartID, Duration: st.Duration, Action: st.Action}
		}
	}
	s.mu.Lock()
	s.plan = view
	s.mu.Unlock()
}

// State returns the latest snapshot.
func (s *Store) State() viewer.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Plan returns the latest plan readout.
func (s *Store) Plan() (PlanView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return PlanView{}, false
	}
	return *s.plan, true
}
