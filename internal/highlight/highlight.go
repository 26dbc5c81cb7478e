// Package highlight keeps scene emphasis in sync with playback.
//
// Derive turns a plan and a playback state into the set of component
// identifiers to emphasize. The Coordinator resolves that set to meshes,
// swaps materials through the material cache and asks the camera to follow
// the active step.
package highlight

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/engine/material"
	"github.com/Faultbox/teardown/internal/engine/resolver"
	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/playback"
	"github.com/Faultbox/teardown/internal/plan"
)

// Derive returns the identifiers to emphasize:
//
//   - no plan: nothing
//   - playing or paused: the active step's part only
//   - stopped: every identifier of the finished sequence
//
// The result is de-duplicated and keeps plan order.
func Derive(p *plan.Plan, st playback.State) []string {
	if p == nil {
		return nil
	}
	switch st.Status {
	case playback.Playing, playback.Paused:
		step, ok := p.StepAt(st.Step)
		if !ok || step.PartID == "" {
			return nil
		}
		return []string{step.PartID}
	default:
		var out []string
		for _, id := range p.Sequence {
			if id != "" && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
		return out
	}
}

// Camera is the part of the choreographer the coordinator drives.
type Camera interface {
	FrameNode(n *scene.Node) bool
	RestoreHome()
}

// Coordinator applies the derived highlight set to one scene at a time.
type Coordinator struct {
	cam   Camera
	style material.Style
	log   *zap.Logger

	scene       *scene.Scene
	meshes      []*scene.Node
	cache       *material.Cache
	plan        *plan.Plan
	descriptors []plan.ComponentDescriptor

	state playback.State
	ids   []string
	lit   []*scene.Node
}

// New creates a coordinator with no scene and no plan. cam may be nil.
func New(cam Camera, style material.Style, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		cam:   cam,
		style: style,
		log:   log,
		cache: material.NewCache(style),
	}
}

// SetScene switches to sc, dropping every snapshot taken from the previous
// scene. Lit nodes are reverted first so a scene installed again starts
// from its real materials. A nil scene disables highlighting.
func (c *Coordinator) SetScene(sc *scene.Scene) {
	for _, n := range c.lit {
		c.cache.ClearHighlight(n)
	}
	c.cache = material.NewCache(c.style)
	c.lit = nil
	c.scene = sc
	c.meshes = nil
	if sc != nil {
		c.meshes = sc.Meshes()
	}
	c.reconcile(c.state, false)
}

// SetMetadata replaces the alias table used for resolution.
func (c *Coordinator) SetMetadata(m *plan.Metadata) {
	c.descriptors = m.Descriptors()
	c.reconcile(c.state, false)
}

// SetPlan replaces the plan. st is the playback state after the
// replacement; if it is playing, the new active step is framed.
func (c *Coordinator) SetPlan(p *plan.Plan, st playback.State) {
	c.plan = p
	c.reconcile(st, true)
}

// Update applies a new playback state.
func (c *Coordinator) Update(st playback.State) {
	c.reconcile(st, false)
}

// Highlighted returns the identifiers currently emphasized.
func (c *Coordinator) Highlighted() []string {
	return slices.Clone(c.ids)
}

// HighlightedNodes returns the meshes currently wearing the highlight.
func (c *Coordinator) HighlightedNodes() []*scene.Node {
	return slices.Clone(c.lit)
}

// Cache returns the material cache of the current scene.
func (c *Coordinator) Cache() *material.Cache {
	return c.cache
}

func (c *Coordinator) reconcile(st playback.State, planChanged bool) {
	prev := c.state
	c.state = st

	var ids []string
	if c.scene != nil {
		ids = Derive(c.plan, st)
	}
	var (
		next  []*scene.Node
		first *scene.Node
		seen  = make(map[uuid.UUID]bool)
	)
	for _, id := range ids {
		nodes := resolver.Resolve(id, c.meshes, c.descriptors)
		if len(nodes) == 0 {
			c.log.Debug("component not found in scene", zap.String("component", id))
			continue
		}
		if first == nil {
			first = nodes[0]
		}
		for _, n := range nodes {
			if !seen[n.ID] {
				seen[n.ID] = true
				next = append(next, n)
			}
		}
	}

	// Revert first so no node ever wears two highlights at once.
	for _, n := range c.lit {
		if !seen[n.ID] {
			c.cache.ClearHighlight(n)
		}
	}
	for _, n := range next {
		c.cache.EnsureCaptured(n)
		c.cache.ApplyHighlight(n)
	}
	c.ids = ids
	c.lit = next

	if c.cam == nil {
		return
	}
	switch st.Status {
	case playback.Playing:
		if first != nil && (planChanged || prev.Status != playback.Playing || prev.Step != st.Step) {
			c.cam.FrameNode(first)
		}
	case playback.Stopped:
		if prev.Status != playback.Stopped {
			c.cam.RestoreHome()
		}
	}
}
