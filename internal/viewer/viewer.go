// Package viewer composes the playback, highlight and camera components for
// one loaded product. A host loop owns a Viewer, forwards user input to it
// and calls Tick once per frame; everything runs on that goroutine.
package viewer

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/engine/camera"
	"github.com/Faultbox/teardown/internal/engine/material"
	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/engine/schedule"
	"github.com/Faultbox/teardown/internal/highlight"
	"github.com/Faultbox/teardown/internal/playback"
	"github.com/Faultbox/teardown/internal/plan"
)

// ErrNoScene is reported when no scene has been loaded yet.
var ErrNoScene = errors.New("no product scene loaded")

// Options configures a Viewer.
type Options struct {
	Camera    camera.Config
	Highlight material.Style
}

// DefaultOptions returns the stock camera and highlight settings.
func DefaultOptions() Options {
	return Options{
		Camera:    camera.DefaultConfig(),
		Highlight: material.DefaultStyle(),
	}
}

// Publisher receives a copy of the viewer state after every change.
type Publisher interface {
	PublishState(Snapshot)
	PublishPlan(*plan.Plan)
}

// CameraReadout is the camera part of a Snapshot.
type CameraReadout struct {
	Position  [3]float32 `json:"position"`
	Target    [3]float32 `json:"target"`
	Animating bool       `json:"animating"`
}

// Snapshot is an immutable readout of the viewer state.
type Snapshot struct {
	Product     string        `json:"product"`
	Status      string        `json:"status"`
	Playing     bool          `json:"playing"`
	Step        int           `json:"step"`
	StepCount   int           `json:"step_count"`
	CurrentPart string        `json:"current_part,omitempty"`
	Highlighted []string      `json:"highlighted"`
	Camera      CameraReadout `json:"camera"`
	SceneError  string        `json:"scene_error,omitempty"`
}

// Viewer owns one scene's worth of highlight and camera state.
type Viewer struct {
	log *zap.Logger

	sched *schedule.Scheduler
	ctl   *playback.Controller
	cam   *camera.Choreographer
	coord *highlight.Coordinator

	scene    *scene.Scene
	sceneErr error
	plan     *plan.Plan

	publishers []Publisher
	closed     bool
}

// New creates a viewer with no scene and no plan.
func New(opts Options, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		log:      log,
		sched:    schedule.New(),
		sceneErr: ErrNoScene,
	}
	v.ctl = playback.New(v.sched, log.Named("playback"))
	v.cam = camera.NewChoreographer(v.sched, opts.Camera, log.Named("camera"))
	v.coord = highlight.New(v.cam, opts.Highlight, log.Named("highlight"))
	v.ctl.OnChange(func(_, next playback.State) {
		v.coord.Update(next)
	})
	return v
}

// AddPublisher registers p and sends it the current state.
func (v *Viewer) AddPublisher(p Publisher) {
	v.publishers = append(v.publishers, p)
	p.PublishPlan(v.plan)
	p.PublishState(v.Snapshot())
}

// LoadScene installs a freshly loaded scene. A non-nil err (or a nil scene)
// is recorded and leaves the viewer showing a placeholder: playback stops
// and nothing is highlighted until a valid scene arrives.
func (v *Viewer) LoadScene(sc *scene.Scene, err error) {
	if v.closed {
		return
	}
	if err == nil && sc == nil {
		err = ErrNoScene
	}
	v.ctl.Stop()

	if err != nil {
		v.log.Error("scene load failed", zap.Error(err))
		v.scene = nil
		v.sceneErr = err
		v.cam.Cancel()
		v.coord.SetScene(nil)
		v.publish()
		return
	}

	v.scene = sc
	v.sceneErr = nil
	v.cam.SetHome(camera.Pose{Position: sc.HomeCamera.Position, Target: sc.HomeCamera.Target})
	v.coord.SetScene(sc)
	v.log.Info("scene loaded",
		zap.String("scene", sc.Name),
		zap.Int("meshes", len(sc.Meshes())),
	)
	v.publish()
}

// SetPlan replaces the plan. Playback rewinds to the first step and any
// camera move in flight stops where it is.
func (v *Viewer) SetPlan(p *plan.Plan) {
	if v.closed {
		return
	}
	v.plan = p
	st := v.ctl.SetSteps(p.Steps())
	v.cam.Cancel()
	v.coord.SetPlan(p, st)
	if p != nil {
		v.log.Info("plan loaded",
			zap.String("product", p.ProductID),
			zap.Int("steps", len(p.AnimationSteps)),
			zap.Int("sequence", len(p.Sequence)),
		)
	}
	for _, pub := range v.publishers {
		pub.PublishPlan(p)
	}
	v.publish()
}

// SetMetadata replaces the component alias table.
func (v *Viewer) SetMetadata(m *plan.Metadata) {
	if v.closed {
		return
	}
	v.coord.SetMetadata(m)
	v.publish()
}

// Play starts playback. Like the other step controls it does nothing until
// a scene is loaded.
func (v *Viewer) Play() { v.transport("play", v.ctl.Play) }

// Pause suspends playback.
func (v *Viewer) Pause() { v.do(v.ctl.Pause) }

// Stop rewinds to the first step.
func (v *Viewer) Stop() { v.do(v.ctl.Stop) }

// Next moves one step forward.
func (v *Viewer) Next() { v.transport("next", v.ctl.Next) }

// Previous moves one step back.
func (v *Viewer) Previous() { v.transport("previous", v.ctl.Previous) }

// Seek jumps to step, clamped to the plan.
func (v *Viewer) Seek(step int) {
	v.transport("seek", func() { v.ctl.Seek(step) })
}

// TogglePlay pauses when playing and plays otherwise.
func (v *Viewer) TogglePlay() {
	if v.ctl.State().Status == playback.Playing {
		v.Pause()
		return
	}
	v.Play()
}

// Orbit rotates the camera manually. It reports false while a camera move
// is in flight.
func (v *Viewer) Orbit(dx, dy float32) bool {
	return v.manual(func() bool { return v.cam.Orbit(dx, dy) })
}

// Zoom moves the camera toward or away from its target.
func (v *Viewer) Zoom(delta float32) bool {
	return v.manual(func() bool { return v.cam.Zoom(delta) })
}

// Pan slides the camera and its target together.
func (v *Viewer) Pan(forward, right, up float32) bool {
	return v.manual(func() bool { return v.cam.Pan(forward, right, up) })
}

// Tick advances the viewer clock by dt: due step timers fire, then the
// camera tween moves.
func (v *Viewer) Tick(dt time.Duration) {
	if v.closed {
		return
	}
	v.sched.Advance(dt)
	v.publish()
}

// Close cancels the step timer and any camera move. The viewer ignores
// further input.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.ctl.Close()
	v.cam.Cancel()
	v.sched.Clear()
	v.closed = true
}

// State returns the playback state.
func (v *Viewer) State() playback.State {
	return v.ctl.State()
}

// Plan returns the current plan, or nil.
func (v *Viewer) Plan() *plan.Plan {
	return v.plan
}

// Scene returns the loaded scene, or nil.
func (v *Viewer) Scene() *scene.Scene {
	return v.scene
}

// Camera returns the current camera pose.
func (v *Viewer) Camera() camera.Pose {
	return v.cam.Pose()
}

// HighlightedNodes returns the meshes currently highlighted.
func (v *Viewer) HighlightedNodes() []*scene.Node {
	return v.coord.HighlightedNodes()
}

// Snapshot returns a copy of the current state.
func (v *Viewer) Snapshot() Snapshot {
	st := v.ctl.State()
	pose := v.cam.Pose()
	s := Snapshot{
		Status:      st.Status.String(),
		Playing:     st.Playing,
		Step:        st.Step,
		StepCount:   v.ctl.Len(),
		Highlighted: v.coord.Highlighted(),
		Camera: CameraReadout{
			Position:  pose.Position.Array(),
			Target:    pose.Target.Array(),
			Animating: v.cam.Animating(),
		},
	}
	if s.Highlighted == nil {
		s.Highlighted = []string{}
	}
	if v.plan != nil {
		s.Product = v.plan.ProductID
	}
	if step, ok := v.ctl.Current(); ok {
		s.CurrentPart = step.PartID
	}
	if v.sceneErr != nil {
		s.SceneError = v.sceneErr.Error()
	}
	return s
}

func (v *Viewer) do(fn func()) {
	if v.closed {
		return
	}
	fn()
	v.publish()
}

func (v *Viewer) transport(op string, fn func()) {
	if v.scene == nil {
		v.log.Debug("transport ignored without scene", zap.String("op", op), zap.Error(v.sceneErr))
		return
	}
	v.do(fn)
}

func (v *Viewer) manual(fn func() bool) bool {
	if v.closed || v.scene == nil {
		return false
	}
	ok := fn()
	if ok {
		v.publish()
	}
	return ok
}

func (v *Viewer) publish() {
	if len(v.publishers) == 0 {
		return
	}
	s := v.Snapshot()
	for _, p := range v.publishers {
		p.PublishState(s)
	}
}
