package camera

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/engine/schedule"
	"github.com/Faultbox/teardown/pkg/math"
)

// Config tunes camera framing.
type Config struct {
	// TweenDuration is how long a framing or restore move takes.
	TweenDuration time.Duration
	// ZoomFactor scales the framed box's largest dimension into a distance.
	ZoomFactor float32
	// Orbit holds the manual control limits and sensitivities.
	Orbit OrbitCamera
}

// DefaultConfig returns one-second moves at twice the box size.
func DefaultConfig() Config {
	return Config{
		TweenDuration: time.Second,
		ZoomFactor:    2.0,
		Orbit:         *NewOrbitCamera(),
	}
}

type tween struct {
	from, to Pose
	elapsed  time.Duration
	duration time.Duration
	task     *schedule.Task
}

// Choreographer owns the current camera pose and the home pose. It tweens
// between poses on the scheduler's frame tick; at most one tween runs.
type Choreographer struct {
	cfg   Config
	sched *schedule.Scheduler
	log   *zap.Logger

	pose  Pose
	home  Pose
	orbit OrbitCamera
	tween *tween
}

// NewChoreographer creates a choreographer at the default home pose.
func NewChoreographer(sched *schedule.Scheduler, cfg Config, log *zap.Logger) *Choreographer {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Choreographer{cfg: cfg, sched: sched, log: log, orbit: cfg.Orbit}
	c.SetHome(Pose{Position: math.Vec3{X: 5, Y: 5, Z: 5}})
	return c
}

// SetHome records the pose captured at scene load and jumps to it,
// cancelling any move in flight.
func (c *Choreographer) SetHome(p Pose) {
	c.Cancel()
	c.home = p
	c.pose = p
}

// Pose returns the current, possibly mid-tween, pose.
func (c *Choreographer) Pose() Pose {
	return c.pose
}

// Home returns the home pose.
func (c *Choreographer) Home() Pose {
	return c.home
}

// Animating reports whether a tween is in flight.
func (c *Choreographer) Animating() bool {
	return c.tween != nil
}

// ControlsEnabled reports whether manual controls are accepted.
func (c *Choreographer) ControlsEnabled() bool {
	return c.tween == nil
}

// Frame starts a move that frames box. It returns false, leaving the camera
// untouched, when the box has no volume.
func (c *Choreographer) Frame(box math.AABB) bool {
	to, ok := FramePose(box, c.cfg.ZoomFactor)
	if !ok {
		c.log.Debug("skipping camera frame for degenerate bounds",
			zap.Any("min", box.Min), zap.Any("max", box.Max))
		return false
	}
	c.animateTo(to)
	return true
}

// FrameNode frames the world-space bounds of n and its mesh descendants.
func (c *Choreographer) FrameNode(n *scene.Node) bool {
	if n == nil {
		return false
	}
	box, ok := n.WorldBounds()
	if !ok {
		c.log.Debug("skipping camera frame for node without geometry", zap.String("node", n.Name))
		return false
	}
	return c.Frame(box)
}

// RestoreHome starts a move back to the home pose.
func (c *Choreographer) RestoreHome() {
	c.animateTo(c.home)
}

// Cancel stops the tween in flight, leaving the camera where it is.
func (c *Choreographer) Cancel() {
	if c.tween == nil {
		return
	}
	c.tween.task.Cancel()
	c.tween = nil
}

func (c *Choreographer) animateTo(to Pose) {
	c.Cancel()
	if c.cfg.TweenDuration <= 0 {
		c.pose = to
		return
	}
	tw := &tween{from: c.pose, to: to, duration: c.cfg.TweenDuration}
	tw.task = c.sched.EveryFrame(func(dt time.Duration) bool {
		return c.step(tw, dt)
	})
	c.tween = tw
}

func (c *Choreographer) step(tw *tween, dt time.Duration) bool {
	if c.tween != tw {
		return false
	}
	tw.elapsed += dt
	if tw.elapsed >= tw.duration {
		// Land exactly on the target so home restores bit-for-bit.
		c.pose = tw.to
		c.tween = nil
		return false
	}
	t := EaseInOutQuad(float32(tw.elapsed) / float32(tw.duration))
	c.pose = tw.from.Lerp(tw.to, t)
	return true
}

// Orbit rotates the camera around its target. Ignored while animating.
func (c *Choreographer) Orbit(dx, dy float32) bool {
	return c.manual(func(o *OrbitCamera) { o.HandleDrag(dx, dy) })
}

// Zoom moves the camera toward or away from its target. Ignored while
// animating.
func (c *Choreographer) Zoom(delta float32) bool {
	return c.manual(func(o *OrbitCamera) { o.HandleZoom(delta) })
}

// Pan moves the target and camera together. Ignored while animating.
func (c *Choreographer) Pan(forward, right, up float32) bool {
	return c.manual(func(o *OrbitCamera) { o.HandleMovement(forward, right, up) })
}

func (c *Choreographer) manual(fn func(*OrbitCamera)) bool {
	if !c.ControlsEnabled() {
		return false
	}
	c.orbit.SetPose(c.pose)
	fn(&c.orbit)
	p := c.orbit.Pose()
	if !p.IsFinite() {
		return false
	}
	c.pose = p
	return true
}
