package camera

import (
	gomath "math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/engine/schedule"
	"github.com/Faultbox/teardown/pkg/math"
)

var unitBox = math.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

func assertVecNear(t *testing.T, want, got math.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func newTestChoreographer() (*Choreographer, *schedule.Scheduler) {
	s := schedule.New()
	return NewChoreographer(s, DefaultConfig(), nil), s
}

func TestEaseInOutQuad(t *testing.T) {
	assert.Equal(t, float32(0), EaseInOutQuad(-1))
	assert.Equal(t, float32(0), EaseInOutQuad(0))
	assert.Equal(t, float32(0.125), EaseInOutQuad(0.25))
	assert.Equal(t, float32(0.5), EaseInOutQuad(0.5))
	assert.Equal(t, float32(0.875), EaseInOutQuad(0.75))
	assert.Equal(t, float32(1), EaseInOutQuad(1))
	assert.Equal(t, float32(1), EaseInOutQuad(2))

	// Symmetric about the midpoint.
	for _, x := range []float32{0.1, 0.2, 0.3, 0.4} {
		assert.InDelta(t, 1-EaseInOutQuad(x), EaseInOutQuad(1-x), 1e-6)
	}
}

func TestFramePose(t *testing.T) {
	box := math.AABB{Min: math.Vec3{X: 1, Y: 0, Z: 1}, Max: math.Vec3{X: 3, Y: 4, Z: 2}}
	p, ok := FramePose(box, 2)
	require.True(t, ok)

	assert.Equal(t, math.Vec3{X: 2, Y: 2, Z: 1.5}, p.Target)
	assert.InDelta(t, 8.0, p.Position.Distance(p.Target), 1e-5)

	// The camera sits on the (1,1,1) diagonal from the center.
	off := p.Position.Sub(p.Target)
	assert.InDelta(t, off.X, off.Y, 1e-5)
	assert.InDelta(t, off.Y, off.Z, 1e-5)
}

func TestFramePoseDegenerate(t *testing.T) {
	nan := float32(gomath.NaN())
	big := float32(gomath.MaxFloat32)

	boxes := []math.AABB{
		{},
		{Max: math.Vec3{X: 1, Y: 1}},
		{Max: math.Vec3{X: nan, Y: 1, Z: 1}},
		{Min: math.Vec3{X: -big, Y: -big, Z: -big}, Max: math.Vec3{X: big, Y: big, Z: big}},
	}
	for _, b := range boxes {
		_, ok := FramePose(b, 2)
		assert.False(t, ok, "box %v", b)
	}
	_, ok := FramePose(unitBox, 0)
	assert.False(t, ok)
}

func TestFrameZeroVolumeIsNoop(t *testing.T) {
	c, s := newTestChoreographer()
	before := c.Pose()

	ok := c.Frame(math.AABB{Min: math.Vec3{X: 1, Y: 1, Z: 1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	s.Advance(2 * time.Second)

	assert.False(t, ok)
	assert.False(t, c.Animating())
	assert.Equal(t, 0, s.PendingFrames())
	assert.Equal(t, before, c.Pose())
}

func TestFrameTweensToTarget(t *testing.T) {
	c, s := newTestChoreographer()
	start := c.Pose()
	want, _ := FramePose(unitBox, 2)

	require.True(t, c.Frame(unitBox))
	assert.True(t, c.Animating())
	assert.False(t, c.ControlsEnabled())

	s.Advance(500 * time.Millisecond)
	mid := c.Pose()
	assertVecNear(t, start.Position.Lerp(want.Position, 0.5), mid.Position, 1e-4)
	assert.False(t, c.Orbit(10, 0))
	assert.False(t, c.Zoom(1))
	assert.Equal(t, mid, c.Pose())

	s.Advance(500 * time.Millisecond)
	assert.Equal(t, want, c.Pose())
	assert.False(t, c.Animating())
	assert.True(t, c.ControlsEnabled())
	assert.Equal(t, 0, s.PendingFrames())
}

func TestNewMoveRestartsFromCurrentPose(t *testing.T) {
	c, s := newTestChoreographer()
	other := math.AABB{Min: math.Vec3{X: 10, Y: 10, Z: 10}, Max: math.Vec3{X: 12, Y: 12, Z: 12}}

	c.Frame(unitBox)
	s.Advance(300 * time.Millisecond)
	mid := c.Pose()

	c.Frame(other)
	assert.Equal(t, 1, s.PendingFrames(), "moves must not queue")
	assert.Equal(t, mid, c.Pose())

	s.Advance(time.Millisecond)
	assert.Less(t, float64(c.Pose().Position.Distance(mid.Position)), 0.01)

	s.Advance(time.Second)
	want, _ := FramePose(other, 2)
	assert.Equal(t, want, c.Pose())
}

func TestRestoreHomeExact(t *testing.T) {
	c, s := newTestChoreographer()
	home := Pose{Position: math.Vec3{X: 5.123457, Y: 4.1, Z: -3.3}, Target: math.Vec3{X: 0.1, Y: 0.2, Z: 0.3}}
	c.SetHome(home)

	c.Frame(unitBox)
	s.Advance(700 * time.Millisecond)
	c.RestoreHome()
	for i := 0; i < 100; i++ {
		s.Advance(16 * time.Millisecond)
	}

	assert.Equal(t, home, c.Pose())
	assert.Equal(t, home, c.Home())
}

func TestCancelLeavesInterpolatedPose(t *testing.T) {
	c, s := newTestChoreographer()
	c.Frame(unitBox)
	s.Advance(250 * time.Millisecond)
	mid := c.Pose()

	c.Cancel()
	s.Advance(time.Second)

	assert.Equal(t, mid, c.Pose())
	assert.False(t, c.Animating())
	assert.NotEqual(t, c.Home(), mid)
}

func TestSetHomeCancelsTween(t *testing.T) {
	c, s := newTestChoreographer()
	c.Frame(unitBox)
	s.Advance(100 * time.Millisecond)

	home := Pose{Position: math.Vec3{X: 1, Y: 2, Z: 3}}
	c.SetHome(home)
	s.Advance(time.Second)

	assert.Equal(t, home, c.Pose())
	assert.Equal(t, 0, s.PendingFrames())
}

func TestZeroDurationJumps(t *testing.T) {
	s := schedule.New()
	cfg := DefaultConfig()
	cfg.TweenDuration = 0
	c := NewChoreographer(s, cfg, nil)

	c.Frame(unitBox)
	want, _ := FramePose(unitBox, cfg.ZoomFactor)
	assert.Equal(t, want, c.Pose())
	assert.False(t, c.Animating())
}

func TestFrameNode(t *testing.T) {
	c, s := newTestChoreographer()
	mesh := scene.NewMesh("lid", unitBox, nil)
	mesh.Transform.Position = math.Vec3{Y: 3}

	require.True(t, c.FrameNode(mesh))
	s.Advance(time.Second)
	assertVecNear(t, math.Vec3{Y: 3}, c.Pose().Target, 1e-6)

	assert.False(t, c.FrameNode(scene.NewNode("group")))
	assert.False(t, c.FrameNode(nil))
}

func TestManualControls(t *testing.T) {
	c, _ := newTestChoreographer()
	start := c.Pose()
	dist := start.Position.Distance(start.Target)

	require.True(t, c.Orbit(100, 0))
	assert.InDelta(t, dist, c.Pose().Position.Distance(c.Pose().Target), 1e-4)
	assert.NotEqual(t, start.Position, c.Pose().Position)
	assert.Equal(t, start.Target, c.Pose().Target)

	require.True(t, c.Zoom(1))
	assert.InDelta(t, dist*0.9, c.Pose().Position.Distance(c.Pose().Target), 1e-4)

	require.True(t, c.Pan(0, 1, 0))
	assert.NotEqual(t, start.Target, c.Pose().Target)
}

func TestOrbitCameraPoseRoundTrip(t *testing.T) {
	o := NewOrbitCamera()
	p := Pose{Position: math.Vec3{X: 3, Y: 4, Z: -2}, Target: math.Vec3{X: 1, Y: 1, Z: 1}}
	o.SetPose(p)

	got := o.Pose()
	assertVecNear(t, p.Position, got.Position, 1e-5)
	assert.Equal(t, p.Target, got.Target)
}

func TestOrbitCameraClamps(t *testing.T) {
	o := NewOrbitCamera()
	o.HandleDrag(0, 1e6)
	assert.Equal(t, o.MaxPitch, o.RotationX)
	o.HandleDrag(0, -1e6)
	assert.Equal(t, o.MinPitch, o.RotationX)

	o.HandleZoom(-1e6)
	assert.Equal(t, o.MaxDistance, o.Distance)
	o.HandleZoom(20)
	assert.Equal(t, o.MinDistance, o.Distance)
}
