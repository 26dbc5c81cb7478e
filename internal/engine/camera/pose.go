// Package camera animates the viewer camera between poses and provides
// orbit-style manual controls around the look target.
package camera

import "github.com/Faultbox/teardown/pkg/math"

// Pose is a camera position and the point it looks at.
type Pose struct {
	Position math.Vec3 `json:"position"`
	Target   math.Vec3 `json:"target"`
}

// IsFinite reports whether both vectors are finite.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Target.IsFinite()
}

// Lerp interpolates both vectors by t.
func (p Pose) Lerp(to Pose, t float32) Pose {
	return Pose{
		Position: p.Position.Lerp(to.Position, t),
		Target:   p.Target.Lerp(to.Target, t),
	}
}

// ViewMatrix returns the view matrix for this pose with +Y up.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Position, p.Target, math.Vec3{Y: 1})
}

// diagonal is the fixed viewing direction used when framing a box.
var diagonal = math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()

// FramePose returns the pose that frames box: looking at its center from
// along the (1,1,1) diagonal at the box's largest dimension times zoom.
// ok is false for boxes without volume or results that are not finite.
func FramePose(box math.AABB, zoom float32) (Pose, bool) {
	if box.IsDegenerate() || !(zoom > 0) {
		return Pose{}, false
	}
	center := box.Center()
	dist := box.Size().MaxComponent() * zoom
	p := Pose{
		Position: center.Add(diagonal.Scale(dist)),
		Target:   center,
	}
	if !p.IsFinite() {
		return Pose{}, false
	}
	return p, true
}

// EaseInOutQuad is quadratic ease-in for the first half and quadratic
// ease-out for the second; t is clamped to [0, 1].
func EaseInOutQuad(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 2 * t * t
	default:
		return -1 + (4-2*t)*t
	}
}
