package scene

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Faultbox/teardown/pkg/math"
)

// ErrNoMeshes is returned when a loaded scene has nothing to render.
var ErrNoMeshes = errors.New("scene contains no meshes")

// Scene is a loaded product asset.
type Scene struct {
	Name string
	Root *Node

	// HomeCamera is the viewpoint captured when the scene loads.
	HomeCamera CameraSpec
}

// CameraSpec is a camera position and look target.
type CameraSpec struct {
	Position math.Vec3
	Target   math.Vec3
}

// New creates an empty scene with a root group.
func New(name string) *Scene {
	return &Scene{Name: name, Root: NewNode(name)}
}

// Add attaches nodes to the scene root.
func (s *Scene) Add(nodes ...*Node) {
	for _, n := range nodes {
		s.Root.AddChild(n)
	}
}

// Traverse visits every node, parents first.
func (s *Scene) Traverse(fn func(*Node)) {
	if s == nil || s.Root == nil {
		return
	}
	s.Root.Traverse(fn)
}

// Meshes returns all mesh nodes in traversal order.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	s.Traverse(func(n *Node) {
		if n.IsMesh && n.Material != nil {
			out = append(out, n)
		}
	})
	return out
}

// Find returns the node with the given identity.
func (s *Scene) Find(id uuid.UUID) *Node {
	var found *Node
	s.Traverse(func(n *Node) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found
}

// Bounds returns the world-space box of the whole scene.
func (s *Scene) Bounds() (math.AABB, bool) {
	if s == nil || s.Root == nil {
		return math.AABB{}, false
	}
	return s.Root.WorldBounds()
}
