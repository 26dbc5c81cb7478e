// Package scene holds the product's scene graph: named nodes with local
// transforms, mesh bounds and exclusively owned materials.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/teardown/pkg/math"
)

// Transform is a node's local placement relative to its parent.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3 // Euler XYZ, degrees
	Scale    math.Vec3
}

// IdentityTransform places a node at its parent's origin.
func IdentityTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns the local transform matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Node is one element of the scene graph.
type Node struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	Material  *Material

	// Bounds is the local-space geometry box. Only mesh nodes have one.
	Bounds   math.AABB
	IsMesh   bool
	Parent   *Node
	Children []*Node
}

// NewNode creates a group node with a fresh identity.
func NewNode(name string) *Node {
	return &Node{
		ID:        uuid.New(),
		Name:      name,
		Transform: IdentityTransform(),
	}
}

// NewMesh creates a mesh node with the given local bounds and material.
func NewMesh(name string, bounds math.AABB, mat *Material) *Node {
	n := NewNode(name)
	n.IsMesh = true
	n.Bounds = bounds
	if mat == nil {
		mat = DefaultMaterial()
	}
	n.Material = mat
	return n
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.Transform.Matrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Transform.Matrix().Mul(m)
	}
	return m
}

// WorldBounds returns the world-space box of n and all mesh descendants.
// ok is false when the subtree contains no mesh.
func (n *Node) WorldBounds() (box math.AABB, ok bool) {
	n.Traverse(func(c *Node) {
		if !c.IsMesh {
			return
		}
		wb := c.Bounds.Transform(c.WorldMatrix())
		if !ok {
			box, ok = wb, true
			return
		}
		box = box.Union(wb)
	})
	return box, ok
}

// Traverse visits n and its descendants depth-first, parents first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}
