// Package material keeps each mesh's pristine appearance and swaps in a
// highlighted variant on demand.
//
// Bookkeeping lives in a side table keyed by node identity; nodes carry no
// highlight flags of their own.
package material

import (
	"github.com/google/uuid"

	"github.com/Faultbox/teardown/internal/engine/scene"
)

// Style describes how a highlighted material differs from its pristine copy.
type Style struct {
	Emissive          [3]float32
	EmissiveIntensity float32
	Brightness        float32 // multiplier applied to the base color
}

// DefaultStyle is a bright green glow with a 1.3x color boost.
func DefaultStyle() Style {
	return Style{
		Emissive:          [3]float32{0, 1, 0},
		EmissiveIntensity: 0.8,
		Brightness:        1.3,
	}
}

// Apply derives a highlighted material from base without modifying it.
func (s Style) Apply(base *scene.Material) *scene.Material {
	m := base.Clone()
	m.Emissive = s.Emissive
	m.EmissiveIntensity = s.EmissiveIntensity
	for i := range m.Color {
		m.Color[i] *= s.Brightness
	}
	return m
}

type entry struct {
	pristine    *scene.Material
	highlighted bool
}

// Cache owns one pristine snapshot per node for the lifetime of a scene.
type Cache struct {
	style   Style
	entries map[uuid.UUID]*entry
}

// NewCache creates an empty cache using the given highlight style.
func NewCache(style Style) *Cache {
	return &Cache{
		style:   style,
		entries: make(map[uuid.UUID]*entry),
	}
}

// EnsureCaptured snapshots the node's current material the first time the
// node is seen. Later calls are no-ops, so a highlighted material is never
// mistaken for the pristine one.
func (c *Cache) EnsureCaptured(n *scene.Node) {
	if n == nil || n.Material == nil {
		return
	}
	if _, ok := c.entries[n.ID]; ok {
		return
	}
	c.entries[n.ID] = &entry{pristine: n.Material.Clone()}
}

// ApplyHighlight assigns a highlighted material derived from the pristine
// snapshot. No-op if the node is already highlighted or was never captured.
func (c *Cache) ApplyHighlight(n *scene.Node) {
	if n == nil {
		return
	}
	e, ok := c.entries[n.ID]
	if !ok || e.highlighted {
		return
	}
	n.Material = c.style.Apply(e.pristine)
	e.highlighted = true
}

// ClearHighlight assigns a fresh copy of the pristine snapshot. No-op if the
// node is not highlighted.
func (c *Cache) ClearHighlight(n *scene.Node) {
	if n == nil {
		return
	}
	e, ok := c.entries[n.ID]
	if !ok || !e.highlighted {
		return
	}
	n.Material = e.pristine.Clone()
	e.highlighted = false
}

// IsHighlighted reports whether the node currently wears the highlight.
func (c *Cache) IsHighlighted(n *scene.Node) bool {
	if n == nil {
		return false
	}
	e, ok := c.entries[n.ID]
	return ok && e.highlighted
}

// Pristine returns a copy of the node's captured material.
func (c *Cache) Pristine(n *scene.Node) (*scene.Material, bool) {
	if n == nil {
		return nil, false
	}
	e, ok := c.entries[n.ID]
	if !ok {
		return nil, false
	}
	return e.pristine.Clone(), true
}

// Len returns the number of captured nodes.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Style returns the highlight style.
func (c *Cache) Style() Style {
	return c.style
}

// Reset forgets every snapshot. Call it when the scene is unloaded; nodes
// keep whatever material they currently wear.
func (c *Cache) Reset() {
	clear(c.entries)
}
