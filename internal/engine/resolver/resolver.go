// Package resolver maps logical component identifiers to scene meshes.
//
// Mesh names rarely match plan identifiers exactly, so matching is
// permissive and tries, in order:
//
//  1. exact match of normalized names (only exact matches are returned)
//  2. substring match in either direction
//  3. steps 1 and 2 again for every alias the component metadata declares
//
// Over-matching is preferred to under-matching. No match is an empty result.
package resolver

import (
	"slices"
	"strings"

	"github.com/Faultbox/teardown/internal/engine/scene"
	"github.com/Faultbox/teardown/internal/plan"
)

var separators = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// Normalize lowercases s, treats '_', '-' and '.' as spaces, and collapses
// whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(separators.Replace(strings.ToLower(s))), " ")
}

// Match returns the indexes of names matching identifier. It is pure and
// never fails; aliases may be nil.
func Match(identifier string, names []string, aliases []plan.ComponentDescriptor) []int {
	id := Normalize(identifier)
	if id == "" {
		return nil
	}

	normalized := make([]string, len(names))
	for i, n := range names {
		normalized[i] = Normalize(n)
	}

	if hits := direct(id, normalized); len(hits) > 0 {
		return hits
	}

	var out []int
	seen := make(map[int]bool)
	for _, alias := range Aliases(id, aliases) {
		for _, i := range direct(alias, normalized) {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Aliases returns the normalized alternate names declared for identifier by
// any descriptor whose id, name or component normalizes to it.
func Aliases(identifier string, descriptors []plan.ComponentDescriptor) []string {
	id := Normalize(identifier)
	var out []string
	seen := map[string]bool{id: true}
	for _, d := range descriptors {
		names := d.Names()
		declares := false
		for _, n := range names {
			if Normalize(n) == id {
				declares = true
				break
			}
		}
		if !declares {
			continue
		}
		for _, n := range names {
			a := Normalize(n)
			if a != "" && !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

// direct applies the exact-then-substring rules for one normalized query.
func direct(id string, names []string) []int {
	var exact []int
	for i, n := range names {
		if n != "" && n == id {
			exact = append(exact, i)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []int
	for i, n := range names {
		if n == "" {
			continue
		}
		if strings.Contains(n, id) || strings.Contains(id, n) {
			partial = append(partial, i)
		}
	}
	return partial
}

// Resolve returns the nodes whose names match identifier, in node order.
func Resolve(identifier string, nodes []*scene.Node, aliases []plan.ComponentDescriptor) []*scene.Node {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	idx := Match(identifier, names, aliases)
	if len(idx) == 0 {
		return nil
	}
	out := make([]*scene.Node, len(idx))
	for i, j := range idx {
		out[i] = nodes[j]
	}
	return out
}
