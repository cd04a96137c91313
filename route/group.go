// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package route

import "strings"

// Key identifies a segment tuple for the purposes of registry lookup
// and group membership: segments joined by a NUL byte, which cannot
// appear in a percent-encoded literal or a `<...>` declaration, so it
// is collision-free regardless of the configured delimiter.
type Key string

// SegmentKey computes the Key for a segment tuple.
func SegmentKey(segments []string) Key {
	return Key(strings.Join(segments, "\x00"))
}

// Group bundles Routes sharing an identical segment tuple and
// strictness. It is indexed by method only after Finalize, at which
// point it is treated as immutable.
type Group struct {
	Routes   []*Route
	Segments []string
	Strict   bool

	byMethod map[string][]*Route
}

// NewGroup wraps a single route in a new, single-element group.
func NewGroup(r *Route) *Group {
	return &Group{
		Routes:   []*Route{r},
		Segments: r.Segments,
		Strict:   r.Strict,
	}
}

// sameShape reports whether r belongs to this group's (segment tuple,
// strictness) shape.
func (g *Group) sameShape(r *Route) bool {
	if r.Strict != g.Strict || len(r.Segments) != len(g.Segments) {
		return false
	}
	for i, seg := range g.Segments {
		if r.Segments[i] != seg {
			return false
		}
	}
	return true
}

// Merge adds r to the group. Two routes conflict when they share
// (method set, requirements). overwrite replaces the conflicting
// route in place; append permits a duplicate; neither raises
// ErrRouteExists. overwrite and append are mutually exclusive.
func (g *Group) Merge(r *Route, overwrite, append_ bool) error {
	if overwrite && append_ {
		return ErrConflictingFlags
	}
	if !g.sameShape(r) {
		return ErrGroupMismatch
	}

	idx := g.conflictIndex(r)
	switch {
	case idx < 0:
		g.Routes = append(g.Routes, r)
	case overwrite:
		g.Routes[idx] = r
	case append_:
		g.Routes = append(g.Routes, r)
	default:
		return ErrRouteExists
	}
	return nil
}

// conflictIndex returns the index of the existing route conflicting
// with r (same method set and requirements), or -1 if none.
func (g *Group) conflictIndex(r *Route) int {
	for i, existing := range g.Routes {
		if !existing.Requirements.Equal(r.Requirements) {
			continue
		}
		if methodSetEqual(existing.Methods, r.Methods) {
			return i
		}
	}
	return -1
}

func methodSetEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for m := range a {
		if _, ok := b[m]; !ok {
			return false
		}
	}
	return true
}

// HasRequirements reports whether any route in the group carries a
// non-empty requirements map, which governs whether the terminal
// matcher step needs a requirement gate.
func (g *Group) HasRequirements() bool {
	for _, r := range g.Routes {
		if len(r.Requirements) > 0 {
			return true
		}
	}
	return false
}

// Finalize builds the method index and finalizes every member route.
// Safe to call multiple times.
func (g *Group) Finalize(delimiter string) error {
	g.byMethod = make(map[string][]*Route, len(g.Routes))
	for _, r := range g.Routes {
		if err := r.Finalize(delimiter); err != nil {
			return err
		}
		for m := range r.Methods {
			g.byMethod[m] = append(g.byMethod[m], r)
		}
	}
	return nil
}

// ByMethod returns the routes in the group accepting the given
// method, in insertion order (multiple when append was used to permit
// duplicates at the same (method, requirements) key).
func (g *Group) ByMethod(method string) []*Route {
	return g.byMethod[method]
}

// AllowedMethods returns the union of methods accepted across every
// route in the group, for use in a NoMethod error's allowed set.
func (g *Group) AllowedMethods() []string {
	seen := make(map[string]struct{})
	for _, r := range g.Routes {
		for m := range r.Methods {
			seen[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	return out
}

// Select picks the route matching both method and requirements.
// Candidates are tried in group order; the first whose requirements
// equal extras and whose methods contain method wins. When no route in
// the group carries requirements, extras are ignored and only the
// method is checked.
func (g *Group) Select(method string, extras Requirements) (*Route, bool) {
	r, ok, _, _ := g.SelectDetailed(method, extras)
	return r, ok
}

// SelectDetailed is Select with the failure reason the resolver needs
// to distinguish a NotFound from a NoMethod: a requirement-gate miss
// (no route's requirements equal extras) has no allowed-method list to
// report, while a method-gate miss (requirements matched, method
// didn't) reports the union of methods accepted by the requirement-
// matching candidates, for use in a NoMethod error.
func (g *Group) SelectDetailed(method string, extras Requirements) (r *Route, ok bool, noMethod bool, allowed []string) {
	gated := g.HasRequirements()
	candidates := g.Routes
	if gated {
		candidates = nil
		for _, route := range g.Routes {
			if route.Requirements.Equal(extras) {
				candidates = append(candidates, route)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, false, false, nil
	}

	for _, route := range candidates {
		if _, ok := route.Methods[method]; ok {
			return route, true, false, nil
		}
	}

	seen := make(map[string]struct{})
	for _, route := range candidates {
		for m := range route.Methods {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				allowed = append(allowed, m)
			}
		}
	}
	return nil, false, true, allowed
}
