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

package tree

import (
	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/route"
	"github.com/routecore/routecore/segment"
)

// Tree is the decision tree built over the union of dynamic and regex
// RouteGroups.
type Tree struct {
	Root *Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{Root: &Node{Level: 0}}
}

// Insert descends from the root for each level of g's segment tuple,
// creating a child when the identity key is absent, and accumulates g
// at the resulting terminal node.
func (t *Tree) Insert(g *route.Group) {
	slotByIndex := make(map[int]route.ParamSlot)
	for _, r := range g.Routes {
		for _, p := range r.Params {
			if _, ok := slotByIndex[p.Index]; !ok {
				slotByIndex[p.Index] = p
			}
		}
	}

	current := t.Root
	for level, part := range g.Segments {
		dynamic := segment.IsParameter(part)
		key := part
		label := ""
		slot := slotByIndex[level]
		if dynamic {
			label = slot.Label
			key = "<dyn:" + label + ">"
		}
		current = current.childFor(key, dynamic, label, slot)
	}
	current.Groups = append(current.Groups, g)
}

// Finalize computes each node's depth and orders every node's
// children, recording First/Last on each ordered child list. reg
// resolves a dynamic node's type-priority tie-break.
func (t *Tree) Finalize(reg *pattern.Registry) {
	computeDepth(t.Root)
	orderChildren(t.Root, reg)
}

// computeDepth sets node.Depth to the maximum level among its
// descendants (its own level when a leaf), post-order.
func computeDepth(n *Node) int {
	depth := n.Level
	for _, c := range n.children {
		if d := computeDepth(c); d > depth {
			depth = d
		}
	}
	n.Depth = depth
	return depth
}

// orderChildren sorts n's children per the comparator and recurses.
func orderChildren(n *Node, reg *pattern.Registry) {
	if len(n.children) == 0 {
		return
	}
	ordered := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		ordered = append(ordered, c)
	}
	sortChildren(ordered, reg)
	n.Children = ordered
	ordered[0].First = true
	ordered[len(ordered)-1].Last = true

	for _, c := range ordered {
		orderChildren(c, reg)
	}
}
