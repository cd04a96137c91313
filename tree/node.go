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

import "github.com/routecore/routecore/route"

// Node is a single position in the decision tree. Part is the
// identity key used by Insert: literal text for a literal segment, or
// the synthetic `<dyn:label>` token for a dynamic one. A node
// accumulates zero or more RouteGroups when it is a terminal
// position, more than one when several segment tuples map to the same
// keys (dynamic segments with the same label but different parameter
// names).
type Node struct {
	Part      string
	Parent    *Node
	Level     int
	Depth     int
	IsDynamic bool
	Label     string

	// Slot is the representative parameter slot for a dynamic node,
	// used by the compiler's matcher to attempt the per-segment cast.
	// Every route terminating below a dynamic node
	// shares the same label at that position by construction (tree.Insert
	// keys on label), so any one of them is representative. Zero value
	// for a literal node.
	Slot route.ParamSlot

	Groups []*route.Group

	First bool
	Last  bool

	children map[string]*Node
	Children []*Node
}

// Terminates reports whether any group terminates at this node.
func (n *Node) Terminates() bool { return len(n.Groups) > 0 }

// TerminatesRegex reports whether any route in any group terminating
// at this node requires whole-path regex matching.
func (n *Node) TerminatesRegex() bool {
	for _, g := range n.Groups {
		for _, r := range g.Routes {
			if r.IsRegex {
				return true
			}
		}
	}
	return false
}

// childFor returns the existing child keyed by key, creating it if
// absent.
func (n *Node) childFor(key string, dynamic bool, label string, slot route.ParamSlot) *Node {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if child, ok := n.children[key]; ok {
		return child
	}
	child := &Node{
		Part:      key,
		Parent:    n,
		Level:     n.Level + 1,
		IsDynamic: dynamic,
		Label:     label,
		Slot:      slot,
	}
	n.children[key] = child
	return child
}
