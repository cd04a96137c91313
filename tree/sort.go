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
	"sort"

	"github.com/routecore/routecore/pattern"
)

// sortChildren orders a node's children by seven rules, applied in
// priority order so each rule only breaks ties left by the ones
// before it:
//
//  1. nodes terminating a group first;
//  2. dynamic nodes after literal nodes;
//  3. higher type priority first (registry declaration order; unknown
//     label sorts last, overriding the otherwise-descending order);
//  4. deeper sub-trees first;
//  5. more children first;
//  6. regex-terminating nodes last among dynamic;
//  7. the segment key as a final tie-break.
func sortChildren(nodes []*Node, reg *pattern.Registry) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]

		if at, bt := rank(a.Terminates()), rank(b.Terminates()); at != bt {
			return at < bt
		}
		if ad, bd := rank(!a.IsDynamic), rank(!b.IsDynamic); ad != bd {
			return ad < bd
		}
		if ap, bp := -typePriority(a, reg), -typePriority(b, reg); ap != bp {
			return ap < bp
		}
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		if la, lb := len(a.children), len(b.children); la != lb {
			return la > lb
		}
		if ar, br := rank(!a.TerminatesRegex()), rank(!b.TerminatesRegex()); ar != br {
			return ar < br
		}
		return a.Part < b.Part
	})
}

// rank maps true/false to 0/1 so "first" conditions (rule 1) can be
// expressed as ascending order while "after" conditions (rule 2) use
// the same helper with operands swapped at the call site.
func rank(b bool) int {
	if b {
		return 0
	}
	return 1
}

// typePriority returns the tie-break priority for rule 3: a literal
// node has no type and contributes 0; a dynamic node with a known
// label returns its registry priority; a dynamic node with an unknown
// label (a raw inline regex body) returns -1 so it always sorts after
// every known label despite the otherwise-descending comparison.
func typePriority(n *Node, reg *pattern.Registry) int {
	if !n.IsDynamic {
		return 0
	}
	if n.Label == "" {
		return -1
	}
	return reg.Priority(n.Label)
}
