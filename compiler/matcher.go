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

package compiler

import (
	"github.com/routecore/routecore/route"
	"github.com/routecore/routecore/tree"
)

// Outcome is what Matcher.Match found: the chosen route, the group it
// came from (for its allowed-methods list on a later NoMethod), and
// the basket of raw captured text for every dynamic segment, keyed by
// the winning route's ParamSlot.Index.
type Outcome struct {
	Route  *route.Route
	Group  *route.Group
	Basket map[int]string
}

// Miss is a dispatch-time rejection the matcher found while walking a
// candidate position deep enough to commit to a particular shape: a
// requirement-gate failure (NoMethod is false, so the resolver raises
// NotFound) or a method-gate failure (NoMethod is true, Allowed lists
// the methods that would have been accepted).
type Miss struct {
	NoMethod bool
	Allowed  []string
}

// Matcher interprets the decision tree built by the tree package
// directly, with no intermediate compilation step. For every visited
// node it evaluates a length predicate and either a literal-equality
// test or a typed cast; at a terminal node it asks the node's
// non-regex-bearing group to select a route by method and
// requirements.
//
// Groups containing any regex-bearing route are skipped here entirely
// and tried by the separate RegexTable fallback instead, since their
// whole-path pattern may span more segments than the tree position
// that inserted them (the "path" built-in).
type Matcher struct {
	tree *tree.Tree
}

// NewMatcher wraps a finalized tree for interpretation.
func NewMatcher(t *tree.Tree) *Matcher { return &Matcher{tree: t} }

// Match walks the tree against parts, the request's split segments.
// ok is true only on a clean route selection; a false result paired
// with a non-nil *Miss means some candidate position matched
// textually but was rejected by the requirement or method gate, which
// the resolver surfaces as NotFound or NoMethod respectively, rather
// than a raw "no route shape matched at all" NotFound.
func (m *Matcher) Match(parts []string, method string, extras route.Requirements) (*Outcome, *Miss, bool) {
	basket := make(map[int]string, 4)
	return walk(m.tree.Root, parts, len(parts), basket, method, extras)
}

func walk(n *tree.Node, parts []string, num int, basket map[int]string, method string, extras route.Requirements) (*Outcome, *Miss, bool) {
	var lastMiss *Miss

	for _, child := range n.Children {
		leaf := len(child.Children) == 0
		if leaf {
			if num != child.Level {
				continue
			}
		} else if num < child.Level {
			continue
		}

		idx := child.Level - 1
		if child.IsDynamic {
			// A regex-flavored slot (an inline raw regex body with no
			// registered label) postpones its cast to the terminal
			// regex gate; accept unconditionally here.
			if child.Slot.Label != "" {
				if _, err := child.Slot.Cast(parts[idx]); err != nil {
					continue
				}
			}
			basket[child.Slot.Index] = parts[idx]
		} else if parts[idx] != child.Part {
			continue
		}

		if child.Terminates() && num == child.Level {
			if out, miss, ok := selectAt(child, basket, method, extras); ok {
				return out, nil, true
			} else if miss != nil {
				lastMiss = miss
			}
		}

		if len(child.Children) > 0 {
			if out, miss, ok := walk(child, parts, num, basket, method, extras); ok {
				return out, nil, true
			} else if miss != nil {
				lastMiss = miss
			}
		}
	}

	return nil, lastMiss, false
}

// selectAt tries every non-regex-bearing group terminating at n,
// returning the first clean selection. A method/requirement gate
// failure from the first such group is remembered and returned as a
// Miss so the caller can keep searching deeper or sideways without
// losing the dispatch-time reason.
func selectAt(n *tree.Node, basket map[int]string, method string, extras route.Requirements) (*Outcome, *Miss, bool) {
	var miss *Miss
	for _, g := range n.Groups {
		if groupIsRegex(g) {
			continue
		}
		r, ok, noMethod, allowed := g.SelectDetailed(method, extras)
		if ok {
			return &Outcome{Route: r, Group: g, Basket: cloneBasket(basket)}, nil, true
		}
		if miss == nil {
			miss = &Miss{NoMethod: noMethod, Allowed: allowed}
		}
	}
	return nil, miss, false
}

func groupIsRegex(g *route.Group) bool {
	for _, r := range g.Routes {
		if r.IsRegex {
			return true
		}
	}
	return false
}

func cloneBasket(basket map[int]string) map[int]string {
	out := make(map[int]string, len(basket))
	for k, v := range basket {
		out[k] = v
	}
	return out
}
