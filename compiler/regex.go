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
	"sort"

	"github.com/routecore/routecore/route"
)

// RegexTable is the ordered fallback matcher for routes whose
// parameter types can capture the path delimiter. The tree matcher
// never returns a route from a regex-bearing group directly; instead
// every regex group is tried here, in order, against the whole
// request path.
type RegexTable struct {
	groups []*route.Group
}

// NewRegexTable orders groups by descending segment-tuple length, so
// a more segmented pattern is tried before a shorter catch-all that
// would also match its paths.
func NewRegexTable(groups []*route.Group) *RegexTable {
	ordered := make([]*route.Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Segments) > len(ordered[j].Segments)
	})
	return &RegexTable{groups: ordered}
}

// Groups exposes the ordered group list for diagnostics and tests.
func (rt *RegexTable) Groups() []*route.Group { return rt.groups }

// Match scans the ordered groups for a route whose compiled whole-
// path pattern matches rawPath.
// Requirements are checked per route; a path-matching route whose
// method doesn't accept the request is remembered as a method-gate
// miss (noMethod) but scanning continues, since a different regex
// route may still match the same literal path with the right method.
func (rt *RegexTable) Match(rawPath, method string, extras route.Requirements) (r *route.Route, params map[string]string, noMethod bool, allowed []string) {
	for _, g := range rt.groups {
		for _, cand := range g.Routes {
			if cand.CompiledRegex == nil {
				continue
			}
			m := cand.CompiledRegex.FindStringSubmatch(rawPath)
			if m == nil {
				continue
			}
			if len(cand.Requirements) > 0 || len(extras) > 0 {
				if !cand.Requirements.Equal(extras) {
					continue
				}
			}
			if _, ok := cand.Methods[method]; !ok {
				noMethod = true
				allowed = append(allowed, methodList(cand.Methods)...)
				continue
			}
			return cand, namedCaptures(cand, m), false, nil
		}
	}
	return nil, nil, noMethod, dedup(allowed)
}

func namedCaptures(r *route.Route, m []string) map[string]string {
	names := r.CompiledRegex.SubexpNames()
	out := make(map[string]string, len(names))
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		out[name] = m[i]
	}
	return out
}

func methodList(methods map[string]struct{}) []string {
	out := make([]string, 0, len(methods))
	for m := range methods {
		out = append(out, m)
	}
	return out
}

func dedup(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
