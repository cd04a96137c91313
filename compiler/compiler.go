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
	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/route"
	"github.com/routecore/routecore/tree"
)

// Compiled bundles the three artifacts built from a finalized route
// set: the static exact-match table, the interpreted decision-tree
// matcher, and the ordered regex fallback list.
type Compiled struct {
	Static  *StaticTable
	Matcher *Matcher
	Regex   *RegexTable
}

// Build assembles a Compiled from the router's three registries. reg
// resolves type-priority tie-breaks for the tree's child ordering.
// bloomSize/numHashFuncs size the static table's bloom filter (0/0
// picks defaults).
func Build(static, dynamic, regex map[route.Key]*route.Group, reg *pattern.Registry, bloomSize uint64, numHashFuncs int) *Compiled {
	st := NewStaticTable()
	for _, g := range static {
		st.Put(g)
	}
	st.Freeze(bloomSize, numHashFuncs)

	t := tree.New()
	var regexGroups []*route.Group
	for _, g := range dynamic {
		t.Insert(g)
	}
	for _, g := range regex {
		t.Insert(g)
		regexGroups = append(regexGroups, g)
	}
	t.Finalize(reg)

	return &Compiled{
		Static:  st,
		Matcher: NewMatcher(t),
		Regex:   NewRegexTable(regexGroups),
	}
}
