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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/route"
)

func regexGroup(t *testing.T, path string, methods []string) *route.Group {
	t.Helper()
	reg := pattern.NewRegistry()
	r, err := route.New(reg, "/", path, path, methods, "", nil, true, false)
	require.NoError(t, err)
	require.True(t, r.IsRegex, "fixture path %q must classify as regex", path)
	require.NoError(t, r.Finalize("/"))
	return route.NewGroup(r)
}

func TestRegexTableOrdersLongerSegmentTupleFirst(t *testing.T) {
	short := regexGroup(t, "/<foo:path>", []string{"GET"})
	long := regexGroup(t, "/api/<version:int>/hello_world/<foo:path>", []string{"GET"})

	rt := NewRegexTable([]*route.Group{short, long})
	require.Len(t, rt.Groups(), 2)
	assert.Same(t, long, rt.Groups()[0])
	assert.Same(t, short, rt.Groups()[1])
}

func TestRegexTableMatchPrefersEarlierGroupOnPathOverlap(t *testing.T) {
	short := regexGroup(t, "/<foo:path>", []string{"GET", "OPTIONS"})
	long := regexGroup(t, "/api/<version:int>/hello_world/<foo:path>", []string{"GET"})
	rt := NewRegexTable([]*route.Group{short, long})

	r, params, noMethod, _ := rt.Match("/api/3/hello_world/a/random/path", "GET", nil)
	require.NotNil(t, r)
	assert.False(t, noMethod)
	assert.Equal(t, "a/random/path", params["foo"])
	assert.Equal(t, "3", params["version"])

	r, _, _, _ = rt.Match("/a/random/path", "OPTIONS", nil)
	require.NotNil(t, r)
}

func TestRegexTableMatchReportsNoMethodWhenPathMatchesButMethodDoesNot(t *testing.T) {
	g := regexGroup(t, "/<foo:path>", []string{"GET"})
	rt := NewRegexTable([]*route.Group{g})

	r, _, noMethod, allowed := rt.Match("/anything/here", "DELETE", nil)
	assert.Nil(t, r)
	assert.True(t, noMethod)
	assert.Equal(t, []string{"GET"}, allowed)
}

func TestRegexTableMatchHonorsRequirements(t *testing.T) {
	reg := pattern.NewRegistry()
	r, err := route.New(reg, "/", "/<foo:path>", "gated", []string{"GET"}, "", route.Requirements{"env": "prod"}, true, false)
	require.NoError(t, err)
	require.NoError(t, r.Finalize("/"))
	rt := NewRegexTable([]*route.Group{route.NewGroup(r)})

	match, _, _, _ := rt.Match("/x", "GET", nil)
	assert.Nil(t, match, "requirements must not be satisfied by empty extras")

	match, _, _, _ = rt.Match("/x", "GET", route.Requirements{"env": "prod"})
	require.NotNil(t, match)
}
