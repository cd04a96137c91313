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
	"github.com/routecore/routecore/segment"
)

func newRoute(t *testing.T, reg *pattern.Registry, path string, handler any, methods []string) *route.Route {
	t.Helper()
	r, err := route.New(reg, "/", path, handler, methods, "", nil, true, false)
	require.NoError(t, err)
	return r
}

func TestBuildRoutesStaticDynamicAndRegexToTheirOwnTable(t *testing.T) {
	reg := pattern.NewRegistry()

	staticRoute := newRoute(t, reg, "/foo/bar", "static", []string{"GET"})
	dynamicRoute := newRoute(t, reg, "/foo/<bar:int>", "dynamic", []string{"GET"})
	regexRoute := newRoute(t, reg, "/files/<rest:path>", "regex", []string{"GET"})

	static := map[route.Key]*route.Group{route.SegmentKey(staticRoute.Segments): route.NewGroup(staticRoute)}
	dynamic := map[route.Key]*route.Group{route.SegmentKey(dynamicRoute.Segments): route.NewGroup(dynamicRoute)}
	regex := map[route.Key]*route.Group{route.SegmentKey(regexRoute.Segments): route.NewGroup(regexRoute)}

	for _, g := range static {
		require.NoError(t, g.Finalize("/"))
	}
	for _, g := range dynamic {
		require.NoError(t, g.Finalize("/"))
	}
	for _, g := range regex {
		require.NoError(t, g.Finalize("/"))
	}

	compiled := Build(static, dynamic, regex, reg, 0, 0)

	g, ok := compiled.Static.Lookup(route.SegmentKey(staticRoute.Segments))
	require.True(t, ok)
	assert.Equal(t, "static", g.Routes[0].Handler)

	out, _, ok := compiled.Matcher.Match(segment.SplitRequest("/foo/42", "/"), "GET", nil)
	require.True(t, ok)
	assert.Equal(t, "dynamic", out.Route.Handler)

	r, _, _, _ := compiled.Regex.Match("/files/a/b/c", "GET", nil)
	require.NotNil(t, r)
	assert.Equal(t, "regex", r.Handler)
}
