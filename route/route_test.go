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

import (
	"regexp"
	"testing"

	"github.com/routecore/routecore/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoute(t *testing.T, path string, methods []string, strict bool) *Route {
	t.Helper()
	r, err := New(pattern.NewRegistry(), "/", path, nil, methods, "", nil, strict, false)
	require.NoError(t, err)
	return r
}

func TestNewRouteSplitsLiteralAndDynamicSegments(t *testing.T) {
	r := newTestRoute(t, "/foo/<bar:int>", []string{"GET"}, true)
	assert.Equal(t, []string{"foo", "<bar:int>"}, r.Segments)
	require.Len(t, r.Params, 1)
	assert.Equal(t, "bar", r.Params[0].Name)
	assert.Equal(t, "int", r.Params[0].Label)
	assert.False(t, r.IsRegex)
}

func TestNewRouteDefaultsUnspecifiedLabelToStr(t *testing.T) {
	r := newTestRoute(t, "/foo/<bar>", []string{"GET"}, true)
	require.Len(t, r.Params, 1)
	assert.Equal(t, "str", r.Params[0].Label)
}

func TestPathLabelForcesRegexRoute(t *testing.T) {
	r := newTestRoute(t, "/files/<rest:path>", []string{"GET"}, true)
	assert.True(t, r.IsRegex)
	require.NoError(t, r.Finalize("/"))
	require.NotNil(t, r.CompiledRegex)
}

func TestRegisteredTypeMatchingDelimiterForcesRegexRoute(t *testing.T) {
	reg := pattern.NewRegistry()
	require.NoError(t, reg.Register("anydir", func(raw string) (any, error) { return raw, nil }, regexp.MustCompile(`^.+$`)))

	r, err := New(reg, "/", "/files/<f:anydir>", nil, []string{"GET"}, "", nil, true, false)
	require.NoError(t, err)
	assert.True(t, r.IsRegex, "a type whose regex can capture the delimiter must force whole-path matching")

	require.NoError(t, r.Finalize("/"))
	m := r.CompiledRegex.FindStringSubmatch("/files/a/b/c")
	require.NotNil(t, m)
}

func TestUnknownLabelIsTreatedAsRawRegexAndForcesRegexRoute(t *testing.T) {
	r := newTestRoute(t, `/things/<id:\d{3}>`, []string{"GET"}, true)
	require.Len(t, r.Params, 1)
	assert.Empty(t, r.Params[0].Label)
	assert.True(t, r.IsRegex)
	require.NoError(t, r.Finalize("/"))
	m := r.CompiledRegex.FindStringSubmatch("/things/123")
	require.NotNil(t, m)
}

func TestFinalizeRejectsDuplicateParameterNames(t *testing.T) {
	r := newTestRoute(t, "/foo/<id>/bar/<id>", []string{"GET"}, true)
	err := r.Finalize("/")
	assert.ErrorIs(t, err, ErrParameterNameConflicts)
}

func TestNonStrictRouteCanonicalizesTrailingDelimiter(t *testing.T) {
	r := newTestRoute(t, "/foo/bar/", []string{"GET"}, false)
	assert.Equal(t, "foo/bar", r.Path)
	assert.Equal(t, []string{"foo", "bar"}, r.Segments)
}

func TestStrictRoutePreservesTrailingDelimiter(t *testing.T) {
	r := newTestRoute(t, "/foo/bar/", []string{"GET"}, true)
	assert.Equal(t, []string{"foo", "bar", ""}, r.Segments)
}

func TestInlineRegexRejectsMismatchedNamedGroup(t *testing.T) {
	_, err := New(pattern.NewRegistry(), "/", "/things/<id:(?P<other>\\d+)>", nil, []string{"GET"}, "", nil, true, false)
	assert.ErrorIs(t, err, ErrInvalidUsage)
}

func TestInlineRegexRejectsMultipleNamedGroups(t *testing.T) {
	_, err := New(pattern.NewRegistry(), "/", "/things/<id:(?P<a>\\d+)(?P<b>\\d+)>", nil, []string{"GET"}, "", nil, true, false)
	assert.ErrorIs(t, err, ErrInvalidUsage)
}

func TestExtensionSlotCarriesAllowlist(t *testing.T) {
	r := newTestRoute(t, "/download/<name:ext=gz|zip>", []string{"GET"}, true)
	require.Len(t, r.Params, 1)
	assert.True(t, r.Params[0].IsExt)
	assert.Equal(t, []string{"gz", "zip"}, r.Params[0].ExtAllowed)
	assert.False(t, r.IsRegex)
}

func TestExtensionAllowlistRejectsMixedSubPartCounts(t *testing.T) {
	_, err := New(pattern.NewRegistry(), "/", "/download/<name:ext=gz|tar.gz>", nil, []string{"GET"}, "", nil, true, false)
	assert.ErrorIs(t, err, ErrInvalidUsage)
}

func TestExtensionSlotWithTypedNameCast(t *testing.T) {
	r := newTestRoute(t, "/download/<name=int:ext>", []string{"GET"}, true)
	require.Len(t, r.Params, 1)
	assert.NotNil(t, r.Params[0].ExtCast)
}

func TestCompositeRegexMatchesRequestPath(t *testing.T) {
	r := newTestRoute(t, "/api/<version:int>/hello_world/<foo:path>", []string{"GET"}, true)
	require.NoError(t, r.Finalize("/"))
	m := r.CompiledRegex.FindStringSubmatch("/api/3/hello_world/a/random/path")
	require.NotNil(t, m)
	names := r.CompiledRegex.SubexpNames()
	got := make(map[string]string)
	for i, name := range names {
		if name != "" {
			got[name] = m[i]
		}
	}
	assert.Equal(t, "3", got["version"])
	assert.Equal(t, "a/random/path", got["foo"])
}
