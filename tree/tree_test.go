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
	"testing"

	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGroup(t *testing.T, reg *pattern.Registry, path string) *route.Group {
	t.Helper()
	r, err := route.New(reg, "/", path, nil, []string{"GET"}, "", nil, true, false)
	require.NoError(t, err)
	require.NoError(t, r.Finalize("/"))
	return route.NewGroup(r)
}

func TestInsertCreatesSharedPrefixNodes(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/foo/<bar:int>"))
	tr.Insert(mustGroup(t, reg, "/foo/<baz:str>"))

	require.Contains(t, tr.Root.childrenForTest(), "foo")
	foo := tr.Root.childrenForTest()["foo"]
	// <bar:int> and <baz:str> differ in label, so they remain distinct
	// children even though they occupy the same tree level.
	assert.Len(t, foo.childrenForTest(), 2)
}

func TestInsertCollapsesSameLabelDifferentNames(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/foo/<bar:int>/a"))
	tr.Insert(mustGroup(t, reg, "/foo/<baz:int>/b"))

	foo := tr.Root.childrenForTest()["foo"]
	// Both use the <int> label at this position, so they share one node.
	assert.Len(t, foo.childrenForTest(), 1)
	dyn := foo.childrenForTest()["<dyn:int>"]
	require.NotNil(t, dyn)
	assert.Len(t, dyn.childrenForTest(), 2)
}

func TestFinalizeOrdersTerminatingNodeFirst(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/foo/bar/baz"))
	tr.Insert(mustGroup(t, reg, "/foo/qux"))
	tr.Finalize(reg)

	require.Len(t, tr.Root.Children, 1)
	foo := tr.Root.Children[0]
	require.Len(t, foo.Children, 2)
	assert.True(t, foo.Children[0].Terminates())
	assert.Equal(t, "qux", foo.Children[0].Part)
}

func TestFinalizeOrdersLiteralBeforeDynamic(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/foo/bar"))
	tr.Insert(mustGroup(t, reg, "/foo/<bar:int>"))
	tr.Finalize(reg)

	foo := tr.Root.Children[0]
	require.Len(t, foo.Children, 2)
	assert.False(t, foo.Children[0].IsDynamic)
	assert.True(t, foo.Children[1].IsDynamic)
}

func TestFinalizeOrdersHigherTypePriorityFirst(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/<x:str>"))
	tr.Insert(mustGroup(t, reg, "/<x:uuid>"))
	tr.Finalize(reg)

	require.Len(t, tr.Root.Children, 2)
	assert.Equal(t, "uuid", labelOf(tr.Root.Children[0]))
	assert.Equal(t, "str", labelOf(tr.Root.Children[1]))
}

func TestFinalizeSortsUnknownLabelLast(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, `/<x:\d{3}>`))
	tr.Insert(mustGroup(t, reg, "/<x:str>"))
	tr.Finalize(reg)

	require.Len(t, tr.Root.Children, 2)
	assert.Equal(t, "str", labelOf(tr.Root.Children[0]))
	assert.Equal(t, "", labelOf(tr.Root.Children[1]))
}

func TestFinalizeSetsFirstAndLast(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/a"))
	tr.Insert(mustGroup(t, reg, "/b"))
	tr.Finalize(reg)

	require.Len(t, tr.Root.Children, 2)
	assert.True(t, tr.Root.Children[0].First)
	assert.True(t, tr.Root.Children[len(tr.Root.Children)-1].Last)
}

func TestDepthIsMaxDescendantLevel(t *testing.T) {
	reg := pattern.NewRegistry()
	tr := New()
	tr.Insert(mustGroup(t, reg, "/a/b/c"))
	tr.Finalize(reg)

	a := tr.Root.Children[0]
	assert.Equal(t, 3, a.Depth)
}

func labelOf(n *Node) string { return n.Label }

func (n *Node) childrenForTest() map[string]*Node { return n.children }
