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

package pattern

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryBuiltinPriorityOrder(t *testing.T) {
	r := NewRegistry()
	want := []string{"str", "strorempty", "slug", "alpha", "int", "float", "ymd", "uuid", "ext", "path"}
	assert.Equal(t, want, r.Labels())

	for i, label := range want {
		assert.Equal(t, i, r.Priority(label), "priority of %s", label)
	}
}

func TestRegistryUnknownLabelPriorityIsLast(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, len(r.Labels()), r.Priority("not-a-label"))
}

func TestRegistryAliasesResolveToCanonical(t *testing.T) {
	r := NewRegistry()

	canonical, wasAlias := r.Resolve("number")
	assert.True(t, wasAlias)
	assert.Equal(t, "float", canonical)

	canonical, wasAlias = r.Resolve("string")
	assert.True(t, wasAlias)
	assert.Equal(t, "str", canonical)

	canonical, wasAlias = r.Resolve("int")
	assert.False(t, wasAlias)
	assert.Equal(t, "int", canonical)
}

func TestRegistryLookupFollowsAlias(t *testing.T) {
	r := NewRegistry()
	pt, ok := r.Lookup("number")
	require.True(t, ok)
	assert.Equal(t, "float", pt.Label)
}

func TestRegisterOverwritesInPlacePreservingPriority(t *testing.T) {
	r := NewRegistry()
	original, ok := r.Lookup("int")
	require.True(t, ok)

	err := r.Register("int", func(string) (any, error) { return 42, nil }, regexp.MustCompile(`^\d+$`))
	require.NoError(t, err)

	updated, ok := r.Lookup("int")
	require.True(t, ok)
	assert.Equal(t, original.Priority, updated.Priority)

	v, err := updated.Cast("anything")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestRegisterNewLabelAppendsToOrder(t *testing.T) {
	r := NewRegistry()
	before := len(r.Labels())

	err := r.Register("hex", func(s string) (any, error) { return s, nil }, regexp.MustCompile(`^[0-9a-f]+$`))
	require.NoError(t, err)

	assert.Equal(t, before+1, len(r.Labels()))
	assert.Equal(t, before, r.Priority("hex"))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	r := NewRegistry()

	err := r.Register("", func(string) (any, error) { return nil, nil }, regexp.MustCompile(`.`))
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	err = r.Register("x", nil, regexp.MustCompile(`.`))
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	err = r.Register("x", func(string) (any, error) { return nil, nil }, nil)
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestLookupUnknownLabel(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup("not-a-label")
	assert.False(t, ok)
}
