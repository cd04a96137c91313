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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementsEqualIgnoresOrder(t *testing.T) {
	a := Requirements{"b": "2", "a": "1"}
	b := Requirements{"a": "1", "b": "2"}
	assert.True(t, a.Equal(b))
}

func TestRequirementsEqualRejectsDifferentSizes(t *testing.T) {
	a := Requirements{"a": "1"}
	b := Requirements{"a": "1", "b": "2"}
	assert.False(t, a.Equal(b))
}

func TestRequirementsCanonicalSortsByKey(t *testing.T) {
	r := Requirements{"z": "9", "a": "1"}
	canon := r.Canonical()
	assert.Equal(t, []kv{{Key: "a", Value: "1"}, {Key: "z", Value: "9"}}, canon)
}

func TestRequirementsStringIsOrderIndependent(t *testing.T) {
	a := Requirements{"b": "2", "a": "1"}
	b := Requirements{"a": "1", "b": "2"}
	assert.Equal(t, a.String(), b.String())
}

func TestEmptyRequirementsEqual(t *testing.T) {
	assert.True(t, Requirements(nil).Equal(Requirements{}))
}
