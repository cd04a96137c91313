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
	"sort"
	"strings"
)

// Requirements is an opaque, per-route map compared for equality
// against a caller-supplied extras map to disambiguate routes that
// otherwise share a segment tuple. It is never compared by map
// identity; Canonical and Equal work off sorted (key, value) pairs.
type Requirements map[string]string

// kv is a single canonicalized requirements pair.
type kv struct {
	Key, Value string
}

// Canonical returns the requirements as a slice of (key, value) pairs
// sorted by key, suitable for stable hashing; String renders it as a
// map key component.
func (r Requirements) Canonical() []kv {
	if len(r) == 0 {
		return nil
	}
	out := make([]kv, 0, len(r))
	for k, v := range r {
		out = append(out, kv{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// String renders the canonical form, usable as a map key component.
func (r Requirements) String() string {
	pairs := r.Canonical()
	if len(pairs) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('\x00')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// Equal reports whether two Requirements maps are equal regardless of
// iteration or insertion order. Used both for group-merge conflict
// detection and for the terminal requirement gate, which selects the
// route whose requirements map equals the caller's extras exactly.
func (r Requirements) Equal(other Requirements) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
