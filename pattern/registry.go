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
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// Cast converts a captured path segment into its domain value. It must
// return an error (never panic) when the segment does not represent a
// valid value for the type, so that a tree walk can treat the failure as
// "this branch does not match" rather than an exception.
type Cast func(raw string) (any, error)

// Info distinguishes parameter types that need special basket handling.
type Info uint8

const (
	// InfoPlain types capture a single string and cast it directly.
	InfoPlain Info = iota
	// InfoExtension types (the builtin "ext" label) capture a
	// (filename, extension) pair and validate against an optional
	// per-declaration extension allowlist.
	InfoExtension
)

// ErrUnknownLabel is returned by Lookup when a label was never registered.
var ErrUnknownLabel = errors.New("pattern: unknown label")

// ErrInvalidRegistration is returned by Register when any of label, cast,
// or regex is missing or malformed.
var ErrInvalidRegistration = errors.New("pattern: invalid registration")

// ParamType is a named parameter type: a cast function paired with a
// validating regular expression, an info class, and a priority.
//
// Priority is the label's position in registration order. It is used by
// the tree builder to prefer more specific types over less specific ones
// when two dynamic segments compete for the same tree position: types
// registered later (a higher priority value) sort first.
type ParamType struct {
	Label    string
	Cast     Cast
	Regex    *regexp.Regexp
	Info     Info
	Priority int
}

// Registry holds the set of known parameter types, built-in and
// user-registered. The zero value is not usable; construct one with
// NewRegistry.
//
// A Registry is mutated only while a Router is OPEN; after
// Finalize it is treated as read-only and reads need no synchronization,
// but Register still takes the lock defensively so a Registry can be
// shared or reset safely.
type Registry struct {
	mu    sync.RWMutex
	order []string
	types map[string]ParamType

	// aliases maps a deprecated label to its canonical replacement.
	// Populated once by NewRegistry; read-only thereafter.
	aliases map[string]string
}

// NewRegistry returns a Registry pre-loaded with routecore's built-in
// label set, in the declaration order that also fixes their priority:
// str, strorempty, slug, alpha, int, float, ymd, uuid, ext, path.
func NewRegistry() *Registry {
	r := &Registry{
		types:   make(map[string]ParamType, 16),
		aliases: map[string]string{"string": "str", "number": "float"},
	}
	for _, bi := range builtins() {
		// Builtins never fail registration; panic would indicate a
		// programming error in this package, not caller input.
		if err := r.register(bi.Label, bi.Cast, bi.Regex, bi.Info); err != nil {
			panic(fmt.Sprintf("pattern: built-in %q failed to register: %v", bi.Label, err))
		}
	}
	return r
}

// Register adds or overwrites a user-defined parameter type. label, cast,
// and regex must all be non-empty/non-nil, and regex must compile.
// Registering an existing label overwrites it in place, preserving its
// original priority.
func (r *Registry) Register(label string, cast Cast, regex *regexp.Regexp) error {
	return r.register(label, cast, regex, InfoPlain)
}

func (r *Registry) register(label string, cast Cast, regex *regexp.Regexp, info Info) error {
	if label == "" || cast == nil || regex == nil {
		return fmt.Errorf("%w: label=%q cast-nil=%v regex-nil=%v", ErrInvalidRegistration, label, cast == nil, regex == nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	priority := len(r.order)
	if existing, ok := r.types[label]; ok {
		priority = existing.Priority
	} else {
		r.order = append(r.order, label)
	}

	r.types[label] = ParamType{
		Label:    label,
		Cast:     cast,
		Regex:    regex,
		Info:     info,
		Priority: priority,
	}
	return nil
}

// Resolve returns the canonical label for an alias (e.g. "number" ->
// "float"), or the input unchanged if it is not an alias.
func (r *Registry) Resolve(label string) (canonical string, wasAlias bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if target, ok := r.aliases[label]; ok {
		return target, true
	}
	return label, false
}

// Lookup returns the parameter type registered for label, resolving
// deprecated aliases first. The returned bool is false for an unknown
// label, in which case the caller should treat the label as a raw regex
// body rather than an error.
func (r *Registry) Lookup(label string) (ParamType, bool) {
	canonical, _ := r.Resolve(label)

	r.mu.RLock()
	defer r.mu.RUnlock()
	pt, ok := r.types[canonical]
	return pt, ok
}

// Priority returns the tie-break priority for a label: its registration
// index, or the number of registered labels (i.e. "last") if unknown.
func (r *Registry) Priority(label string) int {
	if pt, ok := r.Lookup(label); ok {
		return pt.Priority
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Labels returns the registered labels in priority (registration) order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Unregister removes label (a built-in or a previously user-registered
// type) from the registry, reporting whether it was present. A segment
// declaration naming an unregistered label falls back to raw-regex
// matching rather than failing Add outright.
func (r *Registry) Unregister(label string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[label]; !ok {
		return false
	}
	delete(r.types, label)
	for i, l := range r.order {
		if l == label {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
