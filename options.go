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

package routecore

import "github.com/routecore/routecore/route"

// Option configures a Router at construction time.
type Option func(*Router)

// WithDiagnostics sets the handler that receives build-time diagnostic
// events (deprecated aliases, cross-registry promotion, regex
// fallback). The router's resolution behavior is unaffected by
// whether a handler is configured.
//
// Example:
//
//	r := routecore.New(routecore.WithDiagnostics(routecore.SlogDiagnostics(nil)))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) { r.diagnostics = handler }
}

// WithDelimiter sets the path segment delimiter. Default "/".
func WithDelimiter(delimiter string) Option {
	return func(r *Router) { r.delimiter = delimiter }
}

// WithBloomFilterSize sets the static route table's bloom filter size
// in bits, applied at Finalize. A value of 0 (the default) sizes the
// filter proportionally to the number of static routes.
func WithBloomFilterSize(size uint64) Option {
	return func(r *Router) { r.bloomSize = size }
}

// WithDisabledPatterns removes built-in parameter types from the
// router's pattern registry before any route is added, so a segment
// declaration naming one of labels falls back to raw-regex matching
// instead of its usual typed cast. Intended for
// routeconfig.BuildOptions.DisabledPatterns.
func WithDisabledPatterns(labels ...string) Option {
	return func(r *Router) {
		for _, label := range labels {
			r.registry.Unregister(label)
		}
	}
}

// WithBloomFilterHashFunctions sets the number of hash functions used
// by the static route table's bloom filter. Values outside [1, 10] are
// clamped. Default 3.
func WithBloomFilterHashFunctions(numFuncs int) Option {
	return func(r *Router) {
		if numFuncs < 1 {
			numFuncs = 1
		} else if numFuncs > 10 {
			numFuncs = 10
		}
		r.bloomHashFuncs = numFuncs
	}
}

// addConfig accumulates the optional arguments of Add.
type addConfig struct {
	methods      []string
	name         string
	requirements route.Requirements
	strict       bool
	unquote      bool
	overwrite    bool
	append       bool
}

// AddOption configures a single Add call.
type AddOption func(*addConfig)

// WithMethods sets the accepted HTTP methods for the route. Default
// {"GET"} when omitted.
func WithMethods(methods ...string) AddOption {
	return func(c *addConfig) { c.methods = methods }
}

// WithName registers the route under name in the router's name index.
func WithName(name string) AddOption {
	return func(c *addConfig) { c.name = name }
}

// WithRequirements attaches an arbitrary requirements map used to
// disambiguate routes that otherwise share a segment tuple.
func WithRequirements(requirements route.Requirements) AddOption {
	return func(c *addConfig) { c.requirements = requirements }
}

// WithStrict controls trailing-delimiter handling: a non-strict route
// is canonicalized without its trailing delimiter and matches a
// request with or without one; a strict route preserves it and
// rejects a mismatch.
func WithStrict(strict bool) AddOption {
	return func(c *addConfig) { c.strict = strict }
}

// WithUnquote requests percent-decoding of captured dynamic segments
// before their cast is applied.
func WithUnquote(unquote bool) AddOption {
	return func(c *addConfig) { c.unquote = unquote }
}

// WithOverwrite replaces a conflicting existing route (same segment
// tuple, method set, and requirements) instead of raising RouteExists.
// Mutually exclusive with WithAppend.
func WithOverwrite() AddOption {
	return func(c *addConfig) { c.overwrite = true }
}

// WithAppend permits a conflicting route to be added as an additional
// handler at the same (method, requirements) key instead of raising
// RouteExists. Mutually exclusive with WithOverwrite.
func WithAppend() AddOption {
	return func(c *addConfig) { c.append = true }
}
