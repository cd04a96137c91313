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

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/routecore/routecore/compiler"
	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/route"
	"github.com/routecore/routecore/segment"
)

// classification is the registry a route belongs to.
type classification int

const (
	classStatic classification = iota
	classDynamic
	classRegex
)

func (c classification) String() string {
	switch c {
	case classStatic:
		return "static"
	case classRegex:
		return "regex"
	default:
		return "dynamic"
	}
}

// deprecatedAliases mirrors pattern.Registry's alias table, used only
// to decide whether Add should fire a DiagDeprecatedAlias event.
var deprecatedAliases = map[string]string{"string": "str", "number": "float"}

// knownMethods is the set of HTTP methods Add accepts; anything else
// is rejected as BadMethod.
var knownMethods = map[string]struct{}{
	"GET": {}, "HEAD": {}, "POST": {}, "PUT": {}, "PATCH": {},
	"DELETE": {}, "OPTIONS": {}, "TRACE": {}, "CONNECT": {},
}

// Router holds the three route registries, the pattern registry, and
// the compiled artifacts built at Finalize. The zero value is not
// usable; construct one with New.
type Router struct {
	mu sync.Mutex // guards the registries and name index while OPEN

	delimiter      string
	diagnostics    DiagnosticHandler
	bloomSize      uint64
	bloomHashFuncs int

	registry *pattern.Registry

	static  map[route.Key]*route.Group
	dynamic map[route.Key]*route.Group
	regex   map[route.Key]*route.Group

	names map[string]*route.Route

	frozen   atomic.Bool
	compiled *compiler.Compiled
}

// New constructs an OPEN Router ready to accept Add calls.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		delimiter:      "/",
		bloomHashFuncs: 3,
		registry:       pattern.NewRegistry(),
		static:         make(map[route.Key]*route.Group),
		dynamic:        make(map[route.Key]*route.Group),
		regex:          make(map[route.Key]*route.Group),
		names:          make(map[string]*route.Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.delimiter == "" {
		return nil, &InvalidUsage{Msg: "delimiter must not be empty"}
	}
	return r, nil
}

// MustNew is New, panicking on a configuration error.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("routecore.MustNew: %v", err))
	}
	return r
}

// RegisterPattern adds or overwrites a user-defined parameter type.
// Legal only while OPEN.
func (r *Router) RegisterPattern(label string, cast pattern.Cast, regex *regexp.Regexp) error {
	if r.frozen.Load() {
		return &FinalizationError{Msg: "cannot register a pattern: router is finalized"}
	}
	if err := r.registry.Register(label, cast, regex); err != nil {
		return &InvalidUsage{Msg: err.Error()}
	}
	return nil
}

// Add registers a route. Legal only while OPEN.
func (r *Router) Add(rawPath string, handler any, opts ...AddOption) (*route.Route, error) {
	if r.frozen.Load() {
		return nil, &FinalizationError{Msg: "cannot add a route: router is finalized"}
	}

	cfg := addConfig{methods: []string{"GET"}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.overwrite && cfg.append {
		return nil, &InvalidUsage{Msg: "overwrite and append are mutually exclusive"}
	}
	for _, m := range cfg.methods {
		if _, ok := knownMethods[strings.ToUpper(m)]; !ok {
			return nil, &BadMethod{Method: m}
		}
	}

	rt, err := route.New(r.registry, r.delimiter, rawPath, handler, cfg.methods, cfg.name, cfg.requirements, cfg.strict, cfg.unquote)
	if err != nil {
		return nil, wrapRouteErr(err)
	}
	r.emitAliasDiagnostics(rt)
	if rt.IsRegex {
		r.emit(DiagRegexFallback, "route forced into whole-path regex matching", map[string]any{"path": rt.RawPath})
	}

	key := route.SegmentKey(rt.Segments)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Params and IsRegex are constant across every route sharing a
	// segment tuple (identical literal declarations produce identical
	// parameter slots), but Requirements varies per route within a
	// group. So a route with no requirements of its own can still
	// belong to a group that, overall, needs the requirement gate, so
	// classification must be computed from the merged group, or the
	// final registry placement would depend on insertion order.
	target := r.classify(rt)
	if target == classStatic && r.existingGroupHasRequirements(key) {
		target = classDynamic
	}

	r.promote(key, target)

	registry := r.registryFor(target)
	if g, ok := registry[key]; ok {
		if err := g.Merge(rt, cfg.overwrite, cfg.append); err != nil {
			return nil, wrapGroupErr(rawPath, cfg.methods, err)
		}
	} else {
		registry[key] = route.NewGroup(rt)
	}

	if cfg.name != "" {
		r.names[cfg.name] = rt
	}

	return rt, nil
}

// classify picks the static/dynamic/regex partition for a route: a
// regex-bearing route always goes to the regex registry; a route with
// neither dynamic segments nor requirements is static; everything else
// needs the matcher's requirement/method gate and is dynamic.
func (r *Router) classify(rt *route.Route) classification {
	switch {
	case rt.IsRegex:
		return classRegex
	case len(rt.Params) == 0 && len(rt.Requirements) == 0:
		return classStatic
	default:
		return classDynamic
	}
}

// existingGroupHasRequirements reports whether a group already
// registered under key, in any registry, carries a route with
// requirements. Must be called with r.mu held.
func (r *Router) existingGroupHasRequirements(key route.Key) bool {
	for _, c := range [...]classification{classStatic, classDynamic, classRegex} {
		if g, ok := r.registryFor(c)[key]; ok {
			return g.HasRequirements()
		}
	}
	return false
}

func (r *Router) registryFor(c classification) map[route.Key]*route.Group {
	switch c {
	case classStatic:
		return r.static
	case classRegex:
		return r.regex
	default:
		return r.dynamic
	}
}

// promote moves a group already registered under key in a different
// registry into target, capturing the case where the same shape is
// introduced first without, then with, requirements (or the reverse).
// Must be called with r.mu held.
func (r *Router) promote(key route.Key, target classification) {
	for _, c := range [...]classification{classStatic, classDynamic, classRegex} {
		if c == target {
			continue
		}
		src := r.registryFor(c)
		g, ok := src[key]
		if !ok {
			continue
		}
		delete(src, key)

		dst := r.registryFor(target)
		if existing, ok := dst[key]; ok {
			existing.Routes = append(existing.Routes, g.Routes...)
		} else {
			dst[key] = g
		}
		r.emit(DiagCrossRegistryPromotion, "route group moved to a different registry", map[string]any{
			"from": c.String(), "to": target.String(),
		})
	}
}

// emitAliasDiagnostics fires DiagDeprecatedAlias once for each
// declaration in rt that uses a deprecated label.
func (r *Router) emitAliasDiagnostics(rt *route.Route) {
	for _, part := range rt.Segments {
		if !segment.IsParameter(part) {
			continue
		}
		decl, err := segment.ParseDeclaration(part)
		if err != nil {
			continue
		}
		for _, spec := range [...]string{decl.Spec, decl.ExtType} {
			if canonical, ok := deprecatedAliases[spec]; ok {
				r.emit(DiagDeprecatedAlias, "deprecated type alias used", map[string]any{
					"alias": spec, "canonical": canonical, "path": rt.RawPath,
				})
			}
		}
	}
}

// Finalize transitions the router from OPEN to FINALIZED, finalizing
// every group and building the compiled static table, tree matcher,
// and regex fallback list.
//
// doCompile and doOptimize are accepted for callers porting from
// routers whose finalize step compiles a dispatch function from
// generated source, but neither gates a distinct code path here: the
// interpreter-based matcher has no uncompiled fallback mode to switch
// to, and the static table's bloom filter is sized from the route
// count (or WithBloomFilterSize) regardless, so there is nothing for
// either flag to toggle off
// without changing Resolve's observable behavior.
func (r *Router) Finalize(doCompile, doOptimize bool) error {
	_, _ = doCompile, doOptimize
	if r.frozen.Load() {
		return &FinalizationError{Msg: "router is already finalized"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return &FinalizationError{Msg: "router is already finalized"}
	}
	if len(r.static)+len(r.dynamic)+len(r.regex) == 0 {
		return &FinalizationError{Msg: "cannot finalize an empty router"}
	}

	for _, groups := range [...]map[route.Key]*route.Group{r.static, r.dynamic, r.regex} {
		for _, g := range groups {
			if err := g.Finalize(r.delimiter); err != nil {
				return wrapFinalizeErr(err)
			}
		}
	}

	r.compiled = compiler.Build(r.static, r.dynamic, r.regex, r.registry, r.bloomSize, r.bloomHashFuncs)
	r.frozen.Store(true)
	return nil
}

// Reset thaws a FINALIZED router back to OPEN. Routes and the pattern
// registry are preserved; Add and RegisterPattern
// become legal again and a subsequent Finalize rebuilds the compiled
// artifacts from scratch.
func (r *Router) Reset() {
	r.frozen.Store(false)
	r.compiled = nil
}

// RouteByName returns the route registered under name, if any.
func (r *Router) RouteByName(name string) (*route.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.names[name]
	return rt, ok
}

// Resolve maps a concrete request to a route, its opaque handler, and
// its cast parameters. Legal only while FINALIZED.
func (r *Router) Resolve(path, method string, extras route.Requirements) (*route.Route, any, map[string]any, error) {
	if !r.frozen.Load() {
		return nil, nil, nil, &FinalizationError{Msg: "cannot resolve: router is not finalized"}
	}
	method = strings.ToUpper(method)
	return r.resolve(path, path, method, extras)
}

func (r *Router) resolve(originalPath, path, method string, extras route.Requirements) (*route.Route, any, map[string]any, error) {
	parts := segment.SplitRequest(path, r.delimiter)
	key := route.SegmentKey(parts)

	if g, ok := r.compiled.Static.Lookup(key); ok {
		if matches := g.ByMethod(method); len(matches) > 0 {
			rt := matches[0]
			if err := r.checkStrict(rt, originalPath); err != nil {
				return nil, nil, nil, err
			}
			return rt, rt.Handler, map[string]any{}, nil
		}
		return nil, nil, nil, &NoMethod{Method: method, Allowed: g.AllowedMethods()}
	}

	var noMethodMiss *compiler.Miss

	if outcome, miss, ok := r.compiled.Matcher.Match(parts, method, extras); ok {
		if err := r.checkStrict(outcome.Route, originalPath); err != nil {
			return nil, nil, nil, err
		}
		params, err := r.paramsFromBasket(outcome.Route, outcome.Basket)
		if err != nil {
			return nil, nil, nil, err
		}
		return outcome.Route, outcome.Route.Handler, params, nil
	} else if miss != nil && miss.NoMethod {
		// A requirement-gate miss (NoMethod false) stays a NotFound;
		// only a method-gate miss upgrades the failure to NoMethod.
		noMethodMiss = miss
	}

	if rt, captures, noMethod, allowed := r.compiled.Regex.Match(path, method, extras); rt != nil {
		if err := r.checkStrict(rt, originalPath); err != nil {
			return nil, nil, nil, err
		}
		params, err := r.paramsFromCaptures(rt, captures)
		if err != nil {
			return nil, nil, nil, err
		}
		return rt, rt.Handler, params, nil
	} else if noMethod {
		noMethodMiss = &compiler.Miss{NoMethod: true, Allowed: allowed}
	}

	if originalPath == path && path != "" && strings.HasSuffix(path, r.delimiter) {
		stripped := strings.TrimSuffix(path, r.delimiter)
		return r.resolve(originalPath, stripped, method, extras)
	}

	if noMethodMiss != nil {
		return nil, nil, nil, &NoMethod{Method: method, Allowed: noMethodMiss.Allowed}
	}
	return nil, nil, nil, &NotFound{Path: originalPath}
}

// checkStrict rejects, for a strict route, a request whose last
// character disagrees with the route's own last character (i.e.
// whether each ends in the delimiter).
func (r *Router) checkStrict(rt *route.Route, originalPath string) error {
	if !rt.Strict || originalPath == "" || rt.Path == "" {
		return nil
	}
	if originalPath[len(originalPath)-1] != rt.Path[len(rt.Path)-1] {
		return &NotFound{Path: originalPath}
	}
	return nil
}

// paramsFromBasket converts the matcher's positional capture basket
// into the final parameter map.
func (r *Router) paramsFromBasket(rt *route.Route, basket map[int]string) (map[string]any, error) {
	params := make(map[string]any, len(rt.Params))
	for _, slot := range rt.Params {
		raw, ok := basket[slot.Index]
		if !ok {
			continue
		}
		if err := r.setParam(params, rt, slot, raw); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// paramsFromCaptures converts a regex match's named capture groups
// into the final parameter map.
func (r *Router) paramsFromCaptures(rt *route.Route, captures map[string]string) (map[string]any, error) {
	params := make(map[string]any, len(rt.Params))
	for _, slot := range rt.Params {
		raw, ok := captures[slot.Name]
		if !ok {
			continue
		}
		if err := r.setParam(params, rt, slot, raw); err != nil {
			return nil, err
		}
	}
	return params, nil
}

// setParam applies unquoting, the slot's cast, and, for an extension
// slot, the allowlist and filename sub-cast, storing the result in
// params. An extension mismatch against the allowlist is a hard
// NotFound: the segment did match a dynamic slot, so there is no
// alternative branch left to try.
func (r *Router) setParam(params map[string]any, rt *route.Route, slot route.ParamSlot, raw string) error {
	if rt.Unquote {
		if decoded, err := url.QueryUnescape(raw); err == nil {
			raw = decoded
		}
	}

	v, err := slot.Cast(raw)
	if err != nil {
		return &NotFound{Path: rt.RawPath}
	}

	if !slot.IsExt {
		params[slot.Name] = v
		return nil
	}

	ev, ok := v.(pattern.ExtValue)
	if !ok {
		return &NotFound{Path: rt.RawPath}
	}
	if len(slot.ExtAllowed) > 0 && !slices.Contains(slot.ExtAllowed, ev.Ext) {
		return &NotFound{Path: rt.RawPath}
	}
	name := any(ev.Name)
	if slot.ExtCast != nil {
		nv, err := slot.ExtCast(ev.Name)
		if err != nil {
			return &NotFound{Path: rt.RawPath}
		}
		name = nv
	}
	params[slot.Name] = name
	params["ext"] = ev.Ext
	return nil
}

func wrapRouteErr(err error) error {
	if errors.Is(err, route.ErrInvalidUsage) {
		return &InvalidUsage{Msg: err.Error()}
	}
	return err
}

func wrapGroupErr(path string, methods []string, err error) error {
	switch {
	case errors.Is(err, route.ErrRouteExists):
		return &RouteExists{Path: path, Methods: methods}
	case errors.Is(err, route.ErrConflictingFlags), errors.Is(err, route.ErrGroupMismatch):
		return &InvalidUsage{Msg: err.Error()}
	default:
		return err
	}
}

func wrapFinalizeErr(err error) error {
	switch {
	case errors.Is(err, route.ErrParameterNameConflicts):
		return &ParameterNameConflicts{Msg: err.Error()}
	case errors.Is(err, route.ErrInvalidUsage):
		return &InvalidUsage{Msg: err.Error()}
	default:
		return err
	}
}
