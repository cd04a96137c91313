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
	"fmt"
	"regexp"
	"strings"

	"github.com/routecore/routecore/pattern"
	"github.com/routecore/routecore/segment"
)

// ParamSlot is captured on a Route for each dynamic segment: its
// position within the segment tuple, its name, the source label
// (empty for a raw inline regex body), the cast to apply to the
// captured text, an optional validating regex, and the tie-break
// priority inherited from the pattern registry.
type ParamSlot struct {
	Index    int
	Name     string
	Label    string
	Cast     pattern.Cast
	Regex    *regexp.Regexp
	Priority int

	// IsExt marks a filename-extension slot (the `<name(=type):ext(=...)>`
	// grammar). ExtCast, if non-nil, casts the filename portion;
	// ExtAllowed, if non-empty, restricts accepted extensions.
	IsExt      bool
	ExtCast    pattern.Cast
	ExtAllowed []string
}

// regexBody returns the slot's validating pattern with its anchors
// stripped, suitable for embedding inside a larger composite regex.
func (s ParamSlot) regexBody() string {
	if s.Regex == nil {
		return ""
	}
	body := s.Regex.String()
	body = strings.TrimPrefix(body, "^")
	body = strings.TrimSuffix(body, "$")
	return body
}

// Route is a single (pattern, method, requirements, handler) record.
// Its segment tuple is immutable once constructed; Finalize performs
// the checks and compilation deferred until a full view of the
// route's parameter slots is available.
type Route struct {
	RawPath  string
	Path     string
	Segments []string

	Name         string
	Handler      any
	Methods      map[string]struct{}
	Requirements Requirements

	Strict  bool
	Unquote bool
	IsRegex bool

	Params []ParamSlot

	// CompiledRegex is the whole-path pattern assembled by Finalize,
	// set only when IsRegex is true. It carries one named capture group
	// per parameter slot.
	CompiledRegex *regexp.Regexp

	finalized bool
}

// New constructs a Route from a raw path pattern. It splits and
// canonicalizes the path, resolves every parameter declaration against
// reg, and determines whether the route requires whole-path regex
// matching. Call Finalize before using the route in resolution.
func New(reg *pattern.Registry, delimiter, rawPath string, handler any, methods []string, name string, requirements Requirements, strict, unquote bool) (*Route, error) {
	segs := segment.Split(rawPath, delimiter)
	canonical, err := segment.Join(segs, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if !strict {
		canonical = strings.TrimSuffix(canonical, delimiter)
		for len(segs) > 0 && segs[len(segs)-1] == "" {
			segs = segs[:len(segs)-1]
		}
	}

	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[strings.ToUpper(m)] = struct{}{}
	}

	r := &Route{
		RawPath:      rawPath,
		Path:         canonical,
		Segments:     segs,
		Name:         name,
		Handler:      handler,
		Methods:      methodSet,
		Requirements: requirements,
		Strict:       strict,
		Unquote:      unquote,
	}

	for i, part := range segs {
		if !segment.IsParameter(part) {
			continue
		}
		slot, isRegex, err := buildSlot(reg, delimiter, i, part)
		if err != nil {
			return nil, err
		}
		r.IsRegex = r.IsRegex || isRegex
		r.Params = append(r.Params, slot)
	}

	return r, nil
}

// buildSlot resolves a single `<...>` declaration into a ParamSlot,
// reporting whether it forces the containing route into whole-path
// regex matching: any label whose validating regex can capture the
// delimiter (the "path" built-in, or a user-registered equivalent)
// and any raw, unregistered regex body may span several request
// segments, so the route can no longer be decided by independent
// per-segment casts.
func buildSlot(reg *pattern.Registry, delimiter string, index int, part string) (ParamSlot, bool, error) {
	decl, err := segment.ParseDeclaration(part)
	if err != nil {
		return ParamSlot{}, false, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	if decl.IsExt {
		pt, _ := reg.Lookup("ext")
		slot := ParamSlot{
			Index:      index,
			Name:       decl.Name,
			Label:      "ext",
			Cast:       pt.Cast,
			Regex:      pt.Regex,
			Priority:   pt.Priority,
			IsExt:      true,
			ExtAllowed: decl.ExtAllowed,
		}
		if decl.ExtType != "" {
			extPt, ok := reg.Lookup(decl.ExtType)
			if !ok {
				return ParamSlot{}, false, fmt.Errorf("%w: unknown extension cast type %q", ErrInvalidUsage, decl.ExtType)
			}
			slot.ExtCast = extPt.Cast
		}
		return slot, false, nil
	}

	spec := decl.Spec
	if spec == "" {
		spec = "str"
	}

	if pt, ok := reg.Lookup(spec); ok {
		slot := ParamSlot{
			Index:    index,
			Name:     decl.Name,
			Label:    pt.Label,
			Cast:     pt.Cast,
			Regex:    pt.Regex,
			Priority: pt.Priority,
		}
		return slot, capturesDelimiter(pt.Regex, delimiter), nil
	}

	// Not a known label: spec is a raw regex body. It unconditionally
	// forces the route into whole-path regex matching since it may
	// embed the delimiter.
	if err := validateInlineRegexGroups(spec, decl.Name); err != nil {
		return ParamSlot{}, false, err
	}
	compiled, err := regexp.Compile("^(?:" + spec + ")$")
	if err != nil {
		return ParamSlot{}, false, fmt.Errorf("%w: invalid regex body %q: %w", ErrInvalidUsage, spec, err)
	}
	slot := ParamSlot{
		Index:    index,
		Name:     decl.Name,
		Label:    "",
		Cast:     castIdentity,
		Regex:    compiled,
		Priority: reg.Priority(spec),
	}
	return slot, true, nil
}

// capturesDelimiter reports whether a validating regex can match text
// containing the delimiter, in which case a single capture may span
// several request segments and the route needs whole-path matching.
func capturesDelimiter(re *regexp.Regexp, delimiter string) bool {
	if re == nil {
		return false
	}
	return re.MatchString(delimiter) || re.MatchString("a"+delimiter+"b")
}

// namedGroupRegex finds `(?P<name>` style named captures in a raw regex
// body supplied inline in a declaration.
var namedGroupRegex = regexp.MustCompile(`\(\?P<([A-Za-z_][A-Za-z0-9_]*)>`)

// validateInlineRegexGroups enforces that a user-supplied inline regex
// body contains at most one named group, and that a present one
// matches the parameter's own name.
func validateInlineRegexGroups(spec, name string) error {
	matches := namedGroupRegex.FindAllStringSubmatch(spec, -1)
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 {
		return fmt.Errorf("%w: %q declares more than one named group", ErrInvalidUsage, spec)
	}
	if matches[0][1] != name {
		return fmt.Errorf("%w: named group %q in %q does not match parameter name %q", ErrInvalidUsage, matches[0][1], spec, name)
	}
	return nil
}

func castIdentity(raw string) (any, error) { return raw, nil }

// Finalize validates parameter-name uniqueness and, for a regex route,
// compiles the composite whole-path pattern. It is idempotent.
func (r *Route) Finalize(delimiter string) error {
	if r.finalized {
		return nil
	}

	seen := make(map[string]struct{}, len(r.Params))
	for _, p := range r.Params {
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("%w: %q in route %q", ErrParameterNameConflicts, p.Name, r.RawPath)
		}
		seen[p.Name] = struct{}{}
	}

	if r.IsRegex {
		pattern, err := r.compositePattern(delimiter)
		if err != nil {
			return err
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: composite pattern %q: %w", ErrInvalidUsage, pattern, err)
		}
		r.CompiledRegex = compiled
	}

	r.finalized = true
	return nil
}

// compositePattern assembles the whole-path anchored pattern for a
// regex route: each literal segment contributes its escaped text, each
// parameter segment contributes a named capture group built from its
// slot's validating regex (or the identity body `[^delimiter]+` for an
// ext slot, whose internal name/extension split happens post-match).
func (r *Route) compositePattern(delimiter string) (string, error) {
	slots := make(map[int]ParamSlot, len(r.Params))
	for _, p := range r.Params {
		slots[p.Index] = p
	}

	parts := make([]string, len(r.Segments))
	for i, seg := range r.Segments {
		if slot, ok := slots[i]; ok {
			body := slot.regexBody()
			if body == "" {
				body = "[^" + regexp.QuoteMeta(delimiter) + "]+"
			}
			parts[i] = fmt.Sprintf("(?P<%s>%s)", slot.Name, body)
			continue
		}
		parts[i] = regexp.QuoteMeta(seg)
	}

	joined := regexp.QuoteMeta(delimiter) + strings.Join(parts, regexp.QuoteMeta(delimiter))
	if !r.Strict {
		return "^" + joined + "(?:" + regexp.QuoteMeta(delimiter) + ")?$", nil
	}
	return "^" + joined + "$", nil
}
