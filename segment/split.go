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

package segment

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidDeclaration is returned when a `<...>` segment does not
// conform to either the plain or the filename-extension grammar.
var ErrInvalidDeclaration = fmt.Errorf("segment: invalid parameter declaration")

// partsPattern matches either a `<...>` declaration (whose body may
// contain the delimiter and nested `<name>` groups such as an inline
// `(?P<name>...)` capture) or a run of characters that do not contain
// the delimiter. It is rebuilt for each delimiter since the delimiter
// is a Router-wide setting, not hard-coded to "/".
func partsPattern(delimiter string) *regexp.Regexp {
	return regexp.MustCompile(`(<(?:[^<>]|<[^<>]*>)*>|[^` + regexp.QuoteMeta(delimiter) + `]+)`)
}

// Split breaks a raw path pattern into its segments. Parameter
// declarations (`<...>`) are returned verbatim; literal segments are
// percent-decoded first (to normalize any pre-encoded input) and then
// percent-encoded back into canonical form. A path ending in the
// delimiter produces a trailing empty segment, so strict routes can
// distinguish `/p` from `/p/`. Split is for pattern strings; request
// paths are split with SplitRequest, which is declaration-blind.
func Split(path, delimiter string) []string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		decoded = path
	}

	found := partsPattern(delimiter).FindAllString(decoded, -1)
	if len(found) == 0 {
		found = []string{""}
	}
	if strings.HasSuffix(path, delimiter) {
		found = append(found, "")
	}

	parts := make([]string, len(found))
	for i, part := range found {
		if IsParameter(part) {
			parts[i] = part
			continue
		}
		parts[i] = url.PathEscape(part)
	}
	return parts
}

// SplitRequest breaks a concrete request path into its segments.
// Unlike Split it never looks for `<...>` declarations: a request
// segment that decodes to declaration-shaped text is still literal
// text and is re-escaped like any other, so a route's unquote flag
// alone decides whether the captured value is decoded. Splitting
// happens before decoding, so an encoded delimiter inside a segment
// does not create extra segments.
func SplitRequest(path, delimiter string) []string {
	var parts []string
	for _, seg := range strings.Split(path, delimiter) {
		if seg == "" {
			continue
		}
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			decoded = seg
		}
		parts = append(parts, url.PathEscape(decoded))
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	if strings.HasSuffix(path, delimiter) {
		parts = append(parts, "")
	}
	return parts
}

// IsParameter reports whether a segment is a parameter declaration
// rather than a literal.
func IsParameter(part string) bool {
	return strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">") && len(part) >= 2
}

// Join re-assembles segments into a canonical path string, delimiter-
// separated. Every parameter declaration is re-parsed and re-emitted in
// its normalized `<name>` / `<name:spec>` form, which both canonicalizes
// and re-validates the declaration grammar: a malformed declaration
// surfaces here as ErrInvalidDeclaration on every canonicalization
// pass, not just the first.
func Join(parts []string, delimiter string) (string, error) {
	out := make([]string, len(parts))
	for i, part := range parts {
		if !IsParameter(part) {
			out[i] = part
			continue
		}
		decl, err := ParseDeclaration(part)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrInvalidDeclaration, part, err)
		}
		out[i] = decl.Render()
	}
	return strings.Join(out, delimiter), nil
}
