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
	"regexp"
	"strings"
)

// ErrInconsistentExtensionDepth is returned when an extension allowlist
// mixes extensions with different "sub-part" counts (dot counts), e.g.
// `ext=gz|tar.gz`; every alternative in one declaration must share the
// same count of dots.
var ErrInconsistentExtensionDepth = fmt.Errorf("segment: extension list has inconsistent sub-part counts")

// namePattern matches a parameter name: [A-Za-z_][A-Za-z0-9_]*
const namePattern = `[A-Za-z_][A-Za-z0-9_]*`

var (
	extDeclRegex   = regexp.MustCompile(`^(` + namePattern + `)(?:=(` + namePattern + `))?:ext(?:=([A-Za-z0-9_|.]+))?$`)
	plainDeclRegex = regexp.MustCompile(`^(` + namePattern + `)(?::(.*))?$`)
)

// Declaration is the parsed form of a `<...>` path segment, covering
// both the plain `<name:spec>` grammar and the filename-extension
// `<name(=type)?:ext(=ext1|ext2|...)?>` grammar.
type Declaration struct {
	Name string
	// Spec is the label or raw regex body following the first colon in
	// the plain grammar. Empty means no spec was given (implicit str).
	Spec string

	IsExt bool
	// ExtType is the optional cast label applied to the filename
	// portion of an ext declaration (e.g. `<name=int:ext>`). Empty
	// means no explicit type was given.
	ExtType string
	// ExtAllowed is the optional extension allowlist. Nil means no
	// allowlist was given (any extension is accepted).
	ExtAllowed []string
}

// ParseDeclaration parses a single `<...>` segment (brackets included)
// into a Declaration, validating both declaration grammars.
func ParseDeclaration(raw string) (Declaration, error) {
	if !IsParameter(raw) {
		return Declaration{}, fmt.Errorf("%w: %q is not a parameter declaration", ErrInvalidDeclaration, raw)
	}
	inner := raw[1 : len(raw)-1]

	if m := extDeclRegex.FindStringSubmatch(inner); m != nil {
		decl := Declaration{Name: m[1], IsExt: true, ExtType: m[2]}
		if m[3] != "" {
			allowed := strings.Split(m[3], "|")
			if err := validateExtensionDepths(allowed); err != nil {
				return Declaration{}, err
			}
			decl.ExtAllowed = allowed
		}
		return decl, nil
	}

	if m := plainDeclRegex.FindStringSubmatch(inner); m != nil {
		return Declaration{Name: m[1], Spec: m[2]}, nil
	}

	return Declaration{}, fmt.Errorf("%w: %q", ErrInvalidDeclaration, raw)
}

// validateExtensionDepths enforces that every alternative in an
// extension allowlist has the same number of dots, so that
// `ext=tar.gz|zip` (1 dot vs 0 dots) is rejected while `ext=gz|zip` or
// `ext=tar.gz|tar.bz2` are accepted.
func validateExtensionDepths(allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	want := strings.Count(allowed[0], ".")
	for _, ext := range allowed[1:] {
		if strings.Count(ext, ".") != want {
			return fmt.Errorf("%w: %v", ErrInconsistentExtensionDepth, allowed)
		}
	}
	return nil
}

// Render returns the canonical `<...>` form of the declaration.
func (d Declaration) Render() string {
	if d.IsExt {
		var sb strings.Builder
		sb.WriteByte('<')
		sb.WriteString(d.Name)
		if d.ExtType != "" {
			sb.WriteByte('=')
			sb.WriteString(d.ExtType)
		}
		sb.WriteString(":ext")
		if len(d.ExtAllowed) > 0 {
			sb.WriteByte('=')
			sb.WriteString(strings.Join(d.ExtAllowed, "|"))
		}
		sb.WriteByte('>')
		return sb.String()
	}

	if d.Spec == "" {
		return "<" + d.Name + ">"
	}
	return "<" + d.Name + ":" + d.Spec + ">"
}
