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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrCast is the sentinel wrapped by every built-in cast failure, so
// callers can test for a failed cast generically with errors.Is.
var ErrCast = fmt.Errorf("pattern: cast failed")

// ExtValue is the value produced by the "ext" built-in: the filename
// portion and the extension portion of a `<name:ext>` capture.
type ExtValue struct {
	Name string
	Ext  string
}

var (
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	alphaRegex = regexp.MustCompile(`^[A-Za-z]+$`)
	intRegex   = regexp.MustCompile(`^-?\d+$`)
	floatRegex = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)$`)
	ymdRegex   = regexp.MustCompile(`^([12]\d{3})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	uuidRegex  = regexp.MustCompile(`^[A-Fa-f0-9]{8}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{12}$`)
	strRegex   = regexp.MustCompile(`^[^/]+$`)
	emptyRegex = regexp.MustCompile(`^[^/]*$`)
	pathRegex  = regexp.MustCompile(`^.+$`)
	extRegex   = regexp.MustCompile(`^[^/]+$`)
)

// builtins returns the built-in parameter types in the fixed declaration
// order that also determines their priority.
func builtins() []ParamType {
	return []ParamType{
		{Label: "str", Cast: castStr, Regex: strRegex, Info: InfoPlain},
		{Label: "strorempty", Cast: castStrOrEmpty, Regex: emptyRegex, Info: InfoPlain},
		{Label: "slug", Cast: castSlug, Regex: slugRegex, Info: InfoPlain},
		{Label: "alpha", Cast: castAlpha, Regex: alphaRegex, Info: InfoPlain},
		{Label: "int", Cast: castInt, Regex: intRegex, Info: InfoPlain},
		{Label: "float", Cast: castFloat, Regex: floatRegex, Info: InfoPlain},
		{Label: "ymd", Cast: castYMD, Regex: ymdRegex, Info: InfoPlain},
		{Label: "uuid", Cast: castUUID, Regex: uuidRegex, Info: InfoPlain},
		{Label: "ext", Cast: castExt, Regex: extRegex, Info: InfoExtension},
		{Label: "path", Cast: castStr, Regex: pathRegex, Info: InfoPlain},
	}
}

func castStr(raw string) (any, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty segment", ErrCast)
	}
	return raw, nil
}

func castStrOrEmpty(raw string) (any, error) {
	return raw, nil
}

func castSlug(raw string) (any, error) {
	if !slugRegex.MatchString(raw) {
		return nil, fmt.Errorf("%w: %q is not a slug", ErrCast, raw)
	}
	return raw, nil
}

func castAlpha(raw string) (any, error) {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return nil, fmt.Errorf("%w: %q contains non-alphabetic characters", ErrCast, raw)
		}
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty alpha segment", ErrCast)
	}
	return raw, nil
}

func castInt(raw string) (any, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an integer: %w", ErrCast, raw, err)
	}
	return v, nil
}

func castFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a float: %w", ErrCast, raw, err)
	}
	return v, nil
}

func castYMD(raw string) (any, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date: %w", ErrCast, raw, err)
	}
	return t, nil
}

func castUUID(raw string) (any, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a UUID: %w", ErrCast, raw, err)
	}
	return id, nil
}

// castExt splits "name.ext" into its ExtValue. The allowlist check (when
// a declaration restricts extensions) happens in the route package,
// which has access to the per-route declaration; this cast only needs
// the bare filename/extension split to succeed.
func castExt(raw string) (any, error) {
	idx := strings.LastIndexByte(raw, '.')
	if idx <= 0 || idx == len(raw)-1 {
		return nil, fmt.Errorf("%w: %q does not have a name.ext form", ErrCast, raw)
	}
	name, ext := raw[:idx], raw[idx+1:]
	for i := 0; i < len(ext); i++ {
		c := ext[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return nil, fmt.Errorf("%w: extension %q is not alphanumeric", ErrCast, ext)
		}
	}
	return ExtValue{Name: name, Ext: ext}, nil
}
