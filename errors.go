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

// Package routecore compiles a set of typed, method- and requirement-
// aware URL path patterns into a resolver that maps a concrete
// request to a single registered route, its opaque handler, and its
// cast parameters.
package routecore

import (
	"errors"
	"fmt"
)

// Every dispatch or definition-time failure is one of the typed errors
// below, each wrapping a package-level sentinel so callers can branch
// with errors.Is/errors.As instead of string matching.
var (
	// ErrNotFound is the sentinel behind NotFound.
	ErrNotFound = errors.New("routecore: no route matches request")
	// ErrNoMethod is the sentinel behind NoMethod.
	ErrNoMethod = errors.New("routecore: method not allowed")
	// ErrBadMethod is the sentinel behind BadMethod.
	ErrBadMethod = errors.New("routecore: unknown HTTP method")
	// ErrRouteExists is the sentinel behind RouteExists.
	ErrRouteExists = errors.New("routecore: conflicting route already registered")
	// ErrFinalizationError is the sentinel behind FinalizationError.
	ErrFinalizationError = errors.New("routecore: invalid finalization lifecycle transition")
	// ErrInvalidUsage is the sentinel behind InvalidUsage.
	ErrInvalidUsage = errors.New("routecore: invalid route definition")
	// ErrParameterNameConflicts is the sentinel behind ParameterNameConflicts.
	ErrParameterNameConflicts = errors.New("routecore: duplicate parameter name on route")
)

// NotFound is raised by Resolve when no registered route's segment
// tuple matches the request path, or when a terminal route's
// requirements don't match the caller's extras.
type NotFound struct {
	Path string
}

func (e *NotFound) Error() string { return fmt.Sprintf("routecore: not found: %q", e.Path) }
func (e *NotFound) Unwrap() error { return ErrNotFound }

// NoMethod is raised by Resolve when a request's path matches a
// registered route shape but its method is not among those accepted,
// carrying the allowed set so the caller can format a 405 response.
type NoMethod struct {
	Method  string
	Allowed []string
}

func (e *NoMethod) Error() string {
	return fmt.Sprintf("routecore: method %q not allowed, allowed: %v", e.Method, e.Allowed)
}
func (e *NoMethod) Unwrap() error { return ErrNoMethod }

// BadMethod is raised by Add when a route declares a method outside
// the router's fixed set of known HTTP methods.
type BadMethod struct {
	Method string
}

func (e *BadMethod) Error() string { return fmt.Sprintf("routecore: bad method %q", e.Method) }
func (e *BadMethod) Unwrap() error { return ErrBadMethod }

// RouteExists is raised by Add when a conflicting route (same segment
// tuple, method set, and requirements) is already registered and
// neither Overwrite nor Append was requested.
type RouteExists struct {
	Path    string
	Methods []string
}

func (e *RouteExists) Error() string {
	return fmt.Sprintf("routecore: route %q already exists for methods %v", e.Path, e.Methods)
}
func (e *RouteExists) Unwrap() error { return ErrRouteExists }

// FinalizationError is raised by Add/Finalize/Resolve when the
// router's OPEN/FINALIZED lifecycle is violated: adding
// after Finalize, finalizing twice, finalizing an empty router, or
// resolving before Finalize.
type FinalizationError struct {
	Msg string
}

func (e *FinalizationError) Error() string { return "routecore: " + e.Msg }
func (e *FinalizationError) Unwrap() error { return ErrFinalizationError }

// InvalidUsage covers malformed route definitions: a bad parameter
// declaration, an extension allowlist with inconsistent sub-part
// counts, a named capture group that doesn't match its parameter
// name, or mutually exclusive Add flags.
type InvalidUsage struct {
	Msg string
}

func (e *InvalidUsage) Error() string { return "routecore: " + e.Msg }
func (e *InvalidUsage) Unwrap() error { return ErrInvalidUsage }

// ParameterNameConflicts is raised by Finalize when a route declares
// two parameter slots under the same name.
type ParameterNameConflicts struct {
	Msg string
}

func (e *ParameterNameConflicts) Error() string { return "routecore: " + e.Msg }
func (e *ParameterNameConflicts) Unwrap() error { return ErrParameterNameConflicts }
