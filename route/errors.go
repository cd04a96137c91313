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

import "errors"

// ErrParameterNameConflicts is returned by Finalize when two parameter
// slots on the same route share a name.
var ErrParameterNameConflicts = errors.New("route: duplicate parameter name")

// ErrInvalidUsage covers malformed route definitions caught at
// construction or finalization time: a malformed inline regex body, an
// extension allowlist with inconsistent sub-part counts, or a named
// capture group that collides with or duplicates a parameter name.
var ErrInvalidUsage = errors.New("route: invalid usage")

// ErrGroupMismatch is returned by Group.Merge when a route's segment
// tuple or strictness does not match the group it is being added to.
var ErrGroupMismatch = errors.New("route: route does not belong to this group")

// ErrRouteExists is returned by Group.Merge when a conflicting route
// (same method set and requirements) is already present and neither
// overwrite nor append was requested.
var ErrRouteExists = errors.New("route: route already exists")

// ErrConflictingFlags is returned when overwrite and append are both
// requested for the same Add call.
var ErrConflictingFlags = errors.New("route: overwrite and append are mutually exclusive")
