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

// Package segment splits and re-joins URL path patterns into their
// constituent segments, distinguishing literal text from parameter
// declarations, and parses the parameter declaration grammar (plain
// `<name:label>` form and the filename-extension `<name:ext=...>` form).
//
// The delimiter separates segments everywhere except inside a `<...>`
// declaration body, so a declaration may itself contain the delimiter
// (used by the `path` built-in type and by inline regex bodies).
package segment
