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

// Package tree builds the decision tree over path segments that the
// compiler package walks to synthesize a matcher. Nodes are keyed on
// segment identity: literal text for a literal segment, or the
// synthetic token `<dyn:label>` for a dynamic one, so two dynamic
// segments at the same tree position collapse into one child only
// when they share a type label.
package tree
