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

// Package compiler synthesizes a matcher from a decision tree by
// interpreting it directly rather than generating source code: for
// every node it evaluates a length predicate and either a literal
// equality test or a typed cast, and at a terminal node it runs the
// requirement and method gates. Groups with regex-bearing routes are
// not selected by the tree walk; they are tried by the ordered
// fallback list of whole-path regular expression matchers for routes
// whose parameter types can capture the path delimiter.
package compiler
