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

import "log/slog"

// DiagnosticEvent represents a build-time anomaly or notable condition
// encountered while registering routes. These are informational only;
// the router behaves identically whether or not a handler is attached.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagDeprecatedAlias fires when Add resolves a deprecated type
	// alias ("string"/"number") to its canonical label.
	DiagDeprecatedAlias DiagnosticKind = "deprecated_type_alias"

	// DiagCrossRegistryPromotion fires when Add moves an existing
	// group from the static registry to the dynamic one, or vice
	// versa, because a newly added route shares its segment tuple but
	// not its classification.
	DiagCrossRegistryPromotion DiagnosticKind = "cross_registry_promotion"

	// DiagRegexFallback fires when a route is classified into the
	// regex registry because one of its segments carries an
	// unregistered label or a type whose regex can capture the
	// delimiter (such as "path"), forcing whole-path regex matching
	// instead of a per-segment typed cast.
	DiagRegexFallback DiagnosticKind = "regex_fallback"
)

// DiagnosticHandler receives diagnostic events raised during Add. A nil
// handler silently drops every event; the router's resolution behavior
// never depends on whether one is configured.
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

// OnDiagnostic calls f.
func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) { f(e) }

// SlogDiagnostics returns a DiagnosticHandler that logs every event to
// logger at warn level. A nil logger uses slog.Default().
func SlogDiagnostics(logger *slog.Logger) DiagnosticHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		args := make([]any, 0, 2+2*len(e.Fields))
		args = append(args, "kind", string(e.Kind))
		for k, v := range e.Fields {
			args = append(args, k, v)
		}
		logger.Warn(e.Message, args...)
	})
}

// emit sends a diagnostic event if a handler is configured.
func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
	}
}
