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

import (
	"fmt"
	"testing"
)

func benchRouter(b *testing.B, staticRoutes int) *Router {
	b.Helper()
	r := MustNew()
	for i := 0; i < staticRoutes; i++ {
		if _, err := r.Add(fmt.Sprintf("/static/route/%d", i), i); err != nil {
			b.Fatal(err)
		}
	}
	if _, err := r.Add("/api/<version:int>/users/<id:uuid>", "handler"); err != nil {
		b.Fatal(err)
	}
	if err := r.Finalize(true, true); err != nil {
		b.Fatal(err)
	}
	return r
}

// Dispatch cost for a dynamic route must not grow with the number of
// unrelated static routes: the static table is a hash lookup and the
// tree walk only visits positions sharing the request's prefix.
// Compare the per-op times of the sub-benchmarks to verify.
func BenchmarkResolveDynamic(b *testing.B) {
	const path = "/api/3/users/726a7d33-4bd5-46a3-a02d-37da7b4b029b"

	for _, n := range []int{0, 100, 10000} {
		b.Run(fmt.Sprintf("static=%d", n), func(b *testing.B) {
			r := benchRouter(b, n)
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, _, _, err := r.Resolve(path, "GET", nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkResolveStatic benchmarks the exact-match fast path.
func BenchmarkResolveStatic(b *testing.B) {
	r := benchRouter(b, 1000)
	b.ReportAllocs()

	for b.Loop() {
		if _, _, _, err := r.Resolve("/static/route/500", "GET", nil); err != nil {
			b.Fatal(err)
		}
	}
}
