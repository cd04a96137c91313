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

package routeconfig

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/routecore/routecore"
)

// BuildOptions is the YAML-bound shape of a router's build-time
// configuration.
type BuildOptions struct {
	Delimiter string `yaml:"delimiter"`
	Strict    bool   `yaml:"strict"`
	Unquote   bool   `yaml:"unquote"`

	// CascadeNotFound reflects the YAML field but is not yet wired to
	// Router.Resolve: the static/matcher/regex cascade order and the
	// NotFound/NoMethod precedence within it are fixed, not a
	// build-time choice, so there is nothing for this flag to safely
	// toggle without changing resolution correctness. Kept as a
	// validated, parsed field so a config file referencing it fails
	// loudly on a future semantic change rather than silently.
	CascadeNotFound bool `yaml:"cascade_not_found"`

	BloomSize        uint64   `yaml:"bloom_size"`
	BloomHashes      int      `yaml:"bloom_hashes"`
	DisabledPatterns []string `yaml:"disabled_patterns"`
}

// defaults mirrors the Router zero-configuration values from
// routecore.New, so a YAML document that omits a field doesn't
// silently diverge from constructing a Router with no options.
func defaults() BuildOptions {
	return BuildOptions{
		Delimiter:   "/",
		BloomHashes: 3,
	}
}

// Load reads a YAML document from r into a BuildOptions, applying
// defaults for any field it leaves unset.
func Load(r io.Reader) (*BuildOptions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("routeconfig: read: %w", err)
	}
	return LoadBytes(data)
}

// LoadFile reads a YAML document from path into a BuildOptions.
func LoadFile(path string) (*BuildOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routeconfig: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// LoadBytes parses a YAML document already held in memory into a
// BuildOptions.
func LoadBytes(data []byte) (*BuildOptions, error) {
	opts := defaults()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("routeconfig: parse: %w", err)
	}
	if opts.Delimiter == "" {
		opts.Delimiter = "/"
	}
	if opts.BloomHashes <= 0 {
		opts.BloomHashes = 3
	}
	return &opts, nil
}

// RouterOptions translates a loaded BuildOptions into the Option
// values routecore.New expects, so a router can be bootstrapped
// declaratively:
//
//	opts, err := routeconfig.LoadFile("router.yaml")
//	r, err := routecore.New(opts.RouterOptions()...)
func (o *BuildOptions) RouterOptions() []routecore.Option {
	opts := []routecore.Option{
		routecore.WithDelimiter(o.Delimiter),
		routecore.WithBloomFilterSize(o.BloomSize),
		routecore.WithBloomFilterHashFunctions(o.BloomHashes),
	}
	if len(o.DisabledPatterns) > 0 {
		opts = append(opts, routecore.WithDisabledPatterns(o.DisabledPatterns...))
	}
	return opts
}

// DefaultAddOptions translates the strict/unquote defaults into the
// AddOption values a caller can splat into every Add call that
// doesn't override them explicitly:
//
//	r.Add("/widgets/<id:int>", handler, opts.DefaultAddOptions()...)
func (o *BuildOptions) DefaultAddOptions() []routecore.AddOption {
	return []routecore.AddOption{
		routecore.WithStrict(o.Strict),
		routecore.WithUnquote(o.Unquote),
	}
}

// IsPatternDisabled reports whether label was named in the
// disabled_patterns list, so a caller can skip registering or exclude
// a built-in type before Finalize.
func (o *BuildOptions) IsPatternDisabled(label string) bool {
	for _, d := range o.DisabledPatterns {
		if d == label {
			return true
		}
	}
	return false
}
