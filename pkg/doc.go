// Package pkg provides the core libraries for layoutgen, a build-time
// generator of rotated Android layout variants.
//
// # Overview
//
// Floating panels that follow the device orientation need one layout file per
// rotation. layoutgen keeps only the hand-authored 0° layout under version
// control and derives the 90°, 180° and 270° files from it by rewriting the
// markup text. The pkg directory is organized into these areas:
//
//  1. [rotate] - Text transformation rules and the per-angle rule pipeline
//  2. [store] - Base layout sources and variant sinks (files, Redis, memory)
//  3. [generator] - Runs (base, angle) units with compare-then-write persistence
//  4. [errors] - Coded errors and input validation
//  5. [observability] - Event hooks, with a Prometheus implementation
//
// # Architecture
//
// The typical data flow through layoutgen:
//
//	<base>_0.xml
//	     ↓
//	[store] package (read base once per run)
//	     ↓
//	[rotate] package (rule pipeline per angle)
//	     ↓
//	[generator] package (compare with stored variant, write if changed)
//	     ↓
//	<base>_90.xml, <base>_180.xml, <base>_270.xml
//
// # Quick Start
//
// Generate the variants of every base layout in a resource directory:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/layoutgen/pkg/generator"
//	    "github.com/matzehuels/layoutgen/pkg/store"
//	)
//
//	// 1. Open the layout directory
//	fs, _ := store.NewFileStore("app/src/main/res/layout")
//
//	// 2. Discover base layouts
//	bases, _ := fs.List(context.Background())
//
//	// 3. Generate and persist variants
//	runner := generator.NewRunner(fs, nil)
//	report, _ := runner.Generate(context.Background(), generator.Config{Bases: bases})
//
// Transform a single document without any storage:
//
//	p, _ := rotate.NewPipeline(rotate.DefaultOptions())
//	res, _ := p.Transform(base, rotate.Angle90)
//
// # Main Packages
//
// [rotate] - Rules operate on opening tags, so single-line and multi-line
// elements are rewritten alike. Two variants exist: legacy (rotation on
// buttons and web views, literal panel swap) and swap (rotation on buttons,
// validated width/height transposition with a margin).
//
// [store] - FileStore for Android resource directories, RedisStore for
// sharing generated layouts between build machines, MemoryStore for tests
// and embedders, and DryRun for planning without writes.
//
// [generator] - Parallel across bases and sequential across angles, with a
// deterministic report order and zero writes when nothing changed.
//
// [observability/prom] - Prometheus counters and histograms, written to a
// node_exporter textfile by the CLI.
//
// [rotate]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/rotate
// [store]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/store
// [generator]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/generator
// [errors]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/observability
// [observability/prom]: https://pkg.go.dev/github.com/matzehuels/layoutgen/pkg/observability/prom
package pkg
