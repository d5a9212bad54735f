// Package store reads base layouts and persists generated variants.
//
// A [Store] pairs a [Source] of hand-authored 0° layouts with a [Sink] of
// generated variants keyed by (name, angle). Absence is never an error: a
// missing base or variant is reported with ok == false.
//
// # Backends
//
//   - [FileStore]: an Android res/layout directory, <name>_<angle>.xml
//   - [RedisStore]: Redis keys <prefix><name>:<angle>
//   - [MemoryStore]: in-process map, used by tests and embedders
//   - [DryRun]: wraps another Store and discards writes
//
// Every backend reports reads and writes to [observability.Store].
package store

import (
	"context"

	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// Source looks up base layouts by name.
type Source interface {
	// Base returns the 0° document for name. ok is false when it does not exist.
	Base(ctx context.Context, name string) (doc rotate.Document, ok bool, err error)
}

// Sink reads and writes generated variants.
type Sink interface {
	// Variant returns the stored variant. ok is false when none is stored.
	Variant(ctx context.Context, name string, angle rotate.Angle) (doc rotate.Document, ok bool, err error)

	// PutVariant stores doc, replacing any previous content.
	PutVariant(ctx context.Context, name string, angle rotate.Angle, doc rotate.Document) error

	// DeleteVariant removes a stored variant. Deleting a missing variant is not an error.
	DeleteVariant(ctx context.Context, name string, angle rotate.Angle) error
}

// Store is a Source and Sink sharing one backend.
type Store interface {
	Source
	Sink

	// Close releases backend resources.
	Close() error
}

// Lister is implemented by stores that can enumerate their base layouts.
type Lister interface {
	// List returns the names of all stored base layouts, sorted.
	List(ctx context.Context) ([]string, error)
}

// Backend names reported to observability hooks.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Document kinds reported to observability hooks.
const (
	kindBase    = "base"
	kindVariant = "variant"
)
