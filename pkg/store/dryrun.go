package store

import (
	"context"

	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// dryRun passes reads through and discards writes.
type dryRun struct {
	Store
}

// DryRun wraps s so that PutVariant and DeleteVariant do nothing.
// Useful for planning a run without touching the layout directory.
func DryRun(s Store) Store {
	return &dryRun{Store: s}
}

// PutVariant does nothing.
func (d *dryRun) PutVariant(context.Context, string, rotate.Angle, rotate.Document) error {
	return nil
}

// DeleteVariant does nothing.
func (d *dryRun) DeleteVariant(context.Context, string, rotate.Angle) error {
	return nil
}

// List delegates to the wrapped store when it can enumerate bases.
func (d *dryRun) List(ctx context.Context) ([]string, error) {
	if l, ok := d.Store.(Lister); ok {
		return l.List(ctx)
	}
	return nil, nil
}

// Ensure dryRun implements Store.
var _ Store = (*dryRun)(nil)
