package generator

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/layoutgen/pkg/observability"
	"github.com/matzehuels/layoutgen/pkg/rotate"
	"github.com/matzehuels/layoutgen/pkg/store"
)

// Runner executes generation runs against a store.
//
// The Runner holds no per-run state; multiple goroutines can share one
// Runner with different configs.
type Runner struct {
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, logging is discarded.
func NewRunner(s store.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Store:  s,
		Logger: logger,
	}
}

// Generate derives and persists every (base, angle) unit of cfg.
//
// A missing base is skipped and its units are reported as missing. A store
// failure cancels the remaining work and is returned.
func (r *Runner) Generate(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	p, err := rotate.NewPipeline(cfg.Options)
	if err != nil {
		return nil, err
	}

	var sink store.Store = r.Store
	if cfg.DryRun {
		sink = store.DryRun(r.Store)
	}

	report := &Report{
		RunID: uuid.NewString(),
		Units: make([]Unit, len(cfg.Bases)*len(cfg.Angles)),
	}
	start := time.Now()
	observability.Generator().OnRunStart(ctx, report.RunID, len(report.Units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	n := len(cfg.Angles)
	for i, base := range cfg.Bases {
		base := base
		units := report.Units[i*n : (i+1)*n]
		g.Go(func() error {
			return r.generateBase(gctx, p, sink, base, cfg, units)
		})
	}
	err = g.Wait()

	report.Stats.Duration = time.Since(start)
	observability.Generator().OnRunComplete(ctx, report.RunID, report.Stats.Duration, err)
	if err != nil {
		return nil, err
	}
	report.tally()

	r.Logger.Info("generated layouts",
		"run", report.RunID,
		"updated", report.Stats.Updated,
		"unchanged", report.Stats.Unchanged,
		"missing", report.Stats.Missing,
		"planned", report.Stats.Planned,
		"duration", report.Stats.Duration)
	return report, nil
}

// generateBase fills units, one per configured angle, for a single base.
func (r *Runner) generateBase(ctx context.Context, p *rotate.Pipeline, sink store.Sink, base string, cfg Config, units []Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, ok, err := r.Store.Base(ctx, base)
	if err != nil {
		return err
	}
	if !ok {
		r.Logger.Warn("base layout not found, skipping", "base", base)
		for i, angle := range cfg.Angles {
			units[i] = Unit{Base: base, Angle: angle, Status: StatusMissing}
			observability.Generator().OnUnitComplete(ctx, base, int(angle), string(StatusMissing), 0, nil)
		}
		return nil
	}

	for i, angle := range cfg.Angles {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		res, err := p.Transform(doc, angle)
		if err != nil {
			return err
		}
		changed, err := WriteIfChanged(ctx, sink, base, angle, res.Document)
		d := time.Since(start)
		if err != nil {
			observability.Generator().OnUnitComplete(ctx, base, int(angle), "", d, err)
			return err
		}

		status := StatusUnchanged
		switch {
		case changed && cfg.DryRun:
			status = StatusPlanned
		case changed:
			status = StatusUpdated
		}
		units[i] = Unit{
			Base:     base,
			Angle:    angle,
			Status:   status,
			Digest:   store.Digest(res.Document),
			Rules:    res.Applied,
			Duration: d,
		}
		observability.Generator().OnUnitComplete(ctx, base, int(angle), string(status), d, nil)
		r.Logger.Debug("unit",
			"base", base,
			"angle", angle,
			"status", status,
			"rules", res.Applied)
	}
	return nil
}

// WriteIfChanged stores doc unless the sink already holds identical bytes.
// It reports whether a write was issued.
func WriteIfChanged(ctx context.Context, sink store.Sink, name string, angle rotate.Angle, doc rotate.Document) (bool, error) {
	current, ok, err := sink.Variant(ctx, name, angle)
	if err != nil {
		return false, err
	}
	if ok && current == doc {
		return false, nil
	}
	if err := sink.PutVariant(ctx, name, angle, doc); err != nil {
		return false, err
	}
	return true, nil
}

// Clean deletes the generated variants of cfg's bases and angles and
// returns how many existed. With cfg.DryRun, nothing is deleted.
func (r *Runner) Clean(ctx context.Context, cfg Config) (int, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return 0, err
	}
	removed := 0
	for _, base := range cfg.Bases {
		for _, angle := range cfg.Angles {
			if err := ctx.Err(); err != nil {
				return removed, err
			}
			_, ok, err := r.Store.Variant(ctx, base, angle)
			if err != nil {
				return removed, err
			}
			if !ok {
				continue
			}
			if !cfg.DryRun {
				if err := r.Store.DeleteVariant(ctx, base, angle); err != nil {
					return removed, err
				}
			}
			removed++
			r.Logger.Debug("removed variant", "base", base, "angle", angle, "dry_run", cfg.DryRun)
		}
	}
	return removed, nil
}

// Close releases resources held by the runner (the store).
func (r *Runner) Close() error {
	if r.Store != nil {
		return r.Store.Close()
	}
	return nil
}
