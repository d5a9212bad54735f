// Package generator derives rotated layout variants from base layouts and
// persists them with compare-then-write semantics.
//
// A run covers every (base, angle) unit named by a [Config]. Each base is
// read once; its variants are produced by a [rotate.Pipeline] and written
// only when they differ from what the store already holds, so a second run
// over unchanged bases performs no writes.
//
// # Usage
//
//	fs, _ := store.NewFileStore("app/src/main/res/layout")
//	runner := generator.NewRunner(fs, logger)
//	report, err := runner.Generate(ctx, generator.Config{
//	    Bases: []string{"layout_float_cards", "layout_float_ops"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, u := range report.Units {
//	    fmt.Println(u.Base, u.Angle, u.Status)
//	}
package generator

import (
	"runtime"
	"time"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// Status is the outcome of one (base, angle) unit.
type Status string

const (
	// StatusUpdated means the variant was written.
	StatusUpdated Status = "updated"

	// StatusUnchanged means the stored variant already matched.
	StatusUnchanged Status = "unchanged"

	// StatusMissing means the base layout does not exist; the unit was skipped.
	StatusMissing Status = "missing"

	// StatusPlanned means a dry run found the variant would be written.
	StatusPlanned Status = "planned"
)

// Config describes one generation run.
type Config struct {
	// Bases lists base layout names, without angle suffix or extension.
	Bases []string

	// Angles to generate. Defaults to 90, 180 and 270.
	Angles []rotate.Angle

	// Options selects the rule variant and its constants.
	Options rotate.Options

	// Parallelism bounds how many bases are processed at once.
	// Defaults to GOMAXPROCS.
	Parallelism int

	// DryRun plans writes without performing them.
	DryRun bool
}

// ValidateAndSetDefaults checks names and angles, removes duplicates and
// applies defaults.
func (c *Config) ValidateAndSetDefaults() error {
	bases := make([]string, 0, len(c.Bases))
	seen := make(map[string]bool, len(c.Bases))
	for _, b := range c.Bases {
		if err := errs.ValidateBaseName(b); err != nil {
			return err
		}
		if !seen[b] {
			seen[b] = true
			bases = append(bases, b)
		}
	}
	if len(bases) == 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "no base layouts configured")
	}
	c.Bases = bases

	if len(c.Angles) == 0 {
		c.Angles = rotate.Angles()
	}
	angles := make([]rotate.Angle, 0, len(c.Angles))
	seenAngle := make(map[rotate.Angle]bool, len(c.Angles))
	for _, a := range c.Angles {
		if !a.Valid() {
			return errs.New(errs.ErrCodeInvalidAngle, "unsupported angle: %d (must be one of: 90, 180, 270)", int(a))
		}
		if !seenAngle[a] {
			seenAngle[a] = true
			angles = append(angles, a)
		}
	}
	c.Angles = angles

	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	return c.Options.ValidateAndSetDefaults()
}

// Unit is the outcome of one (base, angle) pair.
type Unit struct {
	Base   string
	Angle  rotate.Angle
	Status Status

	// Digest is the SHA-256 of the generated document. Empty when missing.
	Digest string

	// Rules lists the rules that changed the document.
	Rules []string

	Duration time.Duration
}

// Stats summarizes a run.
type Stats struct {
	Updated   int
	Unchanged int
	Missing   int
	Planned   int
	Duration  time.Duration
}

// Report is the result of a run. Units are ordered by base (in Config
// order) and then by angle.
type Report struct {
	RunID string
	Units []Unit
	Stats Stats
}

// Changed reports whether the run wrote, or would write, any variant.
func (r *Report) Changed() bool {
	return r.Stats.Updated > 0 || r.Stats.Planned > 0
}

func (r *Report) tally() {
	for _, u := range r.Units {
		switch u.Status {
		case StatusUpdated:
			r.Stats.Updated++
		case StatusUnchanged:
			r.Stats.Unchanged++
		case StatusMissing:
			r.Stats.Missing++
		case StatusPlanned:
			r.Stats.Planned++
		}
	}
}
