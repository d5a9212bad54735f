package rotate

import (
	errs "github.com/matzehuels/layoutgen/pkg/errors"
)

// Pipeline applies an ordered rule list to a base layout.
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	rules []Rule
}

// Result is the output of one transformation.
type Result struct {
	Document Document

	// Applied lists, in order, the rules that changed the document.
	Applied []string
}

// NewPipeline validates opts and builds the rule list for its variant.
func NewPipeline(opts Options) (*Pipeline, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	rules := []Rule{
		InjectRotation(opts.RotateElements),
		SwapOrientation(),
		TransposeGrid(),
		NormalizeHandle(opts.HandleID, opts.HandleWidth, opts.HandleHeight),
	}
	switch opts.Variant {
	case VariantSwap:
		rules = append(rules, SwapDimensions(opts.SwapElements, opts.Margin))
	default:
		rules = append(rules, SwapPanel(opts.PanelWidth, opts.PanelHeight))
	}
	return &Pipeline{rules: rules}, nil
}

// NewPipelineFromRules builds a pipeline from an explicit rule list.
func NewPipelineFromRules(rules ...Rule) *Pipeline {
	return &Pipeline{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rules that run for angle, in order.
func (p *Pipeline) Rules(angle Angle) []Rule {
	out := make([]Rule, 0, len(p.rules))
	for _, r := range p.rules {
		if r.QuarterOnly && !angle.Quarter() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Transform rewrites base into its variant for angle. base must be the 0°
// source; passing a generated variant is not supported.
func (p *Pipeline) Transform(base Document, angle Angle) (Result, error) {
	if !angle.Valid() {
		return Result{}, errs.New(errs.ErrCodeInvalidAngle, "unsupported angle: %d (must be one of: 90, 180, 270)", int(angle))
	}

	doc := base
	var applied []string
	for _, r := range p.Rules(angle) {
		next := r.Apply(doc, angle)
		if next != doc {
			applied = append(applied, r.Name)
		}
		doc = next
	}
	return Result{Document: doc, Applied: applied}, nil
}
