// Package rotate derives rotated variants of Android layout XML.
//
// A base layout is authored for the 0° orientation. The [Pipeline] rewrites
// its markup text into the 90°, 180° and 270° variants by applying an
// ordered list of [Rule] values:
//
//  1. inject-rotation: Button-like elements gain android:rotation="<angle>"
//  2. swap-orientation: orientation="vertical" becomes "horizontal"
//  3. transpose-grid: columnCount and rowCount exchange values
//  4. normalize-handle: the drag handle becomes a thin full-height strip
//  5. swap-dimensions: fixed width/height pairs of rotated controls swap
//  6. swap-panel: the legacy tool panel literals swap
//
// Rules 2-6 only run for quarter turns (90° and 270°). Rule 5 belongs to
// [VariantSwap] and rule 6 to [VariantLegacy].
//
// # Input Contract
//
// Rules only ever receive the canonical 0° source. The orientation rewrite
// is one-directional, so feeding a generated variant back through the
// pipeline is not supported.
//
// # Scope
//
// Rewriting is textual and scoped to opening tags. An opening tag may span
// several lines. A rule that cannot validate the values it expects (for
// example a non-numeric width) leaves the tag untouched rather than writing a
// partial rewrite.
//
// # Usage
//
//	p, err := rotate.NewPipeline(rotate.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	res, err := p.Transform(base, rotate.Angle90)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Document, res.Applied)
package rotate
