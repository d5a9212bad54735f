package rotate

import (
	"regexp"
	"slices"
	"strings"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
)

// Variant selects which rule set the pipeline runs.
type Variant string

const (
	// VariantLegacy rotates Buttons and WebViews and swaps the tool panel
	// literals. This is the rule set the float window layouts were built with.
	VariantLegacy Variant = "legacy"

	// VariantSwap rotates Buttons and transposes the fixed dimensions of
	// rotated controls, inserting a margin where none is set.
	VariantSwap Variant = "swap"
)

// Element names used by the default options.
const (
	ElementButton  = "Button"
	ElementWebView = "android.webkit.WebView"
)

// Defaults used by the original float window build.
const (
	DefaultHandleID     = "@+id/handle"
	DefaultHandleWidth  = "14dp"
	DefaultHandleHeight = "match_parent"
	DefaultMargin       = "4dp"
	DefaultPanelWidth   = "330dp"
	DefaultPanelHeight  = "60dp"
)

// ParseVariant parses a variant name. An empty string yields VariantLegacy.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return VariantLegacy, nil
	case VariantLegacy, VariantSwap:
		return v, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidVariant, "invalid variant: %q (must be one of: legacy, swap)", s)
	}
}

// Options configures the rule pipeline.
type Options struct {
	Variant Variant `json:"variant"`

	// RotateElements are the tag names that gain a rotation attribute.
	// Defaults to Button and WebView for VariantLegacy, Button for VariantSwap.
	RotateElements []string `json:"rotate_elements,omitempty"`

	// SwapElements are the tag names whose fixed dimensions are transposed
	// by VariantSwap.
	SwapElements []string `json:"swap_elements,omitempty"`

	HandleID     string `json:"handle_id,omitempty"`
	HandleWidth  string `json:"handle_width,omitempty"`
	HandleHeight string `json:"handle_height,omitempty"`
	Margin       string `json:"margin,omitempty"`

	// PanelWidth and PanelHeight are the literal sizes of the legacy tool
	// panel swapped by VariantLegacy.
	PanelWidth  string `json:"panel_width,omitempty"`
	PanelHeight string `json:"panel_height,omitempty"`
}

// DefaultOptions returns the legacy rule set with the original constants.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills every empty field with its default.
func (o *Options) SetDefaults() {
	if o.Variant == "" {
		o.Variant = VariantLegacy
	}
	if len(o.RotateElements) == 0 {
		if o.Variant == VariantSwap {
			o.RotateElements = []string{ElementButton}
		} else {
			o.RotateElements = []string{ElementButton, ElementWebView}
		}
	}
	if len(o.SwapElements) == 0 {
		o.SwapElements = []string{ElementButton, ElementWebView}
	}
	if o.HandleID == "" {
		o.HandleID = DefaultHandleID
	}
	if o.HandleWidth == "" {
		o.HandleWidth = DefaultHandleWidth
	}
	if o.HandleHeight == "" {
		o.HandleHeight = DefaultHandleHeight
	}
	if o.Margin == "" {
		o.Margin = DefaultMargin
	}
	if o.PanelWidth == "" {
		o.PanelWidth = DefaultPanelWidth
	}
	if o.PanelHeight == "" {
		o.PanelHeight = DefaultPanelHeight
	}
}

// elementNameRegex matches XML tag names.
var elementNameRegex = regexp.MustCompile(`^[A-Za-z_][\w.:-]*$`)

// ValidateAndSetDefaults applies defaults and checks that every value can be
// written into an attribute without corrupting the markup.
func (o *Options) ValidateAndSetDefaults() error {
	v, err := ParseVariant(string(o.Variant))
	if err != nil {
		return err
	}
	o.Variant = v
	o.SetDefaults()
	for _, names := range [][]string{o.RotateElements, o.SwapElements} {
		for _, n := range names {
			if !elementNameRegex.MatchString(n) {
				return errs.New(errs.ErrCodeInvalidConfig, "invalid element name: %q", n)
			}
		}
	}
	values := map[string]string{
		"handle_id":     o.HandleID,
		"handle_width":  o.HandleWidth,
		"handle_height": o.HandleHeight,
		"margin":        o.Margin,
		"panel_width":   o.PanelWidth,
		"panel_height":  o.PanelHeight,
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if strings.ContainsAny(values[k], "\"<>&") {
			return errs.New(errs.ErrCodeInvalidConfig, "%s cannot contain markup characters: %q", k, values[k])
		}
	}
	if _, _, ok := parseDimension(o.Margin); !ok {
		return errs.New(errs.ErrCodeInvalidConfig, "margin must be a fixed dimension: %q", o.Margin)
	}
	return nil
}
