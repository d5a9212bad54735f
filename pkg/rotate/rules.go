package rotate

import (
	"fmt"
)

// Rule is one named step of the pipeline.
type Rule struct {
	// Name identifies the rule in logs and reports.
	Name string

	// QuarterOnly restricts the rule to 90° and 270°.
	QuarterOnly bool

	// Apply returns the rewritten document. It must not fail: text it
	// cannot validate is returned unchanged.
	Apply func(doc Document, angle Angle) Document
}

// Rule names.
const (
	RuleInjectRotation  = "inject-rotation"
	RuleSwapOrientation = "swap-orientation"
	RuleTransposeGrid   = "transpose-grid"
	RuleNormalizeHandle = "normalize-handle"
	RuleSwapDimensions  = "swap-dimensions"
	RuleSwapPanel       = "swap-panel"
)

// InjectRotation adds android:rotation="<angle>" as the first attribute of
// every tag named in elements. Tags that already carry a rotation are left
// alone, so re-running never duplicates the attribute.
func InjectRotation(elements []string) Rule {
	match := nameIn(elements)
	return Rule{
		Name: RuleInjectRotation,
		Apply: func(doc Document, angle Angle) Document {
			return rewriteTags(doc, match, func(name, tag string) string {
				if rotationAttr.MatchString(tag) {
					return tag
				}
				return insertAttr(tag, name, fmt.Sprintf(`android:rotation="%d"`, int(angle)))
			})
		},
	}
}

// SwapOrientation rewrites orientation="vertical" to "horizontal".
// There is no reverse mapping.
func SwapOrientation() Rule {
	return Rule{
		Name:        RuleSwapOrientation,
		QuarterOnly: true,
		Apply: func(doc Document, _ Angle) Document {
			return Document(mapAttr(string(doc), orientationAttr, func(old string) string {
				if old == "vertical" {
					return "horizontal"
				}
				return old
			}))
		},
	}
}

// TransposeGrid exchanges the values of the first columnCount and the first
// rowCount. Both must be present and numeric.
func TransposeGrid() Rule {
	return Rule{
		Name:        RuleTransposeGrid,
		QuarterOnly: true,
		Apply: func(doc Document, _ Angle) Document {
			s := string(doc)
			col := columnCountAttr.FindStringSubmatchIndex(s)
			row := rowCountAttr.FindStringSubmatchIndex(s)
			if col == nil || row == nil {
				return doc
			}
			colVal, rowVal := s[col[4]:col[5]], s[row[4]:row[5]]
			if !countRegex.MatchString(colVal) || !countRegex.MatchString(rowVal) {
				return doc
			}

			// Splice the later value first so the earlier offsets stay valid.
			first, second := col, row
			firstVal, secondVal := rowVal, colVal
			if row[4] < col[4] {
				first, second = row, col
				firstVal, secondVal = colVal, rowVal
			}
			s = s[:second[4]] + secondVal + s[second[5]:]
			s = s[:first[4]] + firstVal + s[first[5]:]
			return Document(s)
		},
	}
}

// NormalizeHandle forces the width and height of the tag whose id is
// handleID. Only attributes already present are rewritten.
func NormalizeHandle(handleID, width, height string) Rule {
	return Rule{
		Name:        RuleNormalizeHandle,
		QuarterOnly: true,
		Apply: func(doc Document, _ Angle) Document {
			return rewriteTags(doc, anyName, func(_, tag string) string {
				if id, ok := attrValue(tag, idAttr); !ok || id != handleID {
					return tag
				}
				tag = setAttr(tag, widthAttr, width)
				return setAttr(tag, heightAttr, height)
			})
		},
	}
}

// SwapDimensions exchanges layout_width and layout_height on tags named in
// elements when both are fixed dimensions. A tag without any layout_margin*
// attribute then gains android:layout_margin as its first attribute.
func SwapDimensions(elements []string, margin string) Rule {
	match := nameIn(elements)
	return Rule{
		Name:        RuleSwapDimensions,
		QuarterOnly: true,
		Apply: func(doc Document, _ Angle) Document {
			return rewriteTags(doc, match, func(name, tag string) string {
				w, okW := attrValue(tag, widthAttr)
				h, okH := attrValue(tag, heightAttr)
				if !okW || !okH {
					return tag
				}
				if _, _, ok := parseDimension(w); !ok {
					return tag
				}
				if _, _, ok := parseDimension(h); !ok {
					return tag
				}

				tag = setAttr(tag, widthAttr, h)
				tag = setAttr(tag, heightAttr, w)
				if !marginAttr.MatchString(tag) {
					tag = insertAttr(tag, name, fmt.Sprintf(`android:layout_margin="%s"`, margin))
				}
				return tag
			})
		},
	}
}

// SwapPanel rewrites the literal tool panel size: a width of panelWidth
// becomes panelHeight and a height of panelHeight becomes panelWidth.
func SwapPanel(panelWidth, panelHeight string) Rule {
	return Rule{
		Name:        RuleSwapPanel,
		QuarterOnly: true,
		Apply: func(doc Document, _ Angle) Document {
			s := mapAttr(string(doc), widthAttr, func(old string) string {
				if old == panelWidth {
					return panelHeight
				}
				return old
			})
			return Document(mapAttr(s, heightAttr, func(old string) string {
				if old == panelHeight {
					return panelWidth
				}
				return old
			}))
		},
	}
}
