package rotate

import (
	"regexp"
	"strings"
)

// openTagRegex matches an opening or self-closing tag and captures its name.
// Quoted attribute values may contain newlines, so a tag can span lines.
// Comments, processing instructions and closing tags never match.
var openTagRegex = regexp.MustCompile(`<([A-Za-z_][\w.:-]*)((?:\s+[^\s=<>/"']+\s*=\s*(?:"[^"]*"|'[^']*'))*)\s*/?>`)

// commentRegex matches XML comments; tags inside them are left alone.
var commentRegex = regexp.MustCompile(`(?s)<!--.*?-->`)

// dimensionRegex matches a fixed dimension such as "48dp" or "12.5sp".
var dimensionRegex = regexp.MustCompile(`^(\d+(?:\.\d+)?)(dp|dip|px|sp|pt|mm|in)$`)

// countRegex matches a non-negative integer attribute value.
var countRegex = regexp.MustCompile(`^\d+$`)

var (
	widthAttr       = attrRegex("layout_width")
	heightAttr      = attrRegex("layout_height")
	rotationAttr    = attrRegex("rotation")
	idAttr          = attrRegex("id")
	orientationAttr = attrRegex("orientation")
	columnCountAttr = attrRegex("columnCount")
	rowCountAttr    = attrRegex("rowCount")

	// marginAttr matches any of the layout_margin* family.
	marginAttr = regexp.MustCompile(`\s(?:[\w.-]+:)?layout_margin\w*\s*=`)
)

// attrRegex builds a pattern for a double-quoted attribute with an optional
// namespace prefix. Group 1 runs from the leading whitespace to the opening
// quote, group 2 is the value.
func attrRegex(local string) *regexp.Regexp {
	return regexp.MustCompile(`(\s(?:[\w.-]+:)?` + regexp.QuoteMeta(local) + `\s*=\s*")([^"]*)"`)
}

// rewriteTags calls fn for every opening tag whose name satisfies match and
// splices the returned text back in place of the tag.
func rewriteTags(doc Document, match func(name string) bool, fn func(name, tag string) string) Document {
	s := string(doc)
	locs := openTagRegex.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return doc
	}

	comments := commentRegex.FindAllStringIndex(s, -1)

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		name := s[loc[2]:loc[3]]
		if !match(name) || inSpan(comments, loc[0]) {
			continue
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(fn(name, s[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return Document(b.String())
}

// inSpan reports whether offset falls inside one of the sorted spans.
func inSpan(spans [][]int, offset int) bool {
	for _, sp := range spans {
		if offset < sp[0] {
			return false
		}
		if offset < sp[1] {
			return true
		}
	}
	return false
}

// nameIn returns a matcher for a fixed set of tag names.
func nameIn(names []string) func(string) bool {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

func anyName(string) bool { return true }

// attrValue returns the value of the first attribute matched by re.
func attrValue(s string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// setAttr replaces the value of every attribute matched by re.
func setAttr(s string, re *regexp.Regexp, value string) string {
	return mapAttr(s, re, func(string) string { return value })
}

// mapAttr rewrites the value of every attribute matched by re with fn.
func mapAttr(s string, re *regexp.Regexp, fn func(old string) string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		return sub[1] + fn(sub[2]) + `"`
	})
}

// insertAttr inserts attr as the first attribute of a tag named name.
func insertAttr(tag, name, attr string) string {
	head := "<" + name
	return head + " " + attr + tag[len(head):]
}

// parseDimension splits a fixed dimension into number and unit.
func parseDimension(v string) (num, unit string, ok bool) {
	m := dimensionRegex.FindStringSubmatch(v)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
