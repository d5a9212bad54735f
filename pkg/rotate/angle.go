package rotate

import (
	"strconv"
	"strings"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
)

// Document is the text of one layout file.
type Document string

// Angle is a clockwise rotation in degrees.
type Angle int

// Supported angles. Angle0 identifies the hand-authored base layout and is
// never generated.
const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Angles returns the generated angles in their canonical order.
func Angles() []Angle {
	return []Angle{Angle90, Angle180, Angle270}
}

// Valid reports whether a is a generated angle (90, 180 or 270).
func (a Angle) Valid() bool {
	return a == Angle90 || a == Angle180 || a == Angle270
}

// Quarter reports whether a swaps the layout axes.
func (a Angle) Quarter() bool {
	return a == Angle90 || a == Angle270
}

// String returns the angle in degrees without a unit.
func (a Angle) String() string {
	return strconv.Itoa(int(a))
}

// ParseAngle parses a generated angle. A trailing "°" or "deg" is accepted.
func ParseAngle(s string) (Angle, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "°")
	trimmed = strings.TrimSuffix(trimmed, "deg")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidAngle, "invalid angle: %q", s)
	}
	a := Angle(n)
	if !a.Valid() {
		return 0, errs.New(errs.ErrCodeInvalidAngle, "unsupported angle: %d (must be one of: 90, 180, 270)", n)
	}
	return a, nil
}

// ParseAngles parses a comma-separated angle list such as "90,270".
// An empty string yields [Angles].
func ParseAngles(s string) ([]Angle, error) {
	if strings.TrimSpace(s) == "" {
		return Angles(), nil
	}
	parts := strings.Split(s, ",")
	out := make([]Angle, 0, len(parts))
	for _, p := range parts {
		a, err := ParseAngle(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
