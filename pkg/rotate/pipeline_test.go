package rotate

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
)

const floatCards = `<?xml version="1.0" encoding="utf-8"?>
<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android"
    android:layout_width="wrap_content"
    android:layout_height="wrap_content"
    android:orientation="vertical">

    <View android:id="@+id/handle" android:layout_width="match_parent" android:layout_height="14dp" />

    <GridLayout android:id="@+id/grid" android:layout_width="wrap_content" android:layout_height="wrap_content" android:columnCount="2" android:rowCount="4">
        <Button android:id="@+id/card1" android:layout_width="100dp" android:layout_height="50dp" />
        <Button
            android:id="@+id/card2"
            android:layout_width="100dp"
            android:layout_height="50dp" />
        <TextView android:id="@+id/label" android:layout_width="100dp" android:layout_height="50dp" />
    </GridLayout>

    <android.webkit.WebView android:id="@+id/tool" android:layout_width="330dp" android:layout_height="60dp" />
</LinearLayout>
`

func mustPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := NewPipeline(opts)
	if err != nil {
		t.Fatalf("NewPipeline() error: %v", err)
	}
	return p
}

func transform(t *testing.T, p *Pipeline, a Angle) string {
	t.Helper()
	res, err := p.Transform(floatCards, a)
	if err != nil {
		t.Fatalf("Transform(%d) error: %v", a, err)
	}
	return string(res.Document)
}

func TestTransformScenario(t *testing.T) {
	p := mustPipeline(t, Options{Variant: VariantSwap})
	base := Document(`<Button layout_width="100dp" layout_height="50dp">` + "\n" +
		`<GridLayout android:columnCount="2" android:rowCount="4">`)

	res, err := p.Transform(base, Angle90)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	want := `<Button android:layout_margin="4dp" android:rotation="90" layout_width="50dp" layout_height="100dp">` + "\n" +
		`<GridLayout android:columnCount="4" android:rowCount="2">`
	if string(res.Document) != want {
		t.Errorf("Transform() =\n%s\nwant\n%s", res.Document, want)
	}

	wantApplied := []string{RuleInjectRotation, RuleTransposeGrid, RuleSwapDimensions}
	if !reflect.DeepEqual(res.Applied, wantApplied) {
		t.Errorf("Applied = %v, want %v", res.Applied, wantApplied)
	}
}

func TestTransformDeterministic(t *testing.T) {
	for _, v := range []Variant{VariantLegacy, VariantSwap} {
		p := mustPipeline(t, Options{Variant: v})
		for _, a := range Angles() {
			if transform(t, p, a) != transform(t, p, a) {
				t.Errorf("%s/%d: output differs between runs", v, a)
			}
		}
	}
}

func TestTransformRotationCoverage(t *testing.T) {
	tests := []struct {
		variant Variant
		want    int
	}{
		{VariantLegacy, 3}, // two Buttons and the WebView
		{VariantSwap, 2},   // Buttons only
	}

	for _, tt := range tests {
		p := mustPipeline(t, Options{Variant: tt.variant})
		for _, a := range Angles() {
			out := transform(t, p, a)
			want := `android:rotation="` + a.String() + `"`
			if got := strings.Count(out, want); got != tt.want {
				t.Errorf("%s/%d: %d rotation attributes, want %d", tt.variant, a, got, tt.want)
			}
			if got := strings.Count(out, "android:rotation="); got != tt.want {
				t.Errorf("%s/%d: %d rotation attributes in total, want %d", tt.variant, a, got, tt.want)
			}
			if strings.Contains(out, `<TextView android:rotation`) {
				t.Errorf("%s/%d: TextView must not be rotated", tt.variant, a)
			}
		}
	}
}

func TestTransformOrientationOnlyOnQuarterTurns(t *testing.T) {
	p := mustPipeline(t, DefaultOptions())

	if out := transform(t, p, Angle180); !strings.Contains(out, `android:orientation="vertical"`) {
		t.Error("180° variant must keep the base orientation")
	}
	for _, a := range []Angle{Angle90, Angle270} {
		out := transform(t, p, a)
		if !strings.Contains(out, `android:orientation="horizontal"`) || strings.Contains(out, `"vertical"`) {
			t.Errorf("%d° variant must be horizontal", a)
		}
	}
}

func TestTransformGridSymmetry(t *testing.T) {
	p := mustPipeline(t, DefaultOptions())

	for _, a := range []Angle{Angle90, Angle270} {
		out := transform(t, p, a)
		if !strings.Contains(out, `android:columnCount="4" android:rowCount="2"`) {
			t.Errorf("%d°: grid not transposed", a)
		}
	}
	if out := transform(t, p, Angle180); !strings.Contains(out, `android:columnCount="2" android:rowCount="4"`) {
		t.Error("180°: grid must keep base counts")
	}
}

var handleTag = regexp.MustCompile(`<View android:id="@\+id/handle"[^>]*>`)

func TestTransformHandleInvariant(t *testing.T) {
	for _, v := range []Variant{VariantLegacy, VariantSwap} {
		p := mustPipeline(t, Options{Variant: v})
		for _, a := range []Angle{Angle90, Angle270} {
			tag := handleTag.FindString(transform(t, p, a))
			if !strings.Contains(tag, `android:layout_width="14dp"`) || !strings.Contains(tag, `android:layout_height="match_parent"`) {
				t.Errorf("%s/%d: handle = %s", v, a, tag)
			}
		}
	}
}

var card2Tag = regexp.MustCompile(`(?s)<Button[^>]*card2[^>]*>`)

func TestTransformDimensionSwap(t *testing.T) {
	p := mustPipeline(t, Options{Variant: VariantSwap})

	for _, a := range []Angle{Angle90, Angle270} {
		tag := card2Tag.FindString(transform(t, p, a))
		if !strings.Contains(tag, `android:layout_width="50dp"`) || !strings.Contains(tag, `android:layout_height="100dp"`) {
			t.Errorf("%d°: card2 not swapped: %s", a, tag)
		}
		if strings.Count(tag, "layout_margin=") != 1 {
			t.Errorf("%d°: card2 should gain exactly one margin: %s", a, tag)
		}
	}

	tag := card2Tag.FindString(transform(t, p, Angle180))
	if !strings.Contains(tag, `android:layout_width="100dp"`) || strings.Contains(tag, "layout_margin") {
		t.Errorf("180°: card2 must keep base dimensions: %s", tag)
	}
}

func TestTransformLegacyPanel(t *testing.T) {
	p := mustPipeline(t, DefaultOptions())

	out := transform(t, p, Angle90)
	want := `<android.webkit.WebView android:rotation="90" android:id="@+id/tool" android:layout_width="60dp" android:layout_height="330dp" />`
	if !strings.Contains(out, want) {
		t.Errorf("tool panel not swapped:\n%s", out)
	}
	// The legacy variant never transposes button dimensions.
	if strings.Contains(out, "layout_margin") {
		t.Error("legacy variant must not insert margins")
	}
}

func TestTransformInvalidAngle(t *testing.T) {
	p := mustPipeline(t, DefaultOptions())

	for _, a := range []Angle{Angle0, 45, 360} {
		_, err := p.Transform(floatCards, a)
		if !errs.Is(err, errs.ErrCodeInvalidAngle) {
			t.Errorf("Transform(%d) error = %v, want %s", a, err, errs.ErrCodeInvalidAngle)
		}
	}
}

func TestPipelineRules(t *testing.T) {
	names := func(rules []Rule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Name
		}
		return out
	}

	legacy := mustPipeline(t, DefaultOptions())
	if got := names(legacy.Rules(Angle180)); !reflect.DeepEqual(got, []string{RuleInjectRotation}) {
		t.Errorf("legacy 180° rules = %v", got)
	}
	want := []string{RuleInjectRotation, RuleSwapOrientation, RuleTransposeGrid, RuleNormalizeHandle, RuleSwapPanel}
	if got := names(legacy.Rules(Angle90)); !reflect.DeepEqual(got, want) {
		t.Errorf("legacy 90° rules = %v, want %v", got, want)
	}

	swap := mustPipeline(t, Options{Variant: VariantSwap})
	want = []string{RuleInjectRotation, RuleSwapOrientation, RuleTransposeGrid, RuleNormalizeHandle, RuleSwapDimensions}
	if got := names(swap.Rules(Angle270)); !reflect.DeepEqual(got, want) {
		t.Errorf("swap 270° rules = %v, want %v", got, want)
	}
}

func TestNewPipelineFromRules(t *testing.T) {
	p := NewPipelineFromRules(SwapOrientation())
	res, err := p.Transform(`<L android:orientation="vertical"/>`, Angle180)
	if err != nil {
		t.Fatal(err)
	}
	if res.Document != `<L android:orientation="vertical"/>` || len(res.Applied) != 0 {
		t.Errorf("quarter-only rule ran at 180°: %+v", res)
	}
}
