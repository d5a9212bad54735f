package rotate

import (
	"strings"
	"testing"
)

func TestInjectRotation(t *testing.T) {
	rule := InjectRotation([]string{ElementButton, ElementWebView})

	tests := []struct {
		name  string
		in    string
		angle Angle
		want  string
	}{
		{
			name:  "single line",
			in:    `<Button android:text="a" />`,
			angle: Angle90,
			want:  `<Button android:rotation="90" android:text="a" />`,
		},
		{
			name:  "multi line",
			in:    "<Button\n    android:text=\"a\" />",
			angle: Angle270,
			want:  "<Button android:rotation=\"270\"\n    android:text=\"a\" />",
		},
		{
			name:  "no attributes",
			in:    `<Button>x</Button>`,
			angle: Angle180,
			want:  `<Button android:rotation="180">x</Button>`,
		},
		{
			name:  "web view",
			in:    `<android.webkit.WebView android:id="@+id/w"/>`,
			angle: Angle90,
			want:  `<android.webkit.WebView android:rotation="90" android:id="@+id/w"/>`,
		},
		{
			name:  "already rotated",
			in:    `<Button android:rotation="90" android:text="a" />`,
			angle: Angle90,
			want:  `<Button android:rotation="90" android:text="a" />`,
		},
		{
			name:  "other element",
			in:    `<ImageButton android:text="a" />`,
			angle: Angle90,
			want:  `<ImageButton android:text="a" />`,
		},
		{
			name:  "commented out",
			in:    `<!-- <Button android:text="a" /> -->`,
			angle: Angle90,
			want:  `<!-- <Button android:text="a" /> -->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.Apply(Document(tt.in), tt.angle)
			if string(got) != tt.want {
				t.Errorf("Apply() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestInjectRotationIdempotent(t *testing.T) {
	rule := InjectRotation([]string{ElementButton})
	in := Document(`<Button android:text="a" /><Button android:text="b" />`)

	once := rule.Apply(in, Angle90)
	twice := rule.Apply(once, Angle90)
	if once != twice {
		t.Errorf("second run changed document:\n%s\n%s", once, twice)
	}
	if n := strings.Count(string(twice), `android:rotation=`); n != 2 {
		t.Errorf("rotation count = %d, want 2", n)
	}
}

func TestSwapOrientation(t *testing.T) {
	rule := SwapOrientation()

	tests := []struct {
		in   string
		want string
	}{
		{`<LinearLayout android:orientation="vertical">`, `<LinearLayout android:orientation="horizontal">`},
		{`<LinearLayout android:orientation="horizontal">`, `<LinearLayout android:orientation="horizontal">`},
		{
			"<A android:orientation=\"vertical\"/>\n<B android:orientation=\"vertical\"/>",
			"<A android:orientation=\"horizontal\"/>\n<B android:orientation=\"horizontal\"/>",
		},
		{`<LinearLayout android:gravity="center">`, `<LinearLayout android:gravity="center">`},
	}

	for _, tt := range tests {
		if got := rule.Apply(Document(tt.in), Angle90); string(got) != tt.want {
			t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransposeGrid(t *testing.T) {
	rule := TransposeGrid()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "column then row",
			in:   `<GridLayout android:columnCount="2" android:rowCount="4">`,
			want: `<GridLayout android:columnCount="4" android:rowCount="2">`,
		},
		{
			name: "row then column",
			in:   `<GridLayout android:rowCount="3" android:columnCount="5">`,
			want: `<GridLayout android:rowCount="5" android:columnCount="3">`,
		},
		{
			name: "different widths",
			in:   `<GridLayout android:columnCount="12" android:rowCount="3">`,
			want: `<GridLayout android:columnCount="3" android:rowCount="12">`,
		},
		{
			name: "first match wins",
			in:   `<G android:columnCount="2" android:rowCount="4"/><G android:columnCount="1" android:rowCount="3"/>`,
			want: `<G android:columnCount="4" android:rowCount="2"/><G android:columnCount="1" android:rowCount="3"/>`,
		},
		{
			name: "column only",
			in:   `<GridLayout android:columnCount="2">`,
			want: `<GridLayout android:columnCount="2">`,
		},
		{
			name: "non numeric",
			in:   `<GridLayout android:columnCount="@integer/cols" android:rowCount="2">`,
			want: `<GridLayout android:columnCount="@integer/cols" android:rowCount="2">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Apply(Document(tt.in), Angle90); string(got) != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	rule := NormalizeHandle(DefaultHandleID, DefaultHandleWidth, DefaultHandleHeight)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single line",
			in:   `<View android:id="@+id/handle" android:layout_width="match_parent" android:layout_height="14dp" />`,
			want: `<View android:id="@+id/handle" android:layout_width="14dp" android:layout_height="match_parent" />`,
		},
		{
			name: "multi line",
			in:   "<View\n    android:layout_width=\"120dp\"\n    android:id=\"@+id/handle\"\n    android:layout_height=\"8dp\" />",
			want: "<View\n    android:layout_width=\"14dp\"\n    android:id=\"@+id/handle\"\n    android:layout_height=\"match_parent\" />",
		},
		{
			name: "other view",
			in:   `<View android:id="@+id/divider" android:layout_width="match_parent" android:layout_height="1dp" />`,
			want: `<View android:id="@+id/divider" android:layout_width="match_parent" android:layout_height="1dp" />`,
		},
		{
			name: "missing height is not invented",
			in:   `<View android:id="@+id/handle" android:layout_width="match_parent" />`,
			want: `<View android:id="@+id/handle" android:layout_width="14dp" />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Apply(Document(tt.in), Angle270); string(got) != tt.want {
				t.Errorf("Apply() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSwapDimensions(t *testing.T) {
	rule := SwapDimensions([]string{ElementButton, ElementWebView}, DefaultMargin)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "swap and margin",
			in:   `<Button android:layout_width="100dp" android:layout_height="50dp" />`,
			want: `<Button android:layout_margin="4dp" android:layout_width="50dp" android:layout_height="100dp" />`,
		},
		{
			name: "existing margin kept",
			in:   `<Button android:layout_marginTop="2dp" android:layout_width="100dp" android:layout_height="50dp" />`,
			want: `<Button android:layout_marginTop="2dp" android:layout_width="50dp" android:layout_height="100dp" />`,
		},
		{
			name: "mixed units",
			in:   `<android.webkit.WebView android:layout_width="320px" android:layout_height="12.5sp"/>`,
			want: `<android.webkit.WebView android:layout_margin="4dp" android:layout_width="12.5sp" android:layout_height="320px"/>`,
		},
		{
			name: "unprefixed attributes",
			in:   `<Button layout_width="100dp" layout_height="50dp">`,
			want: `<Button android:layout_margin="4dp" layout_width="50dp" layout_height="100dp">`,
		},
		{
			name: "wrap content untouched",
			in:   `<Button android:layout_width="wrap_content" android:layout_height="50dp" />`,
			want: `<Button android:layout_width="wrap_content" android:layout_height="50dp" />`,
		},
		{
			name: "missing height untouched",
			in:   `<Button android:layout_width="100dp" />`,
			want: `<Button android:layout_width="100dp" />`,
		},
		{
			name: "other element untouched",
			in:   `<TextView android:layout_width="100dp" android:layout_height="50dp" />`,
			want: `<TextView android:layout_width="100dp" android:layout_height="50dp" />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Apply(Document(tt.in), Angle90); string(got) != tt.want {
				t.Errorf("Apply() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSwapPanel(t *testing.T) {
	rule := SwapPanel(DefaultPanelWidth, DefaultPanelHeight)

	tests := []struct {
		in   string
		want string
	}{
		{
			`<android.webkit.WebView android:layout_width="330dp" android:layout_height="60dp" />`,
			`<android.webkit.WebView android:layout_width="60dp" android:layout_height="330dp" />`,
		},
		{
			`<View android:layout_width="60dp" android:layout_height="330dp" />`,
			`<View android:layout_width="60dp" android:layout_height="330dp" />`,
		},
		{
			`<View android:layout_width="48dp" android:layout_height="48dp" />`,
			`<View android:layout_width="48dp" android:layout_height="48dp" />`,
		},
	}

	for _, tt := range tests {
		if got := rule.Apply(Document(tt.in), Angle90); string(got) != tt.want {
			t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
