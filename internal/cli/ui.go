package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/layoutgen/pkg/generator"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Report Display
// =============================================================================

// unitLabel names a unit the way its file is named, e.g. "layout_float_cards_90".
func unitLabel(u generator.Unit) string {
	return fmt.Sprintf("%s_%d", u.Base, int(u.Angle))
}

// printReport prints one line per unit followed by a summary line.
func printReport(r *generator.Report) {
	for _, u := range r.Units {
		switch u.Status {
		case generator.StatusUpdated:
			printSuccess("%s %s", StyleValue.Render(unitLabel(u)), StyleSuccess.Render("updated"))
		case generator.StatusPlanned:
			printInfo("%s %s", StyleValue.Render(unitLabel(u)), StyleDim.Render(iconArrow+" would write"))
		case generator.StatusUnchanged:
			printInfo("%s %s", StyleDim.Render(unitLabel(u)), StyleDim.Render("unchanged"))
		case generator.StatusMissing:
			printWarning("%s skipped: base layout not found", unitLabel(u))
		}
	}
	printStats(r.Stats)
	if r.Stats.Planned > 0 {
		printNextStep("Write these variants", "layoutgen generate")
	}
}

// printStats prints run statistics on a single line.
func printStats(s generator.Stats) {
	fmt.Println("  " + statsLine(s))
}

// statsLine formats non-zero counters separated by dots.
func statsLine(s generator.Stats) string {
	counts := []struct {
		n     int
		label string
	}{
		{s.Updated, "updated"},
		{s.Planned, "planned"},
		{s.Unchanged, "unchanged"},
		{s.Missing, "skipped"},
	}
	var parts []string
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, StyleNumber.Render(fmt.Sprint(c.n))+" "+StyleDim.Render(c.label))
		}
	}
	if len(parts) == 0 {
		return StyleDim.Render("nothing to do")
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
