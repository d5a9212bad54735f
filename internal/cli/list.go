package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutgen/pkg/rotate"
	"github.com/matzehuels/layoutgen/pkg/store"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show base layouts and which variants exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			return c.runList(cmd.Context(), cfg)
		},
	}
}

// baseStatus describes one base layout in the list output.
type baseStatus struct {
	name     string
	present  bool
	variants map[rotate.Angle]bool
}

// runList prints every configured or discovered base with its variants.
func (c *CLI) runList(ctx context.Context, cfg *config) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	statuses, err := collectBases(ctx, s, cfg)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		printInfo("No base layouts found")
		return nil
	}

	fmt.Println(statusTable(statuses))
	return nil
}

// collectBases merges configured and discovered bases and looks up their
// variants.
func collectBases(ctx context.Context, s store.Store, cfg *config) ([]baseStatus, error) {
	names := append([]string(nil), cfg.Bases...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	if l, ok := s.(store.Lister); ok {
		found, err := l.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}

	out := make([]baseStatus, 0, len(names))
	for _, name := range names {
		_, present, err := s.Base(ctx, name)
		if err != nil {
			return nil, err
		}
		st := baseStatus{name: name, present: present, variants: make(map[rotate.Angle]bool)}
		for _, a := range rotate.Angles() {
			_, ok, err := s.Variant(ctx, name, a)
			if err != nil {
				return nil, err
			}
			st.variants[a] = ok
		}
		out = append(out, st)
	}
	return out, nil
}

// statusTable renders one row per base with a column per angle.
func statusTable(statuses []baseStatus) *table.Table {
	headers := []string{"BASE"}
	for _, a := range rotate.Angles() {
		headers = append(headers, a.String())
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers(headers...)
	for _, st := range statuses {
		t.Row(variantCells(st)...)
	}
	return t
}

// variantCells returns the base name followed by one mark per angle.
func variantCells(st baseStatus) []string {
	cells := []string{st.name}
	for _, a := range rotate.Angles() {
		switch {
		case !st.present:
			cells = append(cells, StyleWarning.Render(iconWarning))
		case st.variants[a]:
			cells = append(cells, styleIconSuccess.Render(iconSuccess))
		default:
			cells = append(cells, styleIconError.Render(iconError))
		}
	}
	return cells
}
