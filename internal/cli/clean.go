package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// cleanCommand creates the clean command for deleting generated variants.
func (c *CLI) cleanCommand() *cobra.Command {
	var (
		angles string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "clean [base...]",
		Short: "Delete generated layout variants",
		Long: `Delete generated layout variants.

Removes <base>_90.xml, <base>_180.xml and <base>_270.xml for every base.
Base layouts are never touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			return c.runClean(cmd.Context(), cfg, args, angles, dryRun)
		},
	}

	cmd.Flags().StringVar(&angles, "angles", "", "angles to delete (comma-separated, default 90,180,270)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count variants without deleting")

	return cmd
}

// runClean deletes the variants of the resolved bases.
func (c *CLI) runClean(ctx context.Context, cfg *config, args []string, angles string, dryRun bool) error {
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	bases, err := resolveBases(ctx, runner.Store, cfg, args)
	if err != nil {
		return err
	}
	gcfg, err := cfg.generatorConfig(bases, angles, dryRun)
	if err != nil {
		return err
	}

	n, err := runner.Clean(ctx, gcfg)
	if err != nil {
		return err
	}
	switch {
	case n == 0:
		printInfo("No generated variants found")
	case dryRun:
		printInfo("Would delete %d generated variants", n)
	default:
		printSuccess("Deleted %d generated variants", n)
		printDetail("Store: %s", describeStore(cfg))
	}
	return nil
}
