package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutgen/pkg/generator"
	"github.com/matzehuels/layoutgen/pkg/observability"
	"github.com/matzehuels/layoutgen/pkg/observability/prom"
)

// generateOpts holds the command-line flags shared by generate and watch.
type generateOpts struct {
	angles      string // comma-separated angles, empty for config/default
	variant     string // rule variant override
	dryRun      bool   // plan without writing
	parallel    int    // bases processed concurrently
	metricsFile string // Prometheus textfile output path
}

// addFlags registers the generation flags on cmd.
func (o *generateOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.angles, "angles", "", "angles to generate (comma-separated, default 90,180,270)")
	cmd.Flags().StringVar(&o.variant, "variant", "", "rule variant: legacy (default), swap")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "report what would be written without writing")
	cmd.Flags().IntVar(&o.parallel, "parallel", 0, "number of bases processed concurrently (default GOMAXPROCS)")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
}

// apply copies changed flags into cfg.
func (o *generateOpts) apply(cmd *cobra.Command, cfg *config) {
	if cmd.Flags().Changed("variant") {
		cfg.Variant = o.variant
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallelism = o.parallel
	}
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [base...]",
		Short: "Generate rotated variants of base layouts",
		Long: `Generate rotated variants of base layouts.

For every base layout <base>_0.xml the generate command derives <base>_90.xml,
<base>_180.xml and <base>_270.xml. A variant is written only when its content
differs from the file on disk, so repeated runs leave timestamps untouched.

Bases default to the list in layoutgen.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			return c.runGenerate(cmd.Context(), cfg, args, opts)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

// runGenerate performs one generation run and prints its report.
func (c *CLI) runGenerate(ctx context.Context, cfg *config, args []string, opts generateOpts) error {
	var metrics *prom.Metrics
	if opts.metricsFile != "" {
		metrics = prom.New()
		observability.SetGeneratorHooks(metrics)
		observability.SetStoreHooks(metrics)
		defer observability.Reset()
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	report, err := c.generate(ctx, runner, cfg, args, opts)
	if metrics != nil {
		if werr := metrics.WriteTextfile(opts.metricsFile); werr != nil {
			c.Logger.Warn("failed to write metrics", "path", opts.metricsFile, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

// generate resolves bases and runs one generation pass.
func (c *CLI) generate(ctx context.Context, runner *generator.Runner, cfg *config, args []string, opts generateOpts) (*generator.Report, error) {
	bases, err := resolveBases(ctx, runner.Store, cfg, args)
	if err != nil {
		return nil, err
	}
	gcfg, err := cfg.generatorConfig(bases, opts.angles, opts.dryRun)
	if err != nil {
		return nil, err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, "Generating layouts...")
	spinner.Start()
	report, err := runner.Generate(ctx, gcfg)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return nil, err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Processed %d layouts", len(report.Units)))
	return report, nil
}
