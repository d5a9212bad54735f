package cli

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/store"
)

// defaultDebounce coalesces the burst of events an editor save produces.
const defaultDebounce = 250 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     generateOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [base...]",
		Short: "Regenerate variants whenever a base layout changes",
		Long: `Regenerate variants whenever a base layout changes.

The watch command runs generate once, then watches the layout directory and
regenerates the variants of every base layout file that is written, created
or renamed. Only the file store can be watched. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			return c.runWatch(cmd.Context(), cfg, args, opts, debounce)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before regenerating")
	return cmd
}

// runWatch generates once and then on every change until ctx is done.
func (c *CLI) runWatch(ctx context.Context, cfg *config, args []string, opts generateOpts, debounce time.Duration) error {
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	fs, ok := runner.Store.(*store.FileStore)
	if !ok {
		return errs.New(errs.ErrCodeUnsupported, "watch requires the file store")
	}

	report, err := c.generate(ctx, runner, cfg, args, opts)
	if err != nil {
		return err
	}
	printReport(report)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "create watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(fs.Dir()); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "watch %s", fs.Dir())
	}

	// Only bases of this run are regenerated.
	wanted := make(map[string]bool, len(report.Units))
	for _, u := range report.Units {
		wanted[u.Base] = true
	}
	filter := func(path string) (string, bool) {
		name, ok := fs.BaseName(path)
		return name, ok && wanted[name]
	}

	printInfo("Watching %s", StyleValue.Render(fs.Dir()))
	regenerate := func(ctx context.Context, bases []string) error {
		report, err := c.generate(ctx, runner, cfg, bases, opts)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	}
	return c.watchLoop(ctx, watcher.Events, watcher.Errors, debounce, filter, regenerate)
}

// watchLoop collects changed base names from events and calls regenerate
// once no event arrived for debounce. Regeneration errors are reported and
// the loop continues. It returns nil when ctx is done or events closes.
func (c *CLI) watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	watchErrs <-chan error,
	debounce time.Duration,
	filter func(path string) (string, bool),
	regenerate func(ctx context.Context, bases []string) error,
) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name, ok := filter(ev.Name)
			if !ok {
				continue
			}
			c.Logger.Debug("base layout changed", "base", name, "op", ev.Op.String())
			pending[name] = true
			timer.Reset(debounce)

		case err, ok := <-watchErrs:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			bases := make([]string, 0, len(pending))
			for name := range pending {
				bases = append(bases, name)
			}
			sort.Strings(bases)
			clear(pending)

			if err := regenerate(ctx, bases); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				printError("%s", errs.UserMessage(err))
			}
		}
	}
}
