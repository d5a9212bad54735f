package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutgen/pkg/buildinfo"
	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/generator"
	"github.com/matzehuels/layoutgen/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "layoutgen"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flag values, applied over the config file.
	configPath string
	dir        string
	backend    string
	redisAddr  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "layoutgen derives rotated Android layout variants",
		Long: `layoutgen derives 90°, 180° and 270° variants of hand-authored Android
layout XML files by rewriting the markup text, and writes a variant only when
its content changed. Run it as a pre-build step.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", defaultConfigFile, "config file")
	flags.StringVar(&c.dir, "dir", defaultDir, "layout resource directory")
	flags.StringVar(&c.backend, "store", store.BackendFile, "layout store: file, redis")
	flags.StringVar(&c.redisAddr, "redis-addr", defaultRedisAddr, "redis address (store=redis)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a generator runner over the configured store.
func (c *CLI) newRunner(ctx context.Context, cfg *config) (*generator.Runner, error) {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewRunner(s, c.Logger), nil
}

// openStore opens the store backend selected by cfg.
func openStore(ctx context.Context, cfg *config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", store.BackendFile:
		return store.NewFileStore(cfg.Dir, store.WithExtension(cfg.Extension))
	case store.BackendRedis:
		s := store.NewRedisStore(cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB,
			store.WithPrefix(cfg.Store.RedisPrefix))
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown store %q (must be one of: file, redis)", cfg.Store.Backend)
	}
}

// describeStore names the configured store for display.
func describeStore(cfg *config) string {
	if cfg.Store.Backend == store.BackendRedis {
		return "redis://" + cfg.Store.RedisAddr + " (" + cfg.Store.RedisPrefix + "*)"
	}
	return cfg.Dir
}

// resolveBases returns args if given, else the configured bases, else the
// bases the store can discover.
func resolveBases(ctx context.Context, s store.Store, cfg *config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Bases) > 0 {
		return cfg.Bases, nil
	}
	if l, ok := s.(store.Lister); ok {
		names, err := l.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(names) > 0 {
			return names, nil
		}
	}
	return nil, errs.New(errs.ErrCodeInvalidConfig, "no base layouts given, configured or found")
}
