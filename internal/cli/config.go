package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/generator"
	"github.com/matzehuels/layoutgen/pkg/rotate"
	"github.com/matzehuels/layoutgen/pkg/store"
)

const (
	defaultConfigFile = "layoutgen.toml"
	defaultDir        = "app/src/main/res/layout"
	defaultRedisAddr  = "localhost:6379"
)

// defaultBases are the floating panels of the original build.
var defaultBases = []string{"layout_float_cards", "layout_float_ops", "layout_float_actions"}

// config is the merged configuration: defaults, then layoutgen.toml, then
// LAYOUTGEN_* environment variables, then command-line flags.
type config struct {
	Dir         string   `toml:"dir" env:"LAYOUTGEN_DIR"`
	Extension   string   `toml:"extension" env:"LAYOUTGEN_EXTENSION"`
	Bases       []string `toml:"bases" env:"LAYOUTGEN_BASES" envSeparator:","`
	Angles      []int    `toml:"angles" env:"LAYOUTGEN_ANGLES" envSeparator:","`
	Variant     string   `toml:"variant" env:"LAYOUTGEN_VARIANT"`
	Parallelism int      `toml:"parallelism" env:"LAYOUTGEN_PARALLELISM"`

	Store storeConfig `toml:"store"`
	Rules rulesConfig `toml:"rules"`
}

type storeConfig struct {
	Backend       string `toml:"backend" env:"LAYOUTGEN_STORE"`
	RedisAddr     string `toml:"redis_addr" env:"LAYOUTGEN_REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"LAYOUTGEN_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"LAYOUTGEN_REDIS_DB"`
	RedisPrefix   string `toml:"redis_prefix" env:"LAYOUTGEN_REDIS_PREFIX"`
}

// rulesConfig overrides rule constants. Empty values keep the defaults.
type rulesConfig struct {
	RotateElements []string `toml:"rotate_elements"`
	SwapElements   []string `toml:"swap_elements"`
	HandleID       string   `toml:"handle_id"`
	HandleWidth    string   `toml:"handle_width"`
	HandleHeight   string   `toml:"handle_height"`
	Margin         string   `toml:"margin"`
	PanelWidth     string   `toml:"panel_width"`
	PanelHeight    string   `toml:"panel_height"`
}

func defaultConfig() *config {
	return &config{
		Dir:       defaultDir,
		Extension: store.DefaultExtension,
		Bases:     append([]string(nil), defaultBases...),
		Variant:   string(rotate.VariantLegacy),
		Store: storeConfig{
			Backend:     store.BackendFile,
			RedisAddr:   defaultRedisAddr,
			RedisPrefix: store.DefaultRedisPrefix,
		},
	}
}

// loadConfig reads path over the defaults and applies environment overrides.
// A missing file is only an error when explicit is set.
func loadConfig(path string, explicit bool) (*config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	} else if explicit {
		return nil, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse environment")
	}
	return cfg, nil
}

// resolveConfig loads the configuration for cmd and applies changed
// persistent flags on top.
func (c *CLI) resolveConfig(cmd *cobra.Command) (*config, error) {
	flags := cmd.Flags()
	cfg, err := loadConfig(c.configPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	if flags.Changed("dir") {
		cfg.Dir = c.dir
	}
	if flags.Changed("store") {
		cfg.Store.Backend = c.backend
	}
	if flags.Changed("redis-addr") {
		cfg.Store.RedisAddr = c.redisAddr
	}
	return cfg, nil
}

// options converts the variant and rule overrides into rotate options.
func (cfg *config) options() (rotate.Options, error) {
	v, err := rotate.ParseVariant(cfg.Variant)
	if err != nil {
		return rotate.Options{}, err
	}
	return rotate.Options{
		Variant:        v,
		RotateElements: cfg.Rules.RotateElements,
		SwapElements:   cfg.Rules.SwapElements,
		HandleID:       cfg.Rules.HandleID,
		HandleWidth:    cfg.Rules.HandleWidth,
		HandleHeight:   cfg.Rules.HandleHeight,
		Margin:         cfg.Rules.Margin,
		PanelWidth:     cfg.Rules.PanelWidth,
		PanelHeight:    cfg.Rules.PanelHeight,
	}, nil
}

// angles returns the configured angles. An --angles value wins over the file.
func (cfg *config) angles(flag string) ([]rotate.Angle, error) {
	if flag != "" || len(cfg.Angles) == 0 {
		return rotate.ParseAngles(flag)
	}
	out := make([]rotate.Angle, 0, len(cfg.Angles))
	for _, n := range cfg.Angles {
		a := rotate.Angle(n)
		if !a.Valid() {
			return nil, errs.New(errs.ErrCodeInvalidAngle, "unsupported angle in config: %d (must be one of: 90, 180, 270)", n)
		}
		out = append(out, a)
	}
	return out, nil
}

// generatorConfig builds a run config for bases.
func (cfg *config) generatorConfig(bases []string, anglesFlag string, dryRun bool) (generator.Config, error) {
	opts, err := cfg.options()
	if err != nil {
		return generator.Config{}, err
	}
	angles, err := cfg.angles(anglesFlag)
	if err != nil {
		return generator.Config{}, err
	}
	return generator.Config{
		Bases:       bases,
		Angles:      angles,
		Options:     opts,
		Parallelism: cfg.Parallelism,
		DryRun:      dryRun,
	}, nil
}
