package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kdgblogteam/blogapplication/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// serverFlags are shared by serve and migrate. Only flags the user set
// override the loaded configuration.
type serverFlags struct {
	Addr     string
	DBDriver string
	DSN      string
	HTMLDir  string
}

// NewRootCommand creates the root command for the blog binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "blog",
		Short:         "A small multi-page blog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (f *serverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Addr, "addr", "", "HTTP network address")
	cmd.Flags().StringVar(&f.DBDriver, "db-driver", "", "database driver (sqlite|postgres)")
	cmd.Flags().StringVar(&f.DSN, "dsn", "", "SQLite file path or Postgres URL")
	cmd.Flags().StringVar(&f.HTMLDir, "html-dir", "", "read HTML templates from this directory")
}

// loadConfig reads the configuration and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command, opts *RootOptions, f *serverFlags) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = f.Addr
	}
	if flags.Changed("db-driver") {
		cfg.DBDriver = f.DBDriver
	}
	if flags.Changed("dsn") {
		cfg.DSN = f.DSN
	}
	if flags.Changed("html-dir") {
		cfg.HTMLDir = f.HTMLDir
	}

	return cfg, cfg.Validate()
}

// newLogger picks a text handler locally and JSON elsewhere.
func newLogger(cfg config.Config, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose || cfg.IsLocal() {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsLocal() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
