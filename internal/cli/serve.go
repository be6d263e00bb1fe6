package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kdgblogteam/blogapplication/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &serverFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		Long: `Run the blog HTTP server.

The database is created on first start and reused afterwards.

Example:
  blog serve --addr :4000 --dsn ./blog.db
  blog serve --config blog.yaml --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, rootOpts, flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, rootOpts.Verbose)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return web.RunApp(ctx, cfg, logger, rootOpts.Verbose)
		},
	}

	flags.register(cmd)

	return cmd
}

// Execute runs the root command with a background context.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
