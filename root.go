package main

import (
	"io"

	"github.com/nijaru/yt-blog/config"
	"github.com/nijaru/yt-blog/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// commandContext holds what every subcommand shares: configuration from the
// environment with flag overrides applied, and the process logger.
type commandContext struct {
	backendFlag  string
	logLevelFlag string

	cfg    *config.Config
	logger *logrus.Logger
	closer io.Closer
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg := config.LoadConfig()
	if c.backendFlag != "" {
		cfg.BackendURL = c.backendFlag
	}
	if c.logLevelFlag != "" {
		cfg.LogLevel = c.logLevelFlag
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	c.cfg = cfg
	return cfg, nil
}

// ensureLogger opens the rotating log file. Stdout mirrors entries there too,
// which only the server wants.
func (c *commandContext) ensureLogger(stdout bool) (*logrus.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	log, closer, err := logger.NewLogger(logger.Options{
		Dir:    cfg.LogDir,
		Level:  cfg.LogLevel,
		JSON:   !cfg.Debug,
		Stdout: stdout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}

	c.logger = log
	c.closer = closer
	return log, nil
}

// close releases the log file. Commands defer it right after ensureLogger so
// it also runs when RunE fails.
func (c *commandContext) close() {
	if c.closer != nil {
		c.closer.Close()
		c.closer = nil
	}
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "yt-blog",
		Short:         "Turn YouTube videos into blog posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.backendFlag, "backend", "", "Backend base URL (overrides BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newOptionsCommand())

	return rootCmd
}
