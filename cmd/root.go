package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/analogrelay/optbridge"
	"github.com/analogrelay/optbridge/internal/config"
	"github.com/analogrelay/optbridge/internal/logger"
	"github.com/analogrelay/optbridge/native"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd represents the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "optbridge",
		Short: "Optional int32 transfer across the cgo boundary",
		Long: `Tools to resolve an optional int32 produced on the C side of a cgo call,
falling back to a process-wide default when the producer reports no value.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(newResolveCmd(), newLayoutCmd(), newBenchCmd())
	return rootCmd
}

// setup loads the configuration for cmd, initialises logging and applies the
// configured fallback to the process-wide fallback.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	log := logger.InitWriter(cmd.ErrOrStderr(), logger.LogLevel(cfg.Logging.Level), cfg.Logging.Format)
	optbridge.DefaultFallback().Set(cfg.Fallback)
	log.DebugWith("configuration loaded", "config", cfg.String())
	return cfg, log, nil
}

// newProducer returns the named producer primed to hand out env.
func newProducer(name string, env optbridge.Envelope) (optbridge.Producer, error) {
	switch name {
	case config.ProducerStatic:
		return optbridge.StaticProducer(env), nil
	case config.ProducerNative:
		if !native.Available {
			return nil, native.ErrUnavailable
		}
		native.Set(env)
		return native.Producer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", optbridge.ErrUnknownProducer, name)
}
