package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pbanos/sprout"
	"github.com/pbanos/sprout/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	*config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cliParser().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rc := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "sprout",
		Short: "sprout grows decision trees from categorical data",
		Long:  `A tool to grow decision trees from labelled categorical records, benchmark them, and use them to estimate the probability of a positive label`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(rc.verbose)
			if err != nil {
				return err
			}
			rc.logger = logger
			c, err := config.Load(rc.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			rc.Config = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rc.logger != nil {
				rc.logger.Sync()
			}
		},
		SilenceUsage: true,
	}
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&(rc.verbose), "verbose", "v", false, "log debug information to STDERR")
	flags.StringVar(&(rc.configFile), "config", "", "path to a YAML, TOML or JSON configuration file")
	flags.String("positive-label", sprout.DefaultPositiveLabel, "label whose probability trees report")
	flags.Float64("purity-threshold", sprout.DefaultPurityThreshold, "clearance at or above which nodes become leaves")
	flags.Int("max-depth", 0, "number of stages after which nodes become leaves (0 for no limit)")
	flags.Int("workers", 1, "number of workers growing a tree concurrently")
	flags.Int64("seed", 0, "seed for random column draws and splits (0 for a time-based seed)")
	flags.String("metadata", "", "path to a YAML file describing the columns of CSV inputs")
	rootCmd.AddCommand(versionCmd(), growCmd(rc), testCmd(rc), predictCmd(rc), splitCmd(rc), treeCmd(rc), serveCmd(rc), benchCmd(rc))
	return rootCmd
}

func (rc *rootCmdConfig) fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	if rc.logger != nil {
		rc.logger.Sync()
	}
	os.Exit(code)
}
